package engine

import (
	"fmt"

	"github.com/avelinek/campusdays/internal/rumor"
	"github.com/avelinek/campusdays/internal/social"
)

// AdvanceTick moves in-day time forward by n ticks without crossing the day
// boundary; only AdvanceDay rolls the date over.
func (w *World) AdvanceTick(n int) {
	w.Calendar.AdvanceTicks(n)
}

// MoveTo records the character's last known location, consumed by curfew
// enforcement and emergency recovery.
func (w *World) MoveTo(location string) {
	w.Location = location
}

// SetHomework marks today's homework as done (or not). Weekday processing
// sanctions unfinished homework and resets the flag for the next day.
func (w *World) SetHomework(done bool) {
	w.HomeworkDone = done
}

// AdjustRelationship mutates a character's score and reports the tier and
// whether it changed, for caller-side notification.
func (w *World) AdjustRelationship(id string, delta int) (tier string, changed bool) {
	tier, changed = w.Ledger.Adjust(id, delta)
	if changed {
		w.emit("social", fmt.Sprintf("%s is now a %s", id, tier))
	}
	return tier, changed
}

// StartCourtship begins a romance with a new partner. With an existing
// partner this fails unless multi-partner mode has been unlocked.
func (w *World) StartCourtship(id string) error {
	if err := w.Romance.StartCourtship(id); err != nil {
		return err
	}
	w.emit("romance", "courtship begins with "+id)
	return nil
}

// SetActivePartner switches which partner receives interaction effects.
func (w *World) SetActivePartner(id string) error {
	return w.Romance.SetActive(id)
}

// GrantRomancePoints adds points to a partner, advancing the romance stage as
// far as the thresholds allow. Returns each stage entered.
func (w *World) GrantRomancePoints(partnerID string, amount int) ([]int, error) {
	hadHarem := w.Romance.HaremUnlocked()
	advanced, err := w.Romance.Grant(partnerID, amount)
	if err != nil {
		return nil, err
	}
	for _, stage := range advanced {
		w.emit("romance", fmt.Sprintf("romance with %s advanced to stage %d", partnerID, stage))
	}
	if !hadHarem && w.Romance.HaremUnlocked() {
		w.emit("romance", "something unusual has been unlocked")
	}
	return advanced, nil
}

// BreakUp ends a romance on the player's initiative, demoting the partner to
// an ex-partner record with a weighted-random initial status.
func (w *World) BreakUp(partnerID string) (*social.ExPartner, error) {
	return w.breakUp(partnerID, true, nil)
}

// SufferRejection ends a romance because the partner walked away. The
// initial-status weights differ from a player-initiated breakup.
func (w *World) SufferRejection(partnerID string) (*social.ExPartner, error) {
	return w.breakUp(partnerID, false, nil)
}

func (w *World) breakUp(partnerID string, playerInitiated bool, forced *social.ExStatus) (*social.ExPartner, error) {
	if _, err := w.Romance.Remove(partnerID); err != nil {
		return nil, err
	}

	status := social.RollInitialStatus(playerInitiated, w.tables.ExPartner, w.src)
	if forced != nil {
		status = *forced
	}
	rec := &social.ExPartner{
		Name:        partnerID,
		Status:      status,
		BreakupDate: w.Calendar.Date,
	}
	w.Exes.Add(rec)
	w.Mental.RecordBreakup()
	w.emit("romance", fmt.Sprintf("broke up with %s (%s)", partnerID, status))
	return rec, nil
}

// CreateRumor starts a rumor circulating at the minimum spread level.
func (w *World) CreateRumor(content string, t rumor.Type, target, originator string) *rumor.Rumor {
	r := w.Rumors.Create(content, t, target, originator, w.Calendar.Date)
	w.emit("rumor", "a new rumor is circulating: "+content)
	return r
}

// RollExPartnerEvent runs one ex's daily automaton on demand, applying its
// side effects.
func (w *World) RollExPartnerEvent(name string) (social.DailyOutcome, error) {
	out, err := w.Exes.RollDaily(name)
	if err != nil {
		return out, err
	}
	w.applyExOutcome(name, out)
	return out, nil
}

// applyExOutcome translates a daily automaton outcome into world effects.
func (w *World) applyExOutcome(name string, out social.DailyOutcome) []Event {
	var events []Event
	if out.FlavorEvent {
		events = append(events, w.emit("ex", name+" crossed your path today"))
	}
	if out.ReconciliationOffered {
		events = append(events, w.emit("ex", name+" wants to get back together"))
	}
	if out.FriendshipMoment {
		w.Ledger.Adjust(name, 3)
		events = append(events, w.emit("ex", "a friendly moment with "+name))
	}
	if out.Stalked {
		w.Resources.Restore(0, 0, 5)
		events = append(events, w.emit("ex", name+" was seen following you"))
	}
	if out.Dangerous {
		w.Resources.Restore(0, 0, 10)
		events = append(events, w.emit("ex", name+" did something frightening"))
	}
	if out.Stalked || out.Dangerous {
		w.recomputeHealth()
	}
	return events
}

// ConfirmReconciliation completes a pending reconciliation with an ex. A
// current partner is broken up first and records the breakup as Angry. The
// reconciled partner returns at stage 3 of the romance.
func (w *World) ConfirmReconciliation(name string) error {
	rec, err := w.Exes.Get(name)
	if err != nil {
		return err
	}
	if !rec.PendingReconciliation {
		return fmt.Errorf("%s has not offered to reconcile", name)
	}

	if active := w.Romance.Active(); active != nil {
		angry := social.StatusAngry
		if _, err := w.breakUp(active.ID, true, &angry); err != nil {
			return err
		}
	}

	w.Exes.Remove(name)
	if err := w.Romance.StartCourtship(name); err != nil {
		return err
	}
	if _, err := w.Romance.Grant(name, w.tables.RomanceStages[3]); err != nil {
		return err
	}
	if err := w.Romance.SetActive(name); err != nil {
		return err
	}
	w.emit("romance", "reconciled with "+name)
	return nil
}

// OfferExTherapy makes one therapy intervention attempt for an ex.
func (w *World) OfferExTherapy(name string) (accepted bool, err error) {
	accepted, err = w.Exes.OfferTherapy(name)
	if err == nil && accepted {
		w.emit("ex", name+" agreed to try therapy")
	}
	return accepted, err
}

// RunExTherapySession runs one session for an ex in therapy; every third
// session can step their status down one severity level.
func (w *World) RunExTherapySession(name string) (improved bool, status social.ExStatus, err error) {
	improved, status, err = w.Exes.TherapySession(name)
	if err == nil && improved {
		w.emit("ex", fmt.Sprintf("%s is doing better (%s)", name, status))
	}
	return improved, status, err
}

// AttendTherapy spends money on a session for the player. Fails without
// mutating anything when the balance is short.
func (w *World) AttendTherapy() error {
	cost := w.tables.TherapyCost
	if w.Wallet < cost {
		return fmt.Errorf("%w: therapy costs %d, balance is %d", ErrInsufficientFunds, cost, w.Wallet)
	}
	w.Wallet -= cost
	w.Mental.ApplyTherapy(w.Calendar.Date)
	w.recomputeHealth()
	w.emit("health", "attended a therapy session")
	return nil
}

// ProcessBullyingEvent registers a bullying incident and applies its declared
// stress cost to the resource model.
func (w *World) ProcessBullyingEvent(severity int) {
	stress := w.Mental.RecordBullying(severity)
	w.Resources.Restore(0, 0, stress)
	w.recomputeHealth()
	w.emit("social", "a bullying incident")
}
