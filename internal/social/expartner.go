package social

import (
	"fmt"
	"sort"
	"time"

	"github.com/avelinek/campusdays/internal/rng"
	"github.com/avelinek/campusdays/internal/rules"
)

// ExStatus is the behavioral class of a former partner, ordered by severity.
type ExStatus int

const (
	StatusMovedOn ExStatus = iota
	StatusStillInterested
	StatusAngry
	StatusYandere
)

var exStatusNames = map[ExStatus]string{
	StatusMovedOn:         "moved_on",
	StatusStillInterested: "still_interested",
	StatusAngry:           "angry",
	StatusYandere:         "yandere",
}

func (s ExStatus) String() string {
	if name, ok := exStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ex_status(%d)", int(s))
}

// Valid reports whether the value is one of the four statuses.
func (s ExStatus) Valid() bool {
	_, ok := exStatusNames[s]
	return ok
}

// stepDown returns the next-lower severity. Severity only ever drops one
// level at a time; MovedOn is terminal.
func (s ExStatus) stepDown() ExStatus {
	switch s {
	case StatusYandere:
		return StatusAngry
	case StatusAngry, StatusStillInterested:
		return StatusMovedOn
	default:
		return StatusMovedOn
	}
}

// ExPartner is the post-breakup record for one person.
type ExPartner struct {
	Name        string    `json:"name"`
	Status      ExStatus  `json:"status"`
	BreakupDate time.Time `json:"breakup_date"`

	// Therapy progress.
	TherapyAttempts int  `json:"therapy_attempts"`
	TherapySessions int  `json:"therapy_sessions"`
	InTherapy       bool `json:"in_therapy"`

	// Yandere escalation sub-event counters.
	Stalkings          int `json:"stalkings"`
	DangerousIncidents int `json:"dangerous_incidents"`

	// A reconciliation roll succeeded and awaits caller confirmation.
	PendingReconciliation bool `json:"pending_reconciliation"`
}

// DailyOutcome reports what fired during one ex's daily roll. Side effects
// (stress, relationship bumps) belong to the caller.
type DailyOutcome struct {
	FlavorEvent           bool
	ReconciliationOffered bool
	FriendshipMoment      bool
	Stalked               bool
	Dangerous             bool
}

// Probability of a state-appropriate flavor event firing on any given day.
const flavorEventChance = 0.10

// ExBook tracks every former partner and drives their daily automaton.
type ExBook struct {
	exes  map[string]*ExPartner
	table rules.ExPartnerTable
	src   rng.Source
}

// NewExBook creates an empty book over the given probability tables.
func NewExBook(table rules.ExPartnerTable, src rng.Source) *ExBook {
	return &ExBook{
		exes:  make(map[string]*ExPartner),
		table: table,
		src:   src,
	}
}

// Add inserts a breakup record.
func (b *ExBook) Add(rec *ExPartner) {
	b.exes[rec.Name] = rec
}

// Get returns a record by name.
func (b *ExBook) Get(name string) (*ExPartner, error) {
	rec, ok := b.exes[name]
	if !ok {
		return nil, fmt.Errorf("no ex-partner record for %s", name)
	}
	return rec, nil
}

// Remove drops a record (reconciliation).
func (b *ExBook) Remove(name string) {
	delete(b.exes, name)
}

// All returns every record sorted by name, so daily processing order is
// stable across runs.
func (b *ExBook) All() []*ExPartner {
	out := make([]*ExPartner, 0, len(b.exes))
	for _, rec := range b.exes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (b *ExBook) probsFor(s ExStatus) rules.ExStatusProbs {
	return b.table.Probs[s.String()]
}

// RollDaily runs one ex's daily automaton. Roll order is fixed: flavor event,
// reconciliation (MovedOn/StillInterested only), then for Yandere stalking
// with a nested dangerous-escalation roll.
func (b *ExBook) RollDaily(name string) (DailyOutcome, error) {
	rec, err := b.Get(name)
	if err != nil {
		return DailyOutcome{}, err
	}

	p := b.probsFor(rec.Status)
	var out DailyOutcome

	if rng.Chance(b.src, flavorEventChance) {
		out.FlavorEvent = true
	}

	switch rec.Status {
	case StatusMovedOn, StatusStillInterested:
		if rng.Chance(b.src, p.Reconciliation) {
			out.ReconciliationOffered = true
			rec.PendingReconciliation = true
		}
	}

	if p.Friendship > 0 && rng.Chance(b.src, p.Friendship) {
		out.FriendshipMoment = true
	}

	if rec.Status == StatusYandere {
		if rng.Chance(b.src, p.Stalking) {
			out.Stalked = true
			rec.Stalkings++
			if rng.Chance(b.src, p.Dangerous) {
				out.Dangerous = true
				rec.DangerousIncidents++
			}
		}
	}

	return out, nil
}

// RollInitialStatus draws the starting status for a fresh breakup. The weight
// table differs depending on who ended it.
func RollInitialStatus(playerInitiated bool, table rules.ExPartnerTable, src rng.Source) ExStatus {
	weights := table.RejectedDraw
	if playerInitiated {
		weights = table.InitiatedDraw
	}

	order := []ExStatus{StatusMovedOn, StatusStillInterested, StatusAngry, StatusYandere}
	total := 0
	for _, s := range order {
		total += weights[s.String()]
	}
	if total <= 0 {
		return StatusMovedOn
	}

	pick := src.Intn(total)
	for _, s := range order {
		pick -= weights[s.String()]
		if pick < 0 {
			return s
		}
	}
	return StatusMovedOn
}

// OfferTherapy makes one intervention attempt. Acceptance probability rises
// with each attempt, capped at 50%.
func (b *ExBook) OfferTherapy(name string) (accepted bool, err error) {
	rec, err := b.Get(name)
	if err != nil {
		return false, err
	}
	rec.TherapyAttempts++

	p := 0.1 + float64(rec.TherapyAttempts)*0.1
	if p > 0.5 {
		p = 0.5
	}
	if rng.Chance(b.src, p) {
		rec.InTherapy = true
		return true, nil
	}
	return false, nil
}

// TherapySession runs one session for an ex already in therapy. Every third
// session rolls a state-improvement chance that steps the status down exactly
// one severity level. De-escalating below MovedOn is a no-op.
func (b *ExBook) TherapySession(name string) (improved bool, status ExStatus, err error) {
	rec, err := b.Get(name)
	if err != nil {
		return false, 0, err
	}
	if !rec.InTherapy {
		return false, rec.Status, fmt.Errorf("%s has not accepted therapy", name)
	}

	rec.TherapySessions++
	if rec.TherapySessions%3 != 0 {
		return false, rec.Status, nil
	}

	p := 0.3 + float64(rec.TherapySessions)*0.1
	if p > 0.8 {
		p = 0.8
	}
	if rng.Chance(b.src, p) && rec.Status != StatusMovedOn {
		rec.Status = rec.Status.stepDown()
		return true, rec.Status, nil
	}
	return false, rec.Status, nil
}

// Export copies all records for snapshotting.
func (b *ExBook) Export() []ExPartner {
	out := make([]ExPartner, 0, len(b.exes))
	for _, rec := range b.All() {
		out = append(out, *rec)
	}
	return out
}

// Import replaces the book from a snapshot.
func (b *ExBook) Import(recs []ExPartner) {
	b.exes = make(map[string]*ExPartner, len(recs))
	for _, rec := range recs {
		cp := rec
		b.exes[rec.Name] = &cp
	}
}
