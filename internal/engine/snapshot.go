package engine

import (
	"fmt"
	"time"

	"github.com/avelinek/campusdays/internal/calendar"
	"github.com/avelinek/campusdays/internal/rumor"
	"github.com/avelinek/campusdays/internal/social"
	"github.com/avelinek/campusdays/internal/stats"
)

// Snapshot is the full serialized form of the world.
type Snapshot struct {
	SavedAt      time.Time            `json:"saved_at"`
	Player       string               `json:"player"`
	Personality  string               `json:"personality"`
	Wallet       int                  `json:"wallet"`
	Location     string               `json:"location"`
	HomeworkDone bool                 `json:"homework_done"`
	Resources    stats.Resources      `json:"resources"`
	Mental       stats.MentalHealth   `json:"mental"`
	Reputation   stats.Reputation     `json:"reputation"`
	Relations    map[string]int       `json:"relationships"`
	Romance      social.RomanceExport `json:"romance"`
	Exes         []social.ExPartner   `json:"exes"`
	Rumors       []rumor.Rumor        `json:"rumors"`
	Calendar     calendar.Export      `json:"calendar"`
}

// Snapshot serializes the complete world state.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		SavedAt:      time.Now().UTC(),
		Player:       w.PlayerName,
		Personality:  w.Personality,
		Wallet:       w.Wallet,
		Location:     w.Location,
		HomeworkDone: w.HomeworkDone,
		Resources:    *w.Resources,
		Mental:       *w.Mental,
		Reputation:   *w.Reputation,
		Relations:    w.Ledger.Export(),
		Romance:      w.Romance.Export(),
		Exes:         w.Exes.Export(),
		Rumors:       w.Rumors.Export(),
		Calendar:     w.Calendar.Snapshot(),
	}
}

// Restore replaces the live world state with a snapshot. The snapshot is
// validated in full before the first assignment: a corrupt snapshot returns
// ErrCorruptSave and leaves the in-memory state untouched.
func (w *World) Restore(s Snapshot) error {
	if err := validateSnapshot(s); err != nil {
		return err
	}

	res, men, rep := s.Resources, s.Mental, s.Reputation
	w.Resources = &res
	w.Mental = &men
	w.Reputation = &rep
	w.PlayerName = s.Player
	w.Personality = s.Personality
	w.Wallet = s.Wallet
	w.Location = s.Location
	w.HomeworkDone = s.HomeworkDone
	w.Ledger.Import(s.Relations)
	w.Romance.Import(s.Romance)
	w.Exes.Import(s.Exes)
	w.Rumors.Import(s.Rumors)
	w.Calendar.Restore(s.Calendar)
	return nil
}

func validateSnapshot(s Snapshot) error {
	if s.Player == "" {
		return fmt.Errorf("%w: missing player name", ErrCorruptSave)
	}
	if s.Wallet < 0 {
		return fmt.Errorf("%w: negative wallet %d", ErrCorruptSave, s.Wallet)
	}
	if err := s.Resources.Validate(); err != nil {
		return fmt.Errorf("%w: resources: %v", ErrCorruptSave, err)
	}
	if err := s.Mental.Validate(); err != nil {
		return fmt.Errorf("%w: mental health: %v", ErrCorruptSave, err)
	}
	if err := s.Reputation.Validate(); err != nil {
		return fmt.Errorf("%w: reputation: %v", ErrCorruptSave, err)
	}
	for id, score := range s.Relations {
		if id == "" {
			return fmt.Errorf("%w: relationship entry with empty id", ErrCorruptSave)
		}
		if score < 0 {
			return fmt.Errorf("%w: relationship score %d for %s below floor", ErrCorruptSave, score, id)
		}
	}

	seen := make(map[string]bool, len(s.Romance.Partners))
	for _, p := range s.Romance.Partners {
		if p.ID == "" {
			return fmt.Errorf("%w: partner with empty id", ErrCorruptSave)
		}
		if p.Stage < 0 || p.Stage > social.StageMax {
			return fmt.Errorf("%w: partner %s stage %d outside [0, %d]", ErrCorruptSave, p.ID, p.Stage, social.StageMax)
		}
		if p.Points < 0 {
			return fmt.Errorf("%w: partner %s has negative points", ErrCorruptSave, p.ID)
		}
		seen[p.ID] = true
	}
	if s.Romance.Active != "" && !seen[s.Romance.Active] {
		return fmt.Errorf("%w: active partner %s not in partner set", ErrCorruptSave, s.Romance.Active)
	}
	if len(s.Romance.Partners) > 1 && !s.Romance.Harem {
		return fmt.Errorf("%w: multiple partners without harem mode", ErrCorruptSave)
	}

	for _, rec := range s.Exes {
		if rec.Name == "" {
			return fmt.Errorf("%w: ex-partner record with empty name", ErrCorruptSave)
		}
		if !rec.Status.Valid() {
			return fmt.Errorf("%w: ex-partner %s has unknown status %d", ErrCorruptSave, rec.Name, int(rec.Status))
		}
		if rec.TherapyAttempts < 0 || rec.TherapySessions < 0 || rec.Stalkings < 0 || rec.DangerousIncidents < 0 {
			return fmt.Errorf("%w: ex-partner %s has a negative counter", ErrCorruptSave, rec.Name)
		}
	}

	for _, r := range s.Rumors {
		if r.Spread < rumor.MinSpread || r.Spread > rumor.MaxSpread {
			return fmt.Errorf("%w: rumor %s spread %d outside [%d, %d]", ErrCorruptSave, r.ID, r.Spread, rumor.MinSpread, rumor.MaxSpread)
		}
		if !r.Type.Valid() {
			return fmt.Errorf("%w: rumor %s has unknown type %d", ErrCorruptSave, r.ID, int(r.Type))
		}
	}

	c := s.Calendar
	if c.Date.IsZero() {
		return fmt.Errorf("%w: missing calendar date", ErrCorruptSave)
	}
	if c.Tick < 0 || c.Tick > calendar.DayLength {
		return fmt.Errorf("%w: tick %d outside [0, %d]", ErrCorruptSave, c.Tick, calendar.DayLength)
	}
	if c.Accommodation != calendar.AccommodationDorm && c.Accommodation != calendar.AccommodationHome {
		return fmt.Errorf("%w: unknown accommodation %d", ErrCorruptSave, int(c.Accommodation))
	}
	if c.YearProgress < 0 || c.YearProgress > 100 {
		return fmt.Errorf("%w: year progress %.2f outside [0, 100]", ErrCorruptSave, c.YearProgress)
	}
	if c.CurfewViolations < 0 {
		return fmt.Errorf("%w: negative curfew violation count", ErrCorruptSave)
	}
	return nil
}
