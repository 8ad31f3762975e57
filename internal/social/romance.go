package social

import (
	"errors"
	"fmt"
	"sort"

	"github.com/avelinek/campusdays/internal/rng"
)

// StageMax is the terminal romance stage (dating).
const StageMax = 5

// Errors surfaced by the romance book.
var (
	ErrUnknownPartner = errors.New("unknown partner")
	ErrHaremLocked    = errors.New("a partner already exists and multi-partner mode is not unlocked")
)

// Partner is one active romance: a stage in 0..StageMax and accumulated
// points. The stage never decreases; breakups remove the record entirely.
type Partner struct {
	ID     string `json:"id"`
	Stage  int    `json:"stage"`
	Points int    `json:"points"`
}

// RomanceBook holds the active partner set and the stage thresholds. In the
// default mode at most one partner exists; the multi-partner mode is unlocked
// by a rare roll the first time any partner reaches the terminal stage.
type RomanceBook struct {
	partners map[string]*Partner
	active   string
	harem    bool

	stages       []int // stages[n] = points required to enter stage n
	unlockChance float64
	src          rng.Source
}

// NewRomanceBook creates an empty book over the given stage threshold table.
func NewRomanceBook(stages []int, unlockChance float64, src rng.Source) *RomanceBook {
	return &RomanceBook{
		partners:     make(map[string]*Partner),
		stages:       stages,
		unlockChance: unlockChance,
		src:          src,
	}
}

// HaremUnlocked reports whether the multi-partner mode is available.
func (b *RomanceBook) HaremUnlocked() bool { return b.harem }

// Active returns the partner currently receiving interaction effects, or nil.
func (b *RomanceBook) Active() *Partner {
	if b.active == "" {
		return nil
	}
	return b.partners[b.active]
}

// Partners returns all active partners sorted by identifier.
func (b *RomanceBook) Partners() []*Partner {
	out := make([]*Partner, 0, len(b.partners))
	for _, p := range b.partners {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StartCourtship adds a new partner at stage zero and makes it active if no
// active partner exists. Adding a second partner requires the unlocked
// multi-partner mode.
func (b *RomanceBook) StartCourtship(id string) error {
	if _, ok := b.partners[id]; ok {
		return fmt.Errorf("courtship with %s already underway", id)
	}
	if len(b.partners) > 0 && !b.harem {
		return ErrHaremLocked
	}
	b.partners[id] = &Partner{ID: id}
	if b.active == "" {
		b.active = id
	}
	return nil
}

// SetActive switches the active-partner pointer among the current set.
func (b *RomanceBook) SetActive(id string) error {
	if _, ok := b.partners[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPartner, id)
	}
	b.active = id
	return nil
}

// Grant adds romance points to a partner and advances the stage as far as the
// thresholds allow, possibly through several stages in one call. At StageMax
// further points simply accumulate. Returns each stage entered, in order.
func (b *RomanceBook) Grant(id string, points int) (advanced []int, err error) {
	p, ok := b.partners[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPartner, id)
	}
	if points > 0 {
		p.Points += points
	}

	for p.Stage < StageMax && p.Stage+1 < len(b.stages) && p.Points >= b.stages[p.Stage+1] {
		p.Stage++
		advanced = append(advanced, p.Stage)

		// The multi-partner unlock is rolled exactly when the terminal stage
		// is first reached, never retroactively.
		if p.Stage == StageMax && !b.harem && rng.Chance(b.src, b.unlockChance) {
			b.harem = true
		}
	}
	return advanced, nil
}

// Remove drops a partner from the book (breakup), fixing up the active
// pointer to any remaining partner. Returns the removed record.
func (b *RomanceBook) Remove(id string) (*Partner, error) {
	p, ok := b.partners[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPartner, id)
	}
	delete(b.partners, id)
	if b.active == id {
		b.active = ""
		for _, rest := range b.Partners() {
			b.active = rest.ID
			break
		}
	}
	return p, nil
}

// RomanceExport is the snapshot form of the book.
type RomanceExport struct {
	Partners []Partner `json:"partners"`
	Active   string    `json:"active,omitempty"`
	Harem    bool      `json:"harem"`
}

// Export copies the book state for snapshotting.
func (b *RomanceBook) Export() RomanceExport {
	out := RomanceExport{Active: b.active, Harem: b.harem}
	for _, p := range b.Partners() {
		out.Partners = append(out.Partners, *p)
	}
	return out
}

// Import replaces the book state from a snapshot. Stage and point domains are
// validated by the engine before this runs.
func (b *RomanceBook) Import(e RomanceExport) {
	b.partners = make(map[string]*Partner, len(e.Partners))
	for _, p := range e.Partners {
		cp := p
		b.partners[p.ID] = &cp
	}
	b.active = e.Active
	b.harem = e.Harem
}
