// Package rumor models the campus rumor mill: each rumor carries a spread
// level that grows, decays with age, and is eventually garbage-collected.
// Rumors that reach wide circulation while targeting the player trigger
// one-time reputation consequences.
package rumor

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/avelinek/campusdays/internal/rng"
)

// Type tags what a rumor is about.
type Type int

const (
	TypeRomantic Type = iota
	TypeAcademic
	TypeSocial
	TypeScandal
)

var typeNames = map[Type]string{
	TypeRomantic: "romantic",
	TypeAcademic: "academic",
	TypeSocial:   "social",
	TypeScandal:  "scandal",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("rumor_type(%d)", int(t))
}

// Valid reports whether the value is a known rumor type.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType maps a type name back to its value.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown rumor type %q", name)
}

// Spread level domain.
const (
	MinSpread = 1
	MaxSpread = 10
)

// Propagation constants.
const (
	growChance        = 0.30 // daily chance the rumor spreads further
	decayAgeDays      = 14   // after this many days the rumor can fade
	decayChance       = 0.20
	gcAgeDays         = 30 // after this many days the rumor can die entirely
	gcChance          = 0.10
	consequenceSpread = 7 // minimum spread for reputation consequences
)

// Rumor is one circulating story. Content is opaque to the engine.
type Rumor struct {
	ID              uuid.UUID `json:"id"`
	Content         string    `json:"content"`
	Type            Type      `json:"type"`
	Spread          int       `json:"spread"`
	Created         time.Time `json:"created"`
	Target          string    `json:"target,omitempty"`
	Originator      string    `json:"originator,omitempty"`
	HadConsequences bool      `json:"had_consequences"`
}

// Age returns whole days since the rumor started.
func (r *Rumor) Age(today time.Time) int {
	return int(today.Sub(r.Created).Hours() / 24)
}

// Consequence is a reputation hit (or boost) produced by a widespread rumor.
type Consequence struct {
	RumorID  uuid.UUID
	Kind     Type
	Students int
	Teachers int
}

// Pool holds every live rumor.
type Pool struct {
	rumors []*Rumor
	src    rng.Source
}

// NewPool creates an empty pool.
func NewPool(src rng.Source) *Pool {
	return &Pool{src: src}
}

// Create inserts a rumor at the minimum spread level.
func (p *Pool) Create(content string, t Type, target, originator string, today time.Time) *Rumor {
	r := &Rumor{
		ID:         uuid.New(),
		Content:    content,
		Type:       t,
		Spread:     MinSpread,
		Created:    today,
		Target:     target,
		Originator: originator,
	}
	p.rumors = append(p.rumors, r)
	return r
}

// Len returns the number of live rumors.
func (p *Pool) Len() int { return len(p.rumors) }

// All returns the live rumors sorted by creation date then ID.
func (p *Pool) All() []*Rumor {
	out := make([]*Rumor, len(p.rumors))
	copy(out, p.rumors)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// DailyUpdate advances every rumor by one day. Per rumor the roll order is
// fixed: growth, consequences (if eligible), age decay, age garbage
// collection. Consequences fire at most once per rumor: the rumor is marked
// the first time the consequence table is rolled, whatever the outcome.
func (p *Pool) DailyUpdate(today time.Time, player string) []Consequence {
	var fired []Consequence
	survivors := p.rumors[:0]

	for _, r := range p.rumors {
		if rng.Chance(p.src, growChance) && r.Spread < MaxSpread {
			r.Spread++
		}

		if r.Target == player && r.Spread >= consequenceSpread && !r.HadConsequences {
			if c, ok := p.rollConsequence(r); ok {
				fired = append(fired, c)
			}
			r.HadConsequences = true
		}

		age := r.Age(today)
		if age > decayAgeDays && rng.Chance(p.src, decayChance) && r.Spread > MinSpread {
			r.Spread--
		}
		if age > gcAgeDays && rng.Chance(p.src, gcChance) {
			continue // forgotten
		}
		survivors = append(survivors, r)
	}

	p.rumors = survivors
	return fired
}

// rollConsequence rolls the type-specific reputation table for a rumor.
func (p *Pool) rollConsequence(r *Rumor) (Consequence, bool) {
	c := Consequence{RumorID: r.ID, Kind: r.Type}
	switch r.Type {
	case TypeRomantic:
		// Romantic gossip cuts both ways.
		if rng.Chance(p.src, 0.10) {
			if rng.Chance(p.src, 0.5) {
				c.Students = 3
			} else {
				c.Students = -3
			}
			return c, true
		}
	case TypeAcademic:
		if rng.Chance(p.src, 0.30) {
			c.Teachers = -5
			return c, true
		}
	case TypeScandal:
		if rng.Chance(p.src, 0.50) {
			c.Students = -5
			c.Teachers = -5
			return c, true
		}
	}
	return Consequence{}, false
}

// Export copies the pool for snapshotting.
func (p *Pool) Export() []Rumor {
	out := make([]Rumor, 0, len(p.rumors))
	for _, r := range p.All() {
		out = append(out, *r)
	}
	return out
}

// Import replaces the pool from a snapshot.
func (p *Pool) Import(rumors []Rumor) {
	p.rumors = make([]*Rumor, 0, len(rumors))
	for _, r := range rumors {
		cp := r
		p.rumors = append(p.rumors, &cp)
	}
}
