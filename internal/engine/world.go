// Package engine owns the complete world state and the fixed-order daily
// cascade that advances it. All mutation goes through the command surface
// here; the presentation layer only reads derived values.
package engine

import (
	"errors"
	"time"

	"github.com/avelinek/campusdays/internal/ambient"
	"github.com/avelinek/campusdays/internal/calendar"
	"github.com/avelinek/campusdays/internal/rng"
	"github.com/avelinek/campusdays/internal/rules"
	"github.com/avelinek/campusdays/internal/rumor"
	"github.com/avelinek/campusdays/internal/social"
	"github.com/avelinek/campusdays/internal/stats"
)

// Engine errors.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCorruptSave       = errors.New("corrupt save")
	ErrYearComplete      = errors.New("school year complete")
)

// Event is a notable occurrence in the world.
type Event struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // "romance", "rumor", "school", "curfew", ...
}

// Keep the in-memory event log bounded.
const maxEvents = 1000

// Options configures a fresh world.
type Options struct {
	PlayerName  string
	Personality string // parental personality, drives curfew stringency
	StartDate   time.Time
	SchoolYear  int
	Wallet      int
	Seed        int64 // ambient field seed
}

// World holds the complete engine state. It is owned by a single caller and
// is not safe for concurrent use.
type World struct {
	Resources  *stats.Resources
	Mental     *stats.MentalHealth
	Reputation *stats.Reputation
	Ledger     *social.Ledger
	Romance    *social.RomanceBook
	Exes       *social.ExBook
	Rumors     *rumor.Pool
	Calendar   *calendar.Calendar
	Atmosphere *ambient.Field

	PlayerName   string
	Personality  string
	Wallet       int
	Location     string
	HomeworkDone bool

	Events  []Event     // recent events (bounded ring)
	LastDay *DaySummary // most recently completed day, nil before the first

	tables *rules.Tables
	src    rng.Source
}

// New creates a world from rule tables, an injected randomness source, and
// starting options.
func New(tables *rules.Tables, src rng.Source, opts Options) (*World, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if opts.PlayerName == "" {
		opts.PlayerName = "Player"
	}
	if opts.Personality == "" {
		opts.Personality = "ordinary"
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = time.Date(time.Now().Year(), tables.Calendar.YearStart.Month, tables.Calendar.YearStart.Day, 0, 0, 0, 0, time.UTC)
	}
	if opts.SchoolYear == 0 {
		opts.SchoolYear = 1
	}

	return &World{
		Resources:   stats.NewResources(),
		Mental:      stats.NewMentalHealth(),
		Reputation:  stats.NewReputation(),
		Ledger:      social.NewLedger(tables.RelationshipTiers),
		Romance:     social.NewRomanceBook(tables.RomanceStages, tables.HaremUnlockChance, src),
		Exes:        social.NewExBook(tables.ExPartner, src),
		Rumors:      rumor.NewPool(src),
		Calendar:    calendar.New(tables.Calendar, opts.StartDate, opts.SchoolYear),
		Atmosphere:  ambient.NewField(opts.Seed),
		PlayerName:  opts.PlayerName,
		Personality: opts.Personality,
		Wallet:      opts.Wallet,
		Location:    "dorm",
		tables:      tables,
		src:         src,
	}, nil
}

// Tables exposes the static rule tables the world was built with.
func (w *World) Tables() *rules.Tables { return w.tables }

// emit records an event at the current date, trimming the bounded log.
func (w *World) emit(category, description string) Event {
	ev := Event{Date: w.Calendar.Date, Description: description, Category: category}
	w.Events = append(w.Events, ev)
	if len(w.Events) > maxEvents {
		w.Events = w.Events[len(w.Events)-maxEvents:]
	}
	return ev
}

// Locations the curfew check counts as being home.
var homeLocations = map[string]bool{
	"home":        true,
	"bedroom":     true,
	"living_room": true,
}

func isHomeLocation(loc string) bool { return homeLocations[loc] }

// recomputeHealth re-derives physical health and performs the declared
// emergency side effects when it bottoms out: relocation to the infirmary and
// the fixed in-day time penalty.
func (w *World) recomputeHealth() (emergency bool) {
	if w.Resources.RecomputeHealth(w.Mental.HealthPenalty()) {
		w.Location = "infirmary"
		w.Calendar.AdvanceTicks(stats.EmergencyTickPenalty)
		w.emit("health", w.PlayerName+" collapsed and was rushed to the infirmary")
		return true
	}
	return false
}
