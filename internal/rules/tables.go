// Package rules holds the static rule tables the engine consumes: thresholds,
// calendars, probability tables. The tables are owned by the content layer and
// are pure data — they carry no behavior beyond lookups.
package rules

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TierThreshold maps a minimum relationship score to a closeness label.
// Thresholds must be listed in ascending Min order.
type TierThreshold struct {
	Min  int    `yaml:"min"`
	Name string `yaml:"name"`
}

// MonthDay is a recurring calendar date (festivals, single holidays).
type MonthDay struct {
	Month time.Month `yaml:"month"`
	Day   int        `yaml:"day"`
}

// Matches reports whether the given date falls on this month/day.
func (md MonthDay) Matches(date time.Time) bool {
	return date.Month() == md.Month && date.Day() == md.Day
}

// Span is an inclusive holiday range (term breaks).
type Span struct {
	From MonthDay `yaml:"from"`
	To   MonthDay `yaml:"to"`
}

// Contains reports whether the date falls inside the span. Spans may wrap the
// calendar year boundary (winter break).
func (s Span) Contains(date time.Time) bool {
	m, d := int(date.Month()), date.Day()
	from := int(s.From.Month)*100 + s.From.Day
	to := int(s.To.Month)*100 + s.To.Day
	cur := m*100 + d
	if from <= to {
		return cur >= from && cur <= to
	}
	return cur >= from || cur <= to
}

// CalendarTable describes the academic year shape.
type CalendarTable struct {
	YearStart    MonthDay   `yaml:"year_start"`
	YearEnd      MonthDay   `yaml:"year_end"`
	ExamDay      int        `yaml:"exam_day"` // day of month for the monthly exam
	Holidays     []MonthDay `yaml:"holidays"`
	Festivals    []MonthDay `yaml:"festivals"`
	HolidaySpans []Span     `yaml:"holiday_spans"`
}

// CurfewTable describes the in-day curfew window and base penalty.
type CurfewTable struct {
	StartTick   int `yaml:"start_tick"`
	EndTick     int `yaml:"end_tick"`
	BasePenalty int `yaml:"base_penalty"` // stress and relationship penalty before strictness scaling
}

// ExStatusProbs holds the per-status daily event probabilities.
type ExStatusProbs struct {
	Reconciliation float64 `yaml:"reconciliation"`
	Friendship     float64 `yaml:"friendship"`
	Stalking       float64 `yaml:"stalking"`
	Dangerous      float64 `yaml:"dangerous"`
}

// ExPartnerTable maps status names to probability rows plus the initial-status
// draw weights for the two breakup paths.
type ExPartnerTable struct {
	Probs           map[string]ExStatusProbs `yaml:"probs"`
	InitiatedDraw   map[string]int           `yaml:"initiated_draw"` // player walked away
	RejectedDraw    map[string]int           `yaml:"rejected_draw"`  // player was dumped
}

// OvernightTable holds the fixed overnight resource shift applied on rollover.
type OvernightTable struct {
	EnergyGain int `yaml:"energy_gain"`
	HungerDrop int `yaml:"hunger_drop"`
}

// WeeklyEvent is a named probabilistic campus event rolled on weekdays.
type WeeklyEvent struct {
	Name   string  `yaml:"name"`
	Chance float64 `yaml:"chance"`
}

// Tables is the full rule set the engine is constructed with.
type Tables struct {
	RelationshipTiers []TierThreshold    `yaml:"relationship_tiers"`
	RomanceStages     []int              `yaml:"romance_stages"` // index = stage, value = points needed
	HaremUnlockChance float64            `yaml:"harem_unlock_chance"`
	TherapyCost       int                `yaml:"therapy_cost"`
	Calendar          CalendarTable      `yaml:"calendar"`
	Curfew            CurfewTable        `yaml:"curfew"`
	Personalities     map[string]float64 `yaml:"personalities"` // parental strictness multipliers
	ExPartner         ExPartnerTable     `yaml:"ex_partner"`
	Overnight         OvernightTable     `yaml:"overnight"`
	WeeklyEvents      []WeeklyEvent      `yaml:"weekly_events"`
}

// Default returns the compiled-in rule set. A YAML file can override any of it.
func Default() *Tables {
	return &Tables{
		RelationshipTiers: []TierThreshold{
			{Min: 0, Name: "Stranger"},
			{Min: 20, Name: "Acquaintance"},
			{Min: 40, Name: "Friend"},
			{Min: 70, Name: "Close Friend"},
			{Min: 90, Name: "Best Friend"},
		},
		RomanceStages:     []int{0, 10, 25, 45, 65, 90},
		HaremUnlockChance: 0.15,
		TherapyCost:       3000,
		Calendar: CalendarTable{
			YearStart: MonthDay{Month: time.April, Day: 6},
			YearEnd:   MonthDay{Month: time.March, Day: 25},
			ExamDay:   25,
			Holidays: []MonthDay{
				{Month: time.May, Day: 3},
				{Month: time.May, Day: 4},
				{Month: time.May, Day: 5},
				{Month: time.November, Day: 3},
				{Month: time.November, Day: 23},
			},
			Festivals: []MonthDay{
				{Month: time.July, Day: 7},
				{Month: time.October, Day: 18},
				{Month: time.December, Day: 24},
				{Month: time.February, Day: 14},
			},
			HolidaySpans: []Span{
				{From: MonthDay{Month: time.July, Day: 20}, To: MonthDay{Month: time.August, Day: 31}},
				{From: MonthDay{Month: time.December, Day: 26}, To: MonthDay{Month: time.January, Day: 7}},
			},
		},
		Curfew: CurfewTable{StartTick: 220, EndTick: 240, BasePenalty: 5},
		Personalities: map[string]float64{
			"lenient":  0.5,
			"ordinary": 1.0,
			"strict":   2.0,
		},
		ExPartner: ExPartnerTable{
			Probs: map[string]ExStatusProbs{
				"moved_on":         {Reconciliation: 0.02, Friendship: 0.10},
				"still_interested": {Reconciliation: 0.10, Friendship: 0.05},
				"angry":            {Friendship: 0.02},
				"yandere":          {Stalking: 0.25, Dangerous: 0.15},
			},
			InitiatedDraw: map[string]int{
				"moved_on":         30,
				"still_interested": 25,
				"angry":            35,
				"yandere":          10,
			},
			RejectedDraw: map[string]int{
				"moved_on":         45,
				"still_interested": 35,
				"angry":            15,
				"yandere":          5,
			},
		},
		Overnight: OvernightTable{EnergyGain: 40, HungerDrop: 30},
		WeeklyEvents: []WeeklyEvent{
			{Name: "pop quiz", Chance: 0.08},
			{Name: "club recruitment drive", Chance: 0.05},
			{Name: "cafeteria special", Chance: 0.10},
		},
	}
}

// Load reads a YAML rule file over the compiled-in defaults.
func Load(path string) (*Tables, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks table invariants the engine depends on.
func (t *Tables) Validate() error {
	if len(t.RelationshipTiers) == 0 {
		return fmt.Errorf("rules: no relationship tiers")
	}
	for i := 1; i < len(t.RelationshipTiers); i++ {
		if t.RelationshipTiers[i].Min <= t.RelationshipTiers[i-1].Min {
			return fmt.Errorf("rules: relationship tiers not ascending at %q", t.RelationshipTiers[i].Name)
		}
	}
	if len(t.RomanceStages) < 2 {
		return fmt.Errorf("rules: romance stage table too short")
	}
	for i := 1; i < len(t.RomanceStages); i++ {
		if t.RomanceStages[i] <= t.RomanceStages[i-1] {
			return fmt.Errorf("rules: romance stage thresholds not ascending at stage %d", i)
		}
	}
	if t.Curfew.StartTick < 0 || t.Curfew.EndTick <= t.Curfew.StartTick {
		return fmt.Errorf("rules: invalid curfew window [%d, %d)", t.Curfew.StartTick, t.Curfew.EndTick)
	}
	return nil
}

// Strictness returns the multiplier for a parental personality name,
// defaulting to 1.0 for unknown names.
func (t *Tables) Strictness(personality string) float64 {
	if m, ok := t.Personalities[personality]; ok {
		return m
	}
	return 1.0
}
