// Package calendar tracks in-day time, the active date, and the academic-year
// structure: day categories, accommodation transitions, curfew windows, and
// year progress.
package calendar

import (
	"time"

	"github.com/avelinek/campusdays/internal/rules"
)

// DayLength is the number of ticks in one day (ten ticks per hour).
const DayLength = 240

// Accommodation is where the character currently lives.
type Accommodation int

const (
	AccommodationDorm Accommodation = iota
	AccommodationHome
)

func (a Accommodation) String() string {
	if a == AccommodationHome {
		return "home"
	}
	return "dorm"
}

// DayCategory classifies a date. Festival takes precedence over holiday,
// holiday over weekend.
type DayCategory int

const (
	CategoryWeekday DayCategory = iota
	CategoryWeekend
	CategoryHoliday
	CategoryFestival
)

var categoryNames = map[DayCategory]string{
	CategoryWeekday:  "weekday",
	CategoryWeekend:  "weekend",
	CategoryHoliday:  "holiday",
	CategoryFestival: "festival",
}

func (c DayCategory) String() string { return categoryNames[c] }

// Calendar is the clock state: date, in-day ticks, and year bookkeeping.
type Calendar struct {
	Date             time.Time
	Tick             int
	SchoolYear       int
	YearProgress     float64 // percent, 0–100
	Accommodation    Accommodation
	HolidayMode      bool // dorm resident temporarily staying home over a holiday
	CurfewViolations int
	YearComplete     bool

	yearStart time.Time
	yearEnd   time.Time
	table     rules.CalendarTable
}

// New creates a calendar positioned at startDate inside the given school year.
func New(table rules.CalendarTable, startDate time.Time, schoolYear int) *Calendar {
	c := &Calendar{
		Date:       truncate(startDate),
		SchoolYear: schoolYear,
		table:      table,
	}
	c.bindYear()
	c.RecomputeProgress()
	return c
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bindYear anchors the academic-year start and end dates around the current
// date. A year end earlier in the calendar than the start means the academic
// year wraps into the next calendar year.
func (c *Calendar) bindYear() {
	start := time.Date(c.Date.Year(), c.table.YearStart.Month, c.table.YearStart.Day, 0, 0, 0, 0, time.UTC)
	if c.Date.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	end := time.Date(start.Year(), c.table.YearEnd.Month, c.table.YearEnd.Day, 0, 0, 0, 0, time.UTC)
	if !end.After(start) {
		end = end.AddDate(1, 0, 0)
	}
	c.yearStart = start
	c.yearEnd = end
}

// AdvanceTicks moves in-day time forward, capping at the day length. Crossing
// into the next day only happens through Rollover.
func (c *Calendar) AdvanceTicks(n int) {
	c.Tick += n
	if c.Tick > DayLength {
		c.Tick = DayLength
	}
	if c.Tick < 0 {
		c.Tick = 0
	}
}

// Rollover advances the date by exactly one day and resets the tick counter.
func (c *Calendar) Rollover() {
	c.Date = c.Date.AddDate(0, 0, 1)
	c.Tick = 0
}

// Categorize classifies a date against the static calendar tables.
func (c *Calendar) Categorize(date time.Time) DayCategory {
	for _, f := range c.table.Festivals {
		if f.Matches(date) {
			return CategoryFestival
		}
	}
	if c.isHoliday(date) {
		return CategoryHoliday
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return CategoryWeekend
	}
	return CategoryWeekday
}

func (c *Calendar) isHoliday(date time.Time) bool {
	for _, h := range c.table.Holidays {
		if h.Matches(date) {
			return true
		}
	}
	for _, s := range c.table.HolidaySpans {
		if s.Contains(date) {
			return true
		}
	}
	return false
}

// IsExamDay reports whether the monthly exam falls on this date. Exams only
// happen on school days.
func (c *Calendar) IsExamDay(date time.Time) bool {
	return date.Day() == c.table.ExamDay && c.Categorize(date) == CategoryWeekday
}

// PastYearEnd reports whether the date has crossed the academic-year end.
func (c *Calendar) PastYearEnd(date time.Time) bool {
	return date.After(c.yearEnd)
}

// RecomputeProgress updates the year-progress percentage from the date
// relative to the academic-year bounds.
func (c *Calendar) RecomputeProgress() {
	total := c.yearEnd.Sub(c.yearStart).Hours()
	if total <= 0 {
		c.YearProgress = 0
		return
	}
	done := c.Date.Sub(c.yearStart).Hours()
	pct := done / total * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	c.YearProgress = pct
}

// EnterHolidayMode moves a dorm resident into the transient home stay.
// Re-entering while already in holiday mode is a no-op. Returns whether the
// accommodation actually changed.
func (c *Calendar) EnterHolidayMode() bool {
	if c.Accommodation != AccommodationDorm || c.HolidayMode {
		return false
	}
	c.HolidayMode = true
	return true
}

// ExitHolidayMode reverses the transient home stay on the first non-holiday
// day. Idempotent like EnterHolidayMode.
func (c *Calendar) ExitHolidayMode() bool {
	if !c.HolidayMode {
		return false
	}
	c.HolidayMode = false
	return true
}

// LivingAtHome reports whether the character currently sleeps at home, either
// permanently or through holiday mode.
func (c *Calendar) LivingAtHome() bool {
	return c.Accommodation == AccommodationHome || c.HolidayMode
}

// InCurfew reports whether an in-day tick falls inside the curfew window.
func InCurfew(tick int, w rules.CurfewTable) bool {
	return tick >= w.StartTick && tick < w.EndTick
}

// Export is the snapshot form of the calendar.
type Export struct {
	Date             time.Time     `json:"date"`
	Tick             int           `json:"tick"`
	SchoolYear       int           `json:"school_year"`
	YearProgress     float64       `json:"year_progress"`
	Accommodation    Accommodation `json:"accommodation"`
	HolidayMode      bool          `json:"holiday_mode"`
	CurfewViolations int           `json:"curfew_violations"`
	YearComplete     bool          `json:"year_complete"`
}

// Snapshot copies the calendar state.
func (c *Calendar) Snapshot() Export {
	return Export{
		Date:             c.Date,
		Tick:             c.Tick,
		SchoolYear:       c.SchoolYear,
		YearProgress:     c.YearProgress,
		Accommodation:    c.Accommodation,
		HolidayMode:      c.HolidayMode,
		CurfewViolations: c.CurfewViolations,
		YearComplete:     c.YearComplete,
	}
}

// Restore replaces the calendar state from a snapshot and re-anchors the
// academic-year bounds. Domain validation happens in the engine beforehand.
func (c *Calendar) Restore(e Export) {
	c.Date = truncate(e.Date)
	c.Tick = e.Tick
	c.SchoolYear = e.SchoolYear
	c.YearProgress = e.YearProgress
	c.Accommodation = e.Accommodation
	c.HolidayMode = e.HolidayMode
	c.CurfewViolations = e.CurfewViolations
	c.YearComplete = e.YearComplete
	c.bindYear()
	c.RecomputeProgress()
}
