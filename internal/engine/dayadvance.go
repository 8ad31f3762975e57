package engine

import (
	"log/slog"
	"time"

	"github.com/avelinek/campusdays/internal/calendar"
	"github.com/avelinek/campusdays/internal/rng"
)

// DaySummary reports what one day-advance produced.
type DaySummary struct {
	Date            time.Time            `json:"date"`
	Category        calendar.DayCategory `json:"category"`
	Atmosphere      string               `json:"atmosphere"`
	Events          []Event              `json:"events,omitempty"`
	YearProgress    float64              `json:"year_progress"`
	Happiness       int                  `json:"happiness"`
	Emergency       bool                 `json:"emergency,omitempty"`
	CurfewViolation bool                 `json:"curfew_violation,omitempty"`
	YearComplete    bool                 `json:"year_complete,omitempty"`
}

func (s *DaySummary) add(events ...Event) {
	s.Events = append(s.Events, events...)
}

// AdvanceDay rolls the world over to the next calendar day and runs the full
// cascade in fixed order: overnight restoration, date classification, mental
// health, rumors, ex-partner events, year progress, accommodation, school-day
// processing, curfew. Later steps depend on values the earlier steps produce.
//
// The cascade is atomic from the caller's perspective: every precondition is
// checked before the first mutation, and no step after that point can fail.
// Once the academic year is complete the call is rejected until an external
// year-transition routine resets the calendar.
func (w *World) AdvanceDay() (DaySummary, error) {
	if w.Calendar.YearComplete {
		return DaySummary{}, ErrYearComplete
	}

	// Curfew is judged against the in-day time held when the day ended, not
	// the reset counter.
	curfewTick := w.Calendar.Tick

	// Crossing the year end still advances the date and resets the ticks,
	// but runs none of the cascade.
	next := w.Calendar.Date.AddDate(0, 0, 1)
	if w.Calendar.PastYearEnd(next) {
		w.Calendar.Rollover()
		w.Calendar.YearComplete = true
		w.Calendar.RecomputeProgress()
		sum := DaySummary{
			Date:         w.Calendar.Date,
			Category:     w.Calendar.Categorize(w.Calendar.Date),
			Atmosphere:   w.Atmosphere.Description(w.Calendar.Date),
			YearProgress: w.Calendar.YearProgress,
			Happiness:    w.Mental.Happiness(),
			YearComplete: true,
		}
		sum.add(w.emit("calendar", "the school year is complete"))
		slog.Info("school year complete", "date", sum.Date.Format("2006-01-02"), "year", w.Calendar.SchoolYear)
		w.LastDay = &sum
		return sum, nil
	}

	w.Calendar.Rollover()
	today := w.Calendar.Date
	sum := DaySummary{Date: today, Atmosphere: w.Atmosphere.Description(today)}

	// 1. Overnight restoration, shaded by the day's atmosphere.
	w.Resources.Restore(w.tables.Overnight.EnergyGain, -w.tables.Overnight.HungerDrop, w.Atmosphere.StressShift(today))

	// 2. Classify the new date against the static calendar tables.
	sum.Category = w.Calendar.Categorize(today)

	// 3. Mental health daily update, then re-derive physical health.
	w.Mental.DailyUpdate()
	if w.recomputeHealth() {
		sum.Emergency = true
	}

	// 4. Rumor mill.
	for _, c := range w.Rumors.DailyUpdate(today, w.PlayerName) {
		w.Reputation.Adjust(c.Students, c.Teachers)
		sum.add(w.emit("rumor", "a "+c.Kind.String()+" rumor about you has spread"))
	}

	// 5. Ex-partner daily events, rolled independently per ex.
	for _, rec := range w.Exes.All() {
		out, err := w.Exes.RollDaily(rec.Name)
		if err != nil {
			continue
		}
		sum.add(w.applyExOutcome(rec.Name, out)...)
	}

	// 6. Year progress.
	w.Calendar.RecomputeProgress()
	sum.YearProgress = w.Calendar.YearProgress

	// 7. Accommodation transition, idempotent in both directions.
	if sum.Category == calendar.CategoryHoliday {
		if w.Calendar.EnterHolidayMode() {
			sum.add(w.emit("calendar", "moved back home for the holidays"))
		}
	} else if w.Calendar.ExitHolidayMode() {
		sum.add(w.emit("calendar", "returned to the dorm"))
	}

	// 8. School-day processing: exams, homework sanctions, weekly events.
	if sum.Category == calendar.CategoryWeekday {
		if w.Calendar.IsExamDay(today) {
			w.Resources.Restore(0, 0, 10)
			sum.add(w.emit("school", "monthly exam day"))
		}
		if !w.HomeworkDone {
			w.Reputation.Adjust(0, -3)
			w.Resources.Restore(0, 0, 5)
			sum.add(w.emit("school", "scolded over unfinished homework"))
		}
		for _, we := range w.tables.WeeklyEvents {
			if rng.Chance(w.src, we.Chance) {
				sum.add(w.emit("school", we.Name))
			}
		}
	}
	w.HomeworkDone = false

	// 9. Curfew enforcement, scaled by parental strictness.
	if w.Calendar.LivingAtHome() && calendar.InCurfew(curfewTick, w.tables.Curfew) && !isHomeLocation(w.Location) {
		penalty := int(float64(w.tables.Curfew.BasePenalty) * w.tables.Strictness(w.Personality))
		w.Location = "home"
		w.Calendar.CurfewViolations++
		w.Resources.Restore(0, 0, penalty)
		w.Ledger.Adjust("parents", -penalty)
		sum.CurfewViolation = true
		sum.add(w.emit("curfew", "caught out past curfew"))
	}

	sum.Happiness = w.Mental.Happiness()

	slog.Info("day advanced",
		"date", today.Format("2006-01-02"),
		"category", sum.Category.String(),
		"atmosphere", sum.Atmosphere,
		"energy", w.Resources.Energy,
		"stress", w.Resources.Stress,
		"health", w.Resources.Health,
		"happiness", sum.Happiness,
		"events", len(sum.Events),
	)

	w.LastDay = &sum
	return sum, nil
}
