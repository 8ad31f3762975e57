package ambient

import (
	"testing"
	"time"
)

func TestDayValueDeterministic(t *testing.T) {
	a := NewField(42)
	b := NewField(42)
	date := time.Date(2026, time.April, 7, 0, 0, 0, 0, time.UTC)

	if a.DayValue(date) != b.DayValue(date) {
		t.Error("same seed and date should yield the same atmosphere")
	}
}

func TestStressShiftBounded(t *testing.T) {
	f := NewField(7)
	start := time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 365; i++ {
		d := start.AddDate(0, 0, i)
		if s := f.StressShift(d); s < -3 || s > 3 {
			t.Fatalf("shift on %s = %d, outside [-3, 3]", d.Format("2006-01-02"), s)
		}
		if desc := f.Description(d); desc == "" {
			t.Fatalf("empty description on %s", d.Format("2006-01-02"))
		}
	}
}
