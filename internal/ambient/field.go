// Package ambient derives a deterministic daily atmosphere from simplex
// noise. The atmosphere is cosmetic weather plus a small stress modifier
// applied during the overnight restore.
package ambient

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field samples a 1-D noise walk over calendar days.
type Field struct {
	noise opensimplex.Noise
}

// NewField creates a field from a world seed.
func NewField(seed int64) *Field {
	return &Field{noise: opensimplex.New(seed)}
}

// DayValue returns the atmosphere for a date, in [-1, 1]. Positive is bright,
// negative is gloomy. The same date always yields the same value.
func (f *Field) DayValue(date time.Time) float64 {
	day := float64(date.Unix() / 86400)
	return f.noise.Eval2(day*0.17, 0.5)
}

// StressShift maps the day's atmosphere to a signed overnight stress
// adjustment in [-3, 3]: gloom adds stress, bright days relieve it.
func (f *Field) StressShift(date time.Time) int {
	return -int(f.DayValue(date) * 3)
}

// Description buckets the atmosphere into a short weather label.
func (f *Field) Description(date time.Time) string {
	v := f.DayValue(date)
	switch {
	case v > 0.4:
		return "clear"
	case v > -0.2:
		return "cloudy"
	case v > -0.6:
		return "overcast"
	default:
		return "stormy"
	}
}
