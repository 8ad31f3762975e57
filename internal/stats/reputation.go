package stats

import "fmt"

// Reputation tracks standing with the two campus audiences rumors can reach.
type Reputation struct {
	Students int `json:"students"`
	Teachers int `json:"teachers"`
}

// NewReputation starts both audiences at a neutral midpoint.
func NewReputation() *Reputation {
	return &Reputation{Students: 50, Teachers: 50}
}

// Adjust applies signed deltas, clamping both values to the stat domain.
func (r *Reputation) Adjust(students, teachers int) {
	r.Students = ClampStat(r.Students + students)
	r.Teachers = ClampStat(r.Teachers + teachers)
}

// Validate reports the first field outside its domain, for snapshot loading.
func (r *Reputation) Validate() error {
	return validateRange(map[string]int{
		"students": r.Students,
		"teachers": r.Teachers,
	})
}

func validateRange(fields map[string]int) error {
	for name, v := range fields {
		if v < MinStat || v > MaxStat {
			return fmt.Errorf("%s %d outside [%d, %d]", name, v, MinStat, MaxStat)
		}
	}
	return nil
}
