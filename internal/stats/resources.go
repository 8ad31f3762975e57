// Package stats provides the player's bounded physical and psychological
// state: resources, mental health, and reputation. All values live in [0,100]
// and are re-clamped on every mutation.
package stats

// Stat bounds. Every numeric stat in this package lives in [0, MaxStat].
const (
	MinStat = 0
	MaxStat = 100
)

// ClampStat forces a value into the stat domain.
func ClampStat(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

// Resources holds the four physical stats. Health is derived: it is recomputed
// from the others via RecomputeHealth and is only settable directly by the
// emergency-recovery path.
type Resources struct {
	Energy int `json:"energy"`
	Hunger int `json:"hunger"` // satiety: 100 = full, 0 = starving
	Stress int `json:"stress"`
	Health int `json:"health"`
}

// NewResources returns a freshly rested starting state.
func NewResources() *Resources {
	r := &Resources{Energy: 70, Hunger: 60, Stress: 30}
	r.RecomputeHealth(0)
	return r
}

// Restore applies signed deltas to energy, hunger, and stress, re-clamping
// each to the stat domain. Out-of-range inputs are expected from content
// tables and are absorbed silently.
func (r *Resources) Restore(energy, hunger, stress int) {
	r.Energy = ClampStat(r.Energy + energy)
	r.Hunger = ClampStat(r.Hunger + hunger)
	r.Stress = ClampStat(r.Stress + stress)
}

// Spend is Restore with the signs flipped: positive amounts drain energy and
// hunger and raise stress.
func (r *Resources) Spend(energy, hunger, stress int) {
	r.Restore(-energy, -hunger, stress)
}

// Emergency recovery values forced when derived health bottoms out.
const (
	emergencyHealth = 20
	emergencyStress = 70
	emergencyEnergy = 30
	emergencyHunger = 30
)

// EmergencyTickPenalty is the in-day time cost of a collapse. The caller owns
// the relocation and the tick advance; the model only declares them.
const EmergencyTickPenalty = 20

// Derived health at or below this triggers emergency recovery.
const emergencyThreshold = 10

// RecomputeHealth derives health from the other three stats plus a
// mental-health penalty. If the derived value falls to the emergency threshold
// the recovery values are forced and true is returned: the caller must
// relocate the character and advance time by EmergencyTickPenalty.
func (r *Resources) RecomputeHealth(mentalPenalty int) (emergency bool) {
	h := (4*(MaxStat-r.Stress) + 3*r.Hunger + 3*r.Energy) / 10
	h += mentalPenalty
	if h <= emergencyThreshold {
		r.Health = emergencyHealth
		r.Stress = emergencyStress
		r.Energy = emergencyEnergy
		r.Hunger = emergencyHunger
		return true
	}
	r.Health = ClampStat(h)
	return false
}

// Validate reports the first stat outside its domain, for snapshot loading.
func (r *Resources) Validate() error {
	return validateRange(map[string]int{
		"energy": r.Energy,
		"hunger": r.Hunger,
		"stress": r.Stress,
		"health": r.Health,
	})
}
