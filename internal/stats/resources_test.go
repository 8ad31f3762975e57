package stats

import "testing"

func TestRestoreAndSpendStayInDomain(t *testing.T) {
	r := NewResources()

	deltas := [][3]int{
		{200, 200, 200},
		{-500, -500, -500},
		{37, -90, 15},
		{-1, 1, -1},
		{1000, 0, -1000},
	}
	for _, d := range deltas {
		r.Restore(d[0], d[1], d[2])
		checkDomain(t, r)
		r.Spend(d[0], d[1], d[2])
		checkDomain(t, r)
	}
}

func checkDomain(t *testing.T, r *Resources) {
	t.Helper()
	for name, v := range map[string]int{"energy": r.Energy, "hunger": r.Hunger, "stress": r.Stress} {
		if v < MinStat || v > MaxStat {
			t.Fatalf("%s = %d, outside [%d, %d]", name, v, MinStat, MaxStat)
		}
	}
}

func TestRecomputeHealthFormula(t *testing.T) {
	r := &Resources{Energy: 70, Hunger: 60, Stress: 30}

	if emergency := r.RecomputeHealth(0); emergency {
		t.Fatal("no emergency expected from a healthy profile")
	}
	if r.Health != 67 {
		t.Errorf("health = %d, want 67", r.Health)
	}

	// A mental-health penalty shifts the derived value directly.
	if emergency := r.RecomputeHealth(-10); emergency {
		t.Fatal("no emergency expected at health 57")
	}
	if r.Health != 57 {
		t.Errorf("health = %d, want 57", r.Health)
	}
}

func TestEmergencyRecoveryAtThreshold(t *testing.T) {
	// Running on empty: the derived value lands exactly on the emergency
	// threshold and the recovery values are forced.
	r := &Resources{Energy: 10, Hunger: 10, Stress: 90}

	emergency := r.RecomputeHealth(0)
	if !emergency {
		t.Fatal("expected emergency recovery to trigger at health 10")
	}
	if r.Health != 20 || r.Stress != 70 || r.Energy != 30 || r.Hunger != 30 {
		t.Errorf("post-emergency state = %+v, want health=20 stress=70 energy=30 hunger=30", r)
	}
}

func TestEmergencyRecoveryWithMentalPenalty(t *testing.T) {
	// Health 12 alone survives; a depression penalty pushes it under.
	r := &Resources{Energy: 10, Hunger: 10, Stress: 85}

	if emergency := r.RecomputeHealth(0); emergency {
		t.Fatal("health 12 is above the emergency threshold")
	}
	if r.Health != 12 {
		t.Fatalf("health = %d, want 12", r.Health)
	}
	r = &Resources{Energy: 10, Hunger: 10, Stress: 85}
	if emergency := r.RecomputeHealth(-10); !emergency {
		t.Fatal("expected the mental penalty to push health into emergency")
	}
	if r.Health != 20 {
		t.Errorf("health = %d, want 20 after recovery", r.Health)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	r := &Resources{Energy: 150, Hunger: 50, Stress: 50, Health: 50}
	if err := r.Validate(); err == nil {
		t.Error("expected validation error for energy 150")
	}
}
