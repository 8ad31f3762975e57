package stats

import (
	"testing"
	"time"
)

func TestRecordBullying(t *testing.T) {
	m := NewMentalHealth()

	stress := m.RecordBullying(3)
	if stress != 14 {
		t.Errorf("stress delta = %d, want 14", stress)
	}
	if m.BullyingIncidents != 1 {
		t.Errorf("incidents = %d, want 1", m.BullyingIncidents)
	}
	if m.Depression != 26 {
		t.Errorf("depression = %d, want 26", m.Depression)
	}
	if m.Anxiety != 34 {
		t.Errorf("anxiety = %d, want 34", m.Anxiety)
	}
	if m.SelfEsteem != 57 {
		t.Errorf("self esteem = %d, want 57", m.SelfEsteem)
	}
}

func TestRecordBullyingClampsSeverity(t *testing.T) {
	m := NewMentalHealth()
	if got := m.RecordBullying(99); got != 20 {
		t.Errorf("stress delta = %d, want 20 (severity clamped to 5)", got)
	}
}

func TestDailyUpdateSupportRelief(t *testing.T) {
	m := NewMentalHealth() // depression 20, support 40

	m.DailyUpdate()
	if m.Depression != 16 {
		t.Errorf("depression = %d, want 16 (relief of 4)", m.Depression)
	}
}

func TestDailyUpdateBreakupWeight(t *testing.T) {
	m := NewMentalHealth()
	m.RecordBreakup()

	m.DailyUpdate()
	// +5 from the breakup, -4 support relief.
	if m.Depression != 21 {
		t.Errorf("depression = %d, want 21", m.Depression)
	}
	if m.SelfEsteem != 53 {
		t.Errorf("self esteem = %d, want 53", m.SelfEsteem)
	}
}

func TestTherapyFifthSessionWidensSupport(t *testing.T) {
	m := NewMentalHealth()
	day := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		m.ApplyTherapy(day.AddDate(0, 0, i))
	}
	if m.TherapySessions != 5 {
		t.Fatalf("sessions = %d, want 5", m.TherapySessions)
	}
	if m.SupportNetwork != 50 {
		t.Errorf("support network = %d, want 50", m.SupportNetwork)
	}
	if m.Depression != 0 {
		t.Errorf("depression = %d, want 0 (floored)", m.Depression)
	}
	if !m.LastTherapy.Equal(day.AddDate(0, 0, 4)) {
		t.Errorf("last therapy = %v", m.LastTherapy)
	}

	// A sixth session must not widen support again.
	m.ApplyTherapy(day.AddDate(0, 0, 5))
	if m.SupportNetwork != 50 {
		t.Errorf("support network = %d after sixth session, want 50", m.SupportNetwork)
	}
}

func TestHappinessDerived(t *testing.T) {
	m := NewMentalHealth() // 80 - 20/2 - 25/3 + 60/4
	if got := m.Happiness(); got != 77 {
		t.Errorf("happiness = %d, want 77", got)
	}

	m.Depression = 100
	m.Anxiety = 100
	m.SelfEsteem = 0
	if got := m.Happiness(); got != 0 {
		t.Errorf("happiness = %d, want 0 (clamped)", got)
	}
}

func TestHealthPenaltyTiers(t *testing.T) {
	m := NewMentalHealth()
	if got := m.HealthPenalty(); got != 0 {
		t.Errorf("penalty = %d, want 0", got)
	}
	m.Anxiety = 70
	if got := m.HealthPenalty(); got != -5 {
		t.Errorf("penalty = %d, want -5", got)
	}
	m.Depression = 60
	if got := m.HealthPenalty(); got != -10 {
		t.Errorf("penalty = %d, want -10 (depression dominates)", got)
	}
}
