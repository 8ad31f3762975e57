package rng

import "testing"

func TestSeededIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("seeded sources diverged at draw %d", i)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	want := []float64{0.1, 0.9, 0.1, 0.9}
	for i, w := range want {
		if got := s.Float(); got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestSequenceEmptyDefaults(t *testing.T) {
	s := NewSequence()
	if got := s.Float(); got != 0.5 {
		t.Errorf("empty sequence = %v, want 0.5", got)
	}
}

func TestSequenceIntnStaysInRange(t *testing.T) {
	s := NewSequence(0.999999)
	if got := s.Intn(10); got != 9 {
		t.Errorf("Intn(10) = %d, want 9", got)
	}
}

func TestChance(t *testing.T) {
	if Chance(NewSequence(0.5), 0.5) {
		t.Error("0.5 must not pass a 0.5 threshold (strict less-than)")
	}
	if !Chance(NewSequence(0.49), 0.5) {
		t.Error("0.49 should pass a 0.5 threshold")
	}
}
