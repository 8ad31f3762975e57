// Package rng provides the injectable randomness source behind every
// probabilistic roll in the engine. Injecting a Source instead of reading a
// package-global generator keeps all stochastic behavior reproducible.
package rng

import "math/rand"

// Source yields uniform random values. The engine never calls math/rand
// directly; everything goes through a Source so tests can script outcomes.
type Source interface {
	Float() float64 // uniform in [0, 1)
	Intn(n int) int // uniform in [0, n)
}

// Chance returns true with probability p against the given source.
func Chance(src Source, p float64) bool {
	return src.Float() < p
}

// Seeded is the production Source, backed by a seeded PRNG.
type Seeded struct {
	r *rand.Rand
}

// NewSeeded creates a deterministic Source from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) Float() float64 { return s.r.Float64() }
func (s *Seeded) Intn(n int) int { return s.r.Intn(n) }

// Sequence replays a fixed list of values, cycling when exhausted.
// Used in tests to force specific probability branches.
type Sequence struct {
	vals []float64
	i    int
}

// NewSequence creates a Source that cycles through the given values.
// With no values it always returns 0.5.
func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: vals}
}

func (s *Sequence) Float() float64 {
	if len(s.vals) == 0 {
		return 0.5
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *Sequence) Intn(n int) int {
	v := int(s.Float() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
