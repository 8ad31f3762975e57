// Package social models the player's bonds: the relationship ledger, the
// romance state machine, and the ex-partner automaton.
package social

import (
	"sort"

	"github.com/avelinek/campusdays/internal/rules"
)

// Ledger maps character identifiers to relationship point scores. Scores are
// floored at zero and unbounded above; the closeness tier is always derived
// from the score through the threshold table, never stored.
type Ledger struct {
	scores map[string]int
	tiers  []rules.TierThreshold
}

// NewLedger creates an empty ledger over the given ascending tier table.
func NewLedger(tiers []rules.TierThreshold) *Ledger {
	return &Ledger{
		scores: make(map[string]int),
		tiers:  tiers,
	}
}

// Score returns the current score for a character (zero if never met).
func (l *Ledger) Score(id string) int {
	return l.scores[id]
}

// TierOf derives the closeness label for a score. Pure: depends on the score
// and the threshold table alone.
func (l *Ledger) TierOf(score int) string {
	name := l.tiers[0].Name
	for _, t := range l.tiers {
		if score >= t.Min {
			name = t.Name
		}
	}
	return name
}

// Adjust mutates a character's score by delta, creating the entry on first
// contact. The score is floored at zero. Returns the new tier and whether it
// changed, for caller-side notification.
func (l *Ledger) Adjust(id string, delta int) (tier string, changed bool) {
	old := l.scores[id]
	next := old + delta
	if next < 0 {
		next = 0
	}
	l.scores[id] = next

	tier = l.TierOf(next)
	return tier, tier != l.TierOf(old)
}

// Names returns all known character identifiers in sorted order.
func (l *Ledger) Names() []string {
	names := make([]string, 0, len(l.scores))
	for id := range l.scores {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// Export copies the score map for snapshotting.
func (l *Ledger) Export() map[string]int {
	out := make(map[string]int, len(l.scores))
	for id, s := range l.scores {
		out[id] = s
	}
	return out
}

// Import replaces the score map from a snapshot.
func (l *Ledger) Import(scores map[string]int) {
	l.scores = make(map[string]int, len(scores))
	for id, s := range scores {
		if s < 0 {
			s = 0
		}
		l.scores[id] = s
	}
}
