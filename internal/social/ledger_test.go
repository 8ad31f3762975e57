package social

import (
	"testing"

	"github.com/avelinek/campusdays/internal/rules"
)

func newTestLedger() *Ledger {
	return NewLedger(rules.Default().RelationshipTiers)
}

func TestTierOfIsPure(t *testing.T) {
	l := newTestLedger()

	first := l.TierOf(45)
	l.Adjust("noise", 500)
	l.Adjust("noise", -200)
	second := l.TierOf(45)

	if first != second || first != "Friend" {
		t.Errorf("TierOf(45) = %q then %q, want Friend both times", first, second)
	}
}

func TestAdjustFloorsAtZero(t *testing.T) {
	l := newTestLedger()

	tier, _ := l.Adjust("mika", -50)
	if got := l.Score("mika"); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
	if tier != "Stranger" {
		t.Errorf("tier = %q, want Stranger", tier)
	}
}

func TestAdjustUnboundedAbove(t *testing.T) {
	l := newTestLedger()

	l.Adjust("mika", 1000)
	if got := l.Score("mika"); got != 1000 {
		t.Errorf("score = %d, want 1000 (no ceiling)", got)
	}
	if tier := l.TierOf(1000); tier != "Best Friend" {
		t.Errorf("tier = %q, want Best Friend", tier)
	}
}

func TestAdjustReportsTierChange(t *testing.T) {
	l := newTestLedger()

	tier, changed := l.Adjust("mika", 25)
	if !changed || tier != "Acquaintance" {
		t.Errorf("got (%q, %v), want (Acquaintance, true)", tier, changed)
	}

	tier, changed = l.Adjust("mika", 5)
	if changed {
		t.Errorf("tier change reported at score 30 (%q), still Acquaintance", tier)
	}

	_, changed = l.Adjust("mika", 15)
	if !changed {
		t.Error("expected tier change at score 45 (Friend)")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	l := newTestLedger()
	l.Adjust("mika", 42)
	l.Adjust("rin", 7)

	l2 := newTestLedger()
	l2.Import(l.Export())

	if l2.Score("mika") != 42 || l2.Score("rin") != 7 {
		t.Errorf("round trip lost scores: mika=%d rin=%d", l2.Score("mika"), l2.Score("rin"))
	}
}
