package engine

import (
	"errors"
	"testing"

	"github.com/avelinek/campusdays/internal/rng"
	"github.com/avelinek/campusdays/internal/rumor"
)

func populatedWorld(t *testing.T) *World {
	w := newTestWorld(t, rng.NewSequence(0.99), Options{Wallet: 8000})
	w.AdjustRelationship("mika", 42)
	w.StartCourtship("rin")
	w.GrantRomancePoints("rin", 30)
	w.CreateRumor("seen at the arcade", rumor.TypeSocial, "", "mika")
	w.MoveTo("library")
	w.SetHomework(true)
	return w
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	w := populatedWorld(t)
	snap := w.Snapshot()

	w2 := newTestWorld(t, rng.NewSequence(0.99), Options{})
	if err := w2.Restore(snap); err != nil {
		t.Fatal(err)
	}

	if w2.Wallet != 8000 || w2.Location != "library" || !w2.HomeworkDone {
		t.Errorf("scalar state lost: wallet=%d location=%q homework=%v",
			w2.Wallet, w2.Location, w2.HomeworkDone)
	}
	if w2.Ledger.Score("mika") != 42 {
		t.Errorf("relationship score = %d, want 42", w2.Ledger.Score("mika"))
	}
	active := w2.Romance.Active()
	if active == nil || active.ID != "rin" || active.Stage != 2 {
		t.Errorf("active partner = %+v, want rin at stage 2", active)
	}
	if w2.Rumors.Len() != 1 {
		t.Errorf("rumors = %d, want 1", w2.Rumors.Len())
	}
	if !w2.Calendar.Date.Equal(w.Calendar.Date) {
		t.Errorf("date = %v, want %v", w2.Calendar.Date, w.Calendar.Date)
	}
}

func TestRestoreRejectsCorruptResources(t *testing.T) {
	w := populatedWorld(t)
	snap := w.Snapshot()
	snap.Resources.Energy = 150

	w2 := newTestWorld(t, rng.NewSequence(0.99), Options{})
	err := w2.Restore(snap)
	if !errors.Is(err, ErrCorruptSave) {
		t.Fatalf("err = %v, want ErrCorruptSave", err)
	}
	// Rejection must happen before the first assignment.
	if w2.Wallet != 0 || w2.Location != "dorm" {
		t.Error("failed restore mutated the live world")
	}
}

func TestRestoreRejectsCorruptCalendar(t *testing.T) {
	w := populatedWorld(t)
	snap := w.Snapshot()
	snap.Calendar.Tick = 999

	w2 := newTestWorld(t, rng.NewSequence(0.99), Options{})
	if err := w2.Restore(snap); !errors.Is(err, ErrCorruptSave) {
		t.Errorf("err = %v, want ErrCorruptSave", err)
	}
}

func TestRestoreRejectsPhantomHarem(t *testing.T) {
	w := populatedWorld(t)
	snap := w.Snapshot()
	snap.Romance.Partners = append(snap.Romance.Partners, snap.Romance.Partners[0])
	snap.Romance.Partners[1].ID = "saki"
	snap.Romance.Harem = false

	w2 := newTestWorld(t, rng.NewSequence(0.99), Options{})
	if err := w2.Restore(snap); !errors.Is(err, ErrCorruptSave) {
		t.Errorf("err = %v, want ErrCorruptSave", err)
	}
}

func TestRestoreRejectsDanglingActivePartner(t *testing.T) {
	w := populatedWorld(t)
	snap := w.Snapshot()
	snap.Romance.Active = "ghost"

	w2 := newTestWorld(t, rng.NewSequence(0.99), Options{})
	if err := w2.Restore(snap); !errors.Is(err, ErrCorruptSave) {
		t.Errorf("err = %v, want ErrCorruptSave", err)
	}
}
