package component

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSnapshotRestore(t *testing.T) {
	s := newSheet(t, 6)
	mustDefine(t, s, "walk", Frames(0, 1, 2, 3), 100)
	mustActivate(t, s, "walk")
	s.Tick(100)
	s.Tick(100)
	s.Tick(30)
	s.Pause()

	st := s.Snapshot()
	want := SheetState{Sequence: "walk", Index: 2, RemainingMs: 70, Paused: true}
	if st != want {
		t.Fatalf("expected %+v, got %+v", want, st)
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded SheetState
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	other := newSheet(t, 6)
	mustDefine(t, other, "walk", Frames(0, 1, 2, 3), 100)
	if err := other.Restore(decoded); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if other.Snapshot() != want {
		t.Fatalf("restored state %+v, want %+v", other.Snapshot(), want)
	}
	if other.Frame() != s.Frame() {
		t.Fatalf("restored geometry %v, want %v", other.Frame(), s.Frame())
	}

	other.Resume()
	if !other.Tick(70) || other.FrameIndex() != 3 {
		t.Fatalf("restored countdown not honoured, index %d", other.FrameIndex())
	}
}

func TestRestoreUnknownSequence(t *testing.T) {
	s := newSheet(t, 2)
	err := s.Restore(SheetState{Sequence: "gone"})
	if !errors.Is(err, ErrUnknownSequence) {
		t.Fatalf("expected ErrUnknownSequence, got %v", err)
	}
	if !s.IsActiveSequence(DefaultSequence) {
		t.Fatalf("failed restore must not change the active sequence")
	}
}

func TestRestoreKeepsPolicyForActiveSequence(t *testing.T) {
	s := newSheet(t, 3)
	mustDefine(t, s, "once", Frames(0, 1), 100)
	mustActivate(t, s, "once", OnLoop(func(*AnimationSheet) Continuation { return Hold }))

	if err := s.Restore(SheetState{Sequence: "once", Index: 1, RemainingMs: 10}); err != nil {
		t.Fatal(err)
	}
	if s.LoopPolicy().IsZero() {
		t.Fatalf("expected policy to survive restore of the same sequence")
	}
	s.Tick(10)
	if !s.Held() {
		t.Fatalf("expected hold after wrap")
	}

	if err := s.Restore(SheetState{Sequence: DefaultSequence}); err != nil {
		t.Fatal(err)
	}
	if !s.LoopPolicy().IsZero() || s.Held() {
		t.Fatalf("switching sequences on restore must drop policy and hold")
	}
}

func TestRestoreWithPolicyChainsOnWrap(t *testing.T) {
	saved := newSheet(t, 4)
	mustDefine(t, saved, "walk", Frames(0, 1), 100)
	mustDefine(t, saved, "jump", Frames(2, 3), 100)
	mustActivate(t, saved, "jump", ChainTo("walk"))
	saved.Tick(100)
	st := saved.Snapshot()

	s := newSheet(t, 4)
	mustDefine(t, s, "walk", Frames(0, 1), 100)
	mustDefine(t, s, "jump", Frames(2, 3), 100)
	mustActivate(t, s, "walk")
	if err := s.Restore(st, ChainTo("walk")); err != nil {
		t.Fatal(err)
	}
	if chain, ok := s.LoopPolicy().Chain(); !ok || chain != "walk" {
		t.Fatalf("expected restored jump to chain to walk, got %q %v", chain, ok)
	}

	s.Tick(100)
	if !s.IsActiveSequence("walk") || s.FrameIndex() != 0 {
		t.Fatalf("expected chain to walk on wrap, got %s[%d]", s.ActiveSequence(), s.FrameIndex())
	}
}
