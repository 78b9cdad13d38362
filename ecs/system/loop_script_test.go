package system

import (
	"image"
	"testing"

	"github.com/milk9111/animsheet/atlas"
	animation "github.com/milk9111/animsheet/component"
	"github.com/milk9111/animsheet/ecs"
)

func newLoopSheet(t *testing.T) *animation.AnimationSheet {
	t.Helper()
	g, err := atlas.NewGrid(image.Rect(0, 0, 64, 16), 16, 16, atlas.GridOptions{})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	sheet, err := animation.NewAnimationSheet(g, 100)
	if err != nil {
		t.Fatalf("NewAnimationSheet: %v", err)
	}
	if err := sheet.DefineSequence("idle", animation.Frames(0), 0); err != nil {
		t.Fatalf("DefineSequence: %v", err)
	}
	return sheet
}

// playThrough ticks the four-frame default sequence past its last frame.
func playThrough(sheet *animation.AnimationSheet) bool {
	var changed bool
	for i := 0; i < 4; i++ {
		changed = sheet.Tick(100)
	}
	return changed
}

func TestLoopScriptDecisions(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		wantSeq    string
		wantIndex  int
		wantHeld   bool
		wantChange bool
	}{
		{"empty_continues", ``, "default", 0, false, true},
		{"hold_function", `sheet.hold()`, "default", 3, true, false},
		{"hold_result", `result = "hold"`, "default", 3, true, false},
		{"continue_result", `result = "continue"`, "default", 0, false, true},
		{"play", `sheet.play("idle")`, "idle", 0, false, true},
		{"play_unknown", `sheet.play("nope")`, "default", 0, false, true},
		{"unknown_result", `result = "explode"`, "default", 0, false, true},
		{"runtime_error", `x := sheet.frames / 0`, "default", 0, false, true},
		{"conditional", `if sheet.sequence == "default" && sheet.frames == 4 { sheet.hold() }`, "default", 3, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ls, err := CompileLoopScript(c.name, []byte(c.src))
			if err != nil {
				t.Fatalf("CompileLoopScript: %v", err)
			}
			sheet := newLoopSheet(t)
			if err := sheet.SetActiveSequence("default", animation.OnLoop(ls.Handler(nil, 0))); err != nil {
				t.Fatal(err)
			}

			if got := playThrough(sheet); got != c.wantChange {
				t.Fatalf("expected changed=%v, got %v", c.wantChange, got)
			}
			if sheet.ActiveSequence() != c.wantSeq {
				t.Fatalf("expected sequence %q, got %q", c.wantSeq, sheet.ActiveSequence())
			}
			if sheet.FrameIndex() != c.wantIndex {
				t.Fatalf("expected frame %d, got %d", c.wantIndex, sheet.FrameIndex())
			}
			if sheet.Held() != c.wantHeld {
				t.Fatalf("expected held=%v, got %v", c.wantHeld, sheet.Held())
			}
		})
	}
}

func TestLoopScriptCompileError(t *testing.T) {
	if _, err := CompileLoopScript("bad", []byte(`if {`)); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestLoopScriptCountsLoops(t *testing.T) {
	ls, err := CompileLoopScript("count", []byte(`
if is_undefined(state.seen) { state.seen = 0 }
state.seen = state.seen + 1
if sheet.loops >= 3 && state.seen >= 3 { sheet.hold() }
`))
	if err != nil {
		t.Fatalf("CompileLoopScript: %v", err)
	}
	sheet := newLoopSheet(t)
	if err := sheet.SetActiveSequence("default", animation.OnLoop(ls.Handler(nil, 0))); err != nil {
		t.Fatal(err)
	}

	for loop := 1; loop <= 2; loop++ {
		playThrough(sheet)
		if sheet.Held() {
			t.Fatalf("held after loop %d", loop)
		}
	}
	playThrough(sheet)
	if !sheet.Held() || sheet.FrameIndex() != 3 {
		t.Fatalf("expected hold on third loop, held=%v frame=%d", sheet.Held(), sheet.FrameIndex())
	}
}

func TestLoopScriptDestroy(t *testing.T) {
	ls, err := CompileLoopScript("die", []byte(`sheet.destroy()`))
	if err != nil {
		t.Fatalf("CompileLoopScript: %v", err)
	}
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	sheet := newLoopSheet(t)
	if err := sheet.SetActiveSequence("default", animation.OnLoop(ls.Handler(w, e))); err != nil {
		t.Fatal(err)
	}

	playThrough(sheet)
	if ecs.IsAlive(w, e) {
		t.Fatalf("expected entity destroyed")
	}
	if !sheet.Held() {
		t.Fatalf("destroy should hold the last frame")
	}
}
