package system

import (
	"errors"
	"testing"

	animation "github.com/milk9111/animsheet/component"
	"github.com/milk9111/animsheet/ecs"
	"github.com/milk9111/animsheet/ecs/component"
	"github.com/milk9111/animsheet/prefabs"
)

func newHeroAnimator(t *testing.T, w *ecs.World) (ecs.Entity, *component.Animator) {
	t.Helper()
	spec, err := prefabs.LoadEntityBuildSpec("hero.yaml")
	if err != nil {
		t.Fatal(err)
	}
	animSpec, _, err := spec.AnimatorSpec()
	if err != nil {
		t.Fatal(err)
	}
	src, _, err := prefabs.BuildFrameSource(animSpec, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := ecs.CreateEntity(w)
	sheet, policies, err := prefabs.BuildAnimationSheet(animSpec, src, ScriptResolver(w, e))
	if err != nil {
		t.Fatal(err)
	}
	anim := &component.Animator{Sheet: sheet, Policies: policies, Prefab: "hero.yaml"}
	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), anim); err != nil {
		t.Fatal(err)
	}
	return e, anim
}

func TestHotReloadRedefinesSequences(t *testing.T) {
	cases := []struct {
		name       string
		events     []string
		wantReload int
	}{
		{"prefab_path", []string{"/game/prefabs/hero.yaml"}, 1},
		{"relative_path", []string{"prefabs/hero.yaml"}, 1},
		{"script_change", []string{"/game/prefabs/scripts/die.tengo"}, 1},
		{"burst_collapses", []string{"prefabs/hero.yaml", "prefabs/hero.yaml"}, 1},
		{"other_prefab", []string{"prefabs/coin.yaml"}, 0},
		{"nothing", nil, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, anim := newHeroAnimator(t, w)
			if err := anim.Sheet.DefineSequence("walk", animation.Frames(0), 0); err != nil {
				t.Fatal(err)
			}

			events := make(chan string, len(c.events))
			for _, ev := range c.events {
				events <- ev
			}
			sys := NewHotReloadSystem(events, nil)
			sys.Update(w)

			if sys.Reloaded != c.wantReload {
				t.Fatalf("expected %d reloads, got %d", c.wantReload, sys.Reloaded)
			}
			walk, _ := anim.Sheet.Sequence("walk")
			wantLen := 1
			if c.wantReload > 0 {
				wantLen = 6
			}
			if walk.Len() != wantLen {
				t.Fatalf("expected walk with %d frames, got %d", wantLen, walk.Len())
			}
		})
	}
}

func TestHotReloadKeepsActiveSequencePolicy(t *testing.T) {
	w := ecs.NewWorld()
	_, anim := newHeroAnimator(t, w)
	if err := anim.Play("jump"); err != nil {
		t.Fatal(err)
	}

	events := make(chan string, 1)
	events <- "prefabs/hero.yaml"
	NewHotReloadSystem(events, nil).Update(w)

	if !anim.Sheet.IsActiveSequence("jump") || anim.Sheet.FrameIndex() != 0 {
		t.Fatalf("expected jump restarted, got %q frame %d", anim.Sheet.ActiveSequence(), anim.Sheet.FrameIndex())
	}
	if chain, ok := anim.Sheet.LoopPolicy().Chain(); !ok || chain != "walk" {
		t.Fatalf("expected jump to keep chaining to walk")
	}
}

func TestHotReloadDrainsErrorsAndClosedChannels(t *testing.T) {
	w := ecs.NewWorld()
	newHeroAnimator(t, w)

	events := make(chan string)
	errs := make(chan error, 1)
	errs <- errors.New("watch failed")
	close(events)

	sys := NewHotReloadSystem(events, errs)
	sys.Update(w)
	sys.Update(w)
	if sys.Reloaded != 0 {
		t.Fatalf("expected no reloads, got %d", sys.Reloaded)
	}
}
