package system

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/animsheet/ecs"
	"github.com/milk9111/animsheet/ecs/component"
	"github.com/milk9111/animsheet/prefabs"
)

// HotReloadSystem re-applies prefab sequences to live animators when their
// prefab or one of the loop scripts changes on disk. Frame sources are kept;
// only sequences, loop policies and frame events are rebuilt.
type HotReloadSystem struct {
	events <-chan string
	errs   <-chan error

	// Reloaded counts prefab applications, for the viewer HUD.
	Reloaded int
}

func NewHotReloadSystem(events <-chan string, errs <-chan error) *HotReloadSystem {
	return &HotReloadSystem{events: events, errs: errs}
}

// NewHotReloadSystemFromWatcher drains w.
func NewHotReloadSystemFromWatcher(w *prefabs.Watcher) *HotReloadSystem {
	if w == nil {
		return &HotReloadSystem{}
	}
	return NewHotReloadSystem(w.Events, w.Errors)
}

func (h *HotReloadSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}

	changed := make(map[string]bool)
	scripts := false
drain:
	for {
		select {
		case path, ok := <-h.events:
			if !ok {
				h.events = nil
				break drain
			}
			if strings.EqualFold(filepath.Ext(path), ".tengo") {
				scripts = true
				continue
			}
			changed[prefabs.CleanPath(path)] = true
		case err, ok := <-h.errs:
			if !ok {
				h.errs = nil
				continue
			}
			log.Printf("[HotReload] watcher: %v", err)
		default:
			break drain
		}
	}
	if len(changed) == 0 && !scripts {
		return
	}

	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		if anim.Sheet == nil || anim.Prefab == "" {
			return
		}
		if !scripts && !changed[prefabs.CleanPath(anim.Prefab)] {
			return
		}
		if err := ReloadAnimator(w, e, anim); err != nil {
			log.Printf("[HotReload] %s: %v", anim.Prefab, err)
			return
		}
		h.Reloaded++
		log.Printf("[HotReload] reloaded %s on entity %v", anim.Prefab, e)
	})
}

// ReloadAnimator rereads anim's prefab and redefines its sequences in place.
// The active sequence restarts with its new loop policy.
func ReloadAnimator(w *ecs.World, e ecs.Entity, anim *component.Animator) error {
	spec, err := prefabs.LoadEntityBuildSpec(anim.Prefab)
	if err != nil {
		return err
	}
	animSpec, ok, err := spec.AnimatorSpec()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	events, err := prefabs.BuildEventMap(animSpec)
	if err != nil {
		return err
	}
	policies, err := prefabs.ApplySequences(anim.Sheet, animSpec, ScriptResolver(w, e))
	if err != nil {
		return err
	}

	anim.Policies = policies
	BindEvents(anim, events)
	if animSpec.Speed > 0 {
		anim.Speed = animSpec.Speed
	}
	return anim.Play(anim.Sheet.ActiveSequence())
}
