package system

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	animation "github.com/milk9111/animsheet/component"
	"github.com/milk9111/animsheet/ecs"
	"github.com/milk9111/animsheet/prefabs"
)

// DefaultScriptTimeout bounds a single loop script run.
const DefaultScriptTimeout = 50 * time.Millisecond

// LoopScript is a compiled tengo loop handler. Each run sees a `sheet` map
// with the active sequence, loop count and frame count, plus functions:
//
//	sheet.hold()       pin the last frame
//	sheet.play(name)   switch to another sequence
//	sheet.destroy()    remove the owning entity (implies hold)
//
// A script may also assign `result` to "continue", "hold" or "destroy".
// A `state` map persists between runs of the same handler.
type LoopScript struct {
	Path    string
	Timeout time.Duration

	compiled *tengo.Compiled
}

// LoadLoopScript reads a script through prefabs.LoadScript and compiles it.
func LoadLoopScript(path string) (*LoopScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("loop script %s: %w", path, err)
	}
	return CompileLoopScript(path, src)
}

// CompileLoopScript compiles src as a loop handler.
func CompileLoopScript(path string, src []byte) (*LoopScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("sheet", map[string]any{})
	_ = script.Add("state", map[string]any{})
	_ = script.Add("result", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("loop script %s: %w", path, err)
	}
	return &LoopScript{Path: path, Timeout: DefaultScriptTimeout, compiled: compiled}, nil
}

type loopDecision struct {
	hold    bool
	destroy bool
	next    string
}

type loopRun struct {
	script   *LoopScript
	compiled *tengo.Compiled
	state    *tengo.Map
	loops    int
}

// Handler returns a loop callback bound to entity e. Each handler keeps its
// own script state. A nil world disables destroy().
func (s *LoopScript) Handler(w *ecs.World, e ecs.Entity) animation.LoopFunc {
	run := &loopRun{
		script:   s,
		compiled: s.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	return func(sheet *animation.AnimationSheet) animation.Continuation {
		run.loops++
		d, err := run.exec(sheet)
		if err != nil {
			log.Printf("[LoopScript] entity=%v %s: %v", e, s.Path, err)
			return animation.Continue
		}

		if d.destroy {
			if w != nil {
				ecs.DestroyEntity(w, e)
			}
			return animation.Hold
		}
		if d.hold {
			return animation.Hold
		}
		if d.next != "" {
			if err := sheet.SetActiveSequence(d.next); err != nil {
				log.Printf("[LoopScript] entity=%v %s: play: %v", e, s.Path, err)
			}
		}
		return animation.Continue
	}
}

func (r *loopRun) exec(sheet *animation.AnimationSheet) (loopDecision, error) {
	var d loopDecision
	seq, _ := sheet.Sequence(sheet.ActiveSequence())

	values := map[string]tengo.Object{
		"sequence": &tengo.String{Value: sheet.ActiveSequence()},
		"loops":    &tengo.Int{Value: int64(r.loops)},
		"frames":   &tengo.Int{Value: int64(seq.Len())},
	}
	values["hold"] = &tengo.UserFunction{Name: "hold", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.hold = true
		return tengo.TrueValue, nil
	}}
	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.destroy = true
		return tengo.TrueValue, nil
	}}
	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		name = strings.TrimSpace(name)
		if name == "" {
			return tengo.FalseValue, nil
		}
		d.next = name
		return tengo.TrueValue, nil
	}}

	if err := r.compiled.Set("sheet", &tengo.ImmutableMap{Value: values}); err != nil {
		return d, err
	}
	if err := r.compiled.Set("state", r.state); err != nil {
		return d, err
	}
	if err := r.compiled.Set("result", ""); err != nil {
		return d, err
	}

	timeout := r.script.Timeout
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := r.compiled.RunContext(ctx); err != nil {
		return d, err
	}

	switch result := strings.ToLower(r.compiled.Get("result").String()); result {
	case "", "continue":
	case "hold":
		d.hold = true
	case "destroy":
		d.destroy = true
	default:
		return d, fmt.Errorf("unknown result %q", result)
	}
	return d, nil
}

// ScriptResolver compiles on_loop scripts for the animator on entity e.
func ScriptResolver(w *ecs.World, e ecs.Entity) prefabs.LoopResolver {
	return func(sequence, path string) (animation.LoopFunc, error) {
		ls, err := LoadLoopScript(path)
		if err != nil {
			return nil, err
		}
		return ls.Handler(w, e), nil
	}
}
