package prefabs

import (
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/animsheet/assets"
	"github.com/milk9111/animsheet/atlas"
	animation "github.com/milk9111/animsheet/component"
)

// LoopResolver turns the script named by an on_loop entry into a callback.
type LoopResolver func(sequence, path string) (animation.LoopFunc, error)

// ImageBounds reports the pixel bounds of a sheet image.
type ImageBounds func(path string) (image.Rectangle, error)

var (
	ErrNoFrameSource  = errors.New("prefabs: animator needs an atlas or a grid")
	ErrTwoFrameSource = errors.New("prefabs: animator has both an atlas and a grid")
)

// BuildFrameSource builds the atlas or grid described by spec and returns it
// with the path of the image it indexes into.
func BuildFrameSource(spec AnimatorComponentSpec, bounds ImageBounds) (animation.FrameSource, string, error) {
	switch {
	case spec.Atlas != "" && spec.Grid != nil:
		return nil, "", ErrTwoFrameSource
	case spec.Atlas != "":
		data, err := assets.LoadFile(spec.Atlas)
		if err != nil {
			return nil, "", fmt.Errorf("prefabs: load atlas %s: %w", spec.Atlas, err)
		}
		a, err := atlas.LoadTextureAtlas(data)
		if err != nil {
			return nil, "", fmt.Errorf("prefabs: atlas %s: %w", spec.Atlas, err)
		}
		return a, a.Meta.Image, nil
	case spec.Grid != nil:
		g := spec.Grid
		if g.Image == "" {
			return nil, "", fmt.Errorf("prefabs: grid needs an image")
		}
		if bounds == nil {
			return nil, "", fmt.Errorf("prefabs: grid %s: no way to size the image", g.Image)
		}
		r, err := bounds(g.Image)
		if err != nil {
			return nil, "", fmt.Errorf("prefabs: grid %s: %w", g.Image, err)
		}
		grid, err := atlas.NewGrid(r, g.FrameW, g.FrameH, atlas.GridOptions{
			Margin:  g.Margin,
			Spacing: g.Spacing,
			Count:   g.Count,
		})
		if err != nil {
			return nil, "", fmt.Errorf("prefabs: grid %s: %w", g.Image, err)
		}
		return grid, g.Image, nil
	default:
		return nil, "", ErrNoFrameSource
	}
}

// AssetBounds sizes images from the embedded or on-disk assets.
func AssetBounds(path string) (image.Rectangle, error) {
	img, err := assets.DecodeImage(path)
	if err != nil {
		return image.Rectangle{}, err
	}
	return img.Bounds(), nil
}

// BuildAnimationSheet builds a sheet over src with every sequence in spec
// and activates the initial one. The returned policies hold each sequence's
// on_loop behavior, to be passed along whenever that sequence is played.
func BuildAnimationSheet(spec AnimatorComponentSpec, src animation.FrameSource, resolve LoopResolver) (*animation.AnimationSheet, map[string]animation.LoopPolicy, error) {
	sheet, err := animation.NewAnimationSheet(src, spec.DefaultDurationMs)
	if err != nil {
		return nil, nil, fmt.Errorf("prefabs: %w", err)
	}
	policies, err := ApplySequences(sheet, spec, resolve)
	if err != nil {
		return nil, nil, err
	}

	initial := spec.Initial
	if initial == "" {
		initial = animation.DefaultSequence
	}
	if err := sheet.SetActiveSequence(initial, policies[initial]); err != nil {
		return nil, nil, fmt.Errorf("prefabs: initial sequence: %w", err)
	}
	if spec.Paused {
		sheet.Pause()
	}
	return sheet, policies, nil
}

// ApplySequences (re)defines every sequence of spec on sheet. Redefining the
// active sequence restarts it. Everything is checked on a scratch sheet over
// the same frames first, so an invalid spec leaves sheet untouched.
func ApplySequences(sheet *animation.AnimationSheet, spec AnimatorComponentSpec, resolve LoopResolver) (map[string]animation.LoopPolicy, error) {
	scratch, err := animation.NewAnimationSheet(sheet.Source(), spec.DefaultDurationMs)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %w", err)
	}

	seen := make(map[string]bool, len(spec.Sequences))
	refs := make([][]animation.FrameRef, len(spec.Sequences))
	for i, seq := range spec.Sequences {
		if seq.Name == "" {
			return nil, fmt.Errorf("prefabs: sequence %d: %w", i, animation.ErrEmptyName)
		}
		if seen[seq.Name] {
			return nil, fmt.Errorf("prefabs: sequence %q defined twice", seq.Name)
		}
		seen[seq.Name] = true

		refs[i] = make([]animation.FrameRef, 0, len(seq.Frames))
		for _, f := range seq.Frames {
			refs[i] = append(refs[i], f.Ref())
		}
		if err := scratch.DefineSequence(seq.Name, refs[i], seq.DurationMs); err != nil {
			return nil, fmt.Errorf("prefabs: sequence %q: %w", seq.Name, err)
		}
	}

	defined := func(name string) bool {
		if _, ok := scratch.Sequence(name); ok {
			return true
		}
		_, ok := sheet.Sequence(name)
		return ok
	}

	policies := make(map[string]animation.LoopPolicy)
	for _, seq := range spec.Sequences {
		if seq.OnLoop == nil {
			continue
		}
		policy, err := loopPolicy(defined, seq, resolve)
		if err != nil {
			return nil, fmt.Errorf("prefabs: sequence %q: %w", seq.Name, err)
		}
		policies[seq.Name] = policy
	}

	if spec.Initial != "" && !defined(spec.Initial) {
		return nil, fmt.Errorf("prefabs: initial %q: %w", spec.Initial, animation.ErrUnknownSequence)
	}

	for i, seq := range spec.Sequences {
		if err := sheet.DefineSequence(seq.Name, refs[i], seq.DurationMs); err != nil {
			return nil, fmt.Errorf("prefabs: sequence %q: %w", seq.Name, err)
		}
	}
	return policies, nil
}

func loopPolicy(defined func(string) bool, seq SequenceSpec, resolve LoopResolver) (animation.LoopPolicy, error) {
	on := seq.OnLoop
	switch {
	case on.Chain != "" && on.Script != "":
		return animation.LoopPolicy{}, fmt.Errorf("on_loop has both chain and script")
	case on.Chain != "":
		if !defined(on.Chain) {
			return animation.LoopPolicy{}, fmt.Errorf("chain %q: %w", on.Chain, animation.ErrUnknownSequence)
		}
		return animation.ChainTo(on.Chain), nil
	case on.Script != "":
		if resolve == nil {
			return animation.LoopPolicy{}, fmt.Errorf("script %s: no script runtime", on.Script)
		}
		fn, err := resolve(seq.Name, on.Script)
		if err != nil {
			return animation.LoopPolicy{}, err
		}
		return animation.OnLoop(fn), nil
	default:
		return animation.LoopPolicy{}, nil
	}
}

// BuildEventMap collects the frame events of spec.
func BuildEventMap(spec AnimatorComponentSpec) (*animation.AnimationEventMap, error) {
	events := animation.NewAnimationEventMap()
	for _, ev := range spec.Events {
		typ := animation.AnimationEventType(ev.Type)
		switch typ {
		case animation.AnimationEventEmit, animation.AnimationEventSound, animation.AnimationEventHide:
		default:
			return nil, fmt.Errorf("prefabs: event %q on %s[%d]: unknown type", ev.Type, ev.Sequence, ev.Frame)
		}
		if ev.Sequence == "" {
			return nil, fmt.Errorf("prefabs: event %q: %w", ev.Type, animation.ErrEmptyName)
		}
		if ev.Frame < 0 {
			return nil, fmt.Errorf("prefabs: event %q on %s: negative frame", ev.Type, ev.Sequence)
		}
		events.Add(ev.Sequence, ev.Frame, animation.AnimationEvent{Type: typ, Payload: ev.Payload})
	}
	return events, nil
}
