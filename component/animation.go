package component

import (
	"fmt"
	"sort"
)

// DefaultFrameDurationMs is used when a sheet is built without an explicit
// default duration.
const DefaultFrameDurationMs = 100.0

// DefaultSequence names the sequence synthesized at construction that spans
// every frame of the source.
const DefaultSequence = "default"

// Sequence is a named, ordered list of frames played back over time.
type Sequence struct {
	Name       string
	Frames     []Frame
	Delays     []float64
	DurationMs float64
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

type frameCallback struct {
	frame int
	fn    FrameCallback
}

// FrameCallback is invoked when the sheet advances onto a registered frame.
type FrameCallback func(s *AnimationSheet, frame int)

// AnimationSheet drives frame selection over time for a sprite backed by a
// frame source. It is not safe for concurrent use; call it from the update
// loop only.
type AnimationSheet struct {
	source          FrameSource
	defaultDuration float64

	sequences map[string]*Sequence
	active    *Sequence
	policy    LoopPolicy

	current   int
	remaining float64
	frame     Frame
	paused    bool
	held      bool
	restarts  int

	callbacks map[string][]frameCallback
}

// NewAnimationSheet builds a sheet over src with a "default" sequence
// spanning every frame. defaultDurationMs <= 0 falls back to
// DefaultFrameDurationMs.
func NewAnimationSheet(src FrameSource, defaultDurationMs float64) (*AnimationSheet, error) {
	if src == nil || src.Len() == 0 {
		return nil, ErrEmptySource
	}
	if defaultDurationMs <= 0 {
		defaultDurationMs = DefaultFrameDurationMs
	}
	s := &AnimationSheet{
		source:          src,
		defaultDuration: defaultDurationMs,
		sequences:       make(map[string]*Sequence),
	}
	if err := s.DefineSequence(DefaultSequence, nil, 0); err != nil {
		return nil, err
	}
	if err := s.SetActiveSequence(DefaultSequence); err != nil {
		return nil, err
	}
	return s, nil
}

// Source returns the frame source backing the sheet.
func (s *AnimationSheet) Source() FrameSource { return s.source }

// DefaultDurationMs returns the per-frame fallback duration.
func (s *AnimationSheet) DefaultDurationMs() float64 { return s.defaultDuration }

// DefineSequence resolves refs through the frame source and stores the
// sequence under name, replacing any previous definition. Empty refs means
// every frame in source order; durationMs <= 0 means the sheet default.
//
// Redefining the active sequence swaps its frames in place and restarts it
// from frame 0, keeping the current loop policy.
func (s *AnimationSheet) DefineSequence(name string, refs []FrameRef, durationMs float64) error {
	if name == "" {
		return ErrEmptyName
	}
	if durationMs <= 0 {
		durationMs = s.defaultDuration
	}
	if len(refs) == 0 {
		refs = make([]FrameRef, s.source.Len())
		for i := range refs {
			refs[i] = FrameIndex(i)
		}
	}

	frames := make([]Frame, 0, len(refs))
	delays := make([]float64, 0, len(refs))
	for _, ref := range refs {
		f, err := s.resolve(ref)
		if err != nil {
			return fmt.Errorf("define %q: %w", name, err)
		}
		frames = append(frames, f)
		d := durationMs
		if ref.DelayMs > 0 {
			d = ref.DelayMs
		}
		delays = append(delays, d)
	}

	if seq, ok := s.sequences[name]; ok {
		seq.Frames = frames
		seq.Delays = delays
		seq.DurationMs = durationMs
		if seq == s.active {
			s.restart()
		}
		return nil
	}
	s.sequences[name] = &Sequence{Name: name, Frames: frames, Delays: delays, DurationMs: durationMs}
	return nil
}

func (s *AnimationSheet) resolve(ref FrameRef) (Frame, error) {
	if ref.Named() {
		named, ok := s.source.(NamedFrameSource)
		if !ok {
			return Frame{}, fmt.Errorf("frame %q: %w", ref.Name, ErrUnsupportedLookupKind)
		}
		return named.FrameByName(ref.Name)
	}
	if ref.Index < 0 || ref.Index >= s.source.Len() {
		return Frame{}, fmt.Errorf("frame %d of %d: %w", ref.Index, s.source.Len(), ErrFrameOutOfRange)
	}
	return s.source.FrameAt(ref.Index)
}

// SetActiveSequence makes name the active sequence, restarting it from frame
// 0 and storing the optional loop policy. A chain policy must name a defined
// sequence.
func (s *AnimationSheet) SetActiveSequence(name string, policy ...LoopPolicy) error {
	seq, ok := s.sequences[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownSequence)
	}
	var p LoopPolicy
	if len(policy) > 0 {
		p = policy[0]
	}
	if target, ok := p.Chain(); ok {
		if _, defined := s.sequences[target]; !defined {
			return fmt.Errorf("chain target %q: %w", target, ErrUnknownSequence)
		}
	}
	s.active = seq
	s.policy = p
	s.restart()
	return nil
}

func (s *AnimationSheet) restart() {
	s.restarts++
	s.held = false
	s.SetFrameIndex(0)
	s.remaining = s.active.Delays[0]
}

// IsActiveSequence reports whether name is the active sequence.
func (s *AnimationSheet) IsActiveSequence(name string) bool {
	return s.active != nil && s.active.Name == name
}

// ActiveSequence returns the active sequence name.
func (s *AnimationSheet) ActiveSequence() string {
	if s.active == nil {
		return ""
	}
	return s.active.Name
}

// LoopPolicy returns the policy attached to the active sequence.
func (s *AnimationSheet) LoopPolicy() LoopPolicy { return s.policy }

// Sequence returns a defined sequence by name.
func (s *AnimationSheet) Sequence(name string) (*Sequence, bool) {
	seq, ok := s.sequences[name]
	return seq, ok
}

// SequenceNames returns all defined sequence names, sorted.
func (s *AnimationSheet) SequenceNames() []string {
	names := make([]string, 0, len(s.sequences))
	for n := range s.sequences {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetFrameIndex seeks the active sequence to i modulo its length and updates
// the current frame geometry. Timing and hold state are left alone.
func (s *AnimationSheet) SetFrameIndex(i int) {
	n := len(s.active.Frames)
	i %= n
	if i < 0 {
		i += n
	}
	s.current = i
	s.frame = s.active.Frames[i]
}

// FrameIndex returns the cursor into the active sequence.
func (s *AnimationSheet) FrameIndex() int { return s.current }

// Frame returns the descriptor of the frame currently displayed.
func (s *AnimationSheet) Frame() Frame { return s.frame }

// RemainingMs returns the countdown until the next advance.
func (s *AnimationSheet) RemainingMs() float64 { return s.remaining }

// Pause suspends time advancement. Deltas received while paused are dropped.
func (s *AnimationSheet) Pause() { s.paused = true }

// Resume re-enables time advancement. It does not release a hold.
func (s *AnimationSheet) Resume() { s.paused = false }

// Paused reports whether the sheet is paused.
func (s *AnimationSheet) Paused() bool { return s.paused }

// Held reports whether a loop callback pinned the last frame. Only
// SetActiveSequence or redefining the active sequence releases it.
func (s *AnimationSheet) Held() bool { return s.held }

// Tick advances the sheet by dtMs milliseconds and reports whether the
// displayed frame changed. At most one frame advance happens per call; any
// overshoot carries into the next frame's countdown.
func (s *AnimationSheet) Tick(dtMs float64) bool {
	if s.paused || s.held || len(s.active.Frames) <= 1 {
		return false
	}

	s.remaining -= dtMs
	if s.remaining > 0 {
		return false
	}

	next := (s.current + 1) % len(s.active.Frames)
	s.SetFrameIndex(next)

	if next == 0 {
		switch s.policy.kind {
		case loopChain:
			// validated by SetActiveSequence; sequences are never removed
			_ = s.SetActiveSequence(s.policy.chain)
			s.fireFrame()
			return true
		case loopFunc:
			restarts := s.restarts
			if s.policy.fn(s) == Hold {
				// the callback may have switched sequences itself
				s.SetFrameIndex(len(s.active.Frames) - 1)
				s.held = true
				return false
			}
			if s.restarts != restarts {
				// callback restarted a sequence, timing is already fresh
				s.fireFrame()
				return true
			}
		}
	}

	s.remaining += s.active.Delays[s.current]
	s.fireFrame()
	return true
}

// AddFrameCallback registers fn to run whenever sequence advances onto frame.
func (s *AnimationSheet) AddFrameCallback(sequence string, frame int, fn FrameCallback) {
	if fn == nil || frame < 0 {
		return
	}
	if s.callbacks == nil {
		s.callbacks = make(map[string][]frameCallback)
	}
	s.callbacks[sequence] = append(s.callbacks[sequence], frameCallback{frame: frame, fn: fn})
}

// ClearFrameCallbacks drops every callback registered for sequence.
func (s *AnimationSheet) ClearFrameCallbacks(sequence string) {
	delete(s.callbacks, sequence)
}

func (s *AnimationSheet) fireFrame() {
	cbs := s.callbacks[s.active.Name]
	for _, cb := range cbs {
		if cb.frame == s.current {
			cb.fn(s, s.current)
		}
	}
}
