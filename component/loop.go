package component

// Continuation is what a loop callback decides when a sequence wraps.
type Continuation int

const (
	// Continue keeps playing from frame 0.
	Continue Continuation = iota
	// Hold pins the last frame and stops automatic advancement.
	Hold
)

func (c Continuation) String() string {
	switch c {
	case Continue:
		return "continue"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

// LoopFunc runs synchronously inside Tick each time the active sequence wraps.
type LoopFunc func(s *AnimationSheet) Continuation

type loopKind int

const (
	loopNone loopKind = iota
	loopChain
	loopFunc
)

// LoopPolicy decides what happens when the active sequence wraps to frame 0.
// The zero value does nothing.
type LoopPolicy struct {
	kind  loopKind
	chain string
	fn    LoopFunc
}

// ChainTo switches to the named sequence on wrap.
func ChainTo(name string) LoopPolicy {
	return LoopPolicy{kind: loopChain, chain: name}
}

// OnLoop invokes fn on wrap. A nil fn is the same as no policy.
func OnLoop(fn LoopFunc) LoopPolicy {
	if fn == nil {
		return LoopPolicy{}
	}
	return LoopPolicy{kind: loopFunc, fn: fn}
}

// IsZero reports whether the policy does nothing.
func (p LoopPolicy) IsZero() bool { return p.kind == loopNone }

// Chain returns the chained sequence name, if any.
func (p LoopPolicy) Chain() (string, bool) {
	return p.chain, p.kind == loopChain
}
