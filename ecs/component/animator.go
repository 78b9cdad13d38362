package component

import animation "github.com/milk9111/animsheet/component"

// Animator attaches an animation sheet to an entity.
type Animator struct {
	Sheet *animation.AnimationSheet
	// Policies holds the loop policy each sequence is played with.
	Policies map[string]animation.LoopPolicy
	// Prefab is the prefab file the sheet was built from, used for hot reload.
	Prefab string
	// Speed scales incoming deltas; 0 is treated as 1.
	Speed float64
	// Changed is set by the animation system when the last tick moved frames.
	Changed bool

	Events  *animation.AnimationEventMap
	Emitter *animation.AnimationEventEmitter
}

// Play activates name with its configured loop policy.
func (a *Animator) Play(name string) error {
	return a.Sheet.SetActiveSequence(name, a.Policies[name])
}

// Restore reapplies a saved playback state along with the loop policy its
// sequence is configured with.
func (a *Animator) Restore(st animation.SheetState) error {
	return a.Sheet.Restore(st, a.Policies[st.Sequence])
}

var AnimatorComponent = NewComponent[Animator]()
