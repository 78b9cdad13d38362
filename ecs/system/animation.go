package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	animation "github.com/milk9111/animsheet/component"
	"github.com/milk9111/animsheet/ecs"
	"github.com/milk9111/animsheet/ecs/component"
)

// Clock supplies the elapsed time, in milliseconds, for one update.
type Clock interface {
	DeltaMs() float64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() float64

func (f ClockFunc) DeltaMs() float64 { return f() }

// TPSClock reports one ebiten tick per update.
type TPSClock struct{}

func (TPSClock) DeltaMs() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1000 / float64(tps)
}

// AnimationSystem advances every Animator once per update and mirrors the
// current frame onto the entity's Sprite.
type AnimationSystem struct {
	clock Clock
	// Scale multiplies every delta, for slow motion in the viewer.
	Scale float64
}

func NewAnimationSystem(clock Clock) *AnimationSystem {
	if clock == nil {
		clock = TPSClock{}
	}
	return &AnimationSystem{clock: clock, Scale: 1}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	dt := a.clock.DeltaMs() * a.Scale
	if dt < 0 {
		dt = 0
	}

	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		if anim.Sheet == nil {
			return
		}
		speed := anim.Speed
		if speed == 0 {
			speed = 1
		}
		anim.Changed = anim.Sheet.Tick(dt * speed)

		// the loop policy may have destroyed the entity
		if !ecs.IsAlive(w, e) {
			return
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			SyncSprite(anim, sprite)
		}
	})
}

// SyncSprite copies the sheet's current frame region onto sprite.
func SyncSprite(anim *component.Animator, sprite *component.Sprite) {
	if anim == nil || anim.Sheet == nil || sprite == nil {
		return
	}
	f := anim.Sheet.Frame()
	sprite.Source = f.Rect()
	sprite.Angle = f.Angle
}

// BindEvents replaces the frame event callbacks of anim with events.
func BindEvents(anim *component.Animator, events *animation.AnimationEventMap) {
	if anim == nil || anim.Sheet == nil {
		return
	}
	if anim.Events != nil {
		for seq := range anim.Events.Frames {
			anim.Sheet.ClearFrameCallbacks(seq)
		}
	}
	anim.Events = events
	if anim.Emitter == nil {
		anim.Emitter = &animation.AnimationEventEmitter{}
	}
	animation.BindAnimationEvents(anim.Sheet, events, anim.Emitter)
}

// QueueEvents makes anim's emitter push frame events onto the world queue.
func QueueEvents(w *ecs.World, e ecs.Entity, anim *component.Animator) {
	if w == nil || anim == nil {
		return
	}
	if anim.Emitter == nil {
		anim.Emitter = &animation.AnimationEventEmitter{}
	}
	anim.Emitter.Handlers = append(anim.Emitter.Handlers, func(_ *animation.AnimationSheet, frame int, evt animation.AnimationEvent) {
		w.Events.Push(ecs.Event{Entity: e, Type: string(evt.Type), Data: evt})
	})
}
