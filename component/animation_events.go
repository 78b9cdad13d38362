package component

// AnimationEventType identifies a type of frame event.
type AnimationEventType string

const (
	AnimationEventEmit  AnimationEventType = "emit"
	AnimationEventSound AnimationEventType = "sound"
	AnimationEventHide  AnimationEventType = "hide"
)

// AnimationEvent is emitted when a sheet reaches a frame.
type AnimationEvent struct {
	Type     AnimationEventType
	Sequence string
	Payload  string
}

// AnimationEventHandler handles animation frame events.
type AnimationEventHandler func(sheet *AnimationSheet, frame int, evt AnimationEvent)

// AnimationEventEmitter dispatches animation frame events to handlers.
type AnimationEventEmitter struct {
	Handlers []AnimationEventHandler
}

// Emit sends a frame event to all handlers.
func (e *AnimationEventEmitter) Emit(sheet *AnimationSheet, frame int, evt AnimationEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(sheet, frame, evt)
		}
	}
}

// AnimationEventMap stores events per sequence and frame.
type AnimationEventMap struct {
	Frames map[string]map[int][]AnimationEvent
}

// NewAnimationEventMap creates a new event map.
func NewAnimationEventMap() *AnimationEventMap {
	return &AnimationEventMap{Frames: make(map[string]map[int][]AnimationEvent)}
}

// Add adds an event for a frame of a sequence.
func (m *AnimationEventMap) Add(sequence string, frame int, evt AnimationEvent) {
	if m == nil || frame < 0 {
		return
	}
	if m.Frames == nil {
		m.Frames = make(map[string]map[int][]AnimationEvent)
	}
	if m.Frames[sequence] == nil {
		m.Frames[sequence] = make(map[int][]AnimationEvent)
	}
	evt.Sequence = sequence
	m.Frames[sequence][frame] = append(m.Frames[sequence][frame], evt)
}

// BindAnimationEvents registers frame callbacks on the sheet that forward
// the mapped events to emitter.
func BindAnimationEvents(sheet *AnimationSheet, events *AnimationEventMap, emitter *AnimationEventEmitter) {
	if sheet == nil || events == nil || emitter == nil {
		return
	}
	for seq, frames := range events.Frames {
		for frame, evts := range frames {
			copied := append([]AnimationEvent(nil), evts...)
			sheet.AddFrameCallback(seq, frame, func(s *AnimationSheet, frameIdx int) {
				for _, evt := range copied {
					emitter.Emit(s, frameIdx, evt)
				}
			})
		}
	}
}
