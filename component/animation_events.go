package component

// AnimationEvent is a named marker attached to an animation frame, e.g. a
// "fire" event on the frame where a muzzle flash is drawn.
type AnimationEvent struct {
	Name    string
	Payload string
}

// AnimationEventHandler handles animation frame events.
type AnimationEventHandler func(anim *Animation, frame int, evt AnimationEvent)

// AnimationEventEmitter dispatches animation frame events to handlers.
type AnimationEventEmitter struct {
	Handlers []AnimationEventHandler
}

// Emit sends a frame event to all handlers.
func (e *AnimationEventEmitter) Emit(anim *Animation, frame int, evt AnimationEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(anim, frame, evt)
		}
	}
}

// AnimationEventMap stores per-frame events.
type AnimationEventMap struct {
	Frames map[int][]AnimationEvent
}

// NewAnimationEventMap creates a new event map.
func NewAnimationEventMap() *AnimationEventMap {
	return &AnimationEventMap{Frames: make(map[int][]AnimationEvent)}
}

// Add adds an event for a frame.
func (m *AnimationEventMap) Add(frame int, evt AnimationEvent) {
	if m == nil || frame < 0 {
		return
	}
	if m.Frames == nil {
		m.Frames = make(map[int][]AnimationEvent)
	}
	m.Frames[frame] = append(m.Frames[frame], evt)
}

// Len returns the number of frames carrying events.
func (m *AnimationEventMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Frames)
}

// BindAnimationEvents registers callbacks on the animation to emit events for frames.
func BindAnimationEvents(anim *Animation, events *AnimationEventMap, emitter *AnimationEventEmitter) {
	if anim == nil || events == nil || len(events.Frames) == 0 {
		return
	}
	for frame, evts := range events.Frames {
		copied := append([]AnimationEvent(nil), evts...)
		anim.AddFrameCallback(frame, func(a *Animation, frameIdx int) {
			for _, evt := range copied {
				emitter.Emit(a, frameIdx, evt)
			}
		})
	}
}
