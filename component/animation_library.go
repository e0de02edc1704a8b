package component

import "sort"

// AnimationClip stores an animation and optional event map.
type AnimationClip struct {
	Anim   *Animation
	Events *AnimationEventMap
}

// AnimationLibrary stores animation clips by key.
type AnimationLibrary struct {
	clips map[string]AnimationClip
}

// NewAnimationLibrary creates an empty library.
func NewAnimationLibrary() *AnimationLibrary {
	return &AnimationLibrary{clips: make(map[string]AnimationClip)}
}

// Register adds an animation clip to the library.
func (l *AnimationLibrary) Register(key string, anim *Animation, events *AnimationEventMap) {
	if l == nil || key == "" || anim == nil {
		return
	}
	l.clips[key] = AnimationClip{Anim: anim, Events: events}
}

// Get returns an animation clip by key.
func (l *AnimationLibrary) Get(key string) (AnimationClip, bool) {
	if l == nil || key == "" {
		return AnimationClip{}, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

// Instance returns a fresh copy of the clip's animation with its events bound
// to emitter, so several sprites can play the same clip independently.
func (l *AnimationLibrary) Instance(key string, emitter *AnimationEventEmitter) (*Animation, bool) {
	clip, ok := l.Get(key)
	if !ok {
		return nil, false
	}
	anim := clip.Anim.Clone()
	anim.Reset()
	BindAnimationEvents(anim, clip.Events, emitter)
	return anim, true
}

// Keys returns the registered keys in sorted order.
func (l *AnimationLibrary) Keys() []string {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.clips))
	for k := range l.clips {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
