package component

import (
	"image"

	"golang.org/x/image/draw"
)

// Forever is the repeat limit of an animation that never completes.
const Forever = -1

const (
	defaultHoldTicks = 8
	stillHoldTicks   = 2
)

// FrameCallback is invoked when the animation enters a frame.
type FrameCallback func(a *Animation, frame int)

// Animation steps through an ordered set of frames, holding each one for a
// fixed number of ticks. Call Tick once per simulation tick.
//
// The current frame index is always tick/hold. Once a finite repeat limit is
// used up the animation is complete, the frame is pinned to 0 and further
// ticks do nothing until Reset.
type Animation struct {
	frames   []image.Image
	original []image.Image

	hold        int
	repeatLimit int

	tick     int
	current  int
	repeats  int
	complete bool
	paused   bool

	frameCallbacks map[int][]FrameCallback
	onComplete     []func(a *Animation)
}

// NewAnimation creates an animation over frames. holdTicks <= 0 is treated
// as 1. Pass Forever as repeatLimit to loop indefinitely.
func NewAnimation(frames []image.Image, holdTicks, repeatLimit int) *Animation {
	if holdTicks <= 0 {
		holdTicks = 1
	}
	copied := append([]image.Image(nil), frames...)
	return &Animation{
		frames:      copied,
		original:    append([]image.Image(nil), copied...),
		hold:        holdTicks,
		repeatLimit: repeatLimit,
	}
}

// NewLoop loops frames forever at the default pace.
func NewLoop(frames ...image.Image) *Animation {
	return NewAnimation(frames, defaultHoldTicks, Forever)
}

// NewStill wraps a single image.
func NewStill(img image.Image) *Animation {
	if img == nil {
		return NewAnimation(nil, stillHoldTicks, Forever)
	}
	return NewAnimation([]image.Image{img}, stillHoldTicks, Forever)
}

// Tick advances the animation by one simulation tick.
func (a *Animation) Tick() {
	if a == nil || a.complete || len(a.frames) == 0 {
		return
	}
	prev := a.current
	if !a.paused {
		a.tick++
	}
	if a.tick >= len(a.frames)*a.hold {
		a.tick = 0
		a.repeats++
		if a.repeatLimit != Forever && a.repeats >= a.repeatLimit {
			a.complete = true
			a.repeats = 0
			a.current = 0
			for _, fn := range a.onComplete {
				fn(a)
			}
			return
		}
	}
	a.current = a.tick / a.hold
	if a.current != prev {
		a.fireFrame(a.current)
	}
}

// Reset rewinds to the first frame and clears completion.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.tick = 0
	a.current = 0
	a.repeats = 0
	a.complete = false
}

// SetHoldTicks changes the pace while staying on the current frame.
func (a *Animation) SetHoldTicks(n int) {
	if a == nil {
		return
	}
	if n <= 0 {
		n = 1
	}
	a.hold = n
	a.tick = a.current * n
}

// JumpToFrame moves to frame i, clamped to the valid range.
func (a *Animation) JumpToFrame(i int) {
	if a == nil || len(a.frames) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(a.frames) {
		i = len(a.frames) - 1
	}
	a.current = i
	a.tick = i * a.hold
}

func (a *Animation) SetRepeatLimit(n int) {
	if a == nil {
		return
	}
	a.repeatLimit = n
}

func (a *Animation) Pause(paused bool) {
	if a == nil {
		return
	}
	a.paused = paused
}

func (a *Animation) Paused() bool   { return a != nil && a.paused }
func (a *Animation) Complete() bool { return a != nil && a.complete }

func (a *Animation) FrameIndex() int {
	if a == nil {
		return 0
	}
	return a.current
}

func (a *Animation) HoldTicks() int {
	if a == nil {
		return 0
	}
	return a.hold
}

func (a *Animation) RepeatLimit() int {
	if a == nil {
		return Forever
	}
	return a.repeatLimit
}

func (a *Animation) Repeats() int {
	if a == nil {
		return 0
	}
	return a.repeats
}

func (a *Animation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.frames)
}

// Frame returns the image to draw this tick, or nil for an empty animation.
func (a *Animation) Frame() image.Image {
	if a == nil || len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.current%len(a.frames)]
}

// Frames returns the live (possibly rescaled) frames.
func (a *Animation) Frames() []image.Image {
	if a == nil {
		return nil
	}
	return append([]image.Image(nil), a.frames...)
}

// Size returns the pixel size of the current frame.
func (a *Animation) Size() (int, int) {
	f := a.Frame()
	if f == nil {
		return 0, 0
	}
	b := f.Bounds()
	return b.Dx(), b.Dy()
}

// Rescale regenerates every frame from its original at exactly w×h.
// Originals are kept so repeated rescales never compound resampling loss.
func (a *Animation) Rescale(w, h int) {
	if a == nil || w <= 0 || h <= 0 {
		return
	}
	frames := make([]image.Image, len(a.original))
	for i, src := range a.original {
		frames[i] = scaleImage(src, w, h)
	}
	a.frames = frames
}

func scaleImage(src image.Image, w, h int) image.Image {
	if src == nil {
		return nil
	}
	sb := src.Bounds()
	if sb.Dx() == w && sb.Dy() == h {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

// Clone copies playback state and shares frame images. Callbacks are not
// carried over.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	c := *a
	c.frames = append([]image.Image(nil), a.frames...)
	c.original = append([]image.Image(nil), a.original...)
	c.frameCallbacks = nil
	c.onComplete = nil
	return &c
}

// AddFrameCallback registers fn to run each time frame is entered.
func (a *Animation) AddFrameCallback(frame int, fn FrameCallback) {
	if a == nil || fn == nil || frame < 0 {
		return
	}
	if a.frameCallbacks == nil {
		a.frameCallbacks = make(map[int][]FrameCallback)
	}
	a.frameCallbacks[frame] = append(a.frameCallbacks[frame], fn)
}

// OnComplete registers fn to run when the repeat limit is reached.
func (a *Animation) OnComplete(fn func(a *Animation)) {
	if a == nil || fn == nil {
		return
	}
	a.onComplete = append(a.onComplete, fn)
}

func (a *Animation) fireFrame(frame int) {
	for _, fn := range a.frameCallbacks[frame] {
		fn(a, frame)
	}
}
