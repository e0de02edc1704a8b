package component

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func frames(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = solid(4, 4, color.NRGBA{R: uint8(i * 40), A: 255})
	}
	return out
}

func tickN(a *Animation, n int) {
	for i := 0; i < n; i++ {
		a.Tick()
	}
}

func TestAnimationRepeatLimit(t *testing.T) {
	cases := []struct {
		name         string
		ticks        int
		wantComplete bool
		wantFrame    int
	}{
		{"seven_ticks", 7, false, 3},
		{"eight_ticks", 8, true, 0},
		{"twenty_ticks_stays_pinned", 20, true, 0},
		{"three_ticks", 3, false, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewAnimation(frames(4), 2, 1)
			tickN(a, c.ticks)
			if a.Complete() != c.wantComplete {
				t.Fatalf("Complete = %v, want %v", a.Complete(), c.wantComplete)
			}
			if a.FrameIndex() != c.wantFrame {
				t.Fatalf("FrameIndex = %d, want %d", a.FrameIndex(), c.wantFrame)
			}
		})
	}
}

func TestAnimationLoopsForever(t *testing.T) {
	a := NewAnimation(frames(3), 1, Forever)
	seen := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		a.Tick()
		seen = append(seen, a.FrameIndex())
	}
	want := []int{1, 2, 0, 1, 2, 0, 1}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("frame sequence = %v, want %v", seen, want)
		}
	}
	if a.Complete() {
		t.Fatalf("looping animation should never complete")
	}
	if a.Repeats() != 2 {
		t.Fatalf("Repeats = %d, want 2", a.Repeats())
	}
}

func TestAnimationPauseFreezesFrame(t *testing.T) {
	a := NewAnimation(frames(4), 1, Forever)
	tickN(a, 2)
	a.Pause(true)
	tickN(a, 5)
	if a.FrameIndex() != 2 {
		t.Fatalf("paused frame moved to %d", a.FrameIndex())
	}
	a.Pause(false)
	a.Tick()
	if a.FrameIndex() != 3 {
		t.Fatalf("resumed frame = %d, want 3", a.FrameIndex())
	}
}

func TestAnimationResetClearsCompletion(t *testing.T) {
	a := NewAnimation(frames(2), 1, 1)
	tickN(a, 2)
	if !a.Complete() {
		t.Fatalf("expected completion")
	}
	a.Reset()
	if a.Complete() || a.FrameIndex() != 0 || a.Repeats() != 0 {
		t.Fatalf("Reset left state complete=%v frame=%d repeats=%d", a.Complete(), a.FrameIndex(), a.Repeats())
	}
	a.Tick()
	if a.FrameIndex() != 1 {
		t.Fatalf("animation should run again after reset, frame=%d", a.FrameIndex())
	}
}

func TestAnimationSetHoldTicksKeepsFrame(t *testing.T) {
	a := NewAnimation(frames(4), 2, Forever)
	tickN(a, 5) // frame 2
	a.SetHoldTicks(4)
	if a.FrameIndex() != 2 {
		t.Fatalf("frame changed to %d", a.FrameIndex())
	}
	tickN(a, 3)
	if a.FrameIndex() != 2 {
		t.Fatalf("new pace not applied, frame=%d", a.FrameIndex())
	}
	a.Tick()
	if a.FrameIndex() != 3 {
		t.Fatalf("frame = %d, want 3", a.FrameIndex())
	}
}

func TestAnimationJumpToFrame(t *testing.T) {
	a := NewAnimation(frames(4), 3, Forever)
	cases := []struct {
		in, want int
	}{
		{2, 2},
		{-5, 0},
		{99, 3},
	}
	for _, c := range cases {
		a.JumpToFrame(c.in)
		if a.FrameIndex() != c.want {
			t.Fatalf("JumpToFrame(%d) = %d, want %d", c.in, a.FrameIndex(), c.want)
		}
	}
	// The tick counter follows the jump, so one full hold moves on a frame.
	a.JumpToFrame(1)
	tickN(a, 3)
	if a.FrameIndex() != 2 {
		t.Fatalf("frame after jump+hold = %d, want 2", a.FrameIndex())
	}
}

func TestAnimationEmptyIsSafe(t *testing.T) {
	a := NewAnimation(nil, 0, Forever)
	tickN(a, 10)
	a.JumpToFrame(3)
	a.Rescale(10, 10)
	if a.Frame() != nil || a.FrameIndex() != 0 || a.Len() != 0 {
		t.Fatalf("empty animation produced frame=%v index=%d", a.Frame(), a.FrameIndex())
	}
	if w, h := a.Size(); w != 0 || h != 0 {
		t.Fatalf("Size = %d,%d", w, h)
	}
	var nilAnim *Animation
	nilAnim.Tick()
	if nilAnim.Frame() != nil {
		t.Fatalf("nil animation frame")
	}
}

func TestAnimationRescaleUsesOriginals(t *testing.T) {
	orig := solid(4, 2, color.NRGBA{G: 255, A: 255})
	a := NewAnimation([]image.Image{orig}, 1, Forever)
	a.Rescale(8, 6)
	if w, h := a.Size(); w != 8 || h != 6 {
		t.Fatalf("Size after rescale = %d,%d", w, h)
	}
	a.Rescale(1, 1)
	a.Rescale(4, 2)
	if a.Frame() != orig {
		t.Fatalf("rescaling back to the original size should restore the original image")
	}
	a.Rescale(12, 3)
	if got := a.Frame().At(11, 2); got != (color.NRGBA{G: 255, A: 255}) {
		t.Fatalf("rescaled pixel = %v", got)
	}
	a.Rescale(0, 5)
	if w, h := a.Size(); w != 12 || h != 3 {
		t.Fatalf("non-positive rescale should be ignored, got %d,%d", w, h)
	}
}

func TestAnimationCallbacks(t *testing.T) {
	a := NewAnimation(frames(3), 1, 1)
	var entered []int
	a.AddFrameCallback(2, func(_ *Animation, f int) { entered = append(entered, f) })
	completed := 0
	a.OnComplete(func(*Animation) { completed++ })
	tickN(a, 5)
	if len(entered) != 1 || entered[0] != 2 {
		t.Fatalf("frame callback calls = %v", entered)
	}
	if completed != 1 {
		t.Fatalf("complete callbacks = %d", completed)
	}
}

func TestAnimationClone(t *testing.T) {
	a := NewAnimation(frames(3), 2, Forever)
	tickN(a, 3)
	c := a.Clone()
	if c.FrameIndex() != a.FrameIndex() || c.HoldTicks() != 2 {
		t.Fatalf("clone state differs")
	}
	c.Tick()
	c.Tick()
	if a.FrameIndex() == c.FrameIndex() {
		t.Fatalf("clone should advance independently")
	}
}

func TestFramesFromSheet(t *testing.T) {
	sheet := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	cases := []struct {
		name                 string
		fw, fh, start, count int
		want                 int
	}{
		{"all_cells", 4, 4, 0, 0, 6},
		{"second_row", 4, 4, 3, 3, 3},
		{"clamped_count", 4, 4, 4, 10, 2},
		{"start_past_end", 4, 4, 6, 1, 0},
		{"bad_size", 0, 4, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FramesFromSheet(sheet, c.fw, c.fh, c.start, c.count)
			if len(got) != c.want {
				t.Fatalf("len = %d, want %d", len(got), c.want)
			}
		})
	}
	cells := FramesFromSheet(sheet, 4, 4, 4, 1)
	if b := cells[0].Bounds(); b != image.Rect(4, 4, 8, 8) {
		t.Fatalf("cell bounds = %v", b)
	}
}

func TestAnimationLibraryInstance(t *testing.T) {
	lib := NewAnimationLibrary()
	events := NewAnimationEventMap()
	events.Add(1, AnimationEvent{Name: "fire"})
	lib.Register("shoot", NewAnimation(frames(2), 1, Forever), events)

	var fired []string
	emitter := &AnimationEventEmitter{Handlers: []AnimationEventHandler{
		func(_ *Animation, _ int, evt AnimationEvent) { fired = append(fired, evt.Name) },
	}}
	a, ok := lib.Instance("shoot", emitter)
	if !ok {
		t.Fatalf("expected clip")
	}
	a.Tick()
	if len(fired) != 1 || fired[0] != "fire" {
		t.Fatalf("fired = %v", fired)
	}
	if _, ok := lib.Instance("missing", emitter); ok {
		t.Fatalf("missing clip should not resolve")
	}
	if keys := lib.Keys(); len(keys) != 1 || keys[0] != "shoot" {
		t.Fatalf("Keys = %v", keys)
	}
}
