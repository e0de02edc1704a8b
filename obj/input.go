package obj

import "github.com/milk9111/gametools/geom"

// Input is a snapshot of player input for one tick. The host polls its
// window backend into an Input and hands it to Update, so nothing in this
// package reads global input state.
type Input struct {
	// Mouse is the cursor position in screen coordinates.
	Mouse geom.Point
	// MouseDown is true while any mouse button is held.
	MouseDown bool
	// MouseJustPressed is true on the tick a button went down.
	MouseJustPressed bool
	// MouseJustReleased is true on the tick the last button went up.
	MouseJustReleased bool

	// Keys holds the names of keys currently held, e.g. "ArrowLeft" or "A".
	Keys map[string]bool
	// JustPressed holds the names of keys that went down this tick.
	JustPressed map[string]bool

	// Screen is the visible area.
	Screen geom.Rect
	// Tick counts simulation ticks since start.
	Tick uint64
}

func (in *Input) KeyDown(name string) bool {
	return in != nil && in.Keys[name]
}

func (in *Input) KeyJustPressed(name string) bool {
	return in != nil && in.JustPressed[name]
}
