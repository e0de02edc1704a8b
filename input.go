package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/obj"
)

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// Input polls ebiten once per tick into an obj.Input snapshot.
type Input struct {
	keys    []ebiten.Key
	current obj.Input
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update(screen geom.Rect, tick uint64) *obj.Input {
	in := &i.current
	in.Screen = screen
	in.Tick = tick

	i.keys = inpututil.AppendPressedKeys(i.keys[:0])
	in.Keys = make(map[string]bool, len(i.keys))
	for _, k := range i.keys {
		in.Keys[k.String()] = true
	}
	i.keys = inpututil.AppendJustPressedKeys(i.keys[:0])
	in.JustPressed = make(map[string]bool, len(i.keys))
	for _, k := range i.keys {
		in.JustPressed[k.String()] = true
	}

	x, y := ebiten.CursorPosition()
	in.Mouse = geom.Pt(float64(x), float64(y))
	in.MouseDown, in.MouseJustPressed, in.MouseJustReleased = false, false, false
	for _, b := range mouseButtons {
		in.MouseDown = in.MouseDown || ebiten.IsMouseButtonPressed(b)
		in.MouseJustPressed = in.MouseJustPressed || inpututil.IsMouseButtonJustPressed(b)
		in.MouseJustReleased = in.MouseJustReleased || inpututil.IsMouseButtonJustReleased(b)
	}
	return in
}
