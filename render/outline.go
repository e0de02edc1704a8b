package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gametools/obj"
)

// Outline returns an image the size of src with col painted on every
// transparent pixel within thickness of an opaque one.
func Outline(src image.Image, thickness int, col color.Color) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	isOpaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a != 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isOpaque(x, y) {
				continue
			}
			found := false
			for yy := max(y-thickness, 0); yy <= min(y+thickness, h-1) && !found; yy++ {
				for xx := max(x-thickness, 0); xx <= min(x+thickness, w-1); xx++ {
					if isOpaque(xx, yy) {
						found = true
						break
					}
				}
			}
			if found {
				out.Set(x, y, col)
			}
		}
	}
	return out
}

var outlineColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// DrawOutline draws an outline around the sprite's current frame. Outlines
// are cached per frame image alongside the frame textures.
func (c *Canvas) DrawOutline(s *obj.Sprite) {
	if c.Screen == nil || s == nil {
		return
	}
	frame := s.Image()
	if frame == nil {
		return
	}
	if c.outlines == nil {
		c.outlines = map[image.Image]image.Image{}
	}
	ol, ok := c.outlines[frame]
	if !ok {
		ol = Outline(frame, 1, outlineColor)
		c.outlines[frame] = ol
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = Matrix(s.Transform())
	op.GeoM.Translate(-c.Offset.X, -c.Offset.Y)
	c.Screen.DrawImage(c.texture(ol), op)
}
