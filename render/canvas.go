// Package render draws sprites onto ebiten images.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/obj"
)

// staleFrames is how many frames an uploaded texture survives unused.
const staleFrames = 120

type texture struct {
	img  *ebiten.Image
	used uint64
}

// Canvas implements obj.Canvas on top of an ebiten screen. Frames are
// uploaded to the GPU once and reused while they keep being drawn.
type Canvas struct {
	Screen *ebiten.Image
	// Offset shifts every draw, e.g. for a camera.
	Offset geom.Point

	frame    uint64
	textures map[image.Image]*texture
	outlines map[image.Image]image.Image
}

func NewCanvas() *Canvas {
	return &Canvas{textures: map[image.Image]*texture{}}
}

// Begin targets screen for the next frame and releases textures that have
// not been drawn for a while.
func (c *Canvas) Begin(screen *ebiten.Image) {
	c.Screen = screen
	c.frame++
	if c.frame%staleFrames != 0 {
		return
	}
	for src, tex := range c.textures {
		if c.frame-tex.used > staleFrames {
			tex.img.Deallocate()
			delete(c.textures, src)
		}
	}
	for frame, ol := range c.outlines {
		if _, ok := c.textures[ol]; !ok {
			delete(c.outlines, frame)
		}
	}
}

func (c *Canvas) texture(src image.Image) *ebiten.Image {
	if img, ok := src.(*ebiten.Image); ok {
		return img
	}
	tex, ok := c.textures[src]
	if !ok {
		tex = &texture{img: ebiten.NewImageFromImage(src)}
		c.textures[src] = tex
	}
	tex.used = c.frame
	return tex.img
}

// Cached reports how many textures are held.
func (c *Canvas) Cached() int { return len(c.textures) }

// DrawFrame draws img at t.Origin rotated by t.Angle about t.Pivot.
func (c *Canvas) DrawFrame(img image.Image, t obj.Transform) {
	if c.Screen == nil || img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = Matrix(t)
	op.GeoM.Translate(-c.Offset.X, -c.Offset.Y)
	op.Filter = ebiten.FilterNearest
	c.Screen.DrawImage(c.texture(img), op)
}

// Matrix maps image pixels to screen coordinates for t.
func Matrix(t obj.Transform) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(t.Origin.X, t.Origin.Y)
	if t.Angle != 0 {
		m.Translate(-t.Pivot.X, -t.Pivot.Y)
		m.Rotate(t.Angle)
		m.Translate(t.Pivot.X, t.Pivot.Y)
	}
	return m
}

var (
	boundsColor = color.RGBA{R: 255, G: 0, B: 0, A: 200}
	imageColor  = color.RGBA{R: 0, G: 200, B: 255, A: 160}
)

// DebugBounds outlines every sprite's bounds, and its unrotated image
// rectangle when the two differ.
func DebugBounds(screen *ebiten.Image, offset geom.Point, groups ...*obj.Group) {
	for _, g := range groups {
		g.Each(func(s *obj.Sprite) {
			b := s.Bounds()
			strokeRect(screen, b, offset, boundsColor)
			if s.Angle() != 0 {
				strokeRect(screen, s.ImageRect(), offset, imageColor)
			}
		})
	}
}

func strokeRect(screen *ebiten.Image, r geom.Rect, offset geom.Point, clr color.Color) {
	vector.StrokeRect(screen,
		float32(r.X-offset.X), float32(r.Y-offset.Y),
		float32(r.Width), float32(r.Height),
		1, clr, false)
}
