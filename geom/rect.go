package geom

import (
	"fmt"
	"math"
)

// Corner names one of the four corners of a Rect.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Rect is an axis-aligned rectangle given by its top-left corner and an
// integer extent. Negative or zero extents are allowed and simply produce
// degenerate results.
type Rect struct {
	X, Y          float64
	Width, Height int
}

func NewRect(x, y float64, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectAt returns a zero-sized rectangle sitting on p.
func RectAt(p Point) Rect {
	return Rect{X: p.X, Y: p.Y}
}

func (r Rect) Position() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) Right() float64 {
	return r.X + float64(r.Width)
}

func (r Rect) Bottom() float64 {
	return r.Y + float64(r.Height)
}

// Center halves the extent with integer division, so a rect can always be
// re-centred on its own center without drifting.
func (r Rect) Center() Point {
	return Point{X: r.X + float64(r.Width/2), Y: r.Y + float64(r.Height/2)}
}

func (r Rect) Corner(c Corner) Point {
	switch c {
	case TopRight:
		return Point{X: r.Right(), Y: r.Y}
	case BottomLeft:
		return Point{X: r.X, Y: r.Bottom()}
	case BottomRight:
		return Point{X: r.Right(), Y: r.Bottom()}
	default:
		return Point{X: r.X, Y: r.Y}
	}
}

// Corners returns TopLeft, TopRight, BottomLeft, BottomRight in that order.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		r.Corner(TopLeft),
		r.Corner(TopRight),
		r.Corner(BottomLeft),
		r.Corner(BottomRight),
	}
}

func (r *Rect) SetPosition(p Point) {
	r.X = p.X
	r.Y = p.Y
}

// CenterOn moves r so that Center() == p.
func (r *Rect) CenterOn(p Point) {
	r.X = p.X - float64(r.Width/2)
	r.Y = p.Y - float64(r.Height/2)
}

func (r *Rect) Translate(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

// Contains reports whether p lies within r under Touch collision.
func (r Rect) Contains(p Point) bool {
	return r.Intersects(RectAt(p), Touch)
}

// Union returns the smallest rect enclosing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.Right(), o.Right())
	maxY := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, Width: int(math.Round(maxX - minX)), Height: int(math.Round(maxY - minY))}
}

// BoundsOf returns the axis-aligned rect enclosing pts. The extent is rounded
// to the nearest integer to absorb trigonometric noise.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: int(math.Round(maxX - minX)), Height: int(math.Round(maxY - minY))}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect[x=%g, y=%g, w=%d, h=%d]", r.X, r.Y, r.Width, r.Height)
}
