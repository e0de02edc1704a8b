// Package geom holds the coordinate types every other package builds on:
// points, axis-aligned rectangles and the rectangle collision modes.
package geom

import (
	"fmt"
	"math"

	"github.com/milk9111/gametools/common"
)

// Point is a 2D coordinate in screen space (y grows downwards).
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance to other.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// AngleTo returns the heading from p towards other in [0, 2π).
func (p Point) AngleTo(other Point) float64 {
	return common.NormalizeAngle(math.Atan2(other.Y-p.Y, other.X-p.X))
}

// RotateAround moves p along the circle centred on pivot by delta radians.
// Positive delta turns clockwise on screen.
func (p *Point) RotateAround(pivot Point, delta float64) {
	dist := pivot.DistanceTo(*p)
	if dist == 0 {
		return
	}
	cur := math.Atan2(p.Y-pivot.Y, p.X-pivot.X)
	p.X = pivot.X + math.Cos(cur+delta)*dist
	p.Y = pivot.Y + math.Sin(cur+delta)*dist
}

// Rotated is the value form of RotateAround.
func (p Point) Rotated(pivot Point, delta float64) Point {
	p.RotateAround(pivot, delta)
	return p
}

func (p *Point) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
