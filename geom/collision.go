package geom

import (
	"fmt"
	"strings"
)

// CollisionMode selects how Intersects compares two rects. The base test
// (touch, inside, edge) is combined with an optional axis restriction.
type CollisionMode uint8

const (
	// Touch is an open-interval overlap on both axes.
	Touch CollisionMode = iota
	TouchX
	TouchY
	// Inside requires the receiver to be contained by the other rect.
	Inside
	InsideX
	InsideY
	// Edge matches rects whose sides sit exactly on each other. The
	// unrestricted form accepts adjacency on either axis.
	Edge
	EdgeX
	EdgeY
)

var collisionModeNames = [...]string{
	Touch:   "touch",
	TouchX:  "touch_x",
	TouchY:  "touch_y",
	Inside:  "inside",
	InsideX: "inside_x",
	InsideY: "inside_y",
	Edge:    "edge",
	EdgeX:   "edge_x",
	EdgeY:   "edge_y",
}

func (m CollisionMode) String() string {
	if int(m) < len(collisionModeNames) {
		return collisionModeNames[m]
	}
	return fmt.Sprintf("CollisionMode(%d)", uint8(m))
}

// ParseCollisionMode maps names such as "touch" or "inside_x" to a mode. An
// empty string yields Touch.
func ParseCollisionMode(s string) (CollisionMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Touch, nil
	}
	for i, name := range collisionModeNames {
		if name == s {
			return CollisionMode(i), nil
		}
	}
	return Touch, fmt.Errorf("geom: unknown collision mode %q", s)
}

func (m CollisionMode) base() CollisionMode {
	return m - m%3
}

// Intersects tests r against other using mode.
func (r Rect) Intersects(other Rect, mode CollisionMode) bool {
	horiz, vert := r.axisTests(other, mode.base())
	switch mode {
	case TouchX, InsideX, EdgeX:
		return horiz
	case TouchY, InsideY, EdgeY:
		return vert
	case Edge:
		return horiz || vert
	default:
		return horiz && vert
	}
}

func (r Rect) axisTests(o Rect, base CollisionMode) (horiz, vert bool) {
	switch base {
	case Inside:
		horiz = r.X >= o.X && r.X <= o.Right() && r.Right() <= o.Right()
		vert = r.Y >= o.Y && r.Y <= o.Bottom() && r.Bottom() <= o.Bottom()
	case Edge:
		horiz = r.X == o.Right() || r.Right() == o.X
		vert = r.Y == o.Bottom() || r.Bottom() == o.Y
	default:
		horiz = r.Right() > o.X && r.X < o.Right()
		vert = r.Bottom() > o.Y && r.Y < o.Bottom()
	}
	return horiz, vert
}
