package common

import "math"

const (
	BaseWidth  = 800
	BaseHeight = 800

	// DefaultTPS is the simulation rate the toolkit is tuned for.
	DefaultTPS = 60
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// NormalizeAngle wraps theta into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0
	}
	fixed := math.Mod(theta, TwoPi)
	if fixed < 0 {
		fixed += TwoPi
	}
	// Mod of a tiny negative value can round up to exactly 2π.
	if fixed >= TwoPi {
		fixed = 0
	}
	return fixed
}

// ShortestTurn returns the signed rotation in (-π, π] that takes from onto to.
func ShortestTurn(from, to float64) float64 {
	d := NormalizeAngle(to) - NormalizeAngle(from)
	if d > math.Pi {
		d -= TwoPi
	} else if d <= -math.Pi {
		d += TwoPi
	}
	return d
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by no more than eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
