package obj

import (
	"fmt"
	"math"
	"strings"
)

// Direction is one of the eight compass headings, 45° apart, starting at
// East and turning clockwise on screen. NoDirection is the zero value.
type Direction uint8

const (
	NoDirection Direction = iota
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

var directionNames = [...]string{
	NoDirection: "none",
	East:        "east",
	SouthEast:   "south_east",
	South:       "south",
	SouthWest:   "south_west",
	West:        "west",
	NorthWest:   "north_west",
	North:       "north",
	NorthEast:   "north_east",
}

// Angle returns the heading in radians. ok is false for NoDirection and
// out-of-range values.
func (d Direction) Angle() (theta float64, ok bool) {
	if d == NoDirection || d > NorthEast {
		return 0, false
	}
	return float64(d-East) * math.Pi / 4, true
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection accepts names like "north_east", "northeast" or "ne".
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return NoDirection, nil
	case "e":
		return East, nil
	case "se":
		return SouthEast, nil
	case "s":
		return South, nil
	case "sw":
		return SouthWest, nil
	case "w":
		return West, nil
	case "nw":
		return NorthWest, nil
	case "n":
		return North, nil
	case "ne":
		return NorthEast, nil
	}
	compact := strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	for i, name := range directionNames {
		if strings.ReplaceAll(name, "_", "") == compact {
			return Direction(i), nil
		}
	}
	return NoDirection, fmt.Errorf("obj: unknown direction %q", s)
}

// Rotation is a turning sense used by Turn and Orbit.
type Rotation int8

const (
	NoRotation       Rotation = 0
	Clockwise        Rotation = 1
	CounterClockwise Rotation = -1
)
