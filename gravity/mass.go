package gravity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/obj"
)

const (
	DefaultGravity          = 1.0
	DefaultTerminalVelocity = 25.0
)

// Mass is an obj.Hook that makes a sprite fall and land on platforms.
//
// Each tick the fall speed grows by Gravity, capped at TerminalVelocity
// plus any jump boost. The fall is walked in Gravity-sized steps so fast
// sprites cannot tunnel through thin platforms. A sprite lands when its
// feet, a strip along its bottom edge, touch the top strip of a platform.
type Mass struct {
	Gravity          float64
	TerminalVelocity float64
	Platforms        *obj.Group

	// vel.X is a horizontal drift applied every tick, vel.Y the fall speed.
	vel      cp.Vector
	boost    float64
	onGround bool
}

func NewMass(platforms *obj.Group) *Mass {
	return &Mass{
		Gravity:          DefaultGravity,
		TerminalVelocity: DefaultTerminalVelocity,
		Platforms:        platforms,
	}
}

// Jump launches the sprite upwards at speed, cancelling the current fall.
func (m *Mass) Jump(speed float64) {
	m.boost = math.Abs(speed)
	m.vel.Y = 0
}

func (m *Mass) StopJump() {
	m.boost = 0
	m.vel.Y = 0
}

func (m *Mass) Jumping() bool  { return m.boost != 0 }
func (m *Mass) OnGround() bool { return m.onGround }

// SetDrift sets the horizontal speed applied every tick.
func (m *Mass) SetDrift(dx float64) { m.vel.X = dx }

// Velocity is the net movement of the last tick, positive Y pointing down.
func (m *Mass) Velocity() cp.Vector {
	return cp.Vector{X: m.vel.X, Y: m.vel.Y - m.boost}
}

func (m *Mass) step() float64 {
	if m.Gravity <= 0 {
		return DefaultGravity
	}
	return m.Gravity
}

func (m *Mass) Update(s *obj.Sprite, _ *obj.Input) {
	if s == nil {
		return
	}
	g := m.step()
	m.onGround = false
	if m.vel.X != 0 {
		s.Translate(m.vel.X, 0)
	}

	if m.vel.Y >= m.boost {
		s.Translate(0, -m.boost)
		strip := int(math.Ceil(g))
		steps := int(math.Ceil(m.vel.Y / g))
		for i := 0; i < steps; i++ {
			s.Translate(0, g)
			if p := m.landing(s, strip); p != nil {
				b := s.Bounds()
				s.SetPosition(geom.Pt(b.X, p.Bounds().Y-float64(b.Height)))
				m.vel.Y = 0
				m.boost = 0
				m.onGround = true
				break
			}
		}
	} else {
		s.Translate(0, -(m.boost - m.vel.Y))
	}

	m.vel = m.vel.Add(cp.Vector{Y: g})
	m.vel.Y = cp.Clamp(m.vel.Y, 0, m.TerminalVelocity+m.boost)
}

// landing returns the platform the sprite's feet rest on, if any.
func (m *Mass) landing(s *obj.Sprite, strip int) *obj.Sprite {
	if m.Platforms == nil {
		return nil
	}
	feet := feetBB(s.Bounds(), strip)
	for _, p := range m.Platforms.Sprites() {
		if p == s {
			continue
		}
		if rests(feet, topBB(p.Bounds(), strip)) {
			return p
		}
	}
	return nil
}

// rests reports whether feet sit on top. cp counts shared edges as contact,
// which is wanted vertically, but a sprite flush against the side of a
// platform must not catch on its corner.
func rests(feet, top cp.BB) bool {
	return feet.Intersects(top) && feet.L < top.R && top.L < feet.R
}

// feetBB is the strip along the bottom edge of r.
// Screen Y grows downwards, so B holds the upper edge and T the lower one.
func feetBB(r geom.Rect, strip int) cp.BB {
	return cp.BB{L: r.X, B: r.Bottom() - float64(strip), R: r.Right(), T: r.Bottom()}
}

// topBB is the strip along the top edge of r.
func topBB(r geom.Rect, strip int) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Y + float64(strip)}
}
