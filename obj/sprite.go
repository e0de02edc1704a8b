package obj

import (
	"fmt"
	"image"
	"math"
	"slices"
	"sort"

	"github.com/milk9111/gametools/common"
	"github.com/milk9111/gametools/component"
	"github.com/milk9111/gametools/geom"
)

const (
	DefaultSpeed         = 5.0
	DefaultRotationSpeed = 0.05
)

type continuousKind uint8

const (
	continuousOff continuousKind = iota
	continuousAngle
	continuousDirection
)

// continuousMove is the latched movement re-applied every tick.
type continuousMove struct {
	kind  continuousKind
	angle float64
	dir   Direction
}

// Transform tells a renderer how to place the current frame: translate the
// unrotated image to Origin, then rotate by Angle about Pivot.
type Transform struct {
	Angle  float64
	Pivot  geom.Point
	Origin geom.Point
}

// Sprite is a movable, rotatable, animated rectangle. Its bounds always
// enclose the rotated image; collision tests use those bounds.
type Sprite struct {
	Name string

	bounds     geom.Rect
	imgW, imgH int

	anim         *component.Animation
	animSet      map[string]*component.Animation
	animName     string
	previous     *component.Animation
	previousTick uint64
	emitter      component.AnimationEventEmitter
	pending      []component.AnimationEvent
	events       []component.AnimationEvent

	angle         float64
	speed         float64
	rotationSpeed float64
	relational    bool
	movementArea  geom.OptRect

	lastDir    Direction
	moved      bool
	continuous continuousMove

	hook Hook

	draggable  bool
	dragging   bool
	dragOffset geom.Point

	ticks uint64
}

// NewSprite places anim's frames with their top-left corner at pos. A nil
// animation gives an empty, zero-sized sprite.
func NewSprite(pos geom.Point, anim *component.Animation) *Sprite {
	s := &Sprite{
		speed:         DefaultSpeed,
		rotationSpeed: DefaultRotationSpeed,
	}
	s.emitter.Handlers = []component.AnimationEventHandler{
		func(_ *component.Animation, _ int, evt component.AnimationEvent) {
			s.pending = append(s.pending, evt)
		},
	}
	if anim == nil {
		anim = component.NewStill(nil)
	}
	s.anim = anim
	s.imgW, s.imgH = anim.Size()
	s.bounds = geom.Rect{X: pos.X, Y: pos.Y, Width: s.imgW, Height: s.imgH}
	return s
}

func (s *Sprite) Bounds() geom.Rect { return s.bounds }
func (s *Sprite) Center() geom.Point { return s.bounds.Center() }
func (s *Sprite) Position() geom.Point { return s.bounds.Position() }
func (s *Sprite) Angle() float64 { return s.angle }
func (s *Sprite) Speed() float64 { return s.speed }
func (s *Sprite) RotationSpeed() float64 { return s.rotationSpeed }
func (s *Sprite) Relational() bool { return s.relational }
func (s *Sprite) LastDirection() Direction { return s.lastDir }
func (s *Sprite) MovementArea() geom.OptRect { return s.movementArea }
func (s *Sprite) Animation() *component.Animation { return s.anim }
func (s *Sprite) Hook() Hook { return s.hook }
func (s *Sprite) Draggable() bool { return s.draggable }
func (s *Sprite) Dragging() bool { return s.dragging }

// PreviousAnimation is the animation replaced by the last SetAnimation. It
// is kept for one update after the swap.
func (s *Sprite) PreviousAnimation() *component.Animation { return s.previous }

// AnimationEvents returns a copy of the frame events raised during the
// previous tick.
func (s *Sprite) AnimationEvents() []component.AnimationEvent { return slices.Clone(s.events) }

// Emitter receives the sprite's animation frame events. Bind clips to it
// with component.BindAnimationEvents.
func (s *Sprite) Emitter() *component.AnimationEventEmitter { return &s.emitter }

// ImageRect is the unrotated image rectangle centred on the sprite.
func (s *Sprite) ImageRect() geom.Rect {
	r := geom.Rect{Width: s.imgW, Height: s.imgH}
	r.CenterOn(s.Center())
	return r
}

// Image returns the frame to draw this tick.
func (s *Sprite) Image() image.Image { return s.anim.Frame() }

// Transform returns the current drawing transform.
func (s *Sprite) Transform() Transform {
	return Transform{
		Angle:  s.angle,
		Pivot:  s.Center(),
		Origin: s.ImageRect().Position(),
	}
}

func (s *Sprite) SetSpeed(speed float64) { s.speed = speed }

// SetRotationSpeed sets the radians turned per Turn/Orbit/TurnTowards step.
func (s *Sprite) SetRotationSpeed(speed float64) { s.rotationSpeed = math.Abs(speed) }

// SetRelationalMovement makes compass moves relative to the facing angle.
func (s *Sprite) SetRelationalMovement(on bool) { s.relational = on }

// LockMovementArea keeps the sprite inside area. Pass geom.None() to unlock.
func (s *Sprite) LockMovementArea(area geom.OptRect) { s.movementArea = area }

func (s *Sprite) SetHook(h Hook) { s.hook = h }

func (s *Sprite) SetDraggable(on bool) {
	if !on {
		s.dragging = false
	}
	s.draggable = on
}

func (s *Sprite) SetPosition(p geom.Point) { s.bounds.SetPosition(p) }
func (s *Sprite) CenterOn(p geom.Point) { s.bounds.CenterOn(p) }
func (s *Sprite) Translate(dx, dy float64) { s.bounds.Translate(dx, dy) }

// SetAnimation swaps the animation and resizes the bounds to the new frame
// size around the same center.
func (s *Sprite) SetAnimation(anim *component.Animation) {
	if anim == nil {
		anim = component.NewStill(nil)
	}
	if anim == s.anim {
		return
	}
	s.previous = s.anim
	s.previousTick = s.ticks
	s.anim = anim
	s.syncImageSize(true)
}

// SetAnimationSet registers named animations for Play.
func (s *Sprite) SetAnimationSet(set map[string]*component.Animation) {
	s.animSet = set
}

// AnimationNames lists the animation set in sorted order.
func (s *Sprite) AnimationNames() []string {
	names := make([]string, 0, len(s.animSet))
	for name := range s.animSet {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnimationName is the name of the animation last started by Play.
func (s *Sprite) AnimationName() string { return s.animName }

// Play switches to the named animation from the set, restarting it. Playing
// the animation that is already showing does nothing.
func (s *Sprite) Play(name string) bool {
	anim, ok := s.animSet[name]
	if !ok {
		return false
	}
	s.animName = name
	if anim == s.anim {
		return true
	}
	anim.Reset()
	s.SetAnimation(anim)
	return true
}

// Resize rescales the animation frames to w×h and resyncs the bounds.
func (s *Sprite) Resize(w, h int) {
	s.anim.Rescale(w, h)
	s.syncImageSize(false)
}

func (s *Sprite) syncImageSize(force bool) {
	w, h := s.anim.Size()
	if !force && w == s.imgW && h == s.imgH {
		return
	}
	s.imgW, s.imgH = w, h
	s.refreshBounds()
}

// SetAngle faces theta (radians, clockwise on screen) and recomputes the
// bounds as the axis-aligned box around the rotated image.
func (s *Sprite) SetAngle(theta float64) {
	s.angle = common.NormalizeAngle(theta)
	s.refreshBounds()
}

func (s *Sprite) refreshBounds() {
	c := s.Center()
	img := geom.Rect{Width: s.imgW, Height: s.imgH}
	img.CenterOn(c)
	if s.angle == 0 {
		s.bounds = img
		return
	}
	corners := img.Corners()
	for i := range corners {
		corners[i].RotateAround(c, s.angle)
	}
	r := geom.BoundsOf(corners[:]...)
	r.CenterOn(c)
	s.bounds = r
}

// Face turns the sprite to look at p.
func (s *Sprite) Face(p geom.Point) {
	c := s.Center()
	if c == p {
		return
	}
	s.SetAngle(c.AngleTo(p))
}

// Turn rotates in place by one rotation-speed step.
func (s *Sprite) Turn(rot Rotation) {
	if rot == NoRotation {
		return
	}
	s.SetAngle(s.angle + float64(rot)*s.rotationSpeed)
}

// TurnTowardsAngle turns at most one rotation-speed step towards target,
// taking the shorter way round.
func (s *Sprite) TurnTowardsAngle(target float64) {
	d := common.ShortestTurn(s.angle, target)
	if math.Abs(d) <= s.rotationSpeed {
		s.SetAngle(target)
		return
	}
	if d > 0 {
		s.Turn(Clockwise)
	} else {
		s.Turn(CounterClockwise)
	}
}

func (s *Sprite) TurnTowards(p geom.Point) {
	c := s.Center()
	if c == p {
		return
	}
	s.TurnTowardsAngle(c.AngleTo(p))
}

// RotateAround swings the sprite's center around pivot by delta and then
// faces its direction of travel, the tangent of the orbit.
func (s *Sprite) RotateAround(pivot geom.Point, delta float64) {
	c := s.Center()
	if c == pivot || delta == 0 {
		return
	}
	c.RotateAround(pivot, delta)
	s.bounds.CenterOn(c)
	heading := pivot.AngleTo(c) + math.Pi/2
	if delta < 0 {
		heading = pivot.AngleTo(c) - math.Pi/2
	}
	s.SetAngle(heading)
}

// Orbit rotates around pivot by one rotation-speed step.
func (s *Sprite) Orbit(pivot geom.Point, rot Rotation) {
	s.RotateAround(pivot, float64(rot)*s.rotationSpeed)
}

// MoveAtAngle steps speed pixels along theta.
func (s *Sprite) MoveAtAngle(theta float64) {
	s.step(theta, s.speed)
	s.lastDir = NoDirection
}

func (s *Sprite) step(theta, dist float64) {
	s.bounds.Translate(math.Cos(theta)*dist, math.Sin(theta)*dist)
}

// MoveTowards steps towards p without overshooting it.
func (s *Sprite) MoveTowards(p geom.Point) {
	c := s.Center()
	d := c.DistanceTo(p)
	if d == 0 {
		s.lastDir = NoDirection
		return
	}
	s.step(c.AngleTo(p), math.Min(s.speed, d))
	s.lastDir = NoDirection
}

// MoveInDirection steps along a compass heading, relative to the facing
// angle when relational movement is on.
func (s *Sprite) MoveInDirection(dir Direction) {
	theta, ok := dir.Angle()
	if !ok {
		return
	}
	if s.relational {
		theta += s.angle
	}
	s.MoveAtAngle(theta)
	s.moved = true
	s.lastDir = dir
}

// MoveInDirectionAt is MoveInDirection with a one-off speed.
func (s *Sprite) MoveInDirectionAt(dir Direction, speed float64) {
	prev := s.speed
	s.speed = speed
	s.MoveInDirection(dir)
	s.speed = prev
}

// MoveContinuouslyAtAngle latches movement along theta every tick.
func (s *Sprite) MoveContinuouslyAtAngle(theta float64) {
	s.continuous = continuousMove{kind: continuousAngle, angle: theta}
}

// MoveContinuouslyInDirection latches a compass heading every tick.
func (s *Sprite) MoveContinuouslyInDirection(dir Direction) {
	if dir == NoDirection {
		s.StopContinuousMovement()
		return
	}
	s.continuous = continuousMove{kind: continuousDirection, dir: dir}
}

// MoveContinuouslyTowards latches the current heading to p.
func (s *Sprite) MoveContinuouslyTowards(p geom.Point) {
	s.MoveContinuouslyAtAngle(s.Center().AngleTo(p))
}

func (s *Sprite) StopContinuousMovement() {
	s.continuous = continuousMove{}
	s.lastDir = NoDirection
}

// MovingContinuously reports whether a latched movement is active.
func (s *Sprite) MovingContinuously() bool {
	return s.continuous.kind != continuousOff
}

// EnforceMovementArea pulls the sprite back inside its movement area, only
// on the axis that left it, snapping to the nearer edge of that axis. On an
// axis where the sprite is larger than the area it is pinned to the area's
// left or top edge.
func (s *Sprite) EnforceMovementArea() {
	area, ok := s.movementArea.Get()
	if !ok {
		return
	}
	if !s.bounds.Intersects(area, geom.InsideX) {
		if s.bounds.X < area.X || s.bounds.Width > area.Width {
			s.bounds.X = area.X
		} else {
			s.bounds.X = area.Right() - float64(s.bounds.Width)
		}
	}
	if !s.bounds.Intersects(area, geom.InsideY) {
		if s.bounds.Y < area.Y || s.bounds.Height > area.Height {
			s.bounds.Y = area.Y
		} else {
			s.bounds.Y = area.Bottom() - float64(s.bounds.Height)
		}
	}
}

func (s *Sprite) Contains(p geom.Point) bool {
	return s.bounds.Contains(p)
}

func (s *Sprite) Intersects(r geom.Rect, mode geom.CollisionMode) bool {
	return s.bounds.Intersects(r, mode)
}

func (s *Sprite) IntersectsSprite(o *Sprite, mode geom.CollisionMode) bool {
	if o == nil || o == s {
		return false
	}
	return s.bounds.Intersects(o.bounds, mode)
}

func (s *Sprite) updateDrag(in *Input) {
	if in == nil {
		return
	}
	if s.draggable && in.MouseJustPressed && s.Contains(in.Mouse) {
		s.dragging = true
		s.dragOffset = in.Mouse.Sub(s.bounds.Position())
	}
	if s.dragging {
		s.bounds.SetPosition(in.Mouse.Sub(s.dragOffset))
	}
	if !in.MouseDown {
		s.dragging = false
	}
}

// Update advances the sprite by one tick: hook, drag, latched movement,
// movement area, then animation.
func (s *Sprite) Update(in *Input) {
	s.ticks++
	s.events, s.pending = s.pending, s.events[:0]

	if s.hook != nil {
		s.hook.Update(s, in)
	}
	s.updateDrag(in)

	switch s.continuous.kind {
	case continuousDirection:
		s.MoveInDirection(s.continuous.dir)
	case continuousAngle:
		s.MoveAtAngle(s.continuous.angle)
	}
	if !s.moved {
		s.lastDir = NoDirection
	}
	s.moved = false

	s.EnforceMovementArea()

	s.anim.Tick()
	s.syncImageSize(false)

	if s.previous != nil && s.ticks > s.previousTick {
		s.previous = nil
	}
}

// Draw hands the current frame and transform to c.
func (s *Sprite) Draw(c Canvas) {
	if c == nil {
		return
	}
	img := s.anim.Frame()
	if img == nil {
		return
	}
	c.DrawFrame(img, s.Transform())
}

func (s *Sprite) UpdateAndDraw(in *Input, c Canvas) {
	s.Update(in)
	s.Draw(c)
}

func (s *Sprite) String() string {
	name := s.Name
	if name == "" {
		name = "sprite"
	}
	return fmt.Sprintf("%s%v", name, s.bounds)
}
