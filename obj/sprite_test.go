package obj

import (
	"image"
	"math"
	"testing"

	"github.com/milk9111/gametools/component"
	"github.com/milk9111/gametools/geom"
)

const eps = 1e-6

func blank(w, h int) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func newBox(x, y float64, w, h int) *Sprite {
	return NewSprite(geom.Pt(x, y), component.NewStill(blank(w, h)))
}

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestNewSpriteTakesFrameSize(t *testing.T) {
	s := newBox(10, 20, 30, 16)
	if got := s.Bounds(); got != geom.NewRect(10, 20, 30, 16) {
		t.Fatalf("Bounds = %v", got)
	}
	empty := NewSprite(geom.Pt(5, 5), nil)
	if b := empty.Bounds(); b.Width != 0 || b.Height != 0 {
		t.Fatalf("nil animation bounds = %v", b)
	}
	empty.Update(nil)
	empty.Draw(nil)
}

func TestSetAngleRestoresSize(t *testing.T) {
	s := newBox(100, 100, 40, 20)
	center := s.Center()

	s.SetAngle(math.Pi / 2)
	if b := s.Bounds(); b.Width != 20 || b.Height != 40 {
		t.Fatalf("quarter turn bounds = %v", b)
	}
	s.SetAngle(math.Pi / 4)
	if b := s.Bounds(); b.Width <= 40 || b.Height <= 20 {
		t.Fatalf("diagonal bounds should enclose the rotated image, got %v", b)
	}
	s.SetAngle(3)
	s.SetAngle(0)
	if b := s.Bounds(); b.Width != 40 || b.Height != 20 {
		t.Fatalf("bounds after SetAngle(0) = %v", b)
	}
	if c := s.Center(); !near(c.X, center.X) || !near(c.Y, center.Y) {
		t.Fatalf("center drifted from %v to %v", center, c)
	}
}

func TestSetAngleNormalizes(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	cases := []struct {
		in, want float64
	}{
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
	}
	for _, c := range cases {
		s.SetAngle(c.in)
		if !near(s.Angle(), c.want) {
			t.Errorf("SetAngle(%v) -> %v, want %v", c.in, s.Angle(), c.want)
		}
	}
}

func TestEnforceMovementAreaClampsViolatedAxis(t *testing.T) {
	cases := []struct {
		name  string
		x, y  float64
		w, h  int
		wantX float64
		wantY float64
	}{
		{"past_right", 150, 10, 20, 20, 80, 10},
		{"past_left", -30, 10, 20, 20, 0, 10},
		{"past_bottom", 10, 95, 20, 20, 10, 80},
		{"past_top_left", -5, -5, 20, 20, 0, 0},
		{"inside", 40, 40, 20, 20, 40, 40},
		{"wider_than_area", -10, 10, 150, 20, 0, 10},
		{"wider_than_area_from_right", 30, 10, 150, 20, 0, 10},
		{"taller_than_area", 10, -10, 20, 120, 10, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newBox(c.x, c.y, c.w, c.h)
			s.LockMovementArea(geom.Some(geom.NewRect(0, 0, 100, 100)))
			for i := 0; i < 4; i++ {
				s.EnforceMovementArea()
				if p := s.Position(); p.X != c.wantX || p.Y != c.wantY {
					t.Fatalf("call %d: position = %v, want (%v, %v)", i, p, c.wantX, c.wantY)
				}
			}
		})
	}
}

func TestEnforceMovementAreaWithoutArea(t *testing.T) {
	s := newBox(500, 500, 20, 20)
	s.EnforceMovementArea()
	if p := s.Position(); p.X != 500 || p.Y != 500 {
		t.Fatalf("unconstrained sprite moved to %v", p)
	}
}

func TestMoveInDirection(t *testing.T) {
	cases := []struct {
		dir    Direction
		dx, dy float64
	}{
		{East, 5, 0},
		{South, 0, 5},
		{West, -5, 0},
		{North, 0, -5},
		{SouthEast, 5 / math.Sqrt2, 5 / math.Sqrt2},
	}
	for _, c := range cases {
		t.Run(c.dir.String(), func(t *testing.T) {
			s := newBox(0, 0, 10, 10)
			s.MoveInDirection(c.dir)
			p := s.Position()
			if !near(p.X, c.dx) || !near(p.Y, c.dy) {
				t.Fatalf("moved to %v, want (%v, %v)", p, c.dx, c.dy)
			}
			if s.LastDirection() != c.dir {
				t.Fatalf("LastDirection = %v", s.LastDirection())
			}
		})
	}
}

func TestRelationalMovementUsesFacing(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	s.SetRelationalMovement(true)
	s.SetAngle(math.Pi / 2)
	start := s.Center()
	s.MoveInDirection(East)
	c := s.Center()
	if !near(c.X, start.X) || !near(c.Y, start.Y+DefaultSpeed) {
		t.Fatalf("relational east facing south moved %v -> %v", start, c)
	}
}

func TestMoveAtAngleClearsLastDirection(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	s.MoveInDirection(North)
	s.MoveAtAngle(0)
	if s.LastDirection() != NoDirection {
		t.Fatalf("LastDirection = %v", s.LastDirection())
	}
}

func TestMoveTowardsDoesNotOvershoot(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	target := geom.Pt(8, 5)
	s.MoveTowards(target)
	if c := s.Center(); !near(c.X, 8) || !near(c.Y, 5) {
		t.Fatalf("center = %v, want target", c)
	}
	s.MoveTowards(target)
	if c := s.Center(); !near(c.X, 8) || !near(c.Y, 5) {
		t.Fatalf("sprite left its target: %v", c)
	}
}

func TestContinuousMovement(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	s.MoveContinuouslyInDirection(East)
	s.Update(nil)
	s.Update(nil)
	if p := s.Position(); !near(p.X, 2*DefaultSpeed) {
		t.Fatalf("x after two ticks = %v", p.X)
	}
	if s.LastDirection() != East {
		t.Fatalf("continuous compass move should record its direction, got %v", s.LastDirection())
	}

	s.MoveContinuouslyAtAngle(math.Pi / 2)
	s.Update(nil)
	if p := s.Position(); !near(p.X, 2*DefaultSpeed) || !near(p.Y, DefaultSpeed) {
		t.Fatalf("angle latch should replace the direction latch, at %v", p)
	}
	if s.LastDirection() != NoDirection {
		t.Fatalf("LastDirection = %v", s.LastDirection())
	}

	s.StopContinuousMovement()
	before := s.Position()
	s.Update(nil)
	if s.Position() != before || s.MovingContinuously() {
		t.Fatalf("sprite kept moving after stop")
	}
}

func TestLastDirectionClearedWithoutMove(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	moving := true
	s.SetHook(HookFunc(func(s *Sprite, _ *Input) {
		if moving {
			s.MoveInDirection(West)
		}
	}))
	s.Update(nil)
	if s.LastDirection() != West {
		t.Fatalf("LastDirection after move = %v", s.LastDirection())
	}
	moving = false
	s.Update(nil)
	if s.LastDirection() != NoDirection {
		t.Fatalf("LastDirection after idle tick = %v", s.LastDirection())
	}
}

func TestRotateAroundFacesDirectionOfTravel(t *testing.T) {
	cases := []struct {
		name        string
		delta       float64
		wantCenter  geom.Point
		wantHeading float64
	}{
		{"clockwise", math.Pi / 2, geom.Pt(0, 100), math.Pi},
		{"counter_clockwise", -math.Pi / 2, geom.Pt(0, -100), math.Pi},
		{"small_step", 0.1, geom.Pt(100*math.Cos(0.1), 100*math.Sin(0.1)), 0.1 + math.Pi/2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newBox(95, -5, 10, 10)
			s.RotateAround(geom.Pt(0, 0), c.delta)
			got := s.Center()
			if math.Abs(got.X-c.wantCenter.X) > 1e-9 || math.Abs(got.Y-c.wantCenter.Y) > 1e-9 {
				t.Fatalf("center = %v, want %v", got, c.wantCenter)
			}
			if !near(s.Angle(), c.wantHeading) {
				t.Fatalf("heading = %v, want %v", s.Angle(), c.wantHeading)
			}
		})
	}
}

func TestRotateAroundOwnCenterIsNoop(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	s.RotateAround(s.Center(), 1)
	if s.Angle() != 0 || s.Position() != geom.Pt(0, 0) {
		t.Fatalf("rotating around itself changed the sprite")
	}
}

func TestTurnTowardsAngleTakesShortestWay(t *testing.T) {
	cases := []struct {
		name         string
		from, target float64
		want         float64
	}{
		{"across_zero", 0.1, 2*math.Pi - 0.1, 0.05},
		{"forward", 1, 2, 1.05},
		{"backward", 2, 1, 1.95},
		{"snaps_when_close", 1, 1.03, 1.03},
		{"wraps_up", 2*math.Pi - 0.02, 0.5, 0.03},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newBox(0, 0, 10, 10)
			s.SetAngle(c.from)
			s.TurnTowardsAngle(c.target)
			if !near(s.Angle(), c.want) {
				t.Fatalf("angle = %v, want %v", s.Angle(), c.want)
			}
		})
	}
}

func TestFace(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	s.Face(geom.Pt(5, 100))
	if !near(s.Angle(), math.Pi/2) {
		t.Fatalf("angle = %v", s.Angle())
	}
}

func TestSetAnimationKeepsCenterAndPrevious(t *testing.T) {
	s := newBox(0, 0, 20, 20)
	old := s.Animation()
	s.SetAnimation(component.NewStill(blank(40, 10)))
	if c := s.Center(); c != geom.Pt(10, 10) {
		t.Fatalf("center = %v", c)
	}
	if b := s.Bounds(); b.Width != 40 || b.Height != 10 {
		t.Fatalf("bounds = %v", b)
	}
	if s.PreviousAnimation() != old {
		t.Fatalf("previous animation not retained")
	}
	s.Update(nil)
	if s.PreviousAnimation() != nil {
		t.Fatalf("previous animation should be dropped after one update")
	}
}

func TestPlaySwitchesNamedAnimations(t *testing.T) {
	s := newBox(0, 0, 20, 20)
	walk := component.NewAnimation([]image.Image{blank(20, 20), blank(20, 20)}, 1, component.Forever)
	jump := component.NewStill(blank(20, 30))
	s.SetAnimationSet(map[string]*component.Animation{"walk": walk, "jump": jump})

	if names := s.AnimationNames(); len(names) != 2 || names[0] != "jump" || names[1] != "walk" {
		t.Fatalf("AnimationNames = %v", names)
	}
	if s.Play("run") {
		t.Fatalf("Play of an unknown name should fail")
	}
	if !s.Play("walk") || s.Animation() != walk || s.AnimationName() != "walk" {
		t.Fatalf("walk not playing")
	}
	s.Update(nil)
	if walk.FrameIndex() != 1 {
		t.Fatalf("walk frame = %d, want 1", walk.FrameIndex())
	}
	s.Play("walk")
	if walk.FrameIndex() != 1 {
		t.Fatalf("replaying the current animation should not restart it")
	}
	s.Play("jump")
	if b := s.Bounds(); b.Height != 30 || s.Center() != geom.Pt(10, 10) {
		t.Fatalf("bounds after jump = %v", b)
	}
}

func TestResizeRescalesAndRecenters(t *testing.T) {
	s := newBox(0, 0, 20, 20)
	s.Resize(40, 30)
	if b := s.Bounds(); b != geom.NewRect(-10, -5, 40, 30) {
		t.Fatalf("bounds = %v", b)
	}
	if img := s.Image(); img.Bounds().Dx() != 40 {
		t.Fatalf("frame width = %d", img.Bounds().Dx())
	}
}

func TestDragFollowsMouse(t *testing.T) {
	s := newBox(10, 10, 20, 20)
	s.SetDraggable(true)

	s.Update(&Input{Mouse: geom.Pt(15, 12), MouseDown: true, MouseJustPressed: true})
	if !s.Dragging() {
		t.Fatalf("press inside should start a drag")
	}
	s.Update(&Input{Mouse: geom.Pt(55, 42), MouseDown: true})
	if p := s.Position(); p != geom.Pt(50, 40) {
		t.Fatalf("dragged to %v, want grab offset preserved", p)
	}
	s.Update(&Input{Mouse: geom.Pt(90, 90), MouseJustReleased: true})
	if s.Dragging() {
		t.Fatalf("release should end the drag")
	}
	s.Update(&Input{Mouse: geom.Pt(200, 200), MouseDown: true})
	if p := s.Position(); p == geom.Pt(195, 198) {
		t.Fatalf("sprite followed the mouse after release")
	}

	other := newBox(0, 0, 20, 20)
	other.Update(&Input{Mouse: geom.Pt(5, 5), MouseDown: true, MouseJustPressed: true})
	if other.Dragging() {
		t.Fatalf("non-draggable sprite started dragging")
	}
}

func TestHookRunsBeforeMovementArea(t *testing.T) {
	s := newBox(0, 0, 10, 10)
	s.LockMovementArea(geom.Some(geom.NewRect(0, 0, 50, 50)))
	s.SetHook(HookFunc(func(s *Sprite, _ *Input) { s.Translate(100, 0) }))
	s.Update(nil)
	if p := s.Position(); p.X != 40 {
		t.Fatalf("movement area not enforced after hook, x = %v", p.X)
	}
}

func TestAnimationEventsSurfaceNextTick(t *testing.T) {
	anim := component.NewAnimation([]image.Image{blank(4, 4), blank(4, 4)}, 1, component.Forever)
	events := component.NewAnimationEventMap()
	events.Add(1, component.AnimationEvent{Name: "step"})
	s := NewSprite(geom.Pt(0, 0), anim)
	component.BindAnimationEvents(anim, events, s.Emitter())

	s.Update(nil)
	if len(s.AnimationEvents()) != 0 {
		t.Fatalf("events visible too early: %v", s.AnimationEvents())
	}
	var seen []string
	s.SetHook(HookFunc(func(s *Sprite, _ *Input) {
		for _, e := range s.AnimationEvents() {
			seen = append(seen, e.Name)
		}
	}))
	s.Update(nil)
	if len(seen) != 1 || seen[0] != "step" {
		t.Fatalf("hook saw %v", seen)
	}
}

func TestAnimationEventsSurviveLaterTicks(t *testing.T) {
	anim := component.NewAnimation([]image.Image{blank(4, 4), blank(4, 4)}, 1, component.Forever)
	events := component.NewAnimationEventMap()
	events.Add(0, component.AnimationEvent{Name: "left"})
	events.Add(1, component.AnimationEvent{Name: "right"})
	s := NewSprite(geom.Pt(0, 0), anim)
	component.BindAnimationEvents(anim, events, s.Emitter())

	var held []component.AnimationEvent
	for i := 0; i < 6 && len(held) == 0; i++ {
		s.Update(nil)
		held = s.AnimationEvents()
	}
	if len(held) == 0 {
		t.Fatalf("no events surfaced")
	}
	first := held[0].Name
	s.Update(nil)
	if next := s.AnimationEvents(); len(next) == 0 || next[0].Name == first {
		t.Fatalf("next tick surfaced %v, want the other frame's event", next)
	}
	if held[0].Name != first {
		t.Fatalf("held event changed from %q to %q", first, held[0].Name)
	}
}

type recordingCanvas struct {
	names map[image.Image]string
	drawn []string
	last  Transform
}

func (c *recordingCanvas) DrawFrame(img image.Image, t Transform) {
	c.drawn = append(c.drawn, c.names[img])
	c.last = t
}

func TestDrawHandsTransform(t *testing.T) {
	s := newBox(0, 0, 20, 10)
	s.SetAngle(math.Pi / 2)
	c := &recordingCanvas{}
	s.Draw(c)
	if len(c.drawn) != 1 {
		t.Fatalf("draw calls = %d", len(c.drawn))
	}
	if c.last.Pivot != s.Center() || c.last.Angle != s.Angle() {
		t.Fatalf("transform = %+v", c.last)
	}
	if c.last.Origin != geom.Pt(0, 0) {
		t.Fatalf("origin should be the unrotated image corner, got %v", c.last.Origin)
	}
}
