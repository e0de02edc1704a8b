package obj

import (
	"slices"

	"github.com/milk9111/gametools/geom"
)

// Group is an ordered collection of sprites. Insertion order is the update
// order; drawing runs in reverse so later sprites end up on top.
//
// Membership changes made while Update or Draw is running (for example from
// a sprite hook) are deferred until the pass finishes. Sprites removed
// mid-pass are skipped by the rest of the pass and by collision queries.
type Group struct {
	Name string

	sprites    []*Sprite
	removeArea geom.OptRect
	prune      bool

	passes  int
	doomed  map[*Sprite]struct{}
	pending []pendingAdd
}

type pendingAdd struct {
	index  int
	sprite *Sprite
}

func NewGroup(sprites ...*Sprite) *Group {
	g := &Group{}
	g.Add(sprites...)
	return g
}

func (g *Group) inPass() bool { return g.passes > 0 }

func (g *Group) removed(s *Sprite) bool {
	_, ok := g.doomed[s]
	return ok
}

func (g *Group) live() []*Sprite {
	if len(g.doomed) == 0 {
		return g.sprites
	}
	out := make([]*Sprite, 0, len(g.sprites))
	for _, s := range g.sprites {
		if !g.removed(s) {
			out = append(out, s)
		}
	}
	return out
}

// Add appends sprites. Nil sprites and sprites already in the group are
// ignored.
func (g *Group) Add(sprites ...*Sprite) {
	for _, s := range sprites {
		g.Insert(-1, s)
	}
}

// Insert places s at index i. A negative or out-of-range index appends.
func (g *Group) Insert(i int, s *Sprite) {
	if s == nil {
		return
	}
	if g.inPass() {
		if g.removed(s) {
			delete(g.doomed, s)
		}
		if g.Has(s) || g.queued(s) {
			return
		}
		g.pending = append(g.pending, pendingAdd{index: i, sprite: s})
		return
	}
	if slices.Contains(g.sprites, s) {
		return
	}
	if i < 0 || i >= len(g.sprites) {
		g.sprites = append(g.sprites, s)
		return
	}
	g.sprites = slices.Insert(g.sprites, i, s)
}

// Remove takes s out of the group. It reports whether s was a member.
func (g *Group) Remove(s *Sprite) bool {
	if s == nil {
		return false
	}
	for i, p := range g.pending {
		if p.sprite == s {
			g.pending = slices.Delete(g.pending, i, i+1)
			return true
		}
	}
	idx := slices.Index(g.sprites, s)
	if idx < 0 || g.removed(s) {
		return false
	}
	if g.inPass() {
		g.mark(s)
		return true
	}
	g.sprites = slices.Delete(g.sprites, idx, idx+1)
	return true
}

func (g *Group) mark(s *Sprite) {
	if g.doomed == nil {
		g.doomed = make(map[*Sprite]struct{})
	}
	g.doomed[s] = struct{}{}
}

// RemoveGroup removes every member of other from g.
func (g *Group) RemoveGroup(other *Group) {
	if other == nil {
		return
	}
	for _, s := range slices.Clone(other.live()) {
		g.Remove(s)
	}
}

func (g *Group) Clear() {
	g.pending = nil
	if g.inPass() {
		for _, s := range g.sprites {
			g.mark(s)
		}
		return
	}
	g.sprites = nil
	g.doomed = nil
}

// Has reports whether s is a live member. Sprites added during a pass join
// when the pass ends.
func (g *Group) Has(s *Sprite) bool {
	if s == nil {
		return false
	}
	return slices.Contains(g.sprites, s) && !g.removed(s)
}

func (g *Group) queued(s *Sprite) bool {
	return slices.ContainsFunc(g.pending, func(p pendingAdd) bool { return p.sprite == s })
}

// Len counts the live members, the same sprites Has, At and Sprites see.
// Additions queued during a pass are not counted until it ends.
func (g *Group) Len() int { return len(g.sprites) - len(g.doomed) }

// At returns the i-th live sprite, or nil when i is out of range.
func (g *Group) At(i int) *Sprite {
	live := g.live()
	if i < 0 || i >= len(live) {
		return nil
	}
	return live[i]
}

// Sprites returns a copy of the live members in insertion order.
func (g *Group) Sprites() []*Sprite { return slices.Clone(g.live()) }

// SetRemoveArea sets the area sprites must keep touching when pruning is on.
func (g *Group) SetRemoveArea(area geom.Rect) { g.removeArea = geom.Some(area) }
func (g *Group) ClearRemoveArea()              { g.removeArea = geom.None() }
func (g *Group) RemoveArea() geom.OptRect      { return g.removeArea }

func (g *Group) SetPrune(on bool) { g.prune = on }
func (g *Group) Prune() bool      { return g.prune }

// RemoveWhenOffScreen prunes sprites once they stop touching screen.
func (g *Group) RemoveWhenOffScreen(screen geom.Rect) {
	g.SetRemoveArea(screen)
	g.SetPrune(true)
}

func (g *Group) outOfBounds(s *Sprite) bool {
	if !g.prune {
		return false
	}
	area, ok := g.removeArea.Get()
	return ok && !s.Intersects(area, geom.Touch)
}

// flush applies the removals and additions deferred during a pass.
func (g *Group) flush() {
	if g.inPass() {
		return
	}
	if len(g.doomed) > 0 {
		g.sprites = slices.DeleteFunc(g.sprites, g.removed)
		g.doomed = nil
	}
	pending := g.pending
	g.pending = nil
	for _, p := range pending {
		g.Insert(p.index, p.sprite)
	}
}

// Update advances every sprite in insertion order and prunes the ones that
// left the remove area.
func (g *Group) Update(in *Input) {
	g.passes++
	for i := 0; i < len(g.sprites); i++ {
		s := g.sprites[i]
		if g.removed(s) {
			continue
		}
		s.Update(in)
		if g.outOfBounds(s) {
			g.mark(s)
		}
	}
	g.passes--
	g.flush()
}

// Draw draws the live sprites back to front, last added on top.
func (g *Group) Draw(c Canvas) {
	g.passes++
	for i := len(g.sprites) - 1; i >= 0; i-- {
		s := g.sprites[i]
		if g.removed(s) {
			continue
		}
		s.Draw(c)
	}
	g.passes--
	g.flush()
}

func (g *Group) UpdateAndDraw(in *Input, c Canvas) {
	g.Update(in)
	g.Draw(c)
}

// Each calls fn for every live sprite in insertion order.
func (g *Group) Each(fn func(s *Sprite)) {
	g.passes++
	for i := 0; i < len(g.sprites); i++ {
		if s := g.sprites[i]; !g.removed(s) {
			fn(s)
		}
	}
	g.passes--
	g.flush()
}

// SetHook gives every current member the same hook.
func (g *Group) SetHook(h Hook) {
	g.Each(func(s *Sprite) { s.SetHook(h) })
}

func (g *Group) Turn(rot Rotation) {
	g.Each(func(s *Sprite) { s.Turn(rot) })
}

func (g *Group) Orbit(pivot geom.Point, rot Rotation) {
	g.Each(func(s *Sprite) { s.Orbit(pivot, rot) })
}

func (g *Group) Translate(dx, dy float64) {
	g.Each(func(s *Sprite) { s.Translate(dx, dy) })
}

// Contains reports whether any member covers p.
func (g *Group) Contains(p geom.Point) bool {
	return g.TopmostAt(p) != nil
}

// TopmostAt returns the last-drawn sprite covering p, or nil.
func (g *Group) TopmostAt(p geom.Point) *Sprite {
	for i := len(g.sprites) - 1; i >= 0; i-- {
		s := g.sprites[i]
		if !g.removed(s) && s.Contains(p) {
			return s
		}
	}
	return nil
}

func (g *Group) AnyIntersects(r geom.Rect, mode geom.CollisionMode) bool {
	for _, s := range g.sprites {
		if !g.removed(s) && s.Intersects(r, mode) {
			return true
		}
	}
	return false
}

func (g *Group) AnyIntersectsSprite(o *Sprite, mode geom.CollisionMode) bool {
	return g.AnyIntersectsSprites(mode, o)
}

// AnyIntersectsSprites tests every member against every sprite in others.
// A sprite never collides with itself.
func (g *Group) AnyIntersectsSprites(mode geom.CollisionMode, others ...*Sprite) bool {
	for _, s := range g.sprites {
		if g.removed(s) {
			continue
		}
		for _, o := range others {
			if s.IntersectsSprite(o, mode) {
				return true
			}
		}
	}
	return false
}

func (g *Group) AnyIntersectsGroup(o *Group, mode geom.CollisionMode) bool {
	if o == nil {
		return false
	}
	return g.AnyIntersectsSprites(mode, o.live()...)
}

// AllIntersecting returns the members intersecting r, in group order.
func (g *Group) AllIntersecting(r geom.Rect, mode geom.CollisionMode) []*Sprite {
	var out []*Sprite
	for _, s := range g.sprites {
		if !g.removed(s) && s.Intersects(r, mode) {
			out = append(out, s)
		}
	}
	return out
}

// AllIntersectingSprites returns the members intersecting any of others.
// Each member appears at most once, in group order.
func (g *Group) AllIntersectingSprites(mode geom.CollisionMode, others ...*Sprite) []*Sprite {
	var out []*Sprite
	for _, s := range g.sprites {
		if g.removed(s) {
			continue
		}
		for _, o := range others {
			if s.IntersectsSprite(o, mode) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func (g *Group) AllIntersectingGroup(o *Group, mode geom.CollisionMode) []*Sprite {
	if o == nil {
		return nil
	}
	return g.AllIntersectingSprites(mode, o.live()...)
}

func (g *Group) removeAll(hits []*Sprite) []*Sprite {
	for _, s := range hits {
		g.Remove(s)
	}
	return hits
}

// RemoveAllIntersecting removes and returns the members intersecting r.
func (g *Group) RemoveAllIntersecting(r geom.Rect, mode geom.CollisionMode) []*Sprite {
	return g.removeAll(g.AllIntersecting(r, mode))
}

func (g *Group) RemoveAllIntersectingSprites(mode geom.CollisionMode, others ...*Sprite) []*Sprite {
	return g.removeAll(g.AllIntersectingSprites(mode, others...))
}

func (g *Group) RemoveAllIntersectingGroup(o *Group, mode geom.CollisionMode) []*Sprite {
	return g.removeAll(g.AllIntersectingGroup(o, mode))
}
