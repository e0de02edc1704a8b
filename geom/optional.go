package geom

// OptRect is a rectangle that may be absent. The zero value is absent, which
// keeps "no constraint" distinct from a real zero-sized rect at the origin.
type OptRect struct {
	rect Rect
	ok   bool
}

func None() OptRect {
	return OptRect{}
}

func Some(r Rect) OptRect {
	return OptRect{rect: r, ok: true}
}

func (o OptRect) Get() (Rect, bool) {
	return o.rect, o.ok
}

func (o OptRect) IsSet() bool {
	return o.ok
}

// Admits reports whether r intersects the held rect. It is false when o is
// absent.
func (o OptRect) Admits(r Rect, mode CollisionMode) bool {
	if !o.ok {
		return false
	}
	return r.Intersects(o.rect, mode)
}
