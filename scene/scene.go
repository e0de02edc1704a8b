// Package scene assembles sprite groups from prefab scene files.
package scene

import (
	"fmt"
	"image/color"

	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/obj"
	"github.com/milk9111/gametools/prefabs"
)

// Scene owns a set of named groups updated and drawn in declaration order.
type Scene struct {
	Name       string
	Background color.Color
	Screen     geom.Rect

	groups []*obj.Group
	byName map[string]*obj.Group

	// platforms lists the groups marked as platforms; merged mirrors their
	// members so gravity sees one group.
	platforms []*obj.Group
	merged    *obj.Group
}

func newScene(name string, screen geom.Rect) *Scene {
	return &Scene{
		Name:       name,
		Background: color.Black,
		Screen:     screen,
		byName:     map[string]*obj.Group{},
		merged:     obj.NewGroup(),
	}
}

// Load reads the named scene and builds it.
func Load(name string, opts Options) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(prefabs.SceneFile(name))
	if err != nil {
		return nil, err
	}
	sc, err := NewBuilder(opts).Build(spec)
	if err != nil {
		return sc, fmt.Errorf("scene %s: %w", name, err)
	}
	return sc, nil
}

func (sc *Scene) addGroup(name string) *obj.Group {
	g := obj.NewGroup()
	g.Name = name
	sc.groups = append(sc.groups, g)
	sc.byName[name] = g
	return g
}

// Group returns the named group or nil.
func (sc *Scene) Group(name string) *obj.Group {
	return sc.byName[name]
}

// Groups returns the groups in update order.
func (sc *Scene) Groups() []*obj.Group {
	return append([]*obj.Group(nil), sc.groups...)
}

// Platforms is the union of every platform group. It is refreshed at the
// start of each Update.
func (sc *Scene) Platforms() *obj.Group { return sc.merged }

func (sc *Scene) syncPlatforms() {
	sc.merged.Clear()
	for _, g := range sc.platforms {
		sc.merged.Add(g.Sprites()...)
	}
}

// Len counts sprites across all groups.
func (sc *Scene) Len() int {
	n := 0
	for _, g := range sc.groups {
		n += g.Len()
	}
	return n
}

func (sc *Scene) Update(in *obj.Input) {
	sc.syncPlatforms()
	for _, g := range sc.groups {
		g.Update(in)
	}
}

// Draw paints the groups back to front, so the first declared group is
// drawn on top.
func (sc *Scene) Draw(c obj.Canvas) {
	for i := len(sc.groups) - 1; i >= 0; i-- {
		sc.groups[i].Draw(c)
	}
}

// TopmostAt returns the topmost sprite under p across all groups.
func (sc *Scene) TopmostAt(p geom.Point) *obj.Sprite {
	for _, g := range sc.groups {
		if s := g.TopmostAt(p); s != nil {
			return s
		}
	}
	return nil
}
