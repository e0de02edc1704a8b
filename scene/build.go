package scene

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/milk9111/gametools/assets"
	"github.com/milk9111/gametools/component"
	"github.com/milk9111/gametools/config"
	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/gravity"
	"github.com/milk9111/gametools/obj"
	"github.com/milk9111/gametools/prefabs"
	"github.com/milk9111/gametools/script"
)

// Options carries the settings prefabs fall back on.
type Options struct {
	Screen           geom.Rect
	TPS              int
	Speed            float64
	RotationSpeed    float64
	Gravity          float64
	TerminalVelocity float64
}

// OptionsFrom takes the screen and sprite defaults from cfg.
func OptionsFrom(cfg config.GameConfig) Options {
	return Options{
		Screen:           geom.NewRect(0, 0, cfg.Window.Width, cfg.Window.Height),
		TPS:              cfg.TPS,
		Speed:            cfg.Sprite.Speed,
		RotationSpeed:    cfg.Sprite.RotationSpeed,
		Gravity:          cfg.Gravity.Gravity,
		TerminalVelocity: cfg.Gravity.TerminalVelocity,
	}
}

// Builder turns prefab specs into sprites. Specs, scripts and animation
// clips are cached by name, so one builder should serve one scene load.
type Builder struct {
	opts    Options
	library *component.AnimationLibrary
	specs   map[string]*prefabs.SpriteSpec
	scripts map[string][]byte
	counter map[string]int
}

func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:    opts,
		library: component.NewAnimationLibrary(),
		specs:   map[string]*prefabs.SpriteSpec{},
		scripts: map[string][]byte{},
		counter: map[string]int{},
	}
}

// Library exposes the animation clips loaded so far.
func (b *Builder) Library() *component.AnimationLibrary { return b.library }

func (b *Builder) spriteSpec(name string) (*prefabs.SpriteSpec, error) {
	if spec, ok := b.specs[name]; ok {
		return spec, nil
	}
	spec, err := prefabs.LoadSpriteSpec(name)
	if err != nil {
		return nil, err
	}
	b.specs[name] = spec
	return spec, nil
}

func (b *Builder) scriptSource(name string) ([]byte, error) {
	if src, ok := b.scripts[name]; ok {
		return src, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load script %s: %w", name, err)
	}
	b.scripts[name] = src
	return src, nil
}

// clipKey namespaces a clip by prefab so two prefabs may share clip names.
func clipKey(prefab, clip string) string { return prefab + "/" + clip }

// registerClips loads the prefab's sheet once and registers every clip.
func (b *Builder) registerClips(spec *prefabs.SpriteSpec) error {
	anim := spec.Animation
	if len(anim.Defs) == 0 {
		return nil
	}
	names := make([]string, 0, len(anim.Defs))
	for name := range anim.Defs {
		if _, ok := b.library.Get(clipKey(spec.Name, name)); !ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	sheet, err := assets.LoadImage(anim.Sheet)
	if err != nil && !assets.IsPlaceholder(err) {
		return err
	}
	for _, name := range names {
		def := anim.Defs[name]
		frames := sheetFrames(sheet, def)
		if len(frames) == 0 {
			log.Warn("animation has no frames, using placeholder", "prefab", spec.Name, "clip", name)
			frames = []image.Image{assets.Placeholder()}
		}
		events := component.NewAnimationEventMap()
		for frame, evts := range def.Events {
			for _, e := range evts {
				events.Add(frame, component.AnimationEvent{Name: e.Name, Payload: e.Payload})
			}
		}
		clip := component.NewAnimation(frames, def.Hold(b.opts.TPS), def.RepeatLimit())
		if spec.Size != nil {
			clip.Rescale(spec.Size.Width, spec.Size.Height)
		}
		b.library.Register(clipKey(spec.Name, name), clip, events)
	}
	return nil
}

func sheetFrames(sheet image.Image, def prefabs.AnimationDefSpec) []image.Image {
	if sheet == nil || def.FrameW <= 0 {
		return nil
	}
	cols := sheet.Bounds().Dx() / def.FrameW
	start := def.Row*cols + def.ColStart
	return component.FramesFromSheet(sheet, def.FrameW, def.FrameH, start, def.FrameCount)
}

func (b *Builder) rect(r *prefabs.RectSpec) geom.OptRect {
	if r == nil {
		return geom.None()
	}
	if r.Screen {
		return geom.Some(b.opts.Screen)
	}
	return geom.Some(geom.NewRect(r.X, r.Y, r.Width, r.Height))
}

// Sprite builds one sprite from the named prefab with its top-left corner
// at pos. platforms is the group gravity sprites land on; it may be nil.
func (b *Builder) Sprite(prefab string, pos geom.Point, platforms *obj.Group) (*obj.Sprite, error) {
	spec, err := b.spriteSpec(prefab)
	if err != nil {
		return nil, err
	}
	if err := b.registerClips(spec); err != nil {
		return nil, err
	}

	s := obj.NewSprite(pos, nil)
	b.counter[spec.Name]++
	s.Name = fmt.Sprintf("%s#%d", spec.Name, b.counter[spec.Name])

	set := map[string]*component.Animation{}
	for name := range spec.Animation.Defs {
		anim, _ := b.library.Instance(clipKey(spec.Name, name), s.Emitter())
		set[name] = anim
	}
	s.SetAnimationSet(set)
	current := spec.Animation.Current
	if current == "" {
		current = firstKey(set)
	}
	if current != "" {
		s.Play(current)
	}
	s.SetPosition(pos)

	s.SetSpeed(pick(spec.Speed, b.opts.Speed))
	s.SetRotationSpeed(pick(spec.RotationSpeed, b.opts.RotationSpeed))
	s.SetRelationalMovement(spec.Relational)
	s.SetDraggable(spec.Draggable)
	s.LockMovementArea(b.rect(spec.MovementArea))
	if spec.Angle != 0 {
		s.SetAngle(spec.Angle)
	}
	if spec.Continuous != nil {
		if err := applyContinuous(s, *spec.Continuous); err != nil {
			return nil, fmt.Errorf("scene: prefab %s: %w", prefab, err)
		}
	}

	hooks, err := b.hooks(spec, spec.Script, platforms)
	if err != nil {
		return nil, err
	}
	s.SetHook(hooks)
	return s, nil
}

func (b *Builder) hooks(spec *prefabs.SpriteSpec, scriptName string, platforms *obj.Group) (obj.Hook, error) {
	var hooks []obj.Hook
	if scriptName != "" {
		src, err := b.scriptSource(scriptName)
		if err != nil {
			return nil, err
		}
		h, err := script.NewHook(scriptName, src)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, h)
	}
	if g := spec.Gravity; g != nil {
		m := gravity.NewMass(platforms)
		m.Gravity = pick(g.Gravity, b.opts.Gravity)
		m.TerminalVelocity = pick(g.TerminalVelocity, b.opts.TerminalVelocity)
		if g.JumpKey != "" {
			key, speed := g.JumpKey, g.JumpSpeed
			hooks = append(hooks, obj.HookFunc(func(_ *obj.Sprite, in *obj.Input) {
				if m.OnGround() && in.KeyJustPressed(key) {
					m.Jump(speed)
				}
			}))
		}
		hooks = append(hooks, m)
	}
	return obj.ChainHooks(hooks...), nil
}

func applyContinuous(s *obj.Sprite, c prefabs.ContinuousSpec) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch {
	case c.Direction != "":
		dir, err := obj.ParseDirection(c.Direction)
		if err != nil {
			return err
		}
		s.MoveContinuouslyInDirection(dir)
	case c.Angle != nil:
		s.MoveContinuouslyAtAngle(*c.Angle)
	case c.Towards != nil:
		s.MoveContinuouslyTowards(geom.Pt(c.Towards.X, c.Towards.Y))
	}
	return nil
}

// Build creates every group of spec. Errors from individual placements are
// collected so one bad prefab does not hide the others.
func (b *Builder) Build(spec *prefabs.SceneSpec) (*Scene, error) {
	if spec == nil {
		return nil, errors.New("scene: nil spec")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	sc := newScene(spec.Name, b.opts.Screen)
	if spec.Background != nil {
		sc.Background = spec.Background.Color
	}

	// Platform groups must exist before any gravity sprite is built.
	for _, gs := range spec.Groups {
		g := sc.addGroup(gs.Name)
		if gs.Platforms {
			sc.platforms = append(sc.platforms, g)
		}
	}
	platforms := sc.Platforms()

	var errs []error
	for _, gs := range spec.Groups {
		g := sc.Group(gs.Name)
		if area, ok := b.rect(gs.RemoveArea).Get(); ok {
			g.SetRemoveArea(area)
		}
		g.SetPrune(gs.Prune)
		for _, p := range gs.Sprites {
			if err := b.place(g, p, platforms); err != nil {
				errs = append(errs, fmt.Errorf("group %s: %w", gs.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		return sc, errors.Join(errs...)
	}
	return sc, nil
}

func (b *Builder) place(g *obj.Group, p prefabs.PlacementSpec, platforms *obj.Group) error {
	count := p.Count
	if count == 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		pos := geom.Pt(p.X+float64(i)*p.DX, p.Y+float64(i)*p.DY)
		s, err := b.Sprite(p.Prefab, pos, platforms)
		if err != nil {
			return err
		}
		if p.Center {
			s.CenterOn(pos)
		}
		if p.Name != "" {
			s.Name = p.Name
			if count > 1 {
				s.Name = fmt.Sprintf("%s#%d", p.Name, i+1)
			}
		}
		if p.Angle != nil {
			s.SetAngle(*p.Angle)
		}
		if p.Continuous != nil {
			s.StopContinuousMovement()
			if err := applyContinuous(s, *p.Continuous); err != nil {
				return err
			}
		}
		if p.Script != "" {
			spec, _ := b.spriteSpec(p.Prefab)
			hooks, err := b.hooks(spec, p.Script, platforms)
			if err != nil {
				return err
			}
			s.SetHook(hooks)
		}
		g.Add(s)
	}
	return nil
}

func pick(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

func firstKey(m map[string]*component.Animation) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}
