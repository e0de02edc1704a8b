package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SpriteSpec describes a reusable sprite prefab.
type SpriteSpec struct {
	Name          string          `yaml:"name"`
	Animation     AnimationSpec   `yaml:"animation"`
	Size          *SizeSpec       `yaml:"size"`
	Speed         float64         `yaml:"speed"`
	RotationSpeed float64         `yaml:"rotation_speed"`
	Angle         float64         `yaml:"angle"`
	Relational    bool            `yaml:"relational"`
	Draggable     bool            `yaml:"draggable"`
	Script        string          `yaml:"script"`
	MovementArea  *RectSpec       `yaml:"movement_area"`
	Continuous    *ContinuousSpec `yaml:"continuous"`
	Gravity       *GravitySpec    `yaml:"gravity"`
}

func LoadSpriteSpec(filename string) (*SpriteSpec, error) {
	spec, err := LoadSpec[SpriteSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s SpriteSpec) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("sprite name is required"))
	}
	if err := s.Animation.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Size != nil && (s.Size.Width <= 0 || s.Size.Height <= 0) {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", s.Size.Width, s.Size.Height))
	}
	if s.Speed < 0 || s.RotationSpeed < 0 {
		errs = append(errs, errors.New("speeds must not be negative"))
	}
	if s.Continuous != nil {
		if err := s.Continuous.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AnimationSpec names a sprite sheet and the clips cut from it.
type AnimationSpec struct {
	Sheet   string                      `yaml:"sheet"`
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
	Current string                      `yaml:"current"`
}

func (a AnimationSpec) Validate() error {
	if len(a.Defs) == 0 {
		return nil
	}
	if a.Sheet == "" {
		return errors.New("animation sheet is required when defs are set")
	}
	if a.Current != "" {
		if _, ok := a.Defs[a.Current]; !ok {
			return fmt.Errorf("animation current %q is not defined", a.Current)
		}
	}
	for name, def := range a.Defs {
		if def.FrameW <= 0 || def.FrameH <= 0 {
			return fmt.Errorf("animation %q: frame size %dx%d must be positive", name, def.FrameW, def.FrameH)
		}
		if def.Row < 0 || def.ColStart < 0 {
			return fmt.Errorf("animation %q: row and col_start must not be negative", name)
		}
	}
	return nil
}

// AnimationDefSpec is one clip. Frames are read left to right starting at
// (row, col_start) and wrap onto following rows. Pace is given either as
// hold_ticks or as fps at the game's tick rate.
type AnimationDefSpec struct {
	Row        int                 `yaml:"row"`
	ColStart   int                 `yaml:"col_start"`
	FrameCount int                 `yaml:"frame_count"`
	FrameW     int                 `yaml:"frame_w"`
	FrameH     int                 `yaml:"frame_h"`
	FPS        float64             `yaml:"fps"`
	HoldTicks  int                 `yaml:"hold_ticks"`
	Loop       bool                `yaml:"loop"`
	Repeat     int                 `yaml:"repeat"`
	Events     map[int][]EventSpec `yaml:"events"`
}

// Hold converts the clip's pace to ticks per frame.
func (d AnimationDefSpec) Hold(tps int) int {
	if d.HoldTicks > 0 {
		return d.HoldTicks
	}
	if d.FPS > 0 && tps > 0 {
		if h := int(float64(tps)/d.FPS + 0.5); h > 0 {
			return h
		}
	}
	return 1
}

// RepeatLimit is -1 (forever) for looping clips and clips without a
// positive repeat count.
func (d AnimationDefSpec) RepeatLimit() int {
	if d.Loop || d.Repeat <= 0 {
		return -1
	}
	return d.Repeat
}

type EventSpec struct {
	Name    string `yaml:"name"`
	Payload string `yaml:"payload"`
}

type SizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RectSpec is an explicit rectangle, or the whole screen when Screen is set.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Screen bool    `yaml:"screen"`
}

// ContinuousSpec latches movement at build time. Exactly one field is set.
type ContinuousSpec struct {
	Direction string     `yaml:"direction"`
	Angle     *float64   `yaml:"angle"`
	Towards   *PointSpec `yaml:"towards"`
}

func (c ContinuousSpec) Validate() error {
	n := 0
	if c.Direction != "" {
		n++
	}
	if c.Angle != nil {
		n++
	}
	if c.Towards != nil {
		n++
	}
	if n != 1 {
		return errors.New("continuous needs exactly one of direction, angle or towards")
	}
	return nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// GravitySpec attaches a falling mass. Zero values use the configured
// defaults. JumpKey, when set, jumps at JumpSpeed while grounded.
type GravitySpec struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	JumpKey          string  `yaml:"jump_key"`
	JumpSpeed        float64 `yaml:"jump_speed"`
}

// SceneSpec is a screen full of sprite groups.
type SceneSpec struct {
	Name       string      `yaml:"name"`
	Background *YAMLColor  `yaml:"background"`
	Groups     []GroupSpec `yaml:"groups"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s SceneSpec) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for i, g := range s.Groups {
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("group %d has no name", i))
			continue
		}
		if seen[g.Name] {
			errs = append(errs, fmt.Errorf("group %q defined twice", g.Name))
		}
		seen[g.Name] = true
		for j, p := range g.Sprites {
			if p.Prefab == "" {
				errs = append(errs, fmt.Errorf("group %q sprite %d has no prefab", g.Name, j))
			}
			if p.Count < 0 {
				errs = append(errs, fmt.Errorf("group %q sprite %d has negative count", g.Name, j))
			}
			if p.Continuous != nil {
				if err := p.Continuous.Validate(); err != nil {
					errs = append(errs, fmt.Errorf("group %q sprite %d: %w", g.Name, j, err))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// GroupSpec places prefab sprites into one group. A group marked
// platforms is what gravity sprites land on.
type GroupSpec struct {
	Name       string          `yaml:"name"`
	Prune      bool            `yaml:"prune"`
	RemoveArea *RectSpec       `yaml:"remove_area"`
	Platforms  bool            `yaml:"platforms"`
	Sprites    []PlacementSpec `yaml:"sprites"`
}

// PlacementSpec places Count copies of a prefab, each offset by (DX, DY)
// from the previous one. Non-zero fields override the prefab.
type PlacementSpec struct {
	Prefab     string          `yaml:"prefab"`
	Name       string          `yaml:"name"`
	X          float64         `yaml:"x"`
	Y          float64         `yaml:"y"`
	Center     bool            `yaml:"center"`
	Count      int             `yaml:"count"`
	DX         float64         `yaml:"dx"`
	DY         float64         `yaml:"dy"`
	Angle      *float64        `yaml:"angle"`
	Script     string          `yaml:"script"`
	Continuous *ContinuousSpec `yaml:"continuous"`
}

type YAMLColor struct {
	color.Color
}

// UnmarshalYAML accepts #rrggbb, #rrggbbaa or an SVG colour name.
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
