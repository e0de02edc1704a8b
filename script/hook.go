package script

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/obj"
)

// dispatch is appended to every script so the host can call the script's
// update function with fresh engine bindings each tick.
const dispatch = `
if __phase == "update" {
	update(__engine, __state)
}
`

// Hook is an obj.Hook driven by a tengo script. The script must define
//
//	update := func(engine, state) { ... }
//
// engine exposes the sprite and the tick's input; state is a map that
// persists between ticks.
type Hook struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	reported bool
}

// NewHook compiles src. name is only used in log lines.
func NewHook(name string, src []byte) (*Hook, error) {
	s := tengo.NewScript([]byte(string(src) + "\n" + dispatch))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Hook{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (h *Hook) Name() string { return h.name }

// State returns the value stored under key in the script's state map.
func (h *Hook) State(key string) any {
	if h == nil {
		return nil
	}
	return objectToAny(h.state.Value[key])
}

// Update runs the script's update function. Only the first runtime error
// of a hook is logged.
func (h *Hook) Update(s *obj.Sprite, in *obj.Input) {
	if err := h.Run(s, in); err != nil && !h.reported {
		h.reported = true
		log.Error("script runtime error", "hook", h.name, "sprite", s.Name, "err", err)
	}
}

// Run executes one update and returns any runtime error.
func (h *Hook) Run(s *obj.Sprite, in *obj.Input) error {
	if h == nil || h.compiled == nil {
		return fmt.Errorf("script: nil hook")
	}
	if s == nil {
		return nil
	}
	if err := h.compiled.Set("__phase", "update"); err != nil {
		return err
	}
	if err := h.compiled.Set("__engine", buildEngine(s, in)); err != nil {
		return err
	}
	if err := h.compiled.Set("__state", h.state); err != nil {
		return err
	}
	return h.compiled.Run()
}

func buildEngine(s *obj.Sprite, in *obj.Input) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	add := func(name string, fn tengo.CallableFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: fn}
	}

	add("move", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		dir, err := obj.ParseDirection(objectAsString(args[0]))
		if err != nil || dir == obj.NoDirection {
			return tengo.FalseValue, nil
		}
		s.MoveInDirection(dir)
		return tengo.TrueValue, nil
	})

	add("move_continuously", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		dir, err := obj.ParseDirection(objectAsString(args[0]))
		if err != nil {
			return tengo.FalseValue, nil
		}
		s.MoveContinuouslyInDirection(dir)
		return tengo.TrueValue, nil
	})

	add("move_at", func(args ...tengo.Object) (tengo.Object, error) {
		theta, ok := floatArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.MoveAtAngle(theta)
		return tengo.TrueValue, nil
	})

	add("move_towards", func(args ...tengo.Object) (tengo.Object, error) {
		p, _, ok := pointArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.MoveTowards(p)
		return tengo.TrueValue, nil
	})

	add("set_angle", func(args ...tengo.Object) (tengo.Object, error) {
		theta, ok := floatArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.SetAngle(theta)
		return tengo.TrueValue, nil
	})

	add("turn_to", func(args ...tengo.Object) (tengo.Object, error) {
		theta, ok := floatArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.TurnTowardsAngle(theta)
		return tengo.TrueValue, nil
	})

	add("face", func(args ...tengo.Object) (tengo.Object, error) {
		p, _, ok := pointArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.Face(p)
		return tengo.TrueValue, nil
	})

	add("orbit", func(args ...tengo.Object) (tengo.Object, error) {
		p, n, ok := pointArg(args, 0)
		delta, ok2 := floatArg(args, n)
		if !ok || !ok2 {
			return tengo.FalseValue, nil
		}
		s.RotateAround(p, delta)
		return tengo.TrueValue, nil
	})

	add("turn", func(args ...tengo.Object) (tengo.Object, error) {
		dir, ok := floatArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		switch {
		case dir > 0:
			s.Turn(obj.Clockwise)
		case dir < 0:
			s.Turn(obj.CounterClockwise)
		}
		return tengo.TrueValue, nil
	})

	add("play", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(s.Play(objectAsString(args[0]))), nil
	})

	add("stop", func(args ...tengo.Object) (tengo.Object, error) {
		s.StopContinuousMovement()
		return tengo.TrueValue, nil
	})

	add("key", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(in.KeyDown(objectAsString(args[0]))), nil
	})

	add("key_pressed", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(in.KeyJustPressed(objectAsString(args[0]))), nil
	})

	add("mouse", func(args ...tengo.Object) (tengo.Object, error) {
		var p geom.Point
		down := false
		if in != nil {
			p, down = in.Mouse, in.MouseDown
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: p.X},
			&tengo.Float{Value: p.Y},
			boolObject(down),
		}}, nil
	})

	add("x", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Center().X}, nil
	})
	add("y", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Center().Y}, nil
	})
	add("angle", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Angle()}, nil
	})
	add("tick", func(args ...tengo.Object) (tengo.Object, error) {
		var t uint64
		if in != nil {
			t = in.Tick
		}
		return &tengo.Int{Value: int64(t)}, nil
	})

	add("events", func(args ...tengo.Object) (tengo.Object, error) {
		evts := s.AnimationEvents()
		out := make([]tengo.Object, 0, len(evts))
		for _, e := range evts {
			out = append(out, &tengo.String{Value: e.Name})
		}
		return &tengo.Array{Value: out}, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func floatArg(args []tengo.Object, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	return tengo.ToFloat64(args[i])
}

// pointArg reads args[i] and args[i+1] as x and y, or a single [x, y]
// array at args[i]. next is the index of the first unread argument.
func pointArg(args []tengo.Object, i int) (p geom.Point, next int, ok bool) {
	if i < len(args) {
		if arr, isArr := args[i].(*tengo.Array); isArr && len(arr.Value) >= 2 {
			x, okx := tengo.ToFloat64(arr.Value[0])
			y, oky := tengo.ToFloat64(arr.Value[1])
			return geom.Pt(x, y), i + 1, okx && oky
		}
	}
	x, okx := floatArg(args, i)
	y, oky := floatArg(args, i+1)
	return geom.Pt(x, y), i + 2, okx && oky
}

func objectAsString(o tengo.Object) string {
	if o == nil {
		return ""
	}
	switch v := o.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(o tengo.Object) any {
	if o == nil {
		return nil
	}
	switch v := o.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
