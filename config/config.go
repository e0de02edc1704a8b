// Package config loads the demo's YAML configuration.
package config

import (
	"errors"
	"fmt"
)

// GameConfig is the top-level demo configuration.
type GameConfig struct {
	Window  WindowConfig  `yaml:"window"`
	TPS     int           `yaml:"tps"`
	Scene   string        `yaml:"scene"`
	Debug   DebugConfig   `yaml:"debug"`
	Sprite  SpriteConfig  `yaml:"sprite"`
	Gravity GravityConfig `yaml:"gravity"`
}

// WindowConfig sizes the window. Width and Height are the logical screen,
// Scale multiplies the window size only.
type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type DebugConfig struct {
	Bounds   bool   `yaml:"bounds"`
	LogLevel string `yaml:"log_level"`
}

// SpriteConfig holds defaults for sprites whose prefab leaves them unset.
type SpriteConfig struct {
	Speed         float64 `yaml:"speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
}

type GravityConfig struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
}

// Validate reports every invalid field at once.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window scale %v must be positive", c.Window.Scale))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if c.Scene == "" {
		errs = append(errs, errors.New("scene is required"))
	}
	if c.Sprite.Speed < 0 || c.Sprite.RotationSpeed < 0 {
		errs = append(errs, errors.New("sprite speeds must not be negative"))
	}
	if c.Gravity.Gravity < 0 || c.Gravity.TerminalVelocity < 0 {
		errs = append(errs, errors.New("gravity values must not be negative"))
	}
	return errors.Join(errs...)
}
