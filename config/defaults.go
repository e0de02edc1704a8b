package config

import (
	_ "embed"

	"github.com/milk9111/gametools/common"
	"github.com/milk9111/gametools/gravity"
	"github.com/milk9111/gametools/obj"
)

//go:embed defaults/gametools.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Window: WindowConfig{
			Title:  "gametools",
			Width:  common.BaseWidth,
			Height: common.BaseHeight,
			Scale:  1,
		},
		TPS:   common.DefaultTPS,
		Scene: "demo.yaml",
		Debug: DebugConfig{LogLevel: "info"},
		Sprite: SpriteConfig{
			Speed:         obj.DefaultSpeed,
			RotationSpeed: obj.DefaultRotationSpeed,
		},
		Gravity: GravityConfig{
			Gravity:          gravity.DefaultGravity,
			TerminalVelocity: gravity.DefaultTerminalVelocity,
		},
	}
}
