// gametools runs prefab scenes built from sprites and groups.
//
// Usage:
//
//	gametools                 - Run the configured scene
//	gametools --scene orbit   - Run another scene
//	gametools validate        - Build every scene without opening a window
//	gametools scenes          - List the available scenes
package main

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/gametools/config"
	"github.com/milk9111/gametools/prefabs"
	"github.com/milk9111/gametools/scene"
)

var (
	flagConfig string
	flagScene  string
	flagTPS    int
	flagDebug  bool
	flagWatch  bool
)

func main() {
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gametools",
	}))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gametools",
	Short: "Run sprite and group scenes",
	Long: `Runs a scene of prefab sprites.

Controls:
  Esc        - Pause menu
  F3         - Toggle bounds overlay
  Arrows     - Steer the ship
  A/D Space  - Walk and jump`,
	SilenceUsage: true,
	RunE:         runGame,
}

var validateCmd = &cobra.Command{
	Use:   "validate [scene...]",
	Short: "Build scenes without opening a window",
	RunE:  runValidate,
}

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the embedded scenes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range prefabs.Scenes() {
			fmt.Println(strings.TrimSuffix(path.Base(s), ".yaml"))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging and bounds overlay")
	rootCmd.Flags().StringVar(&flagScene, "scene", "", "Scene to run (overrides the config)")
	rootCmd.Flags().IntVar(&flagTPS, "tps", 0, "Ticks per second (overrides the config)")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the scene when prefab files change")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scenesCmd)
}

func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagScene != "" {
		cfg.Scene = flagScene
	}
	if flagTPS > 0 {
		cfg.TPS = flagTPS
	}
	if flagDebug {
		cfg.Debug.Bounds = true
		cfg.Debug.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	level, err := log.ParseLevel(cfg.Debug.LogLevel)
	if err != nil {
		log.Warn("unknown log level, using info", "level", cfg.Debug.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	return cfg, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var watcher *prefabs.Watcher
	if flagWatch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scenes", "prefabs/scripts")
		if err != nil {
			log.Warn("hot reload disabled", "err", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	game, err := NewGame(cfg, watcher)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(int(float64(cfg.Window.Width)*cfg.Window.Scale), int(float64(cfg.Window.Height)*cfg.Window.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	log.Info("starting", "scene", cfg.Scene, "tps", cfg.TPS)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = prefabs.Scenes()
	}

	var errs []error
	for _, name := range names {
		sc, err := scene.Load(name, scene.OptionsFrom(cfg))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		log.Info("ok", "scene", name, "groups", len(sc.Groups()), "sprites", sc.Len())
	}
	return errors.Join(errs...)
}
