package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gametools/config"
	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/prefabs"
	"github.com/milk9111/gametools/render"
	"github.com/milk9111/gametools/scene"
)

// Game runs one scene. Coins touching the player group are collected.
type Game struct {
	cfg       config.GameConfig
	sceneName string
	scene     *scene.Scene
	screen    geom.Rect

	input   *Input
	canvas  *render.Canvas
	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI

	tick        uint64
	score       int
	paused      bool
	debugBounds bool
	quit        bool
}

func NewGame(cfg config.GameConfig, watcher *prefabs.Watcher) (*Game, error) {
	sc, err := scene.Load(cfg.Scene, scene.OptionsFrom(cfg))
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:         cfg,
		sceneName:   cfg.Scene,
		scene:       sc,
		screen:      geom.NewRect(0, 0, cfg.Window.Width, cfg.Window.Height),
		input:       NewInput(),
		canvas:      render.NewCanvas(),
		watcher:     watcher,
		debugBounds: cfg.Debug.Bounds,
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// reload rebuilds the scene from disk, keeping the old one on failure.
func (g *Game) reload() {
	sc, err := scene.Load(g.sceneName, scene.OptionsFrom(g.cfg))
	if err != nil {
		log.Error("scene reload failed, keeping the running scene", "scene", g.sceneName, "err", err)
		return
	}
	g.scene = sc
	g.score = 0
	log.Info("scene reloaded", "scene", g.sceneName, "sprites", sc.Len())
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Warn("prefab watcher", "err", err)
		}
	default:
	}
	changes := g.watcher.Drain()
	if len(changes) == 0 {
		return
	}
	for _, c := range changes {
		log.Debug("prefab changed", "path", c.Path, "kind", c.Kind)
	}
	g.reload()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debugBounds = !g.debugBounds
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	g.tick++
	in := g.input.Update(g.screen, g.tick)
	g.scene.Update(in)

	coins, player := g.scene.Group("coins"), g.scene.Group("player")
	if coins != nil && player != nil {
		if got := coins.RemoveAllIntersectingGroup(player, geom.Touch); len(got) > 0 {
			g.score += len(got)
			log.Debug("coins collected", "count", len(got), "score", g.score)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.Background)
	g.canvas.Begin(screen)
	g.scene.Draw(g.canvas)
	if s := g.scene.TopmostAt(g.input.current.Mouse); s != nil && s.Draggable() {
		g.canvas.DrawOutline(s)
	}
	if g.debugBounds {
		render.DebugBounds(screen, g.canvas.Offset, g.scene.Groups()...)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  sprites: %d  score: %d  TPS: %.0f",
		g.sceneName, g.scene.Len(), g.score, ebiten.ActualTPS()))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
