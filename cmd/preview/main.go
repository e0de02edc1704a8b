// preview shows one prefab in a window. Tab cycles its animations, the
// arrow keys turn it and B toggles its bounds.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gametools/config"
	"github.com/milk9111/gametools/geom"
	"github.com/milk9111/gametools/obj"
	"github.com/milk9111/gametools/render"
	"github.com/milk9111/gametools/scene"
)

const size = 512

type previewGame struct {
	logical int
	sprite  *obj.Sprite
	group   *obj.Group
	anims   []string
	index   int
	canvas  *render.Canvas
	bounds  bool
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.anims) > 0 {
		g.index = (g.index + 1) % len(g.anims)
		g.sprite.Play(g.anims[g.index])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.bounds = !g.bounds
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.sprite.Turn(obj.CounterClockwise)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.sprite.Turn(obj.Clockwise)
	}
	// The prefab's own hooks are not run, only its animation.
	g.sprite.Animation().Tick()
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	g.canvas.Begin(screen)
	g.sprite.Draw(g.canvas)
	if g.bounds {
		render.DebugBounds(screen, geom.Point{}, g.group)
	}
	name := "-"
	if len(g.anims) > 0 {
		name = g.anims[g.index]
	}
	a := g.sprite.Animation()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  anim: %s  frame %d/%d  hold %d",
		g.sprite.Name, name, a.FrameIndex()+1, a.Len(), a.HoldTicks()))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.logical, g.logical
}

func main() {
	prefab := flag.String("prefab", "ship.yaml", "prefab file to preview")
	scale := flag.Int("scale", 4, "pixel scale")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config", "err", err)
	}
	if *scale < 1 {
		*scale = 1
	}
	b := scene.NewBuilder(scene.OptionsFrom(cfg))
	s, err := b.Sprite(*prefab, geom.Point{}, nil)
	if err != nil {
		log.Error("cannot build prefab", "prefab", *prefab, "err", err)
		os.Exit(1)
	}
	logical := size / *scale
	s.CenterOn(geom.Pt(float64(logical/2), float64(logical/2)))

	g := &previewGame{
		logical: logical,
		sprite:  s,
		group:   obj.NewGroup(s),
		anims:   s.AnimationNames(),
		canvas:  render.NewCanvas(),
	}
	for i, n := range g.anims {
		if n == s.AnimationName() {
			g.index = i
		}
	}

	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle("preview " + *prefab)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal("run", "err", err)
	}
}
