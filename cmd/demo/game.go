package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/stage2d/config"
	"github.com/milk9111/stage2d/render"
	"github.com/milk9111/stage2d/script"
	"github.com/milk9111/stage2d/stage"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	throwSpeed = 400
)

type Game struct {
	levelPath string

	scene *stage.Scene
	pool  *stage.ProjectilePool
	hero  *stage.Actor

	input  *Input
	paused bool
	pause  *PauseMenu

	reload chan struct{}
}

func NewGame(levelPath string) (*Game, error) {
	g := &Game{
		levelPath: levelPath,
		reload:    make(chan struct{}, 1),
	}
	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// RequestReload asks the game to rebuild the level on its next tick. Safe to
// call from the watcher goroutine.
func (g *Game) RequestReload() {
	select {
	case g.reload <- struct{}{}:
	default:
	}
}

func (g *Game) loadLevel() error {
	spec, err := config.LoadSpec[config.LevelSpec](g.levelPath)
	if err != nil {
		return err
	}
	scene, pool, err := config.BuildScene(spec)
	if err != nil {
		return err
	}

	var hero *stage.Actor
	scene.EachActor(func(_ int, a *stage.Actor) {
		if sn, ok := a.Node.(*render.SpriteNode); ok {
			sn.Color = kindColor(a.Kind)
		}
		if a.Kind == stage.KindHero && hero == nil {
			hero = a
		}
	})

	if spec.Script != "" {
		src, err := os.ReadFile(filepath.Join(filepath.Dir(g.levelPath), spec.Script))
		if err != nil {
			log.Printf("demo: level script: %v", err)
		} else if rt, err := script.Load(src); err != nil {
			log.Printf("demo: level script: %v", err)
		} else {
			rt.Attach(scene)
		}
	}

	if pool != nil && hero != nil {
		heroActor := hero
		scene.AddTouchHandler(stage.NewTouchHandler(heroActor, func(x, y float64) bool {
			return pool.ThrowAt(heroActor, 0, 0, x, y, throwSpeed) != nil
		}))
	}
	if hero != nil {
		hero.SetStopNotifier(scene, func(a *stage.Actor) {
			log.Printf("demo: %s stopped", a.Kind)
		})
	}
	scene.OnRemove = func(a *stage.Actor) {
		log.Printf("demo: %s removed", a.Kind)
	}

	name := spec.Name
	if name == "" {
		name = filepath.Base(g.levelPath)
	}

	g.scene = scene
	g.pool = pool
	g.hero = hero
	g.input = NewInput(scene.Camera())
	g.pause = NewPauseMenu(name,
		func() stage.Facts { return g.scene.Facts },
		func() { g.paused = false },
		g.RequestReload)
	return nil
}

func (g *Game) Update() error {
	select {
	case <-g.reload:
		if err := g.loadLevel(); err != nil {
			log.Printf("demo: reload failed: %v", err)
		} else {
			log.Printf("demo: level reloaded")
		}
	default:
	}

	g.input.Update()
	if g.input.PauseToggled {
		g.paused = !g.paused
	}
	if g.paused {
		g.pause.Update()
		return nil
	}

	g.scene.SetTiltVector(g.input.TiltX, g.input.TiltY)
	if g.input.ClickPressed {
		if !g.scene.Touch(g.input.MouseWorldX, g.input.MouseWorldY) {
			g.scene.TouchDown(g.input.MouseWorldX, g.input.MouseWorldY)
		}
	}
	if g.input.ClickReleased {
		g.scene.TouchUp(g.input.MouseWorldX, g.input.MouseWorldY)
	}

	g.scene.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x12, G: 0x12, B: 0x1a, A: 0xff})
	g.scene.Draw(render.NewImageCanvas(screen))

	f := g.scene.Facts
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"score %d   arrived %d   defeated %d   tick %d   FPS %.1f",
		f.Score, f.HeroesArrived, f.EnemiesDefeated, g.scene.Tick(), ebiten.ActualFPS()))

	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func kindColor(k stage.Kind) color.Color {
	switch k {
	case stage.KindHero:
		return colornames.Dodgerblue
	case stage.KindEnemy:
		return colornames.Crimson
	case stage.KindObstacle:
		return colornames.Slategray
	case stage.KindDestination:
		return colornames.Gold
	case stage.KindProjectile:
		return colornames.White
	case stage.KindGoodie:
		return colornames.Limegreen
	}
	return colornames.Magenta
}
