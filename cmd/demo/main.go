package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/stage2d/config"
)

func main() {
	levelPath := flag.String("level", "levels/arena.yaml", "level spec to load")
	watch := flag.Bool("watch", true, "reload the level when its spec or script changes")
	flag.Parse()

	game, err := NewGame(*levelPath)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		watcher, err := config.WatchDirs(
			func(string) { game.RequestReload() },
			[]string{".yaml", ".yml", ".tengo"},
			filepath.Dir(*levelPath))
		if err != nil {
			log.Printf("demo: watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("stage2d demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(45)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
