package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animsheet/common"
)

func main() {
	prefab := flag.String("prefab", "hero.yaml", "prefab in prefabs/ to preview")
	debug := flag.Bool("debug", false, "mark sprite origins and log frame events")
	speed := flag.Float64("speed", 0, "playback speed multiplier (0 keeps the saved speed)")
	watch := flag.Bool("watch", true, "reload prefabs and loop scripts when they change on disk")
	flag.Parse()

	settings, err := OpenSettingsStore("")
	if err != nil {
		log.Printf("[Settings] %v (settings will not be saved)", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("animsheet - " + *prefab)
	ebiten.SetWindowClosingHandled(true)

	game, err := NewGame(Options{
		Prefab:   *prefab,
		Debug:    *debug,
		Speed:    *speed,
		Watch:    *watch,
		Settings: settings,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
