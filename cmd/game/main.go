package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Steering-Wars/internal/audio"
	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
	"github.com/Garsondee/Steering-Wars/internal/view"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	w, err := game.NewWorld(cfg.Settings())
	if err != nil {
		log.Fatal(err)
	}
	if err := w.Populate(); err != nil {
		log.Fatal(err)
	}

	var cue view.KillCue
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer sm.Cleanup()
			cue = sm
		}
	}

	ebiten.SetWindowTitle("Steering Wars")
	ebiten.SetWindowSize(int(cfg.Sim.FieldWidth), int(cfg.Sim.FieldHeight))
	ebiten.SetTPS(game.TicksPerSecond)
	if err := ebiten.RunGame(view.New(w, cfg.View, cue)); err != nil {
		log.Fatal(err)
	}
}
