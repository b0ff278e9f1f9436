package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
	"github.com/Garsondee/Steering-Wars/internal/tui"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	tps := flag.Int("tps", 30, "ticks per second")
	flag.Parse()
	if *tps <= 0 {
		log.Fatalf("-tps must be > 0, got %d", *tps)
	}

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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := tui.NewViewer(screen, w, cfg.View).Run(ctx, *tps)
	screen.Fini()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatal(runErr)
	}
	log.Println(w.Result().Description())
}
