package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
	"github.com/Garsondee/Steering-Wars/internal/spectate"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := spectate.NewServer(w, cfg.Spectate.SnapshotInterval())
	httpSrv := &http.Server{
		Addr:              cfg.Spectate.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("spectate: %v", err)
		}
	}()

	log.Printf("spectating on %s (ws endpoint: /ws)", cfg.Spectate.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
