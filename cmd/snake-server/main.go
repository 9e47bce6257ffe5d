package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"snake-arcade/ai"
	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/manager"
	"snake-arcade/server"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	debug := flag.Bool("debug", false, "Run gin in debug mode")
	flag.Parse()

	logger := log.New(os.Stderr, "snake-server: ", log.LstdFlags)
	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := flags.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	stats, err := manager.NewStatsManager(cfg.StatsFile, cfg.StatsGroupSize)
	if err != nil {
		logger.Printf("stats: %v, starting with an empty history", err)
	}

	g, err := game.NewGame(cfg, game.WithRecorder(stats), game.WithLogger(logger))
	if err != nil {
		logger.Fatalf("game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// a quit from a client ends the process like a signal does
		select {
		case <-g.Done():
			stop()
		case <-ctx.Done():
		}
	}()

	if cfg.Autopilot {
		var opts []ai.PilotOption
		if cfg.AutoRestart {
			opts = append(opts, ai.WithAutoRestart())
		}
		go ai.NewPilot(g, cfg.AutopilotInterval, opts...).Run(ctx)
	}

	g.Reset()
	defer g.Quit()

	srv := server.New(g,
		server.WithStats(stats),
		server.WithLogger(logger),
		server.WithBroadcastInterval(cfg.BroadcastInterval),
	)
	if err := srv.Run(ctx, cfg.Listen); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
