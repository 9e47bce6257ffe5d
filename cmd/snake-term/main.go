package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-arcade/ai"
	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/manager"
	"snake-arcade/ui/terminal"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	logPath := flag.String("log", filepath.Join("data", "snake-term.log"), "Log file (the terminal is busy drawing)")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// the terminal is the display, so logs go to a file
	if err := os.MkdirAll(filepath.Dir(*logPath), 0755); err != nil {
		log.Fatalf("log directory: %v", err)
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "snake-term: ", log.LstdFlags)

	stats, err := manager.NewStatsManager(cfg.StatsFile, cfg.StatsGroupSize)
	if err != nil {
		logger.Printf("stats: %v, starting with an empty history", err)
	}

	g, err := game.NewGame(cfg, game.WithRecorder(stats), game.WithLogger(logger))
	if err != nil {
		log.Fatalf("game: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Autopilot {
		var opts []ai.PilotOption
		if cfg.AutoRestart {
			opts = append(opts, ai.WithAutoRestart())
		}
		go ai.NewPilot(g, cfg.AutopilotInterval, opts...).Run(ctx)
	}

	g.Reset()
	defer g.Quit()

	terminal.NewApp(screen, g, stats.Summary, 30*time.Millisecond).Run(ctx)
}
