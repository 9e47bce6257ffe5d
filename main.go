package main

import (
	"context"
	"flag"
	"log"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-arcade/ai"
	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/manager"
	"snake-arcade/ui"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "snake: ", log.LstdFlags)

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

	// room for the stats panel next to the board
	rl.InitWindow(int32(cfg.Width*4/3), int32(cfg.Height), "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

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

	renderer := ui.NewRenderer()
	for !rl.WindowShouldClose() {
		for _, cmd := range ui.PollCommands() {
			g.Handle(cmd)
		}
		select {
		case <-g.Done():
			return
		default:
		}
		renderer.Draw(g.Snapshot(), stats.Summary())
	}
}
