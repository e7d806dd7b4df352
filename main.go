package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"snake-hamiltonian/config"
	"snake-hamiltonian/game"
	"snake-hamiltonian/game/manager"
	"snake-hamiltonian/logging"
	"snake-hamiltonian/tui"
	"snake-hamiltonian/ui"

	tea "github.com/charmbracelet/bubbletea"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	flags := config.NewFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigPath, flags.EnvFile)
	if err != nil {
		return err
	}
	flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logOpts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if cfg.Renderer == config.RendererTUI && cfg.LogFile == "" {
		// stderr shares the terminal with the board
		logOpts.Output = io.Discard
	}
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer closer.Close()

	stats, err := manager.NewStateManager(cfg.StatsFile)
	if err != nil {
		return err
	}

	opts, err := cfg.GameOptions()
	if err != nil {
		return err
	}
	opts.Stats = stats
	opts.Logger = logger
	g, err := game.NewGame(opts)
	if err != nil {
		logger.Error("setup failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("game started",
		slog.String("uuid", g.UUID),
		slog.Uint64("seed", g.Seed),
		slog.String("renderer", cfg.Renderer))

	switch cfg.Renderer {
	case config.RendererHeadless:
		return runHeadless(g, cfg, logger)
	case config.RendererTUI:
		return runTUI(g, cfg)
	default:
		return runRaylib(g, cfg)
	}
}

func runHeadless(g *game.Game, cfg config.Config, logger *slog.Logger) error {
	out, err := g.Run(cfg.MaxTicks)
	if err != nil {
		return err
	}
	sum := g.Stats().Summarize(game.EndWin.String())
	logger.Info("headless run finished",
		slog.Bool("over", out.Over),
		slog.String("reason", out.Reason.String()),
		slog.Int("score", out.Score),
		slog.Int("ticks", out.Tick),
		slog.Int("skips", g.Skips()),
		slog.Int("high_score", g.Stats().GetHighScore()))
	fmt.Printf("%s score=%d length=%d ticks=%d\n", out.Reason, out.Score, len(out.Body), out.Tick)
	fmt.Printf("history: games=%d wins=%d best=%d avg=%.1f median=%.1f avg_ticks=%.0f\n",
		sum.Games, sum.Wins, sum.MaxScore, sum.AverageScore, sum.MedianScore, sum.AverageSteps)
	return nil
}

func runTUI(g *game.Game, cfg config.Config) error {
	p := tea.NewProgram(tui.NewModel(g, cfg.Speed, cfg.DrawGrid), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func runRaylib(g *game.Game, cfg config.Config) error {
	rl.InitWindow(800, 830, "Snake Game")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer(cfg.DrawGrid)
	speed := cfg.Speed
	out := g.Outcome()
	lastUpdate := time.Now()

	for !rl.WindowShouldClose() {
		switch {
		case rl.IsKeyPressed(rl.KeyQ):
			return nil
		case rl.IsKeyPressed(rl.KeySpace):
			speed = game.ToggleFast(speed)
		case rl.IsKeyPressed(rl.KeyP):
			speed = game.ToggleSlow(speed)
		case rl.IsKeyPressed(rl.KeyG):
			renderer.DrawGrid = !renderer.DrawGrid
		}

		if !out.Over && time.Since(lastUpdate) >= game.TickInterval(speed) {
			var err error
			if out, err = g.Tick(); err != nil {
				return err
			}
			lastUpdate = time.Now()
		}

		renderer.Draw(g.Grid, out, speed)
	}
	return nil
}
