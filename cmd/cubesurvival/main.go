package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cubesurvival/internal/audio"
	"cubesurvival/internal/audio/speaker"
	"cubesurvival/internal/config"
	"cubesurvival/internal/game"
	"cubesurvival/internal/highscore"
	"cubesurvival/internal/logging"
	"cubesurvival/internal/metrics"
	"cubesurvival/internal/sim"
	"cubesurvival/internal/term"
)

// terminalLogFile receives logs when the terminal owns stdout and stderr.
const terminalLogFile = "cubesurvival.log"

func main() {
	configPath := flag.String("config", "", "path to YAML config (default $CUBE_CONFIG)")
	frontend := flag.String("frontend", "", "desktop or terminal (overrides config)")
	seed := flag.Uint64("seed", 0, "simulation seed (overrides config, 0 = clock)")
	flag.Parse()

	if err := run(*configPath, *frontend, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "cubesurvival: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, frontend string, seed uint64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if frontend != "" {
		cfg.Frontend = frontend
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if cfg.Frontend == config.FrontendTerminal && cfg.Log.File == "" {
		cfg.Log.File = terminalLogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if err := logging.Init(level, cfg.Log.File); err != nil {
		return err
	}
	defer logging.Close()

	store, err := highscore.Open(cfg.HighScore.Backend, cfg.HighScore.Path)
	if err != nil {
		return fmt.Errorf("open highscore store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.LogWarn("close highscore store: %v", err)
		}
	}()

	s := sim.NewSession(cfg.SeedOrClock(), store)
	logging.LogInfo("session seed %d, high score %d", s.Seed(), s.HighScore)

	if rec, ok := store.(highscore.RunRecorder); ok {
		highscore.AttachRunRecorder(s, rec)
	}

	if cfg.Audio.Enabled {
		out, err := speaker.Open()
		if err != nil {
			logging.LogWarn("audio init failed (continuing without sound): %v", err)
		} else {
			audio.NewEngine(out, cfg.Audio.SFXVolume).Attach(s.Events)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var onTick func(*sim.Session, time.Duration)
	if cfg.Metrics.Addr != "" {
		exp := metrics.NewExporter()
		exp.Attach(s)
		onTick = exp.ObserveTick
		go func() {
			if err := exp.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logging.LogError("metrics server: %v", err)
			}
		}()
	}

	switch cfg.Frontend {
	case config.FrontendTerminal:
		return term.Run(ctx, s, cfg.Terminal, onTick)
	default:
		game.RunDesktop(ctx, cfg.Window, s, onTick)
	}
	return nil
}
