package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Frontend  string          `yaml:"frontend"`
	Seed      uint64          `yaml:"seed"`
	Window    WindowConfig    `yaml:"window"`
	Audio     AudioConfig     `yaml:"audio"`
	HighScore HighScoreConfig `yaml:"highscore"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
	Terminal  TerminalConfig  `yaml:"terminal"`
}

type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

type AudioConfig struct {
	Enabled   bool    `yaml:"enabled"`
	SFXVolume float64 `yaml:"sfx_volume"`
}

type HighScoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TerminalConfig tunes held-key emulation: terminals only report presses and
// auto-repeats, never releases.
type TerminalConfig struct {
	HoldFrames      int `yaml:"hold_frames"`
	FirstHoldFrames int `yaml:"first_hold_frames"`
}

const (
	FrontendDesktop  = "desktop"
	FrontendTerminal = "terminal"

	BackendFile   = "file"
	BackendBadger = "badger"
)

var ErrInvalid = errors.New("invalid config")

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Frontend: FrontendDesktop,
		Window:   WindowConfig{Width: 1000, Height: 700, VSync: true},
		Audio:    AudioConfig{Enabled: true, SFXVolume: 0.58},
		HighScore: HighScoreConfig{
			Backend: BackendFile,
			Path:    "high_score.txt",
		},
		Log:      LogConfig{Level: "info"},
		Terminal: TerminalConfig{HoldFrames: 8, FirstHoldFrames: 32},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. With path == "" it falls back to CUBE_CONFIG, and
// with neither set only defaults and environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("CUBE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CUBE_FRONTEND"); v != "" {
		c.Frontend = v
	}
	if v := os.Getenv("CUBE_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = seed
		}
	}
	if v := os.Getenv("CUBE_HIGHSCORE_PATH"); v != "" {
		c.HighScore.Path = v
	}
	if v := os.Getenv("CUBE_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Frontend {
	case FrontendDesktop, FrontendTerminal:
	default:
		return fmt.Errorf("%w: frontend %q", ErrInvalid, c.Frontend)
	}
	switch c.HighScore.Backend {
	case BackendFile, BackendBadger:
	default:
		return fmt.Errorf("%w: highscore backend %q", ErrInvalid, c.HighScore.Backend)
	}
	if c.HighScore.Path == "" {
		return fmt.Errorf("%w: highscore path is empty", ErrInvalid)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Audio.SFXVolume < 0 || c.Audio.SFXVolume > 1 {
		return fmt.Errorf("%w: sfx_volume %v outside [0,1]", ErrInvalid, c.Audio.SFXVolume)
	}
	if c.Terminal.HoldFrames <= 0 || c.Terminal.FirstHoldFrames <= 0 {
		return fmt.Errorf("%w: terminal hold frames must be positive", ErrInvalid)
	}
	return nil
}

// SeedOrClock returns the configured seed, or the clock when it is zero.
func (c *Config) SeedOrClock() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
