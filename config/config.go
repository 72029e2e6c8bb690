// Package config reads settings from flags, the environment and an optional
// .env file. Flags win over the environment, the environment over defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds runtime options
type Config struct {
	UI        string // "raylib" or "terminal"
	Store     string // "file", "sqlite" or "memory"
	StorePath string
	StatsPath string
	Seed      int64 // 0 picks a time based seed
	Sound     bool
	LogLevel  zerolog.Level
	LogFile   string
}

func defaults() Config {
	return Config{
		UI:       "raylib",
		Store:    "file",
		Sound:    true,
		LogLevel: zerolog.InfoLevel,
	}
}

// Load parses args (without the program name). envFile is loaded first when
// present; a missing file is not an error.
func Load(args []string, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := defaults()
	cfg.UI = getEnv("SNAKE_UI", cfg.UI)
	cfg.Store = getEnv("SNAKE_STORE", cfg.Store)
	cfg.StorePath = getEnv("SNAKE_STORE_PATH", cfg.StorePath)
	cfg.StatsPath = getEnv("SNAKE_STATS_PATH", cfg.StatsPath)
	cfg.LogFile = getEnv("SNAKE_LOG_FILE", cfg.LogFile)
	if v := getEnv("SNAKE_SEED", ""); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("SNAKE_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := getEnv("SNAKE_SOUND", ""); v != "" {
		sound, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("SNAKE_SOUND: %w", err)
		}
		cfg.Sound = sound
	}
	logLevel := getEnv("LOG_LEVEL", cfg.LogLevel.String())

	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Frontend: raylib or terminal")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "High score store: file, sqlite or memory")
	fs.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "Path of the high score file or database")
	fs.StringVar(&cfg.StatsPath, "stats-path", cfg.StatsPath, "Path of the game history file (file store only)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for food placement (0 = time based)")
	fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "Play sound cues")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	cfg.LogLevel = lvl

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown frontends and stores
func (c Config) Validate() error {
	switch c.UI {
	case "raylib", "terminal":
	default:
		return fmt.Errorf("unknown ui %q", c.UI)
	}
	switch c.Store {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

// SeedValue returns the configured seed or one derived from the clock
func (c Config) SeedValue() uint64 {
	if c.Seed != 0 {
		return uint64(c.Seed)
	}
	return uint64(time.Now().UnixNano())
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
