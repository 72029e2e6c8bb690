package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"snake-classic/audio"
	"snake-classic/config"
	"snake-classic/game"
	"snake-classic/game/manager"
	"snake-classic/game/types"
	"snake-classic/input"
	"snake-classic/stats"
	"snake-classic/store"
	"snake-classic/ui"
	"snake-classic/ui/terminal"
	"snake-classic/ui/window"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func init() {
	// raylib needs every call on the main OS thread
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logClose := setupLogging(cfg)
	defer logClose()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scores, err := store.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to open score store")
	}

	history := stats.NewGameStats()
	var sink stats.Sink
	statsPath := cfg.StatsPath
	if statsPath == "" {
		statsPath = stats.DefaultFile
	}
	if db, ok := scores.(*store.SQLiteStore); ok {
		defer db.Close()
		sink = db
		records, err := db.LoadGames(ctx, stats.MaxRecords)
		if err != nil {
			log.Warn().Err(err).Msg("could not load game history")
		}
		history.Load(records)
	} else if cfg.Store == "file" {
		if err := history.LoadFromFile(statsPath); err != nil {
			log.Warn().Err(err).Str("path", statsPath).Msg("could not load game history")
		}
	}

	stateMgr := manager.NewStateManager(ctx, scores)
	defer stateMgr.Close()

	rng := rand.New(rand.NewSource(cfg.SeedValue()))
	g := game.NewGame(types.DefaultGrid(), rng, stateMgr)

	pulse := ui.NewPulse()
	recorder := stats.NewRecorder(history, sink)
	listeners := []game.Listener{pulse, recorder}

	if cfg.Sound {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			log.Warn().Err(err).Msg("audio initialization failed")
		} else {
			defer sounds.Cleanup()
			listeners = append(listeners, sounds)
		}
	}

	log.Info().
		Str("ui", cfg.UI).
		Str("store", cfg.Store).
		Int("high_score", stateMgr.GetHighScore()).
		Msg("starting snake")

	switch cfg.UI {
	case "terminal":
		err = runTerminal(ctx, cancel, g, history, pulse, listeners)
	default:
		runWindow(ctx, cancel, g, history, pulse, listeners)
	}
	if err != nil {
		log.Error().Err(err).Msg("frontend failed")
	}

	recorder.Wait()
	if sink == nil && cfg.Store == "file" {
		if err := history.SaveToFile(statsPath); err != nil {
			log.Error().Err(err).Msg("could not save game history")
		}
	}
}

func runWindow(ctx context.Context, cancel context.CancelFunc, g *game.Game, history *stats.GameStats, pulse *ui.Pulse, listeners []game.Listener) {
	renderer := window.NewRenderer(history, pulse)
	loop := game.NewLoop(g, game.NewRealClock(), renderer, listeners...)
	mapper := input.NewMapper(loop)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("game loop stopped")
		}
	}()

	renderer.Run(ctx, mapper)
	cancel()
	<-done
}

func runTerminal(ctx context.Context, cancel context.CancelFunc, g *game.Game, history *stats.GameStats, pulse *ui.Pulse, listeners []game.Listener) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	renderer := terminal.NewRenderer(screen, history, pulse)
	loop := game.NewLoop(g, game.NewRealClock(), renderer, listeners...)
	mapper := input.NewMapper(loop)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("game loop stopped")
		}
	}()

	renderer.Run(ctx, mapper)
	<-done
	return nil
}

// setupLogging points the global logger at stderr or a file. The terminal UI
// owns the screen, so it always logs to a file.
func setupLogging(cfg config.Config) func() {
	zerolog.SetGlobalLevel(cfg.LogLevel)

	path := cfg.LogFile
	if path == "" && cfg.UI == "terminal" {
		path = filepath.Join("data", "snake.log")
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = f
				closeFn = func() { f.Close() }
			}
		}
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: out != os.Stderr}).
		With().Timestamp().Logger()
	return closeFn
}
