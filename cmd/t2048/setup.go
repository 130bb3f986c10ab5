package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// loadConfig reads the config file and applies the global flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.Enabled = flagDBPath != ""
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// gameFlags are the board flags shared by play and console.
type gameFlags struct {
	preset string
	size   int
	win    int
	four   float64
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", fmt.Sprintf("Board preset: %v", config.PresetNames()))
	cmd.Flags().IntVar(&f.size, "size", 0, "Board size N for an NxN grid")
	cmd.Flags().IntVar(&f.win, "win", 0, "Winning tile value (power of two)")
	cmd.Flags().Float64Var(&f.four, "four-prob", 0, "Probability that a spawned tile is a 4")
}

// apply overrides the game section: preset first, then explicit flags.
func (f *gameFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("preset") {
		if err := config.ApplyPreset(cfg, f.preset); err != nil {
			return err
		}
	}
	if flags.Changed("size") {
		cfg.Game.Size = f.size
	}
	if flags.Changed("win") {
		cfg.Game.WinTarget = f.win
	}
	if flags.Changed("four-prob") {
		cfg.Game.FourProbability = f.four
	}
	return cfg.Game.Validate()
}

// newLogger creates the application logger. Full-screen front ends log to
// the configured file so output does not corrupt the screen.
func newLogger(cfg config.Config, fullScreen bool) (*log.Logger, func(), error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if fullScreen {
		w = io.Discard
		if cfg.Log.File != "" {
			f, err := openLogFile(cfg.Log.File)
			if err != nil {
				return nil, nil, err
			}
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})
	return logger, closeFn, nil
}

func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// openStore opens the save database. Saving is optional, so failures are
// logged and play continues without a store.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open save database, saving disabled", "path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

// requireStore opens the save database for commands that cannot work
// without it.
func requireStore(cfg config.Config) (*storage.Store, error) {
	if !cfg.Storage.Enabled {
		return nil, fmt.Errorf("storage is disabled in the configuration")
	}
	return storage.Open(cfg.Storage.Path)
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.Seed = flagSeed
	return rc
}
