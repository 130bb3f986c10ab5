// Package config provides YAML-based configuration loading for the game,
// its save storage, the SSH server and logging.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines the board rules.
type GameConfig struct {
	Preset          string  `yaml:"preset"` // Applied before the explicit fields below
	Size            int     `yaml:"size"`
	WinTarget       int     `yaml:"win_target"`
	FourProbability float64 `yaml:"four_probability"` // Chance a spawned tile is a 4
}

// StorageConfig defines where save slots live.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // Empty means ~/.t2048/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"` // 0 means unlimited
}

// LogConfig defines the log level (debug, info, warn, error) and, for the
// full-screen front ends, the file logs go to instead of the terminal.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty discards logs while a TUI is running
}

// Validate checks the game rules against the engine's constraints.
func (g GameConfig) Validate() error {
	if err := engine.ValidateConfig(g.Size, g.WinTarget, g.FourProbability); err != nil {
		return fmt.Errorf("config: game: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("config: storage: path is required when enabled")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server: idle_timeout must not be negative")
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("config: server: max_sessions must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: log: %w", err)
	}
	return lvl, nil
}
