package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration, used when no file and no
// embedded default can be read.
func Default() Config {
	return Config{
		Game: GameConfig{
			Preset:          "classic",
			Size:            4,
			WinTarget:       2048,
			FourProbability: engine.DefaultFourProbability,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.t2048/saves.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
			MaxSessions: 32,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.t2048/t2048.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
