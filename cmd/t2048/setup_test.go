package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/config"
)

func newFlagCommand(t *testing.T, args ...string) (*cobra.Command, *gameFlags) {
	t.Helper()
	var f gameFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &f
}

func TestGameFlagsPresetThenExplicit(t *testing.T) {
	cmd, f := newFlagCommand(t, "--preset", "large", "--win", "1024")
	cfg := config.Default()

	require.NoError(t, f.apply(cmd, &cfg))
	assert.Equal(t, 5, cfg.Game.Size)
	assert.Equal(t, 1024, cfg.Game.WinTarget)
	assert.Equal(t, "large", cfg.Game.Preset)
}

func TestGameFlagsUnchangedKeepsConfig(t *testing.T) {
	cmd, f := newFlagCommand(t)
	cfg := config.Default()
	want := cfg.Game

	require.NoError(t, f.apply(cmd, &cfg))
	assert.Equal(t, want, cfg.Game)
}

func TestGameFlagsRejectInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"size too small", []string{"--size", "1"}},
		{"win not power of two", []string{"--win", "100"}},
		{"probability out of range", []string{"--four-prob", "1.5"}},
		{"unknown preset", []string{"--preset", "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := newFlagCommand(t, tt.args...)
			cfg := config.Default()
			assert.Error(t, f.apply(cmd, &cfg))
		})
	}
}
