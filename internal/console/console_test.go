package console

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
)

func newConsole(t *testing.T, st engine.State, input string) (*Console, *strings.Builder) {
	t.Helper()
	s, err := game.Resume(st, game.Settings{NoSpawn: true}, core.RuntimeConfig{})
	require.NoError(t, err)

	var out strings.Builder
	return New(strings.NewReader(input), &out, s, nil), &out
}

func openingState() engine.State {
	return engine.State{
		Size:      4,
		WinTarget: 8,
		Grid: engine.Grid{
			{2, 2, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 4, 0},
			{0, 0, 4, 0},
		},
	}
}

func TestRunUntilWin(t *testing.T) {
	c, out := newConsole(t, openingState(), "l\nu\n")

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, engine.StatusWon, res.Status)
	assert.Equal(t, 12, res.Score)
	assert.Equal(t, 2, res.Moves)
	assert.False(t, res.Exited)

	text := out.String()
	assert.Contains(t, text, "..:: 8 GAME ::..")
	assert.Contains(t, text, "Score: 4 pts")
	assert.Contains(t, text, "Moves: 2")
	assert.True(t, strings.HasSuffix(text, "You won!\n"), "output should end with the win message:\n%s", text)
}

func TestRunLostBoardStopsImmediately(t *testing.T) {
	c, out := newConsole(t, engine.State{
		Size:      2,
		WinTarget: 8,
		Grid:      engine.Grid{{2, 4}, {4, 2}},
	}, "")

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, engine.StatusLost, res.Status)
	assert.NotContains(t, out.String(), prompt)
	assert.Contains(t, out.String(), "You lost. Try again.")
}

func TestRunInvalidInputThenExit(t *testing.T) {
	c, out := newConsole(t, openingState(), "left-ish\n  EXIT \n")

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Exited)
	assert.Equal(t, engine.StatusPlaying, res.Status)
	assert.Equal(t, 0, res.Moves)
	assert.Equal(t, 1, strings.Count(out.String(), invalidInput))
	assert.Equal(t, 2, strings.Count(out.String(), prompt))
}

func TestRunUndo(t *testing.T) {
	c, _ := newConsole(t, openingState(), "l\nundo\nundo\nexit\n")

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Exited)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.Moves)
}

func TestRunEndOfInput(t *testing.T) {
	c, out := newConsole(t, openingState(), "r\n")

	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Exited)
	assert.Equal(t, 1, res.Moves)
	assert.Equal(t, 2, strings.Count(out.String(), "..:: 8 GAME ::.."))
}

func TestRunCancelled(t *testing.T) {
	c, _ := newConsole(t, openingState(), "l\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatGrid(t *testing.T) {
	got := FormatGrid(engine.Grid{{2, 0}, {1024, 16384}})
	want := strings.Join([]string{
		"------+------",
		" 2    |      ",
		"------+------",
		" 1024 | 16384 ",
		"------+------",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in     string
		want   core.Action
		wantOK bool
	}{
		{"l", core.ActionLeft, true},
		{"R", core.ActionRight, true},
		{" up ", core.ActionUp, true},
		{"down", core.ActionDown, true},
		{"undo", core.ActionUndo, true},
		{"exit", core.ActionQuit, true},
		{"", core.ActionNone, false},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseCommand(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseCommand(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseCommand(%q)", tt.in)
	}
}
