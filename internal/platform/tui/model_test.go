package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 26, Seed: 7}

func testState() engine.State {
	return engine.State{
		Size:      4,
		WinTarget: 2048,
		Grid: engine.Grid{
			{2, 2, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 4},
		},
	}
}

func testSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.Resume(testState(), game.Settings{NoSpawn: true}, testRuntime)
	require.NoError(t, err)
	return s
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func press(t *testing.T, m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestGameModelShifts(t *testing.T) {
	m := NewGameModel(testSession(t), testRuntime, GameOptions{})

	next, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)

	gm := next.(GameModel)
	b := gm.Session().Board()
	assert.Equal(t, 4, b.Score())
	assert.Equal(t, 1, b.Moves())
	assert.Equal(t, engine.Grid{{4, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {4, 0, 0, 0}}, b.Grid())

	next, _ = press(t, gm, runeKey("u"))
	assert.Equal(t, testState().Grid, next.(GameModel).Session().Board().Grid())
}

func TestGameModelHelpToggle(t *testing.T) {
	m := NewGameModel(testSession(t), testRuntime, GameOptions{})
	short := m.View()

	next, _ := press(t, m, runeKey("?"))
	full := next.(GameModel).View()

	assert.NotEqual(t, short, full)
	assert.Contains(t, full, "shift left")
	assert.Equal(t, 0, next.(GameModel).Session().Board().Moves())
}

func TestGameModelSave(t *testing.T) {
	store := testStore(t)
	m := NewGameModel(testSession(t), testRuntime, GameOptions{Store: store, Label: "tester"})

	next, _ := press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyCtrlS})
	gm := next.(GameModel)
	require.NotEmpty(t, gm.SlotID())
	assert.Contains(t, gm.Status(), "Saved to")

	slot, err := store.Load(gm.SlotID())
	require.NoError(t, err)
	assert.Equal(t, "tester", slot.Label)
	assert.Equal(t, 4, slot.Score)
	require.NotNil(t, slot.State.Previous, "undo snapshot is saved")

	// Saving again updates the same slot.
	next, _ = press(t, gm, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, gm.SlotID(), next.(GameModel).SlotID())

	slots, err := store.List(0)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, 2, slots[0].Moves)
}

func TestGameModelSaveWithoutStore(t *testing.T) {
	m := NewGameModel(testSession(t), testRuntime, GameOptions{})

	next, _ := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Saving is disabled", next.(GameModel).Status())
}

func TestGameModelQuitAutosaves(t *testing.T) {
	store := testStore(t)
	m := NewGameModel(testSession(t), testRuntime, GameOptions{Store: store})

	next, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runeKey("q"))
	assert.True(t, isQuit(cmd))
	assert.True(t, next.(GameModel).IsQuitting())
	assert.Empty(t, next.(GameModel).View())

	latest, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, 1, latest.Moves)
	assert.Equal(t, "4x4, 2048", latest.Label)
}

func TestGameModelQuitSkipsUntouchedBoard(t *testing.T) {
	store := testStore(t)
	m := NewGameModel(testSession(t), testRuntime, GameOptions{Store: store})

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))

	_, err := store.Latest()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGameModelRestartForgetsSlot(t *testing.T) {
	store := testStore(t)
	m := NewGameModel(testSession(t), testRuntime, GameOptions{Store: store})

	next, _ := press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyCtrlS}, runeKey("r"))
	gm := next.(GameModel)
	assert.Empty(t, gm.SlotID())
	assert.Equal(t, "New game", gm.Status())
	assert.Equal(t, 0, gm.Session().Board().Moves())
}

func TestGameModelBackOnlyWhenEmbedded(t *testing.T) {
	m := NewGameModel(testSession(t), testRuntime, GameOptions{})

	next, _ := press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, next.(GameModel).BackToMenu())

	m.embedded = true
	next, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.True(t, next.(GameModel).BackToMenu())
}

func TestGameModelViewAndResize(t *testing.T) {
	m := NewGameModel(testSession(t), testRuntime, GameOptions{})

	view := m.View()
	assert.Contains(t, view, "Score:")
	assert.Contains(t, view, "undo")
	assert.Len(t, strings.Split(view, "\n"), testRuntime.ScreenH)

	next, _ := press(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})
	assert.Contains(t, next.(GameModel).View(), "too small")
	assert.Equal(t, game.StatePausedSmall, next.(GameModel).Session().Snapshot().State)
}
