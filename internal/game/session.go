// Package game wraps an engine board for the front ends. A Session turns
// player actions into engine calls and draws the board onto a core.Screen.
package game

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Settings are the board rules a session is created with and restarts with.
type Settings struct {
	Size            int
	WinTarget       int
	FourProbability float64
	NoSpawn         bool
	Spawner         engine.Spawner // Overrides the seeded/random spawner when set
}

// SettingsFrom converts the game section of the configuration.
func SettingsFrom(g config.GameConfig) Settings {
	return Settings{
		Size:            g.Size,
		WinTarget:       g.WinTarget,
		FourProbability: g.FourProbability,
	}
}

func (s Settings) options(seed int64, seeded bool) []engine.Option {
	opts := []engine.Option{engine.WithFourProbability(s.FourProbability)}
	switch {
	case s.NoSpawn:
		opts = append(opts, engine.WithoutSpawn())
	case s.Spawner != nil:
		opts = append(opts, engine.WithSpawner(s.Spawner))
	case seeded:
		opts = append(opts, engine.WithSeed(seed))
	}
	return opts
}

// Outcome reports what an action did.
type Outcome struct {
	Action  core.Action
	Changed bool              // Board, score or counters changed
	Move    engine.MoveResult // Set for shift actions
}

// Session is one player's game.
type Session struct {
	settings Settings
	seed     int64
	restarts int64

	board *engine.Board
	last  engine.MoveResult

	screenW  int
	screenH  int
	tooSmall bool
}

// New starts a session on a fresh board.
func New(settings Settings, rc core.RuntimeConfig) (*Session, error) {
	s := &Session{settings: settings, seed: rc.Seed}
	board, err := engine.New(settings.Size, settings.WinTarget, settings.options(rc.Seed, rc.Seed != 0)...)
	if err != nil {
		return nil, fmt.Errorf("game: new board: %w", err)
	}
	s.board = board
	s.Resize(rc.ScreenW, rc.ScreenH)
	return s, nil
}

// Resume starts a session from a saved board state. The state's size and
// win target replace the ones in settings.
func Resume(st engine.State, settings Settings, rc core.RuntimeConfig) (*Session, error) {
	settings.Size = st.Size
	settings.WinTarget = st.WinTarget
	board, err := engine.Restore(st, settings.options(rc.Seed, rc.Seed != 0)...)
	if err != nil {
		return nil, fmt.Errorf("game: restore board: %w", err)
	}
	s := &Session{settings: settings, seed: rc.Seed, board: board}
	s.Resize(rc.ScreenW, rc.ScreenH)
	return s, nil
}

// Apply performs a player action.
func (s *Session) Apply(a core.Action) Outcome {
	out := Outcome{Action: a}

	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown:
		if s.board.Status() != engine.StatusPlaying {
			return out
		}
		out.Move = s.board.Shift(directionOf(a))
		out.Changed = out.Move.Moved
		s.last = out.Move

	case core.ActionUndo:
		// A won game stays won.
		if s.board.Status() == engine.StatusWon {
			return out
		}
		out.Changed = s.board.Undo()
		if out.Changed {
			s.last = engine.MoveResult{}
		}

	case core.ActionRestart:
		out.Changed = s.Restart() == nil
	}
	return out
}

// Restart replaces the board with a fresh one using the same settings.
// Seeded sessions get a different, still reproducible, board each time.
func (s *Session) Restart() error {
	seeded := s.seed != 0
	seed := s.seed
	if seeded {
		seed += s.restarts + 1
	}
	board, err := engine.New(s.settings.Size, s.settings.WinTarget, s.settings.options(seed, seeded)...)
	if err != nil {
		return fmt.Errorf("game: restart: %w", err)
	}
	s.restarts++
	s.board = board
	s.last = engine.MoveResult{}
	s.checkScreenSize()
	return nil
}

// Resize records the screen dimensions used by Render.
func (s *Session) Resize(w, h int) {
	s.screenW = w
	s.screenH = h
	s.checkScreenSize()
}

// Board returns the underlying board.
func (s *Session) Board() *engine.Board {
	return s.board
}

// State returns the serialisable board state.
func (s *Session) State() engine.State {
	return s.board.State()
}

// Settings returns the rules the session runs with.
func (s *Session) Settings() Settings {
	return s.settings
}

// Finished reports whether the board is won or lost.
func (s *Session) Finished() bool {
	return s.board.Status() != engine.StatusPlaying
}

// Title returns the display name.
func (s *Session) Title() string {
	return fmt.Sprintf("%d", s.board.WinTarget())
}

func directionOf(a core.Action) engine.Direction {
	switch a {
	case core.ActionRight:
		return engine.Right
	case core.ActionUp:
		return engine.Up
	case core.ActionDown:
		return engine.Down
	default:
		return engine.Left
	}
}
