package game

import (
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// StateType is the presentation state of a session.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateWon         StateType = "won"
	StateLost        StateType = "lost"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures what a front end needs to draw a session.
type Snapshot struct {
	Size      int
	WinTarget int
	Grid      engine.Grid
	Score     int
	Moves     int
	MaxTile   int
	Gained    int // Score gained by the last shift
	CanUndo   bool
	State     StateType
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case s.tooSmall:
		state = StatePausedSmall
	case s.board.Status() == engine.StatusWon:
		state = StateWon
	case s.board.Status() == engine.StatusLost:
		state = StateLost
	}

	return Snapshot{
		Size:      s.board.Size(),
		WinTarget: s.board.WinTarget(),
		Grid:      s.board.Grid(),
		Score:     s.board.Score(),
		Moves:     s.board.Moves(),
		MaxTile:   s.board.MaxTile(),
		Gained:    s.last.Gained,
		CanUndo:   s.board.CanUndo() && s.board.Status() != engine.StatusWon,
		State:     state,
	}
}
