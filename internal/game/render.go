package game

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// layout holds the board geometry for the current grid.
type layout struct {
	cellWidth int // Including the left border
	boardW    int
	boardH    int
}

func (s *Session) layout() layout {
	widest := max(s.board.WinTarget(), s.board.MaxTile())
	cellWidth := max(len(strconv.Itoa(widest)), 4) + 3
	n := s.board.Size()
	return layout{
		cellWidth: cellWidth,
		boardW:    n*cellWidth + 1,
		boardH:    n*cellHeight + 1,
	}
}

// MinScreenSize returns the smallest screen the current board fits on.
func (s *Session) MinScreenSize() (int, int) {
	l := s.layout()
	return l.boardW + 2, hudHeight + 1 + l.boardH + 1
}

// checkScreenSize marks the session too small for its screen.
// Zero dimensions mean the screen is unknown.
func (s *Session) checkScreenSize() {
	if s.screenW <= 0 && s.screenH <= 0 {
		s.tooSmall = false
		return
	}
	minW, minH := s.MinScreenSize()
	s.tooSmall = s.screenW < minW || s.screenH < minH
}

// Render draws the session to the screen.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	s.checkScreenSize()

	if s.tooSmall {
		s.renderTooSmall(dst)
		return
	}

	l := s.layout()
	boardX := (dst.Width() - l.boardW) / 2
	boardY := hudHeight + 1

	s.renderHUD(dst, boardX, l.boardW)
	s.renderBoard(dst, l, boardX, boardY)
	s.renderOverlays(dst, core.NewRect(boardX, boardY, l.boardW, l.boardH))
}

func (s *Session) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	minW, minH := s.MinScreenSize()
	dst.DrawTextCentered(y, "Window too small", core.ColorWarning)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH), core.ColorDim)
}

func (s *Session) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCentered(0, s.Title(), core.ColorTitle)

	dst.DrawText(boardX, 1, "Score: "+FormatScore(s.board.Score()))
	moves := fmt.Sprintf("Moves: %d", s.board.Moves())
	dst.DrawText(max(boardX, boardX+boardW-len(moves)), 1, moves)

	dst.DrawTextColored(boardX, 2, fmt.Sprintf("Max: %d", s.board.MaxTile()), core.ColorDim)
	if s.last.Gained > 0 {
		gain := fmt.Sprintf("+%d", s.last.Gained)
		dst.DrawTextColored(boardX+boardW-len(gain), 2, gain, core.ColorAccent)
	}
}

// renderBoard draws the N×N grid with coloured tiles.
func (s *Session) renderBoard(dst *core.Screen, l layout, boardX, boardY int) {
	n := s.board.Size()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*l.cellWidth
			py := boardY + y*cellHeight
			dst.SetCell(px, py, junction(x, y, n), core.ColorDim)

			if x < n {
				for i := 1; i < l.cellWidth; i++ {
					dst.SetCell(px+i, py, '─', core.ColorDim)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetCell(px, py+i, '│', core.ColorDim)
				}
			}
		}
	}

	for row := range n {
		for col := range n {
			val := s.board.Cell(row, col)
			if val == 0 {
				continue
			}
			cellX := boardX + col*l.cellWidth + 1
			cellY := boardY + row*cellHeight + 1
			color := core.TileColor(val)

			dst.FillRect(core.NewRect(cellX, cellY, l.cellWidth-1, cellHeight-1), ' ', color)
			text := strconv.Itoa(val)
			pad := (l.cellWidth - 1 - len(text)) / 2
			dst.DrawTextColored(cellX+pad, cellY, text, color)
		}
	}
}

func junction(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

func (s *Session) renderOverlays(dst *core.Screen, board core.Rect) {
	switch s.board.Status() {
	case engine.StatusWon:
		drawOverlay(dst, board, core.ColorSuccess,
			"YOU WIN!",
			fmt.Sprintf("Reached %d in %d moves", s.board.WinTarget(), s.board.Moves()),
			"Press R to restart")
	case engine.StatusLost:
		hint := "Press R to restart"
		if s.board.CanUndo() {
			hint = "R: Restart | U: Undo"
		}
		drawOverlay(dst, board, core.ColorWarning,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", s.board.MaxTile()),
			hint)
	}
}

// drawOverlay draws a boxed message centred over the board.
func drawOverlay(dst *core.Screen, board core.Rect, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(board, maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColored(cx-len(line)/2, box.Y+1+i, line, color)
	}
}
