package engine

import "strings"

// Direction represents a move direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every valid direction in a stable order.
var Directions = [...]Direction{Left, Right, Up, Down}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

func (d Direction) valid() bool {
	return d >= Left && d <= Down
}

// ParseDirection accepts the full name or its first letter, in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, true
	case "r", "right":
		return Right, true
	case "u", "up":
		return Up, true
	case "d", "down":
		return Down, true
	default:
		return 0, false
	}
}

// cellAt maps a position along a line to grid coordinates.
// Position 0 is the wall the tiles slide toward, so every direction can be
// processed by the same wall-first scan without transposing the grid.
func cellAt(dir Direction, size, line, pos int) (row, col int) {
	switch dir {
	case Right:
		return line, size - 1 - pos
	case Up:
		return pos, line
	case Down:
		return size - 1 - pos, line
	default:
		return line, pos
	}
}
