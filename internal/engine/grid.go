package engine

import (
	"fmt"
	"strings"
)

// Grid is a square matrix of tile values. Zero marks an empty cell.
type Grid [][]int

// Cell addresses a single grid position.
type Cell struct {
	Row int
	Col int
}

// Tile is a value placed at a cell.
type Tile struct {
	Cell
	Value int
}

// NewGrid returns an empty size×size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for r := range g {
		g[r] = make([]int, size)
	}
	return g
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for r := range g {
		out[r] = append([]int(nil), g[r]...)
	}
	return out
}

// Equal reports whether both grids have the same shape and values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// EmptyCells returns all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// MaxTile returns the largest value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range g {
		for _, v := range g[r] {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// TileCount returns the number of occupied cells.
func (g Grid) TileCount() int {
	n := 0
	for r := range g {
		for _, v := range g[r] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// String renders the grid as an ASCII table, mostly for test failures.
func (g Grid) String() string {
	var sb strings.Builder
	line := "+" + strings.Repeat("------+", len(g))
	sb.WriteString(line)
	sb.WriteByte('\n')
	for r := range g {
		sb.WriteByte('|')
		for _, v := range g[r] {
			if v == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", v)
			}
		}
		sb.WriteByte('\n')
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// isSquare reports whether every row has len(g) columns.
func (g Grid) isSquare() bool {
	for r := range g {
		if len(g[r]) != len(g) {
			return false
		}
	}
	return true
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
