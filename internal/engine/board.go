// Package engine implements the board state machine of the sliding-tile
// merge puzzle: shifting and merging, tile spawning, score and move
// accounting, single-level undo, and win/loss detection.
//
// The engine is synchronous and performs no I/O. A Board has a single owner
// and is not safe for concurrent use.
package engine

import (
	"math/rand/v2"
	"slices"
)

// Status is the terminal classification of a board.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// MoveResult describes the outcome of a Shift.
type MoveResult struct {
	Moved   bool  // Grid changed; counted as a move
	Gained  int   // Score added by merges
	Merges  int   // Number of merged pairs
	Spawned *Tile // Tile placed after the move, nil if none
}

// Board owns the grid, score, move counter and one undo snapshot.
type Board struct {
	size      int
	winTarget int
	spawner   Spawner

	grid  Grid
	score int
	moves int

	prev      Grid // nil when there is nothing to undo
	prevScore int
}

type options struct {
	spawner Spawner
	four    float64
	seed    int64
	seeded  bool
	noSpawn bool
}

// Option customises board construction.
type Option func(*options)

// WithSpawner injects the tile spawner. It takes precedence over seed and
// probability options.
func WithSpawner(s Spawner) Option {
	return func(o *options) { o.spawner = s }
}

// WithoutSpawn disables tile insertion entirely.
func WithoutSpawn() Option {
	return func(o *options) { o.noSpawn = true }
}

// WithFourProbability sets the chance of spawning a 4.
func WithFourProbability(p float64) Option {
	return func(o *options) { o.four = p }
}

// WithSeed makes the default spawner deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

func buildOptions(opts []Option) options {
	o := options{four: DefaultFourProbability}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) resolveSpawner() Spawner {
	switch {
	case o.noSpawn:
		return NoSpawn
	case o.spawner != nil:
		return o.spawner
	case o.seeded:
		return NewSeededSpawner(o.seed, o.four)
	default:
		return NewRandomSpawner(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), o.four)
	}
}

// New creates a board with an empty grid and one spawned tile.
// size must be at least 2 and winTarget a power of two >= 4.
func New(size, winTarget int, opts ...Option) (*Board, error) {
	o := buildOptions(opts)
	if err := ValidateConfig(size, winTarget, o.four); err != nil {
		return nil, err
	}

	b := &Board{
		size:      size,
		winTarget: winTarget,
		spawner:   o.resolveSpawner(),
		grid:      NewGrid(size),
	}
	b.spawn()
	return b, nil
}

// Shift slides every line toward dir, merging equal neighbours.
// A shift that leaves the grid unchanged is a no-op: score, move count and
// the undo snapshot are untouched and nothing spawns.
func (b *Board) Shift(dir Direction) MoveResult {
	if !dir.valid() {
		return MoveResult{}
	}

	next := NewGrid(b.size)
	line := make([]int, b.size)
	var gained, merges int

	for i := range b.size {
		for pos := range b.size {
			r, c := cellAt(dir, b.size, i, pos)
			line[pos] = b.grid[r][c]
		}

		slid, g, m := slideLine(line)
		gained += g
		merges += m

		for pos, v := range slid {
			r, c := cellAt(dir, b.size, i, pos)
			next[r][c] = v
		}
	}

	if next.Equal(b.grid) {
		return MoveResult{}
	}

	b.prev = b.grid
	b.prevScore = b.score
	b.grid = next
	b.score += gained
	b.moves++

	return MoveResult{
		Moved:   true,
		Gained:  gained,
		Merges:  merges,
		Spawned: b.spawn(),
	}
}

// spawn places one tile on an empty cell, if any and if the spawner yields.
// An invalid answer is discarded and the spawner asked again, at most once
// per empty cell.
func (b *Board) spawn() *Tile {
	empty := b.grid.EmptyCells()
	for attempts := len(empty); attempts > 0 && len(empty) > 0; attempts-- {
		t, ok := b.spawner.Spawn(empty)
		if !ok {
			return nil
		}
		if b.inBounds(t.Row, t.Col) && b.grid[t.Row][t.Col] == 0 && t.Value > 0 {
			b.grid[t.Row][t.Col] = t.Value
			return &t
		}
		empty = slices.DeleteFunc(empty, func(c Cell) bool { return c == t.Cell })
	}
	return nil
}

// Undo restores the grid and score from before the last effective move.
// Only one level is kept: a second Undo without a new move does nothing.
func (b *Board) Undo() bool {
	if b.prev == nil {
		return false
	}
	b.grid = b.prev
	b.score = b.prevScore
	b.moves--
	b.prev = nil
	return true
}

// CanUndo reports whether Undo would change the board.
func (b *Board) CanUndo() bool {
	return b.prev != nil
}

// Grid returns a copy of the current grid.
func (b *Board) Grid() Grid {
	return b.grid.Clone()
}

// Cell returns the value at (row, col), or 0 when out of range.
func (b *Board) Cell(row, col int) int {
	if !b.inBounds(row, col) {
		return 0
	}
	return b.grid[row][col]
}

// Score returns the sum of all merge values so far.
func (b *Board) Score() int { return b.score }

// Moves returns the number of effective moves.
func (b *Board) Moves() int { return b.moves }

// Size returns the grid dimension.
func (b *Board) Size() int { return b.size }

// WinTarget returns the tile value that wins the game.
func (b *Board) WinTarget() int { return b.winTarget }

// MaxTile returns the largest tile on the grid.
func (b *Board) MaxTile() int { return b.grid.MaxTile() }

// EmptyCells returns the empty cells in row-major order.
func (b *Board) EmptyCells() []Cell { return b.grid.EmptyCells() }

// IsFull reports whether no cell is empty.
func (b *Board) IsFull() bool {
	for r := range b.grid {
		for _, v := range b.grid[r] {
			if v == 0 {
				return false
			}
		}
	}
	return true
}

// HasWon reports whether any tile reached or exceeded the win target.
func (b *Board) HasWon() bool {
	return b.grid.MaxTile() >= b.winTarget
}

// NoMovesLeft reports whether no cell has an equal horizontal or vertical
// neighbour. Only meaningful together with IsFull.
func (b *Board) NoMovesLeft() bool {
	for r := range b.size {
		for c := range b.size {
			v := b.grid[r][c]
			if c+1 < b.size && b.grid[r][c+1] == v {
				return false
			}
			if r+1 < b.size && b.grid[r+1][c] == v {
				return false
			}
		}
	}
	return true
}

// IsLost reports a full grid with no merge available that has not been won.
func (b *Board) IsLost() bool {
	return b.IsFull() && b.NoMovesLeft() && !b.HasWon()
}

// Status classifies the board. A win takes priority over a loss.
func (b *Board) Status() Status {
	switch {
	case b.HasWon():
		return StatusWon
	case b.IsLost():
		return StatusLost
	default:
		return StatusPlaying
	}
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}
