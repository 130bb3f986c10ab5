package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scenario is the 4x4 grid used by the shift examples.
func scenario() Grid {
	return Grid{
		{0, 2, 0, 2},
		{4, 0, 2, 0},
		{2, 2, 4, 0},
		{0, 0, 8, 0},
	}
}

// boardFrom builds a board at an arbitrary position with spawn disabled.
func boardFrom(t *testing.T, g Grid, opts ...Option) *Board {
	t.Helper()
	opts = append([]Option{WithoutSpawn()}, opts...)
	b, err := Restore(State{Size: len(g), WinTarget: 2048, Grid: g}, opts...)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	return b
}

// scriptedSpawner places tiles from a fixed list and counts calls.
type scriptedSpawner struct {
	tiles []Tile
	calls int
}

func (s *scriptedSpawner) Spawn(empty []Cell) (Tile, bool) {
	s.calls++
	if len(s.tiles) == 0 {
		return Tile{Cell: empty[0], Value: 2}, true
	}
	t := s.tiles[0]
	s.tiles = s.tiles[1:]
	return t, true
}

func TestShiftScenarios(t *testing.T) {
	tests := []struct {
		dir    Direction
		want   Grid
		gained int
	}{
		{
			dir: Left,
			want: Grid{
				{4, 0, 0, 0},
				{4, 2, 0, 0},
				{4, 4, 0, 0},
				{8, 0, 0, 0},
			},
			gained: 8,
		},
		{
			dir: Right,
			want: Grid{
				{0, 0, 0, 4},
				{0, 0, 4, 2},
				{0, 0, 4, 4},
				{0, 0, 0, 8},
			},
			gained: 8,
		},
		{
			dir: Up,
			want: Grid{
				{4, 4, 2, 2},
				{2, 0, 4, 0},
				{0, 0, 8, 0},
				{0, 0, 0, 0},
			},
			gained: 4,
		},
		{
			dir: Down,
			want: Grid{
				{0, 0, 0, 0},
				{0, 0, 2, 0},
				{4, 0, 4, 0},
				{2, 4, 8, 2},
			},
			gained: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			b := boardFrom(t, scenario())

			res := b.Shift(tt.dir)

			if diff := cmp.Diff(tt.want, b.Grid()); diff != "" {
				t.Errorf("Shift(%s) grid mismatch (-want +got):\n%s", tt.dir, diff)
			}
			if !res.Moved {
				t.Errorf("Shift(%s) should report a move", tt.dir)
			}
			if res.Gained != tt.gained || b.Score() != tt.gained {
				t.Errorf("Shift(%s) gained = %d, score = %d, want %d", tt.dir, res.Gained, b.Score(), tt.gained)
			}
			if b.Moves() != 1 {
				t.Errorf("Shift(%s) moves = %d, want 1", tt.dir, b.Moves())
			}
			if res.Spawned != nil {
				t.Errorf("Shift(%s) spawned %+v with spawn disabled", tt.dir, *res.Spawned)
			}
		})
	}
}

func TestShiftPairwiseRow(t *testing.T) {
	b := boardFrom(t, Grid{
		{2, 2, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	b.Shift(Left)

	if diff := cmp.Diff([]int{4, 4, 0, 0}, b.Grid()[0]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
	if b.Score() != 8 {
		t.Errorf("Score() = %d, want 8", b.Score())
	}
}

func TestNoOpShift(t *testing.T) {
	spawner := &scriptedSpawner{}
	b, err := Restore(State{Size: 4, WinTarget: 2048, Grid: Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}}, WithSpawner(spawner))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	before := b.Grid()

	res := b.Shift(Left)

	if res.Moved {
		t.Error("Shift(Left) on left-aligned tiles should be a no-op")
	}
	if !b.Grid().Equal(before) {
		t.Errorf("grid changed on no-op shift:\n%s", b.Grid())
	}
	if b.Moves() != 0 || b.Score() != 0 {
		t.Errorf("moves = %d, score = %d, want 0, 0", b.Moves(), b.Score())
	}
	if b.CanUndo() {
		t.Error("no-op shift should not create an undo snapshot")
	}
	if spawner.calls != 0 {
		t.Errorf("spawner called %d times on no-op shift", spawner.calls)
	}
}

func TestNoOpShiftKeepsSnapshot(t *testing.T) {
	b := boardFrom(t, Grid{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	b.Shift(Left) // [4 0 0]
	snapshot := b.State()

	b.Shift(Left) // no-op

	if diff := cmp.Diff(snapshot, b.State()); diff != "" {
		t.Errorf("no-op shift changed state (-want +got):\n%s", diff)
	}
}

func TestInvalidDirectionIsNoOp(t *testing.T) {
	b := boardFrom(t, scenario())
	if res := b.Shift(Direction(42)); res.Moved {
		t.Error("unknown direction should not move")
	}
	if b.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", b.Moves())
	}
}

func TestEffectiveMoveSpawnsOneTile(t *testing.T) {
	spawner := &scriptedSpawner{tiles: []Tile{{Cell: Cell{Row: 3, Col: 3}, Value: 4}}}
	b, err := Restore(State{Size: 4, WinTarget: 2048, Grid: scenario()}, WithSpawner(spawner))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	res := b.Shift(Left)

	if spawner.calls != 1 {
		t.Fatalf("spawner called %d times, want 1", spawner.calls)
	}
	if res.Spawned == nil || res.Spawned.Value != 4 || res.Spawned.Cell != (Cell{Row: 3, Col: 3}) {
		t.Fatalf("Spawned = %+v, want 4 at (3,3)", res.Spawned)
	}
	if b.Cell(3, 3) != 4 {
		t.Errorf("Cell(3,3) = %d, want 4", b.Cell(3, 3))
	}
}

func TestSpawnNeverOverwrites(t *testing.T) {
	// The spawner insists on (0,0), which is occupied after shifting left.
	spawner := SpawnerFunc(func([]Cell) (Tile, bool) {
		return Tile{Cell: Cell{Row: 0, Col: 0}, Value: 2}, true
	})
	b, err := Restore(State{Size: 4, WinTarget: 2048, Grid: scenario()}, WithSpawner(spawner))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	res := b.Shift(Left)

	if res.Spawned != nil {
		t.Errorf("spawn on occupied cell should be ignored, got %+v", *res.Spawned)
	}
	if b.Cell(0, 0) != 4 {
		t.Errorf("Cell(0,0) = %d, want 4", b.Cell(0, 0))
	}
}

func TestSpawnRetriesAfterInvalidAnswer(t *testing.T) {
	tests := []struct {
		name  string
		first Tile
	}{
		{"occupied cell", Tile{Cell: Cell{Row: 0, Col: 0}, Value: 2}},
		{"out of range", Tile{Cell: Cell{Row: 9, Col: 9}, Value: 2}},
		{"non-positive value", Tile{Cell: Cell{Row: 3, Col: 3}, Value: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner := &scriptedSpawner{tiles: []Tile{tt.first, {Cell: Cell{Row: 2, Col: 2}, Value: 4}}}
			b, err := Restore(State{Size: 4, WinTarget: 2048, Grid: scenario()}, WithSpawner(spawner))
			if err != nil {
				t.Fatalf("Restore() failed: %v", err)
			}
			before := b.Grid().TileCount()

			res := b.Shift(Left)

			if spawner.calls != 2 {
				t.Errorf("spawner called %d times, want 2", spawner.calls)
			}
			if res.Spawned == nil || res.Spawned.Cell != (Cell{Row: 2, Col: 2}) || res.Spawned.Value != 4 {
				t.Fatalf("Spawned = %+v, want 4 at (2,2)", res.Spawned)
			}
			if got, want := b.Grid().TileCount(), before-res.Merges+1; got != want {
				t.Errorf("TileCount() = %d, want %d", got, want)
			}
		})
	}
}

func TestSpawnGivesUpAfterEveryCellRejected(t *testing.T) {
	calls := 0
	spawner := SpawnerFunc(func(empty []Cell) (Tile, bool) {
		calls++
		return Tile{Cell: empty[0], Value: -2}, true
	})
	b, err := Restore(State{Size: 2, WinTarget: 2048, Grid: Grid{{2, 0}, {0, 0}}}, WithSpawner(spawner))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	res := b.Shift(Right)

	if !res.Moved || res.Spawned != nil {
		t.Fatalf("Shift(Right) = %+v, want a move without spawn", res)
	}
	if calls != 3 {
		t.Errorf("spawner called %d times, want 3", calls)
	}
}

func TestUndo(t *testing.T) {
	b := boardFrom(t, scenario())
	before := b.Grid()

	b.Shift(Left)
	if !b.CanUndo() {
		t.Fatal("CanUndo() should be true after an effective move")
	}

	if !b.Undo() {
		t.Fatal("Undo() should restore after an effective move")
	}
	if diff := cmp.Diff(before, b.Grid()); diff != "" {
		t.Errorf("Undo() grid mismatch (-want +got):\n%s", diff)
	}
	if b.Score() != 0 || b.Moves() != 0 {
		t.Errorf("after Undo() score = %d, moves = %d, want 0, 0", b.Score(), b.Moves())
	}

	// Second undo is a no-op.
	state := b.State()
	if b.Undo() {
		t.Error("second Undo() should be a no-op")
	}
	if diff := cmp.Diff(state, b.State()); diff != "" {
		t.Errorf("second Undo() changed state (-want +got):\n%s", diff)
	}
}

func TestUndoOnlyOneLevel(t *testing.T) {
	b := boardFrom(t, scenario())
	b.Shift(Left)
	afterFirst := b.Grid()
	scoreAfterFirst := b.Score()
	b.Shift(Up)

	b.Undo()
	b.Undo()

	if diff := cmp.Diff(afterFirst, b.Grid()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	if b.Score() != scoreAfterFirst || b.Moves() != 1 {
		t.Errorf("score = %d, moves = %d, want %d, 1", b.Score(), b.Moves(), scoreAfterFirst)
	}
}

func TestUndoWithoutMove(t *testing.T) {
	b, err := New(4, 2048, WithSeed(1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	before := b.State()

	if b.Undo() {
		t.Error("Undo() before any move should be a no-op")
	}
	if diff := cmp.Diff(before, b.State()); diff != "" {
		t.Errorf("Undo() changed state (-want +got):\n%s", diff)
	}
}

func TestTerminalStates(t *testing.T) {
	tests := []struct {
		name  string
		grid  Grid
		win   int
		full  bool
		won   bool
		noMv  bool
		lost  bool
		state Status
	}{
		{
			name: "full without merges",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2, 4},
				{8, 16, 32, 64},
			},
			win: 2048, full: true, noMv: true, lost: true, state: StatusLost,
		},
		{
			name: "full with horizontal merge",
			grid: Grid{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2, 4},
				{8, 16, 32, 64},
			},
			win: 2048, full: true, state: StatusPlaying,
		},
		{
			name: "full with vertical merge",
			grid: Grid{
				{2, 4, 8, 16},
				{2, 64, 128, 256},
				{512, 1024, 2, 4},
				{8, 16, 32, 64},
			},
			win: 2048, full: true, state: StatusPlaying,
		},
		{
			name: "empty cell without merges",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4},
				{8, 16, 32, 64},
			},
			win: 2048, noMv: true, state: StatusPlaying,
		},
		{
			name: "full and won",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4},
				{8, 16, 32, 64},
			},
			win: 2048, full: true, won: true, noMv: true, state: StatusWon,
		},
		{
			name: "tile above target wins",
			grid: Grid{
				{64, 0},
				{0, 0},
			},
			win: 32, won: true, state: StatusWon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Restore(State{Size: len(tt.grid), WinTarget: tt.win, Grid: tt.grid}, WithoutSpawn())
			if err != nil {
				t.Fatalf("Restore() failed: %v", err)
			}
			if got := b.IsFull(); got != tt.full {
				t.Errorf("IsFull() = %v, want %v", got, tt.full)
			}
			if got := b.HasWon(); got != tt.won {
				t.Errorf("HasWon() = %v, want %v", got, tt.won)
			}
			if got := b.NoMovesLeft(); got != tt.noMv {
				t.Errorf("NoMovesLeft() = %v, want %v", got, tt.noMv)
			}
			if got := b.IsLost(); got != tt.lost {
				t.Errorf("IsLost() = %v, want %v", got, tt.lost)
			}
			if got := b.Status(); got != tt.state {
				t.Errorf("Status() = %s, want %s", got, tt.state)
			}
		})
	}
}

func TestNoMovesLeftMeansNoEffectiveShift(t *testing.T) {
	b := boardFrom(t, Grid{
		{2, 4, 2},
		{4, 2, 4},
		{2, 4, 2},
	})
	for _, dir := range Directions {
		if res := b.Shift(dir); res.Moved {
			t.Errorf("Shift(%s) moved on a lost board", dir)
		}
	}
	if !b.IsLost() {
		t.Error("IsLost() should be true")
	}
}

func TestNew(t *testing.T) {
	b, err := New(4, 2048, WithSeed(7))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if n := b.Grid().TileCount(); n != 1 {
		t.Errorf("new board has %d tiles, want 1", n)
	}
	if v := b.MaxTile(); v != 2 && v != 4 {
		t.Errorf("initial tile = %d, want 2 or 4", v)
	}
	if b.Score() != 0 || b.Moves() != 0 || b.CanUndo() {
		t.Errorf("new board score=%d moves=%d canUndo=%v", b.Score(), b.Moves(), b.CanUndo())
	}
	if b.Size() != 4 || b.WinTarget() != 2048 {
		t.Errorf("Size() = %d, WinTarget() = %d", b.Size(), b.WinTarget())
	}
}

func TestNewWithoutSpawn(t *testing.T) {
	b, err := New(3, 64, WithoutSpawn())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if n := b.Grid().TileCount(); n != 0 {
		t.Errorf("suppressed board has %d tiles, want 0", n)
	}
	if len(b.EmptyCells()) != 9 {
		t.Errorf("EmptyCells() = %d, want 9", len(b.EmptyCells()))
	}
}

func TestNewInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		win   int
		opts  []Option
		field string
	}{
		{"size zero", 0, 2048, nil, "size"},
		{"size one", 1, 2048, nil, "size"},
		{"target not power of two", 4, 100, nil, "win_target"},
		{"target too small", 4, 2, nil, "win_target"},
		{"target negative", 4, -8, nil, "win_target"},
		{"probability above one", 4, 2048, []Option{WithFourProbability(1.5)}, "four_probability"},
		{"probability negative", 4, 2048, []Option{WithFourProbability(-0.1)}, "four_probability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.size, tt.win, tt.opts...)
			if err == nil {
				t.Fatalf("New(%d, %d) = %v, want error", tt.size, tt.win, b)
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("errors.Is(%v, ErrInvalidConfiguration) = false", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("errors.As(%v, *ConfigError) = false", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestSeededBoardsAreDeterministic(t *testing.T) {
	play := func() State {
		b, err := New(4, 2048, WithSeed(12345))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		for i := range 40 {
			b.Shift(Directions[i%len(Directions)])
		}
		return b.State()
	}

	if diff := cmp.Diff(play(), play()); diff != "" {
		t.Errorf("same seed produced different games (-first +second):\n%s", diff)
	}
}

func TestMoveProperties(t *testing.T) {
	b, err := New(4, 1<<20, WithSeed(99), WithFourProbability(0.1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	total := 0
	for i := range 500 {
		before := b.Grid()
		prevScore := b.Score()
		prevMoves := b.Moves()
		dir := Directions[(i*7+i/3)%len(Directions)]

		res := b.Shift(dir)

		if b.Score() < prevScore {
			t.Fatalf("score decreased from %d to %d", prevScore, b.Score())
		}
		if !res.Moved {
			if !b.Grid().Equal(before) || b.Moves() != prevMoves || b.Score() != prevScore {
				t.Fatalf("no-op shift %s changed the board", dir)
			}
			continue
		}

		total += res.Gained
		spawned := 0
		if res.Spawned != nil {
			spawned = 1
		}
		want := before.TileCount() - res.Merges + spawned
		if got := b.Grid().TileCount(); got != want {
			t.Fatalf("move %d: tile count = %d, want %d", i, got, want)
		}
		if b.Moves() != prevMoves+1 {
			t.Fatalf("move %d: moves = %d, want %d", i, b.Moves(), prevMoves+1)
		}
		if b.Score() != total {
			t.Fatalf("move %d: score = %d, want sum of merges %d", i, b.Score(), total)
		}
		if b.IsLost() {
			break
		}
	}
}

func TestIsLostFalseWithEmptyCell(t *testing.T) {
	b := boardFrom(t, Grid{
		{2, 4},
		{8, 0},
	})
	if b.IsLost() {
		t.Error("IsLost() should be false with an empty cell")
	}
}

func TestCellOutOfRange(t *testing.T) {
	b := boardFrom(t, scenario())
	if v := b.Cell(-1, 0); v != 0 {
		t.Errorf("Cell(-1,0) = %d, want 0", v)
	}
	if v := b.Cell(0, 4); v != 0 {
		t.Errorf("Cell(0,4) = %d, want 0", v)
	}
}

func TestGridIsCopy(t *testing.T) {
	b := boardFrom(t, scenario())
	g := b.Grid()
	g[0][0] = 1024
	if b.Cell(0, 0) != 0 {
		t.Error("mutating Grid() result changed the board")
	}
}
