package engine

// State is a serialisable copy of a board, used by save/load front ends.
type State struct {
	Size          int  `json:"size" yaml:"size"`
	WinTarget     int  `json:"win_target" yaml:"win_target"`
	Grid          Grid `json:"grid" yaml:"grid"`
	Previous      Grid `json:"previous,omitempty" yaml:"previous,omitempty"`
	Score         int  `json:"score" yaml:"score"`
	PreviousScore int  `json:"previous_score" yaml:"previous_score"`
	Moves         int  `json:"moves" yaml:"moves"`
}

// State captures the board, including its undo snapshot.
func (b *Board) State() State {
	return State{
		Size:          b.size,
		WinTarget:     b.winTarget,
		Grid:          b.grid.Clone(),
		Previous:      b.prev.Clone(),
		Score:         b.score,
		PreviousScore: b.prevScore,
		Moves:         b.moves,
	}
}

// Restore rebuilds a board from a State. No tile is spawned.
// Spawn options apply to moves made after the restore.
func Restore(st State, opts ...Option) (*Board, error) {
	o := buildOptions(opts)
	if err := ValidateConfig(st.Size, st.WinTarget, o.four); err != nil {
		return nil, err
	}
	if err := st.validate(); err != nil {
		return nil, err
	}

	b := &Board{
		size:      st.Size,
		winTarget: st.WinTarget,
		spawner:   o.resolveSpawner(),
		grid:      st.Grid.Clone(),
		score:     st.Score,
		moves:     st.Moves,
	}
	if st.Previous != nil {
		b.prev = st.Previous.Clone()
		b.prevScore = st.PreviousScore
	}
	return b, nil
}

func (st State) validate() error {
	if err := validateGrid("grid", st.Grid, st.Size); err != nil {
		return err
	}
	if st.Score < 0 || st.Moves < 0 {
		return stateErrorf("negative score (%d) or moves (%d)", st.Score, st.Moves)
	}
	if st.Previous == nil {
		return nil
	}
	if err := validateGrid("previous", st.Previous, st.Size); err != nil {
		return err
	}
	if st.Moves < 1 {
		return stateErrorf("undo snapshot present with %d moves", st.Moves)
	}
	if st.PreviousScore < 0 || st.PreviousScore > st.Score {
		return stateErrorf("previous score %d outside [0, %d]", st.PreviousScore, st.Score)
	}
	return nil
}

func validateGrid(name string, g Grid, size int) error {
	if g.Size() != size || !g.isSquare() {
		return stateErrorf("%s is not %dx%d", name, size, size)
	}
	for r := range g {
		for c, v := range g[r] {
			if v != 0 && (v < 2 || !isPowerOfTwo(v)) {
				return stateErrorf("%s[%d][%d]=%d is not a tile value", name, r, c, v)
			}
		}
	}
	return nil
}
