package engine

import "math/rand/v2"

// DefaultFourProbability is the chance that a spawned tile is a 4.
// The default is a uniform choice between 2 and 4.
const DefaultFourProbability = 0.5

// Source is the subset of *rand.Rand the engine needs.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Spawner chooses where a new tile appears after an effective move.
// empty is never empty when Spawn is called. Returning false skips the spawn.
type Spawner interface {
	Spawn(empty []Cell) (Tile, bool)
}

// RandomSpawner places a 2 or a 4 on a uniformly chosen empty cell.
type RandomSpawner struct {
	src  Source
	four float64
}

// NewRandomSpawner creates a spawner over src.
// four is the probability of spawning a 4 instead of a 2.
func NewRandomSpawner(src Source, four float64) *RandomSpawner {
	return &RandomSpawner{src: src, four: four}
}

// NewSeededSpawner creates a deterministic spawner for the given seed.
func NewSeededSpawner(seed int64, four float64) *RandomSpawner {
	return NewRandomSpawner(rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)), four)
}

// Spawn implements Spawner.
func (s *RandomSpawner) Spawn(empty []Cell) (Tile, bool) {
	if len(empty) == 0 {
		return Tile{}, false
	}
	cell := empty[s.src.IntN(len(empty))]
	value := 2
	if s.src.Float64() < s.four {
		value = 4
	}
	return Tile{Cell: cell, Value: value}, true
}

type noSpawn struct{}

func (noSpawn) Spawn([]Cell) (Tile, bool) { return Tile{}, false }

// NoSpawn never yields a tile. Used for deterministic play and tests.
var NoSpawn Spawner = noSpawn{}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(empty []Cell) (Tile, bool)

// Spawn implements Spawner.
func (f SpawnerFunc) Spawn(empty []Cell) (Tile, bool) {
	return f(empty)
}
