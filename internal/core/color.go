package core

// Color is a semantic foreground/background pair for a screen cell.
// The platform layer maps it to terminal styles.
type Color uint8

const (
	ColorDefault Color = iota
	ColorDim           // Grid lines, hints
	ColorTitle         // Header text
	ColorAccent        // Score changes, highlights
	ColorWarning       // Loss overlay
	ColorSuccess       // Win overlay

	// Tile colours, one per value from 2 to 2048 and one for anything larger.
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper
)

// TileColor returns the colour for a tile value. Empty cells use ColorDim.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorDim
	}
	c := ColorTile2
	for v := 2; v < value && c < ColorTileSuper; v *= 2 {
		c++
	}
	return c
}
