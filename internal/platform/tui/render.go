package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Classic 2048 palette.
const (
	brown  = lipgloss.Color("#776e65")
	white  = lipgloss.Color("#f9f6f2")
	empty  = lipgloss.Color("#cdc1b4")
	gold   = lipgloss.Color("#edc22e")
	coral  = lipgloss.Color("#f67c5f")
	orange = lipgloss.Color("#f65e3b")
)

func tileStyle(bg string, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(fg).Bold(true)
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorDim:     lipgloss.NewStyle().Foreground(empty),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(gold).Bold(true),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(coral),
	core.ColorWarning: lipgloss.NewStyle().Foreground(orange).Bold(true),
	core.ColorSuccess: lipgloss.NewStyle().Foreground(gold).Bold(true),

	core.ColorTile2:     tileStyle("#eee4da", brown),
	core.ColorTile4:     tileStyle("#ede0c8", brown),
	core.ColorTile8:     tileStyle("#f2b179", white),
	core.ColorTile16:    tileStyle("#f59563", white),
	core.ColorTile32:    tileStyle("#f67c5f", white),
	core.ColorTile64:    tileStyle("#f65e3b", white),
	core.ColorTile128:   tileStyle("#edcf72", white),
	core.ColorTile256:   tileStyle("#edcc61", white),
	core.ColorTile512:   tileStyle("#edc850", white),
	core.ColorTile1024:  tileStyle("#edc53f", white),
	core.ColorTile2048:  tileStyle("#edc22e", white),
	core.ColorTileSuper: tileStyle("#3c3a32", white),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left so it appears centred in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(gold)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(coral)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)
