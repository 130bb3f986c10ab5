package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "Score: 8")
	s.DrawTextColored(1, 1, " 2 ", core.ColorTile2)
	s.DrawTextColored(5, 1, "2048", core.ColorTile2048)
	s.DrawTextColored(0, 2, "GAME OVER", core.ColorWarning)

	if got := ansi.Strip(RenderScreen(s)); got != s.String() {
		t.Errorf("RenderScreen text = %q, want %q", got, s.String())
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorTileSuper; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText should not truncate, got %q", got)
	}
}
