package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// MenuItemKind says what a menu entry starts.
type MenuItemKind int

const (
	MenuNewGame  MenuItemKind = iota // Fresh board with Settings
	MenuContinue                     // Resume Slot
	MenuSaves                        // Open the saves browser
)

// MenuItem represents a selectable entry in the start menu.
type MenuItem struct {
	Kind     MenuItemKind
	Title    string
	Settings game.Settings
	Slot     storage.Slot
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     ListKeyMap
	help     help.Model
	quitting bool
	selected *MenuItem // Set when user selects an entry
}

// menuHelp hides the delete binding, which the menu does not use.
type menuHelp struct{ ListKeyMap }

func (k menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

func (k menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// NewMenuModel builds the start menu: the configured game, every preset,
// and, when a store is available, the latest unfinished save and the
// saves browser.
func NewMenuModel(base game.Settings, store *storage.Store, width, height int) MenuModel {
	items := []MenuItem{{
		Kind:     MenuNewGame,
		Title:    fmt.Sprintf("New game (%s)", describe(base.Size, base.WinTarget)),
		Settings: base,
	}}

	if store != nil {
		latest, err := store.Latest()
		// Storage errors only hide the entry.
		if err == nil && latest.Status == engine.StatusPlaying {
			items = append([]MenuItem{{
				Kind:  MenuContinue,
				Title: fmt.Sprintf("Continue (%s, %s)", describe(latest.State.Size, latest.State.WinTarget), game.FormatScore(latest.Score)),
				Slot:  latest,
			}}, items...)
		}
	}

	for _, p := range config.Presets {
		s := base
		s.Size = p.Size
		s.WinTarget = p.WinTarget
		s.FourProbability = p.FourProbability
		items = append(items, MenuItem{
			Kind:     MenuNewGame,
			Title:    fmt.Sprintf("%s (%s)", p.Title, describe(p.Size, p.WinTarget)),
			Settings: s,
		})
	}

	if store != nil {
		items = append(items, MenuItem{Kind: MenuSaves, Title: "Saved games..."})
	}

	h := help.New()
	h.Width = width

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultListKeyMap(),
		help:   h,
	}
}

func describe(size, win int) string {
	return fmt.Sprintf("%dx%d, %d", size, size, win)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Join the tiles, get to the target!", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(menuHelp{m.keys})), m.width))
	b.WriteString("\n")

	return b.String()
}

// Items returns the menu entries.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
