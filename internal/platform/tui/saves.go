package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const maxSlots = 100 // Max slots to load

// SavesModel is the Bubble Tea model for the save slot browser.
type SavesModel struct {
	store     *storage.Store
	slots     []storage.Slot
	table     table.Model
	help      help.Model
	keys      ListKeyMap
	width     int
	height    int
	status    string
	chosen    *storage.Slot
	quitting  bool
	goingBack bool
}

// NewSavesModel creates a saves browser and loads the slots.
func NewSavesModel(store *storage.Store, width, height int) SavesModel {
	h := help.New()
	h.Width = width

	m := SavesModel{
		store:  store,
		keys:   DefaultListKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadSlots()
	return m
}

// createTable creates a new table sized for the current window.
func (m *SavesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Label", Width: 16},
		{Title: "Board", Width: 12},
		{Title: "Score", Width: 10},
		{Title: "Max", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Status", Width: 8},
		{Title: "Saved", Width: 12},
	}

	// Give any spare width to the label column.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[1].Width += min(spare, 24)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#f9f6f2")).
		Background(lipgloss.Color("#f59563")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSlots reloads the slots from the store.
func (m *SavesModel) loadSlots() {
	m.slots = nil
	if m.store != nil {
		slots, err := m.store.List(maxSlots)
		if err != nil {
			m.status = err.Error()
		} else {
			m.slots = slots
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current slots.
func (m *SavesModel) updateTableRows() {
	rows := make([]table.Row, len(m.slots))
	for i, s := range m.slots {
		rows[i] = table.Row{
			shortID(s.ID),
			s.Label,
			describe(s.State.Size, s.State.WinTarget),
			game.FormatScore(s.Score),
			fmt.Sprintf("%d", s.MaxTile),
			fmt.Sprintf("%d", s.Moves),
			string(s.Status),
			s.UpdatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the saves model.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the saves browser.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if slot, ok := m.current(); ok {
				m.chosen = &slot
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if slot, ok := m.current(); ok {
				if err := m.store.Delete(slot.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("Deleted %s", shortID(slot.ID))
				}
				m.loadSlots()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SavesModel) current() (storage.Slot, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.slots) {
		return storage.Slot{}, false
	}
	return m.slots[i], true
}

// View renders the saves browser.
func (m SavesModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerText(titleStyle.MarginBottom(1).Render("SAVED GAMES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m SavesModel) renderTableContent() string {
	if len(m.slots) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No saved games yet.\nPress ctrl+s while playing to save one.")
	}

	return m.table.View()
}

// Chosen returns the slot picked with enter, or nil.
func (m SavesModel) Chosen() *storage.Slot {
	return m.chosen
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SavesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SavesModel) IsQuitting() bool {
	return m.quitting
}

// RunSaves runs the saves browser on its own.
// Returns the chosen slot, or nil if the user left without choosing.
func RunSaves(store *storage.Store, width, height int) (*storage.Slot, error) {
	model := NewSavesModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SavesModel)
	if !ok {
		return nil, nil
	}

	return m.Chosen(), nil
}
