package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// footerHeight is the number of rows below the board: status and help.
const footerHeight = 2

// GameModel is the Bubble Tea model for one game session. It is event
// driven: the board changes only in response to keys.
type GameModel struct {
	session *game.Session
	screen  *core.Screen
	store   *storage.Store
	slotID  string // Slot the session was loaded from or last saved to
	label   string
	keys    GameKeyMap
	help    help.Model
	logger  *log.Logger
	status  string

	embedded   bool // Back returns to the menu instead of being ignored
	quitting   bool
	backToMenu bool
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Store  *storage.Store // Nil disables saving
	SlotID string         // Slot to update on save, empty for a new slot
	Label  string         // Label for new slots
	Logger *log.Logger
}

// NewGameModel creates a model around an existing session.
func NewGameModel(session *game.Session, rc core.RuntimeConfig, opts GameOptions) GameModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = rc.ScreenW

	screenH := max(rc.ScreenH-footerHeight, 0)
	session.Resize(rc.ScreenW, screenH)

	return GameModel{
		session: session,
		screen:  core.NewScreen(rc.ScreenW, screenH),
		store:   opts.Store,
		slotID:  opts.SlotID,
		label:   opts.Label,
		keys:    DefaultGameKeyMap(),
		help:    h,
		logger:  logger,
	}
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.autosave()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.embedded {
			m.autosave()
			m.backToMenu = true
		}
		return m, nil

	case core.ActionSave:
		m.save()
		return m, nil

	case core.ActionRestart:
		m.session.Apply(action)
		m.slotID = ""
		m.status = "New game"
		return m, nil
	}

	out := m.session.Apply(action)
	m.status = ""
	if out.Changed {
		m.logger.Debug("move", "action", action, "gained", out.Move.Gained, "score", m.session.Board().Score())
	}
	switch {
	case out.Changed && m.session.Board().Status() == engine.StatusWon:
		m.logger.Info("game won", "score", m.session.Board().Score(), "moves", m.session.Board().Moves())
	case out.Changed && m.session.Board().Status() == engine.StatusLost:
		m.logger.Info("game lost", "score", m.session.Board().Score(), "max_tile", m.session.Board().MaxTile())
	}
	return m, nil
}

func (m *GameModel) resize(w, h int) {
	screenH := max(h-footerHeight, 0)
	m.screen.Resize(w, screenH)
	m.session.Resize(w, screenH)
	m.help.Width = w
}

// save writes the session to its slot, creating one on first save.
func (m *GameModel) save() {
	if m.store == nil {
		m.status = "Saving is disabled"
		return
	}

	st := m.session.State()
	var (
		slot storage.Slot
		err  error
	)
	if m.slotID != "" {
		slot, err = m.store.Update(m.slotID, st)
	} else {
		slot, err = m.store.Save(m.slotLabel(), st)
	}
	if err != nil {
		m.status = "Save failed: " + err.Error()
		m.logger.Error("save failed", "slot", m.slotID, "error", err)
		return
	}

	m.slotID = slot.ID
	m.status = fmt.Sprintf("Saved to %s", shortID(slot.ID))
	m.logger.Info("game saved", "slot", slot.ID, "score", slot.Score)
}

func (m *GameModel) slotLabel() string {
	if m.label != "" {
		return m.label
	}
	b := m.session.Board()
	return describe(b.Size(), b.WinTarget())
}

// autosave stores an unfinished game on the way out. A game that already
// has a slot is always updated so the slot reflects the final board.
func (m *GameModel) autosave() {
	if m.store == nil {
		return
	}
	if m.slotID == "" && (m.session.Finished() || m.session.Board().Moves() == 0) {
		return
	}
	m.save()
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(centerText(statusStyle.Render(m.status), m.screen.Width()))
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.screen.Width()))
	return b.String()
}

// Session returns the game session.
func (m GameModel) Session() *game.Session {
	return m.session
}

// SlotID returns the slot the session was last saved to.
func (m GameModel) SlotID() string {
	return m.slotID
}

// Status returns the last status line.
func (m GameModel) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single session.
func Run(session *game.Session, rc core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(session, rc, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
