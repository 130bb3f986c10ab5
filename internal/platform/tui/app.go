package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type appView int

const (
	viewMenu appView = iota
	viewSaves
	viewGame
)

// AppOptions configures an App.
type AppOptions struct {
	Settings game.Settings // Rules of the "New game" menu entry
	Store    *storage.Store
	Runtime  core.RuntimeConfig
	Logger   *log.Logger
	Label    string // Label for slots saved from this app
}

// App manages the full session flow: menu -> game or saves -> menu.
// It is the top-level model for local play without flags and for SSH
// sessions.
type App struct {
	opts     AppOptions
	rc       core.RuntimeConfig
	view     appView
	menu     MenuModel
	saves    SavesModel
	game     *GameModel
	errMsg   string
	quitting bool
}

// NewApp creates an app showing the start menu.
func NewApp(opts AppOptions) App {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	a := App{opts: opts, rc: opts.Runtime}
	a.menu = NewMenuModel(opts.Settings, opts.Store, a.rc.ScreenW, a.rc.ScreenH)
	return a
}

// Init initializes the app.
func (a App) Init() tea.Cmd {
	return a.menu.Init()
}

// Update handles messages for the app.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.rc.ScreenW = wsm.Width
		a.rc.ScreenH = wsm.Height
	}

	switch a.view {
	case viewSaves:
		return a.updateSaves(msg)
	case viewGame:
		return a.updateGame(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		a.menu = menu
	}

	if a.menu.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}

	item := a.menu.Selected()
	if item == nil {
		return a, cmd
	}

	switch item.Kind {
	case MenuSaves:
		a.saves = NewSavesModel(a.opts.Store, a.rc.ScreenW, a.rc.ScreenH)
		a.view = viewSaves
		return a, a.saves.Init()

	case MenuContinue:
		return a.resume(item.Slot)

	default:
		session, err := game.New(item.Settings, a.rc)
		if err != nil {
			return a.backToMenu(err), nil
		}
		a.opts.Logger.Info("game started", "size", item.Settings.Size, "win", item.Settings.WinTarget, "label", a.opts.Label)
		return a.startGame(session, "")
	}
}

func (a App) updateSaves(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.saves.Update(msg)
	if saves, ok := next.(SavesModel); ok {
		a.saves = saves
	}

	switch {
	case a.saves.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.saves.IsGoingBack():
		return a.backToMenu(nil), nil
	case a.saves.Chosen() != nil:
		return a.resume(*a.saves.Chosen())
	}
	return a, cmd
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		a.game = &gm
	}

	if a.game.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.game.BackToMenu() {
		return a.backToMenu(nil), nil
	}
	return a, cmd
}

func (a App) resume(slot storage.Slot) (tea.Model, tea.Cmd) {
	session, err := game.Resume(slot.State, a.opts.Settings, a.rc)
	if err != nil {
		return a.backToMenu(err), nil
	}
	a.opts.Logger.Info("game resumed", "slot", slot.ID, "score", slot.Score)
	return a.startGame(session, slot.ID)
}

func (a App) startGame(session *game.Session, slotID string) (tea.Model, tea.Cmd) {
	gm := NewGameModel(session, a.rc, GameOptions{
		Store:  a.opts.Store,
		SlotID: slotID,
		Label:  a.opts.Label,
		Logger: a.opts.Logger,
	})
	gm.embedded = true
	a.game = &gm
	a.view = viewGame
	a.errMsg = ""
	return a, a.game.Init()
}

func (a App) backToMenu(err error) App {
	a.menu = NewMenuModel(a.opts.Settings, a.opts.Store, a.rc.ScreenW, a.rc.ScreenH)
	a.game = nil
	a.view = viewMenu
	a.errMsg = ""
	if err != nil {
		a.errMsg = fmt.Sprintf("Error: %v", err)
		a.opts.Logger.Error("cannot start game", "error", err)
	}
	return a
}

// View renders the current view.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSaves:
		return a.saves.View()
	case viewGame:
		return a.game.View()
	}

	v := a.menu.View()
	if a.errMsg != "" {
		v += "\n" + centerText(statusStyle.Render(a.errMsg), a.rc.ScreenW)
	}
	return v
}

// RunApp starts the menu-driven program locally.
func RunApp(opts AppOptions) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
