package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewDifficulty
	viewReplays
	viewGame
)

// SessionModel manages the full flow of one connection inside a single
// Bubble Tea program: menu, difficulty, replay browser and the game itself.
type SessionModel struct {
	store      *storage.Store
	logger     *log.Logger
	play       PlaySettings
	config     core.RuntimeConfig
	username   string
	view       sessionView
	menu       MenuModel
	difficulty DifficultyModel
	replays    ReplaysModel
	game       Model
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, logger *log.Logger, play PlaySettings, cfg core.RuntimeConfig, username string) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:    store,
		logger:   logger,
		play:     play,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(cfg, play.Difficulty),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewDifficulty:
		return m.updateDifficulty(msg)
	case viewReplays:
		return m.updateReplays(msg)
	case viewGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. Sub-models end their own
// programs with tea.Quit, so their commands are dropped on transitions.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case MenuChoicePlay:
		return m.startGame()
	case MenuChoiceDifficulty:
		m.difficulty = NewDifficultyModel(m.config.ScreenW, m.config.ScreenH, m.play.Difficulty)
		m.view = viewDifficulty
		return m, nil
	case MenuChoiceReplays:
		m.replays = NewReplaysModel(m.store, m.play.GameID, m.config.ScreenW, m.config.ScreenH)
		m.view = viewReplays
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.difficulty.Update(msg)
	if dm, ok := newModel.(DifficultyModel); ok {
		m.difficulty = dm
	}

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.difficulty.WantsBack():
		return m.toMenu()
	case m.difficulty.Selected() != nil:
		m.play.Difficulty = *m.difficulty.Selected()
		m.logger.Debug("difficulty changed", "preset", m.play.Difficulty)
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replays.Update(msg)
	if rm, ok := newModel.(ReplaysModel); ok {
		m.replays = rm
	}

	switch {
	case m.replays.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.replays.IsGoingBack():
		return m.toMenu()
	case m.replays.WatchID() != 0:
		return m.startWatch(m.replays.WatchID())
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	rules, err := m.play.GameConfig()
	if err != nil {
		m.logger.Warn("could not start round", "difficulty", m.play.Difficulty, "error", err)
		return m.toMenu()
	}
	game := m.play.NewGame(rules)
	cfg := m.config
	cfg.Seed = time.Now().UnixNano()

	m.game = NewModel(game, m.store, cfg).WithLogger(m.logger).WithUser(m.username)
	m.view = viewGame
	m.logger.Info("round started", "seed", cfg.Seed, "difficulty", m.play.Difficulty)
	return m, m.game.Init()
}

func (m SessionModel) startWatch(id int64) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m.toMenu()
	}
	round, err := m.store.Round(id)
	if err != nil {
		m.logger.Warn("could not load replay", "id", id, "error", err)
		return m.toMenu()
	}

	watch, err := NewWatchModel(m.play.NewGame(round.Journal.Config), round.Journal, m.config.ScreenW, m.config.ScreenH)
	if err != nil {
		m.logger.Warn("could not play replay", "id", id, "error", err)
		return m.toMenu()
	}
	m.game = watch
	m.view = viewGame
	return m, m.game.Init()
}

// toMenu returns to a fresh main menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.config, m.play.Difficulty)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewDifficulty:
		return m.difficulty.View()
	case viewReplays:
		return m.replays.View()
	case viewGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// Difficulty returns the preset new rounds use.
func (m SessionModel) Difficulty() config.DifficultyPreset {
	return m.play.Difficulty
}

// RunSession runs the whole menu flow in the local terminal.
func RunSession(store *storage.Store, logger *log.Logger, play PlaySettings, cfg core.RuntimeConfig, username string) error {
	if err := play.Validate(); err != nil {
		return err
	}
	p := tea.NewProgram(
		NewSessionModel(store, logger, play, cfg, username),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
