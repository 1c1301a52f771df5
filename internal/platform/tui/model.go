package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Model is the Bubble Tea model for running a game.
//
// Keys and clicks are applied to the game as soon as they arrive when the
// game supports it; otherwise they are queued for the next tick. In watch
// mode input comes from a recorded journal instead of the keyboard.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	username   string
	status     string
	tickID     int64

	// Watch mode
	player      *replay.Player
	watchPaused bool

	quitting   bool
	backToMenu bool
	roundSaved bool // Whether the finished round has been stored
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		tickID:     nextTickID(),
	}
}

// NewWatchModel creates a model that plays back a recorded journal.
// The game must be built with the journal's rules.
func NewWatchModel(game registry.Game, j replay.Journal, width, height int) (Model, error) {
	player, err := replay.NewPlayer(j)
	if err != nil {
		return Model{}, err
	}
	if _, ok := game.(replay.Recorded); !ok {
		return Model{}, fmt.Errorf("tui: game %q cannot play journals", game.ID())
	}

	m := NewModel(game, nil, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: j.TickRate,
		Seed:     j.Seed,
	})
	m.player = player
	m.status = fmt.Sprintf("Replay seed %d  p: pause  q: quit", j.Seed)
	// A journal with seed 0 still replays with seed 0.
	m.config.Seed = j.Seed
	return m, nil
}

// WithLogger sets the logger used for storage problems.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithUser sets the player name stored with finished rounds.
func (m Model) WithUser(name string) Model {
	m.username = name
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.watching() {
		switch action {
		case core.ActionPause:
			m.watchPaused = !m.watchPaused
		case core.ActionBack:
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.restart()
		}
		return m, nil
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			// A session swaps in the menu; a standalone program just ends.
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.dispatch(action)
	return m, nil
}

// handleMouse turns left clicks over the playfield into actions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.watching() || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	ph, ok := m.game.(registry.PointerHandler)
	if !ok {
		return m, nil
	}
	m.dispatch(ph.PointerAction(msg.X, msg.Y))
	return m, nil
}

// dispatch applies an action immediately if the game allows it, or queues
// it for the next tick.
func (m *Model) dispatch(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if h, ok := m.game.(registry.ActionHandler); ok {
		m.observe(h.HandleAction(a))
		return
	}
	m.inputFrame.Push(a)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot relayout restart with the new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	switch {
	case m.watching():
		if !m.watchPaused && !m.gameState.GameOver {
			rec := m.game.(replay.Recorded)
			m.observe(m.game.Step(m.player.Frame(rec.Tick())))
		}
	default:
		m.observe(m.game.Step(m.inputFrame))
		m.inputFrame.Clear()
	}

	return m, tickCmd(m.tickID, m.config.TickRate)
}

// observe records the state after a step and stores a finished round once.
func (m *Model) observe(res core.StepResult) {
	m.gameState = res.State
	if res.RoundOver && !m.watching() && !m.roundSaved {
		m.saveRound()
		m.roundSaved = true
	}
}

// saveRound stores the journal of the finished round. Failures are logged and
// play continues.
func (m *Model) saveRound() {
	rec, ok := m.game.(replay.Recorded)
	if !ok || m.store == nil {
		return
	}
	j := rec.Journal()
	id, err := m.store.SaveRound(m.username, j)
	if err != nil {
		m.logger.Warn("could not save round", "game", j.Game, "error", err)
		m.status = "Round not saved"
		return
	}
	m.logger.Info("round saved", "id", id, "user", m.username, "score", j.Result.Score, "ticks", j.Result.Ticks)
	m.status = fmt.Sprintf("Saved as replay #%d", id)
}

// restart begins a new round with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.roundSaved = false
	m.status = ""
	m.inputFrame.Clear()
}

func (m Model) watching() bool {
	return m.player != nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.status = "Screenshot saved"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		m.screen.DrawTextColored(0, m.screen.Height()-1, m.status, core.ColorGray)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg).WithLogger(logger)
	return runProgram(model)
}

// Watch plays a journal back in the terminal.
func Watch(game registry.Game, j replay.Journal, width, height int) error {
	model, err := NewWatchModel(game, j, width, height)
	if err != nil {
		return err
	}
	return runProgram(model)
}

func runProgram(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks over the playfield steer the piece
	)

	_, err := p.Run()
	return err
}
