package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func newTestSession(store *storage.Store) SessionModel {
	play := PlaySettings{
		GameID:     tetris.ID,
		TickRate:   60,
		Rules:      config.DefaultTetrisConfig(),
		Difficulty: config.DifficultyNormal,
		NewGame: func(cfg config.TetrisConfig) registry.Game {
			return tetris.NewWithConfig(cfg)
		},
	}
	return NewSessionModel(store, nil, play, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, "bob")
}

func sessionKey(t *testing.T, m SessionModel, k string) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s, cmd
}

func TestSessionChangesDifficulty(t *testing.T) {
	m := newTestSession(nil)

	m, _ = sessionKey(t, m, "down")
	m, _ = sessionKey(t, m, "enter")
	if m.view != viewDifficulty {
		t.Fatalf("view = %d, expected difficulty", m.view)
	}

	// Cursor starts on normal; one down selects hard
	m, _ = sessionKey(t, m, "down")
	m, cmd := sessionKey(t, m, "enter")
	if m.view != viewMenu {
		t.Fatalf("view = %d, expected menu", m.view)
	}
	if cmd != nil {
		t.Error("choosing a preset must not end the program")
	}
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty() = %s, expected hard", m.Difficulty())
	}
	rules, err := m.play.GameConfig()
	if err != nil {
		t.Fatalf("GameConfig() error = %v", err)
	}
	if got := rules.Timing.InitialIntervalMs; got != 600 {
		t.Errorf("hard initial interval = %d, expected 600", got)
	}
}

func TestSessionPlayAndBack(t *testing.T) {
	m := newTestSession(nil)

	m, cmd := sessionKey(t, m, "enter")
	if m.view != viewGame {
		t.Fatalf("view = %d, expected game", m.view)
	}
	if cmd == nil {
		t.Error("starting a game should start the tick loop")
	}

	m, _ = sessionKey(t, m, "p")
	m, _ = sessionKey(t, m, "esc")
	if m.view != viewMenu {
		t.Errorf("view = %d, expected menu after leaving a paused game", m.view)
	}
}

func TestSessionReplaysWithoutStore(t *testing.T) {
	m := newTestSession(nil)

	m, _ = sessionKey(t, m, "down")
	m, _ = sessionKey(t, m, "down")
	m, _ = sessionKey(t, m, "enter")
	if m.view != viewReplays {
		t.Fatalf("view = %d, expected replays", m.view)
	}
	if m.View() == "" {
		t.Error("replay browser should render")
	}

	m, _ = sessionKey(t, m, "esc")
	if m.view != viewMenu {
		t.Errorf("view = %d, expected menu", m.view)
	}
}

func TestSessionWatchesStoredRound(t *testing.T) {
	store := openStore(t)

	// Finish a round through the session so it gets stored
	m := newTestSession(store)
	m, _ = sessionKey(t, m, "enter")
	for i := 0; i < 5000 && !m.game.State().GameOver; i++ {
		m, _ = sessionKey(t, m, "down")
	}
	if n, _ := store.CountRounds(tetris.ID); n != 1 {
		t.Fatalf("CountRounds() = %d, expected 1", n)
	}

	m, _ = sessionKey(t, m, "esc")
	m, _ = sessionKey(t, m, "down")
	m, _ = sessionKey(t, m, "down")
	m, _ = sessionKey(t, m, "enter")
	if m.view != viewReplays || len(m.replays.rounds) != 1 {
		t.Fatalf("view = %d with %d rounds", m.view, len(m.replays.rounds))
	}

	m, cmd := sessionKey(t, m, "enter")
	if m.view != viewGame || !m.game.watching() {
		t.Fatalf("view = %d, expected playback", m.view)
	}
	if cmd == nil {
		t.Error("playback should start the tick loop")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(nil)
	m, cmd := sessionKey(t, m, "q")
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestPlaySettingsValidate(t *testing.T) {
	m := newTestSession(nil)
	if err := m.play.Validate(); err != nil {
		t.Fatalf("Validate() = %v for default rules", err)
	}

	bad := m.play
	bad.Rules.Board.Width = 2
	if err := bad.Validate(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
	}

	noGame := m.play
	noGame.NewGame = nil
	if err := noGame.Validate(); err == nil {
		t.Error("Validate() should require a game factory")
	}
}

func TestSessionStaysInMenuWithInvalidRules(t *testing.T) {
	m := newTestSession(nil)
	m.play.Rules.Timing.InitialIntervalMs = 0

	m, _ = sessionKey(t, m, "enter")
	if m.view != viewMenu {
		t.Errorf("view = %d, expected menu when the rules are invalid", m.view)
	}
}
