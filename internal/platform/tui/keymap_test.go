package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// keyMsg builds a key message from its string form.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"d", core.ActionRight, false},
		{"down", core.ActionDown, false},
		{"s", core.ActionDown, false},
		{" ", core.ActionDown, false},
		{"up", core.ActionRotate, false},
		{"w", core.ActionRotate, false},
		{"x", core.ActionRotate, false},
		{"z", core.ActionRotateCCW, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"y", core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = (%s, %v), expected (%s, %v)", tt.key, action, quit, tt.action, tt.quit)
		}
	}

	if !km.IsScreenshot(keyMsg("ctrl+s")) {
		t.Error("ctrl+s should take a screenshot")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"k":     MenuActionUp,
		"down":  MenuActionDown,
		"j":     MenuActionDown,
		"left":  MenuActionLeft,
		"right": MenuActionRight,
		"enter": MenuActionSelect,
		"esc":   MenuActionBack,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	for k, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(k)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", k, got, want)
		}
	}
}
