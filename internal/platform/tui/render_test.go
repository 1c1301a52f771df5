package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "Score", core.ColorYellow)
	s.DrawText(6, 0, "10")
	s.DrawTextColored(0, 1, "██", core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"Score", "10", "██"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestStyleCacheCoversPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorBrightWhite; c++ {
		if _, ok := styleCache[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}
