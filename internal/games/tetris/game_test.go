package tetris

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g
}

func frameOf(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Push(a)
	}
	return f
}

// playUntilGameOver soft-drops pieces straight down until the stack tops out.
func playUntilGameOver(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for i := 0; i < 5000; i++ {
		if res := g.HandleAction(core.ActionDown); res.RoundOver {
			return res
		}
	}
	t.Fatal("round never ended")
	return core.StepResult{}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newGame(t, 12345)
	g2 := newGame(t, 12345)

	for i := 0; i < 600; i++ {
		var input core.InputFrame
		switch i % 7 {
		case 1:
			input = frameOf(core.ActionLeft, core.ActionRotate)
		case 3:
			input = frameOf(core.ActionDown, core.ActionDown)
		case 5:
			input = frameOf(core.ActionRight)
		}
		g1.Step(input)
		g2.Step(input)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("snapshots diverged:\n%+v\n%+v", snap1, snap2)
	}
	if snap1.Tick == 0 {
		t.Error("no ticks were simulated")
	}
}

func TestHandleActionMatchesFrame(t *testing.T) {
	// Applying actions one by one must equal queuing them in a frame.
	g1 := newGame(t, 7)
	g2 := newGame(t, 7)

	actions := []core.Action{core.ActionLeft, core.ActionLeft, core.ActionRotate, core.ActionDown}
	for _, a := range actions {
		g1.HandleAction(a)
	}
	g1.Step(core.NewInputFrame())
	g2.Step(frameOf(actions...))

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("immediate and queued input diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestGravityFollowsTickRate(t *testing.T) {
	g := NewWithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 10})

	start := g.Snapshot().ActiveAt.Y
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if y := g.Snapshot().ActiveAt.Y; y != start {
		t.Fatalf("piece fell after exactly one interval: y = %d", y)
	}

	g.Step(core.NewInputFrame())
	if y := g.Snapshot().ActiveAt.Y; y != start+1 {
		t.Errorf("y = %d, expected %d", y, start+1)
	}
}

func TestPauseFreezesPlay(t *testing.T) {
	g := newGame(t, 3)

	res := g.HandleAction(core.ActionPause)
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	before := g.Snapshot()

	for i := 0; i < 300; i++ {
		g.Step(frameOf(core.ActionLeft, core.ActionDown))
	}
	after := g.Snapshot()
	if after.ActiveAt != before.ActiveAt || after.State != StatePaused {
		t.Errorf("paused game changed: %+v -> %+v", before.ActiveAt, after.ActiveAt)
	}

	g.HandleAction(core.ActionPause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameOverFreezesUntilReset(t *testing.T) {
	g := newGame(t, 99)

	res := playUntilGameOver(t, g)
	if !res.State.GameOver {
		t.Fatal("RoundOver without GameOver state")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("State = %s", g.Snapshot().State)
	}

	frozen := g.State()
	g.HandleAction(core.ActionLeft)
	if r := g.Step(frameOf(core.ActionDown)); r.RoundOver {
		t.Error("RoundOver must fire only once")
	}
	if g.State() != frozen {
		t.Errorf("state changed after game over: %+v -> %+v", frozen, g.State())
	}

	g.Reset(core.RuntimeConfig{Seed: 100, ScreenW: 80, ScreenH: 24, TickRate: 60})
	if g.State().GameOver || g.Tick() != 0 || g.Seed() != 100 {
		t.Error("Reset should start a new round")
	}
}

func TestGameOverShowsFinalBoard(t *testing.T) {
	g := newGame(t, 99)
	board := g.session.Board()

	playUntilGameOver(t, g)
	filled := 0
	for _, row := range g.Snapshot().Board {
		for _, k := range row {
			if k != 0 {
				filled++
			}
		}
	}
	if filled == 0 {
		t.Error("finished round should keep its stack on screen")
	}

	g.Reset(core.RuntimeConfig{Seed: 100, ScreenW: 80, ScreenH: 24, TickRate: 60})
	if g.session.Board() != board {
		t.Error("restart should clear the board in place")
	}
	for y, row := range g.Snapshot().Board {
		for x, k := range row {
			if k != 0 {
				t.Fatalf("cell (%d,%d) = %v after restart", x, y, k)
			}
		}
	}
}

func TestRestartMatchesFreshGame(t *testing.T) {
	reused := newGame(t, 1)
	for i := 0; i < 100; i++ {
		reused.Step(frameOf(core.ActionDown))
	}
	reused.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24, TickRate: 60})
	fresh := newGame(t, 7)

	for i := 0; i < 300; i++ {
		in := frameOf()
		if i%4 == 0 {
			in = frameOf(core.ActionRotate, core.ActionDown)
		}
		reused.Step(in)
		fresh.Step(in)
	}
	if !reflect.DeepEqual(reused.Snapshot(), fresh.Snapshot()) {
		t.Errorf("restarted game diverged:\n%+v\n%+v", reused.Snapshot(), fresh.Snapshot())
	}
}

func TestResetRejectsInvalidRules(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Board.Width = 8
	cfg.Timing.InitialIntervalMs = 0
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60})

	if g.Err() == nil {
		t.Fatal("Err() = nil for rules the engine rejects")
	}
	if g.Snapshot().State != StateInvalid {
		t.Errorf("State = %s, expected %s", g.Snapshot().State, StateInvalid)
	}
	if res := g.Step(frameOf(core.ActionDown)); res.RoundOver || g.Tick() != 0 {
		t.Error("a game without valid rules must not run")
	}
	g.HandleAction(core.ActionLeft)
	if n := len(g.Journal().Inputs); n != 0 {
		t.Errorf("recorded %d inputs without a round", n)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Invalid rules") {
		t.Error("invalid rules message missing")
	}
}

func TestTooSmallWindowPauses(t *testing.T) {
	g := NewWithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: 5, ScreenW: 30, ScreenH: 10, TickRate: 60})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, expected %s", g.Snapshot().State, StatePausedSmall)
	}
	start := g.Snapshot().ActiveAt
	for i := 0; i < 200; i++ {
		g.Step(frameOf(core.ActionDown))
	}
	if g.Snapshot().ActiveAt != start {
		t.Error("piece moved while the window was too small")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State after resize = %s", g.Snapshot().State)
	}
}

func TestResizeKeepsRound(t *testing.T) {
	g := newGame(t, 11)
	g.HandleAction(core.ActionDown)
	g.HandleAction(core.ActionDown)
	before := g.Snapshot()

	g.Resize(100, 40)
	after := g.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("resize changed the round:\n%+v\n%+v", before, after)
	}
}

func TestRulesFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Rules.SweepTopRow = true
	cfg.Rules.KickAttempts = 2

	r := RulesFromConfig(cfg)
	if r.Width != 12 || r.Height != 20 {
		t.Errorf("size = %dx%d", r.Width, r.Height)
	}
	if r.InitialInterval != time.Second || r.Speedup != 5*time.Millisecond || r.MinInterval != 100*time.Millisecond {
		t.Errorf("timing = %v/%v/%v", r.InitialInterval, r.Speedup, r.MinInterval)
	}
	if !r.SweepTopRow || r.KickAttempts != 2 {
		t.Errorf("rules = %+v", r)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", ID, err)
	}
	if _, ok := g.(registry.ActionHandler); !ok {
		t.Error("game should handle immediate actions")
	}
	if _, ok := g.(registry.PointerHandler); !ok {
		t.Error("game should accept pointer input")
	}
	if _, ok := g.(registry.Resizer); !ok {
		t.Error("game should follow resizes")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 21)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"T E T R I S", "Score", "Next", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q", want)
		}
	}

	g.HandleAction(core.ActionPause)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
	g.HandleAction(core.ActionPause)

	playUntilGameOver(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestRenderColorsActivePiece(t *testing.T) {
	g := newGame(t, 21)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	snap := g.Snapshot()
	want := KindColor(snap.Active)
	found := false
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if c := screen.GetCell(x, y); c.Rune == blockGlyph && c.Color == want {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("no %v block on screen for active %s", want, snap.Active)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: 5, ScreenW: 30, ScreenH: 10, TickRate: 60})

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message missing")
	}
}
