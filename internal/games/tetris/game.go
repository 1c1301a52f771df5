// Package tetris adapts the falling-block engine to the platform's Game
// interface: it turns actions into engine commands, converts fixed ticks into
// gravity time and draws the playfield.
package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// Game implements registry.Game on top of an engine.Session.
type Game struct {
	cfg      config.TetrisConfig
	session  *engine.Session
	seed     int64
	tick     uint64
	tickDt   time.Duration
	recorder *replay.Recorder

	// Screen dimensions
	screenW  int
	screenH  int
	layout   layout
	tooSmall bool

	// A finished round stays on screen with its totals until restart.
	gameOver    bool
	final       core.GameState
	finalPieces int
	finalBoard  *engine.Board

	// Set when the rules cannot start a session; nothing runs until a
	// Reset with valid rules.
	err error
}

// Package-level rules used by New, set once by the CLI before games start.
var selectedConfig = config.DefaultTetrisConfig()

// UseConfig sets the rules for games created afterwards through the registry.
func UseConfig(cfg config.TetrisConfig) {
	selectedConfig = cfg
}

// New creates a game with the selected rules.
func New() *Game {
	return NewWithConfig(selectedConfig)
}

// NewWithConfig creates a game with explicit rules.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// RulesFromConfig converts the YAML rule set into engine rules.
func RulesFromConfig(cfg config.TetrisConfig) engine.Rules {
	return engine.Rules{
		Width:           cfg.Board.Width,
		Height:          cfg.Board.Height,
		InitialInterval: cfg.Timing.InitialInterval(),
		Speedup:         cfg.Timing.Speedup(),
		MinInterval:     cfg.Timing.MinInterval(),
		SweepTopRow:     cfg.Rules.SweepTopRow,
		KickAttempts:    cfg.Rules.KickAttempts,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Config returns the rules this game runs with.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Reset starts a fresh round. The first call builds the session; later calls
// restart it on the same board. Rules the engine rejects leave the game
// stopped, with the reason reported by Err and drawn on screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	if g.session != nil {
		g.session.Restart(cfg.Seed)
	} else {
		session, err := engine.NewSession(RulesFromConfig(g.cfg), cfg.Seed)
		if err != nil {
			g.err = err
			g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
			return
		}
		g.session = session
	}

	g.err = nil
	g.seed = cfg.Seed
	g.tick = 0
	g.tickDt = time.Second / time.Duration(tickRate)
	g.recorder = replay.NewRecorder(ID, cfg.Seed, tickRate, g.cfg)
	g.gameOver = false
	g.final = core.GameState{}
	g.finalPieces = 0
	g.finalBoard = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Err returns why the last Reset could not start a round, or nil.
func (g *Game) Err() error {
	return g.err
}

// Resize adapts the layout without touching the round in progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.session == nil {
		return
	}
	g.layout = computeLayout(g.session.Board().Width(), g.session.Board().Height(), w, h)
	g.tooSmall = !g.layout.fits
}

// HandleAction applies one action immediately.
func (g *Game) HandleAction(a core.Action) core.StepResult {
	return g.apply(a)
}

// Step applies the queued actions in order, then advances gravity by one tick.
// Ticks do not count while the window is too small or after a game over, so
// the tick number only measures simulated time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult
	for _, a := range in.Actions() {
		if r := g.apply(a); r.RoundOver {
			res.RoundOver = true
		}
	}

	if g.halted() {
		res.State = g.State()
		return res
	}

	g.tick++
	if ev := g.session.Advance(g.tickDt); ev.GameOver {
		g.endRound(ev)
		res.RoundOver = true
	}
	res.State = g.State()
	return res
}

// apply routes an action to the session and journals it. Input is ignored
// while the window is too small or a finished round is on screen.
func (g *Game) apply(a core.Action) core.StepResult {
	if g.halted() {
		return core.StepResult{State: g.State()}
	}

	cmd := commandFor(a)
	if cmd == engine.CmdNone {
		return core.StepResult{State: g.State()}
	}

	g.recorder.Record(g.tick, a)
	res := core.StepResult{}
	if ev := g.session.Apply(cmd); ev.GameOver {
		g.endRound(ev)
		res.RoundOver = true
	}
	res.State = g.State()
	return res
}

// halted reports whether input and gravity are currently ignored.
func (g *Game) halted() bool {
	return g.session == nil || g.tooSmall || g.gameOver
}

func (g *Game) endRound(ev engine.Event) {
	g.gameOver = true
	g.finalPieces = ev.FinalPieces
	g.finalBoard = ev.FinalBoard
	g.final = core.GameState{
		Score:    ev.FinalScore,
		Lines:    ev.FinalLines,
		GameOver: true,
	}
}

// commandFor maps platform actions to engine commands.
func commandFor(a core.Action) engine.Command {
	switch a {
	case core.ActionLeft:
		return engine.CmdMoveLeft
	case core.ActionRight:
		return engine.CmdMoveRight
	case core.ActionDown:
		return engine.CmdSoftDrop
	case core.ActionRotate, core.ActionUp:
		return engine.CmdRotate
	case core.ActionRotateCCW:
		return engine.CmdRotateCCW
	case core.ActionPause:
		return engine.CmdTogglePause
	default:
		return engine.CmdNone
	}
}

// State returns the current game state. After a game over it reports the
// totals of the round that ended.
func (g *Game) State() core.GameState {
	if g.gameOver {
		return g.final
	}
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:  g.session.Score(),
		Lines:  g.session.Lines(),
		Paused: g.session.Paused(),
	}
}

// Pieces returns the pieces locked in the current (or just finished) round.
func (g *Game) Pieces() int {
	if g.gameOver {
		return g.finalPieces
	}
	if g.session == nil {
		return 0
	}
	return g.session.Pieces()
}

// Journal returns the input record of the current round. Its result holds
// the running totals until the round ends.
func (g *Game) Journal() replay.Journal {
	if g.recorder == nil {
		return replay.Journal{Game: ID, Config: g.cfg}
	}
	st := g.State()
	return g.recorder.Journal(replay.Result{
		Score:  st.Score,
		Lines:  st.Lines,
		Pieces: g.Pieces(),
		Ticks:  g.tick,
	})
}

// board returns the grid on screen: the final board of a finished round,
// otherwise the live one.
func (g *Game) board() *engine.Board {
	if g.gameOver && g.finalBoard != nil {
		return g.finalBoard
	}
	return g.session.Board()
}

// RoundOver reports whether a finished round is waiting for restart.
func (g *Game) RoundOver() bool {
	return g.gameOver
}

// Tick returns the number of simulated ticks.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Seed returns the seed of the current round.
func (g *Game) Seed() int64 {
	return g.seed
}
