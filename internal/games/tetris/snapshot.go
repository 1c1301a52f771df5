package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
	StateInvalid     GameStateType = "invalid_rules"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Score      int
	Lines      int
	Pieces     int
	IntervalMs int64
	Board      [][]engine.Kind
	Active     engine.Kind
	ActiveAt   engine.Position
	ActiveMask string // Occupancy of the active piece in '#'/'.' rows
	Next       engine.Kind
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{State: StateInvalid}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.session.Paused():
		state = StatePaused
	}

	active := g.session.Active()
	st := g.State()
	return Snapshot{
		Tick:       g.tick,
		Score:      st.Score,
		Lines:      st.Lines,
		Pieces:     g.Pieces(),
		IntervalMs: g.session.Interval().Milliseconds(),
		Board:      g.board().Rows(),
		Active:     active.Piece.Kind,
		ActiveAt:   active.Pos,
		ActiveMask: active.Piece.Shape.String(),
		Next:       g.session.Next(),
		State:      state,
	}
}
