package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidRules is returned by Rules.Validate.
var ErrInvalidRules = errors.New("engine: invalid rules")

// Rules are the tunable parameters of a session.
type Rules struct {
	Width, Height   int
	InitialInterval time.Duration // Gravity interval at the start of a round
	Speedup         time.Duration // Interval reduction applied on every lock
	MinInterval     time.Duration // Floor for the gravity interval
	SweepTopRow     bool          // Allow Sweep to clear row 0
	KickAttempts    int           // Wall-kick steps per rotation, 0 = piece width
}

// DefaultRules returns the classic 12x20 ruleset.
func DefaultRules() Rules {
	return Rules{
		Width:           12,
		Height:          20,
		InitialInterval: time.Second,
		Speedup:         5 * time.Millisecond,
		MinInterval:     100 * time.Millisecond,
	}
}

// Validate checks that a board can hold every piece and timings make sense.
func (r Rules) Validate() error {
	switch {
	case r.Width < 4 || r.Height < 4:
		return fmt.Errorf("%w: board %dx%d is smaller than 4x4", ErrInvalidRules, r.Width, r.Height)
	case r.InitialInterval <= 0:
		return fmt.Errorf("%w: initial interval must be positive", ErrInvalidRules)
	case r.MinInterval <= 0 || r.MinInterval > r.InitialInterval:
		return fmt.Errorf("%w: min interval must be in (0, %s]", ErrInvalidRules, r.InitialInterval)
	case r.Speedup < 0:
		return fmt.Errorf("%w: speedup must not be negative", ErrInvalidRules)
	case r.KickAttempts < 0:
		return fmt.Errorf("%w: kick attempts must not be negative", ErrInvalidRules)
	}
	return nil
}

// Command is a player instruction applied to the active piece.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdRotate
	CmdRotateCCW
	CmdTogglePause
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "None"
	case CmdMoveLeft:
		return "MoveLeft"
	case CmdMoveRight:
		return "MoveRight"
	case CmdSoftDrop:
		return "SoftDrop"
	case CmdRotate:
		return "Rotate"
	case CmdRotateCCW:
		return "RotateCCW"
	case CmdTogglePause:
		return "TogglePause"
	default:
		return "Unknown"
	}
}

// Event reports what happened during one Apply or Advance call.
type Event struct {
	Locked   bool
	Sweep    SweepResult
	GameOver bool

	// Totals of the round that just ended, set when GameOver is true.
	// The session itself has already been reset at that point.
	FinalScore  int
	FinalLines  int
	FinalPieces int
	FinalBoard  *Board // Copy of the board as it was when the spawn failed
}

// Session owns every piece of state of a game in progress: the board, the
// falling piece, score, pause flag and gravity timer. It is not safe for
// concurrent use; one goroutine drives it tick by tick.
type Session struct {
	rules Rules
	rng   *rand.Rand

	board  *Board
	active Active
	next   Kind

	score  int
	lines  int
	pieces int
	rounds int

	paused   bool
	interval time.Duration
	elapsed  time.Duration
}

// NewSession starts a round with the given rules. The seed fully determines
// the piece sequence.
func NewSession(rules Rules, seed int64) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	board := NewBoard(rules.Width, rules.Height)
	board.SetSweepTopRow(rules.SweepTopRow)

	s := &Session{
		rules:    rules,
		rng:      rand.New(rand.NewSource(seed)),
		board:    board,
		interval: rules.InitialInterval,
	}
	s.next = RandomKind(s.rng)
	s.spawn()
	return s, nil
}

// Apply executes one player command. Everything except TogglePause is a
// no-op while paused.
func (s *Session) Apply(cmd Command) Event {
	if cmd == CmdTogglePause {
		s.paused = !s.paused
		return Event{}
	}
	if s.paused {
		return Event{}
	}

	switch cmd {
	case CmdMoveLeft:
		s.active = Move(s.board, s.active, -1)
	case CmdMoveRight:
		s.active = Move(s.board, s.active, 1)
	case CmdRotate:
		s.active = Rotate(s.board, s.active, Clockwise, s.rules.KickAttempts)
	case CmdRotateCCW:
		s.active = Rotate(s.board, s.active, CounterClockwise, s.rules.KickAttempts)
	case CmdSoftDrop:
		return s.drop()
	}
	return Event{}
}

// Advance feeds elapsed wall time into the gravity timer and drops the piece
// once the timer exceeds the current interval. Paused sessions do not
// accumulate time.
func (s *Session) Advance(dt time.Duration) Event {
	if s.paused {
		return Event{}
	}
	s.elapsed += dt
	if s.elapsed > s.interval {
		return s.drop()
	}
	return Event{}
}

// drop is shared by soft drops and gravity. Any drop restarts the timer.
func (s *Session) drop() Event {
	s.elapsed = 0

	var res DropResult
	s.active, res = Drop(s.board, s.active)
	if !res.Locked {
		return Event{}
	}

	ev := Event{Locked: true, Sweep: res.Sweep}
	s.pieces++
	s.lines += res.Sweep.Rows
	s.score += res.Sweep.Points

	s.interval -= s.rules.Speedup
	if s.interval < s.rules.MinInterval {
		s.interval = s.rules.MinInterval
	}

	if s.spawn() {
		ev.GameOver = true
		ev.FinalScore = s.score
		ev.FinalLines = s.lines
		ev.FinalPieces = s.pieces
		ev.FinalBoard = s.board.Clone()
		s.resetRound()
	}
	return ev
}

// spawn brings in the queued kind and draws the next one.
// It returns true when the new piece is blocked at its spawn position.
func (s *Session) spawn() bool {
	var blocked bool
	s.active, blocked = Spawn(s.board, s.next)
	s.next = RandomKind(s.rng)
	return blocked
}

// resetRound clears the board, score and speed after a game over. The piece
// that failed to enter stays as the active piece of the new round.
func (s *Session) resetRound() {
	s.board.Clear()
	s.score = 0
	s.lines = 0
	s.pieces = 0
	s.interval = s.rules.InitialInterval
	s.elapsed = 0
	s.rounds++
}

// Restart begins a new round on the same board with a fresh piece sequence.
// The board is cleared in place. A session restarted with seed behaves
// exactly like one created by NewSession with that seed.
func (s *Session) Restart(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.board.Clear()
	s.score = 0
	s.lines = 0
	s.pieces = 0
	s.paused = false
	s.interval = s.rules.InitialInterval
	s.elapsed = 0
	s.next = RandomKind(s.rng)
	s.spawn()
}

// Board returns the live board. Callers must treat it as read-only.
func (s *Session) Board() *Board { return s.board }

// Active returns the falling piece.
func (s *Session) Active() Active { return s.active }

// Next returns the kind queued to spawn after the active piece locks.
func (s *Session) Next() Kind { return s.next }

// Score returns the score of the current round.
func (s *Session) Score() int { return s.score }

// Lines returns rows cleared in the current round.
func (s *Session) Lines() int { return s.lines }

// Pieces returns pieces locked in the current round.
func (s *Session) Pieces() int { return s.pieces }

// Rounds returns how many rounds have ended in game over.
func (s *Session) Rounds() int { return s.rounds }

// Paused reports whether the pause gate is closed.
func (s *Session) Paused() bool { return s.paused }

// Interval returns the current gravity interval.
func (s *Session) Interval() time.Duration { return s.interval }

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules { return s.rules }
