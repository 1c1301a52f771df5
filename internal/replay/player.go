package replay

import (
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Player serves the recorded actions of a journal tick by tick.
type Player struct {
	byTick *intmap.Map[uint64, []core.Action]
	last   uint64
}

// NewPlayer indexes the journal inputs by tick.
func NewPlayer(j Journal) (*Player, error) {
	p := &Player{byTick: intmap.New[uint64, []core.Action](len(j.Inputs))}
	for i, in := range j.Inputs {
		a, ok := core.ParseAction(in.Action)
		if !ok {
			return nil, fmt.Errorf("%w: input %d has unknown action %q", ErrCorrupt, i, in.Action)
		}
		if i > 0 && in.Tick < j.Inputs[i-1].Tick {
			return nil, fmt.Errorf("%w: input %d goes back in time", ErrCorrupt, i)
		}
		actions, _ := p.byTick.Get(in.Tick)
		p.byTick.Put(in.Tick, append(actions, a))
		p.last = in.Tick
	}
	return p, nil
}

// Frame returns the actions recorded for tick, in their original order.
func (p *Player) Frame(tick uint64) core.InputFrame {
	f := core.NewInputFrame()
	actions, _ := p.byTick.Get(tick)
	for _, a := range actions {
		f.Push(a)
	}
	return f
}

// Ticks returns how many distinct ticks carry input.
func (p *Player) Ticks() int {
	return p.byTick.Len()
}

// LastTick returns the tick of the final recorded input.
func (p *Player) LastTick() uint64 {
	return p.last
}

// Factory builds a game for the rules stored in a journal.
type Factory func(cfg config.TetrisConfig) registry.Game

// Recorded is implemented by games that journal their own input.
// Tick is the number of simulated ticks, the index journal inputs use.
type Recorded interface {
	registry.Game
	Journal() Journal
	Tick() uint64
}

// Run re-simulates a journal headlessly until the round ends. It stops with
// ErrMismatch if the round outlives the recorded tick count.
func Run(newGame Factory, j Journal) (Result, error) {
	player, err := NewPlayer(j)
	if err != nil {
		return Result{}, err
	}

	g, ok := newGame(j.Config).(Recorded)
	if !ok {
		return Result{}, fmt.Errorf("replay: game %q does not record journals", j.Game)
	}
	g.Reset(core.RuntimeConfig{
		// The layout only has to fit; it never affects the simulation.
		ScreenW:  1000,
		ScreenH:  1000,
		TickRate: j.TickRate,
		Seed:     j.Seed,
	})
	if e, ok := g.(interface{ Err() error }); ok && e.Err() != nil {
		return Result{}, fmt.Errorf("%w: rules: %w", ErrCorrupt, e.Err())
	}

	limit := j.Result.Ticks + 1
	for step := uint64(0); step <= limit && g.Tick() <= limit; step++ {
		if res := g.Step(player.Frame(g.Tick())); res.RoundOver {
			return g.Journal().Result, nil
		}
	}
	return Result{}, fmt.Errorf("%w: round did not end within %d ticks", ErrMismatch, limit)
}

// Verify re-simulates a journal and compares the outcome with the recorded result.
func Verify(newGame Factory, j Journal) (Result, error) {
	got, err := Run(newGame, j)
	if err != nil {
		return got, err
	}
	if got != j.Result {
		return got, fmt.Errorf("%w: recorded %+v, replayed %+v", ErrMismatch, j.Result, got)
	}
	return got, nil
}
