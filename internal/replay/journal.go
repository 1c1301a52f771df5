// Package replay records the input of a round and re-simulates it.
//
// A journal holds everything a round depends on: the game, its rules, the
// RNG seed, the tick rate and every accepted action tagged with the tick it
// arrived at. Because the simulation is deterministic, feeding the same
// actions at the same ticks reproduces the round exactly.
package replay

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

var (
	// ErrMismatch is returned when a re-simulated round ends differently.
	ErrMismatch = errors.New("replay: result mismatch")

	// ErrCorrupt is returned for journals that cannot be decoded or played.
	ErrCorrupt = errors.New("replay: corrupt journal")
)

// Input is one action and the tick it was applied before.
type Input struct {
	Tick   uint64 `yaml:"tick"`
	Action string `yaml:"action"`
}

// Result summarizes how a round ended.
type Result struct {
	Score  int    `yaml:"score"`
	Lines  int    `yaml:"lines"`
	Pieces int    `yaml:"pieces"`
	Ticks  uint64 `yaml:"ticks"`
}

// Journal is a complete, replayable record of one round.
type Journal struct {
	Game     string              `yaml:"game"`
	Seed     int64               `yaml:"seed"`
	TickRate int                 `yaml:"tick_rate"`
	Config   config.TetrisConfig `yaml:"config"`
	Inputs   []Input             `yaml:"inputs"`
	Result   Result              `yaml:"result"`
}

// Encode serializes a journal as YAML.
func Encode(j Journal) ([]byte, error) {
	data, err := yaml.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a YAML journal and checks that every action is known.
func Decode(data []byte) (Journal, error) {
	var j Journal
	if err := yaml.Unmarshal(data, &j); err != nil {
		return Journal{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for i, in := range j.Inputs {
		if _, ok := core.ParseAction(in.Action); !ok {
			return Journal{}, fmt.Errorf("%w: input %d has unknown action %q", ErrCorrupt, i, in.Action)
		}
	}
	return j, nil
}

// Recorder accumulates the inputs of a round in progress.
type Recorder struct {
	j Journal
}

// NewRecorder starts a journal for a round.
func NewRecorder(game string, seed int64, tickRate int, cfg config.TetrisConfig) *Recorder {
	return &Recorder{j: Journal{
		Game:     game,
		Seed:     seed,
		TickRate: tickRate,
		Config:   cfg,
	}}
}

// Record appends an action applied before simulation tick.
func (r *Recorder) Record(tick uint64, a core.Action) {
	r.j.Inputs = append(r.j.Inputs, Input{Tick: tick, Action: a.String()})
}

// Journal returns a copy of the journal with the given result.
func (r *Recorder) Journal(res Result) Journal {
	j := r.j
	j.Inputs = append([]Input(nil), r.j.Inputs...)
	j.Result = res
	return j
}
