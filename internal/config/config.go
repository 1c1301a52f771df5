// Package config provides YAML-based rule configuration and difficulty
// presets for the falling-block game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// TetrisConfig contains every tunable rule of a round.
type TetrisConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Rules  RulesConfig  `yaml:"rules"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines gravity speed and its progression.
type TimingConfig struct {
	InitialIntervalMs int `yaml:"initial_interval_ms"` // Gravity interval at round start
	SpeedupMs         int `yaml:"speedup_ms"`          // Subtracted on every lock
	MinIntervalMs     int `yaml:"min_interval_ms"`     // Floor for the interval
}

// RulesConfig holds rule switches.
type RulesConfig struct {
	SweepTopRow  bool `yaml:"sweep_top_row"`  // Let full rows at the very top clear
	KickAttempts int  `yaml:"kick_attempts"` // 0 = piece width
}

// InitialInterval returns the starting gravity interval.
func (t TimingConfig) InitialInterval() time.Duration {
	return time.Duration(t.InitialIntervalMs) * time.Millisecond
}

// Speedup returns the per-lock interval reduction.
func (t TimingConfig) Speedup() time.Duration {
	return time.Duration(t.SpeedupMs) * time.Millisecond
}

// MinInterval returns the gravity floor.
func (t TimingConfig) MinInterval() time.Duration {
	return time.Duration(t.MinIntervalMs) * time.Millisecond
}

// Validate rejects configurations the engine cannot run.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < 4:
		return fmt.Errorf("%w: board.width %d, need at least 4", ErrInvalidConfig, c.Board.Width)
	case c.Board.Height < 4:
		return fmt.Errorf("%w: board.height %d, need at least 4", ErrInvalidConfig, c.Board.Height)
	case c.Timing.InitialIntervalMs <= 0:
		return fmt.Errorf("%w: timing.initial_interval_ms must be positive", ErrInvalidConfig)
	case c.Timing.MinIntervalMs <= 0:
		return fmt.Errorf("%w: timing.min_interval_ms must be positive", ErrInvalidConfig)
	case c.Timing.MinIntervalMs > c.Timing.InitialIntervalMs:
		return fmt.Errorf("%w: timing.min_interval_ms %d exceeds initial_interval_ms %d",
			ErrInvalidConfig, c.Timing.MinIntervalMs, c.Timing.InitialIntervalMs)
	case c.Timing.SpeedupMs < 0:
		return fmt.Errorf("%w: timing.speedup_ms must not be negative", ErrInvalidConfig)
	case c.Rules.KickAttempts < 0:
		return fmt.Errorf("%w: rules.kick_attempts must not be negative", ErrInvalidConfig)
	}
	return nil
}
