package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hardcoded default rules.
// It mirrors defaults/tetris.yaml and is used when the embed cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  12,
			Height: 20,
		},
		Timing: TimingConfig{
			InitialIntervalMs: 1000,
			SpeedupMs:         5,
			MinIntervalMs:     100,
		},
		Rules: RulesConfig{
			SweepTopRow:  false,
			KickAttempts: 0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
