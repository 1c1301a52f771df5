package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// Description returns a one-line summary for menus and help output.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slower start, gentle speedup"
	case DifficultyNormal:
		return "Classic timing"
	case DifficultyHard:
		return "Fast start, steep speedup"
	case DifficultyFixed:
		return "Gravity never speeds up"
	default:
		return ""
	}
}

// ParsePreset maps a name to a preset. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (use easy, normal, hard or fixed)", ErrInvalidConfig, name)
}

// ApplyPreset scales the timing of cfg for a preset. Normal keeps the
// loaded values, so a user file defines what "normal" means. A valid config
// stays valid: the interval never drops below 1ms or the floor.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	t := &cfg.Timing
	switch preset {
	case DifficultyEasy:
		t.InitialIntervalMs = t.InitialIntervalMs * 3 / 2
		t.SpeedupMs /= 2
	case DifficultyHard:
		t.InitialIntervalMs = t.InitialIntervalMs * 3 / 5
		t.SpeedupMs *= 2
	case DifficultyFixed:
		t.SpeedupMs = 0
	}

	if t.InitialIntervalMs < 1 {
		t.InitialIntervalMs = 1
	}
	if t.MinIntervalMs > t.InitialIntervalMs {
		t.MinIntervalMs = t.InitialIntervalMs
	}
}

// Resolve returns cfg with the preset applied, validated again.
func Resolve(cfg TetrisConfig, preset DifficultyPreset) (TetrisConfig, error) {
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, fmt.Errorf("config: %s preset: %w", preset, err)
	}
	return cfg, nil
}
