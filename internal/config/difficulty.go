package config

// DifficultyPreset represents a named difficulty level.
// Difficulty progresses within a round by shrinking the paddle on every hit;
// presets tune how fast that happens and how fast the ball ticks.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists all presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// Valid reports whether p is a known preset. Empty means normal.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == "" {
		preset = DifficultyNormal
	}
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Paddle.ShrinkStep = 2
		cfg.Timing.TickMS = 60
	case DifficultyHard:
		cfg.Paddle.ShrinkStep = 6
		cfg.Timing.TickMS = 40
	case DifficultyFixed:
		cfg.Paddle.ShrinkStep = 0
	}
}
