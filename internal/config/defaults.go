package config

import (
	_ "embed"
)

//go:embed defaults/bounce.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/bounce.yaml and is the fallback when the embedded file fails to parse.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Width:        240,
			Height:       135,
			BannerHeight: 14,
		},
		Timing: TimingConfig{
			TickMS:           50,
			PresentMS:        93,
			ExplosionPauseMS: 150,
		},
		Paddle: PaddleConfig{
			Height:     5,
			Step:       30,
			ShrinkStep: 4,
			Color:      "green",
		},
		Ball: BallConfig{
			Size:  9,
			Color: "white",
		},
		Input: InputConfig{
			DebounceMS:      100,
			ReverseConfirm:  2,
			ClickDebounceMS: 400,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     60,
			SampleRate: 44100,
			Workers:    1,
			QueueSize:  8,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
