// Package config provides YAML-based configuration loading and difficulty
// presets for the bounce game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// Config contains all configuration for the bounce game.
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Timing     TimingConfig     `yaml:"timing"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Input      InputConfig      `yaml:"input"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DisplayConfig describes the panel geometry in pixels.
type DisplayConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	BannerHeight int `yaml:"banner_height"` // Score band at the top, ball stays below it
}

// TimingConfig holds the periodic schedules in milliseconds.
type TimingConfig struct {
	TickMS           int `yaml:"tick_ms"`            // Ball advance period
	PresentMS        int `yaml:"present_ms"`         // Frame push period
	ExplosionPauseMS int `yaml:"explosion_pause_ms"` // Pause after each explosion frame
}

// Tick returns the ball advance period.
func (t TimingConfig) Tick() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// Present returns the frame push period.
func (t TimingConfig) Present() time.Duration {
	return time.Duration(t.PresentMS) * time.Millisecond
}

// ExplosionPause returns the pause between explosion frames.
func (t TimingConfig) ExplosionPause() time.Duration {
	return time.Duration(t.ExplosionPauseMS) * time.Millisecond
}

// PaddleConfig defines paddle parameters.
type PaddleConfig struct {
	Height     int    `yaml:"height"`
	Step       int    `yaml:"step"`        // Pixels per knob click
	ShrinkStep int    `yaml:"shrink_step"` // Width lost on each hit
	Color      string `yaml:"color"`
}

// BallConfig defines ball parameters.
type BallConfig struct {
	Size  int    `yaml:"size"` // Bounding box edge in pixels
	Color string `yaml:"color"`
}

// InputConfig defines the knob and button filters.
type InputConfig struct {
	DebounceMS      int `yaml:"debounce_ms"`       // Minimum gap between accepted rotations
	ReverseConfirm  int `yaml:"reverse_confirm"`   // Same-direction events needed to reverse
	ClickDebounceMS int `yaml:"click_debounce_ms"` // Minimum gap between clicks
}

// Debounce returns the rotation debounce window.
func (c InputConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// ClickDebounce returns the click debounce window.
func (c InputConfig) ClickDebounce() time.Duration {
	return time.Duration(c.ClickDebounceMS) * time.Millisecond
}

// AudioConfig defines sound effect playback.
type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	Volume     int  `yaml:"volume"` // 0-100, the volume switch position
	SampleRate int  `yaml:"sample_rate"`
	Workers    int  `yaml:"workers"`
	QueueSize  int  `yaml:"queue_size"`
}

// DifficultyConfig selects the difficulty preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// PaddleColor resolves the configured paddle color.
func (c Config) PaddleColor() (core.Color, error) {
	return core.ParseColor(c.Paddle.Color)
}

// BallColor resolves the configured ball color.
func (c Config) BallColor() (core.Color, error) {
	return core.ParseColor(c.Ball.Color)
}

// Validate checks that the geometry leaves room for the game to run.
func (c Config) Validate() error {
	var errs []error

	d := c.Display
	if d.Width < 40 || d.Height < 40 {
		errs = append(errs, fmt.Errorf("display %dx%d is too small", d.Width, d.Height))
	}
	if d.BannerHeight < 0 || d.BannerHeight >= d.Height/2 {
		errs = append(errs, fmt.Errorf("banner_height %d out of range", d.BannerHeight))
	}
	if c.Ball.Size < 2 || c.Ball.Size > d.Width/4 {
		errs = append(errs, fmt.Errorf("ball size %d out of range", c.Ball.Size))
	}
	if c.Paddle.Height < 1 || c.Paddle.Step < 1 || c.Paddle.ShrinkStep < 0 {
		errs = append(errs, errors.New("paddle height and step must be positive, shrink_step non-negative"))
	}
	if d.Height-c.Paddle.Height-c.Ball.Size <= d.BannerHeight+c.Ball.Size {
		errs = append(errs, errors.New("no vertical room between banner and paddle"))
	}
	if c.Timing.TickMS <= 0 || c.Timing.PresentMS <= 0 || c.Timing.ExplosionPauseMS < 0 {
		errs = append(errs, errors.New("timing periods must be positive"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		errs = append(errs, fmt.Errorf("audio volume %d out of range 0-100", c.Audio.Volume))
	}
	if _, err := c.PaddleColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.BallColor(); err != nil {
		errs = append(errs, err)
	}
	if !c.Difficulty.Preset.Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty preset %q", c.Difficulty.Preset))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
