// Package audio plays the game's short sound effects.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Effect identifies a sound effect.
type Effect int

const (
	BorderHit Effect = iota
	PaddleHit
	GameOver
	Start
	Ready
)

var effectNames = map[Effect]string{
	BorderHit: "border-hit",
	PaddleHit: "paddle-hit",
	GameOver:  "game-over",
	Start:     "start",
	Ready:     "ready",
}

// String returns the effect name.
func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Effects returns every effect in catalogue order.
func Effects() []Effect {
	return []Effect{BorderHit, PaddleHit, GameOver, Start, Ready}
}

// ParseEffect resolves an effect by name.
func ParseEffect(name string) (Effect, error) {
	for e, n := range effectNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("audio: unknown effect %q", name)
}

// Tone is one note of an effect. Freq 0 is a rest.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

var toneTable = map[Effect][]Tone{
	BorderHit: {{Freq: 880, Duration: 30 * time.Millisecond}},
	PaddleHit: {{Freq: 523, Duration: 40 * time.Millisecond}, {Freq: 784, Duration: 40 * time.Millisecond}},
	GameOver: {
		{Freq: 392, Duration: 150 * time.Millisecond},
		{Freq: 330, Duration: 150 * time.Millisecond},
		{Freq: 262, Duration: 300 * time.Millisecond},
	},
	Start: {
		{Freq: 523, Duration: 80 * time.Millisecond},
		{Freq: 659, Duration: 80 * time.Millisecond},
		{Freq: 784, Duration: 120 * time.Millisecond},
	},
	Ready: {
		{Freq: 659, Duration: 60 * time.Millisecond},
		{Freq: 0, Duration: 40 * time.Millisecond},
		{Freq: 659, Duration: 60 * time.Millisecond},
	},
}

// Tones returns the note sequence for an effect.
func Tones(e Effect) []Tone {
	return append([]Tone(nil), toneTable[e]...)
}

// Duration returns the total length of an effect.
func Duration(e Effect) time.Duration {
	var d time.Duration
	for _, t := range toneTable[e] {
		d += t.Duration
	}
	return d
}

// tone is a finite sine oscillator with a short linear fade at both ends to
// avoid clicks.
type tone struct {
	freq  float64
	rate  beep.SampleRate
	total int
	fade  int
	pos   int
}

func newTone(rate beep.SampleRate, t Tone) *tone {
	total := rate.N(t.Duration)
	return &tone{
		freq:  t.Freq,
		rate:  rate,
		total: total,
		fade:  min(rate.N(3*time.Millisecond), total/2),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		var val float64
		if t.freq > 0 {
			val = 0.3 * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.rate))
			switch {
			case t.fade > 0 && t.pos < t.fade:
				val *= float64(t.pos) / float64(t.fade)
			case t.fade > 0 && t.total-t.pos < t.fade:
				val *= float64(t.total-t.pos) / float64(t.fade)
			}
		}
		samples[i][0] = val
		samples[i][1] = val
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Streamer builds the stream for an effect at volume 0-100.
func Streamer(rate beep.SampleRate, e Effect, volume int) beep.Streamer {
	tones := toneTable[e]
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, newTone(rate, t))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// withVolume maps the 0-100 switch position onto a base-2 gain.
// Log2(0) is -Inf, so zero is handled as silence.
func withVolume(s beep.Streamer, volume int) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	v := float64(min(volume, 100)) / 100
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
