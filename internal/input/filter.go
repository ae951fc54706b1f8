// Package input filters noisy knob and button events before they reach the
// game. A rotary encoder bounces, and cheap ones report a spurious step in
// the opposite direction now and then.
package input

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Direction of a knob step.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// String returns a human-readable direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Rotary filters knob steps.
//
// A step is dropped when it arrives less than debounce after the previous
// counted step, including a reversal step still waiting for confirmation.
// Reversing the current direction requires confirm consecutive steps in the
// new direction; a step in the current direction resets the count.
type Rotary struct {
	clock    clockwork.Clock
	debounce time.Duration
	confirm  int

	mu         sync.Mutex
	last       time.Time
	seen       bool
	dir        Direction
	pendingDir Direction
	pending    int
}

// NewRotary creates a knob filter. confirm below 1 is treated as 1.
func NewRotary(clock clockwork.Clock, debounce time.Duration, confirm int) *Rotary {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Rotary{
		clock:    clock,
		debounce: debounce,
		confirm:  max(confirm, 1),
	}
}

// Accept reports whether the step should move the paddle.
func (r *Rotary) Accept(d Direction) bool {
	if d == DirNone {
		return false
	}
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seen && now.Sub(r.last) < r.debounce {
		return false
	}
	r.last = now
	r.seen = true

	if r.dir == DirNone || d == r.dir {
		r.pendingDir = DirNone
		r.pending = 0
		r.dir = d
		return true
	}

	// Reversal candidate
	if r.pendingDir != d {
		r.pendingDir = d
		r.pending = 0
	}
	r.pending++
	if r.pending < r.confirm {
		return false
	}
	r.pendingDir = DirNone
	r.pending = 0
	r.dir = d
	return true
}

// Direction returns the current accepted direction.
func (r *Rotary) Direction() Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dir
}

// Reset forgets the movement history.
func (r *Rotary) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = false
	r.dir = DirNone
	r.pendingDir = DirNone
	r.pending = 0
}

// Debouncer drops events that follow the previous accepted one too closely.
// Noisy buttons report one press as several callbacks.
type Debouncer struct {
	clock  clockwork.Clock
	window time.Duration

	mu   sync.Mutex
	last time.Time
	seen bool
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(clock clockwork.Clock, window time.Duration) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{clock: clock, window: window}
}

// Allow reports whether the event should be handled.
func (d *Debouncer) Allow() bool {
	now := d.clock.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen && now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	d.seen = true
	return true
}
