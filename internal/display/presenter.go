// Package display owns the drawing surface and pushes it to a physical (or
// terminal) display.
//
// Every draw and every present goes through one lock that is only ever
// acquired with TryLock. A caller that cannot get it immediately abandons that
// draw or present. Nothing waits on the lock, so the ball tick, paddle input
// and presentation cycle can never deadlock each other, at the cost of an
// occasional dropped update.
package display

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// Sink receives presented frames. Present is called outside the lock and must
// not call back into the Presenter synchronously.
type Sink interface {
	Present(f core.Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f core.Frame)

// Present calls fn(f).
func (fn SinkFunc) Present(f core.Frame) {
	fn(f)
}

// Stats counts presenter outcomes.
type Stats struct {
	Draws        uint64 // TryDraw calls that ran
	DrawsSkipped uint64 // TryDraw calls dropped on contention
	Presents     uint64 // Frames handed to the sink
	PresentsSkip uint64 // Presents dropped on contention
}

// Presenter serializes all access to the surface.
type Presenter struct {
	mu       sync.Mutex // The shared presentation lock, TryLock only
	surface  *core.Surface
	overlays []func(core.Canvas)
	sink     Sink
	logger   *log.Logger

	enabled atomic.Bool

	draws        atomic.Uint64
	drawsSkipped atomic.Uint64
	presents     atomic.Uint64
	presentsSkip atomic.Uint64
}

// New creates a presenter over surface that pushes frames to sink.
// Periodic presentation starts disabled.
func New(surface *core.Surface, sink Sink, logger *log.Logger) *Presenter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Presenter{
		surface: surface,
		sink:    sink,
		logger:  logger,
	}
}

// Width returns the surface width.
func (p *Presenter) Width() int {
	return p.surface.Width()
}

// Height returns the surface height.
func (p *Presenter) Height() int {
	return p.surface.Height()
}

// TryDraw runs fn against the surface if the lock is free right now.
// It returns false, without calling fn, when the lock is held.
func (p *Presenter) TryDraw(fn func(c core.Canvas)) bool {
	if !p.mu.TryLock() {
		p.drawsSkipped.Add(1)
		return false
	}
	defer p.mu.Unlock()

	p.draws.Add(1)
	fn(p.surface)
	return true
}

// Clear fills the whole surface with the background color if the lock is free.
func (p *Presenter) Clear() bool {
	if !p.mu.TryLock() {
		p.drawsSkipped.Add(1)
		return false
	}
	defer p.mu.Unlock()

	p.draws.Add(1)
	p.surface.Clear(core.ColorBackground)
	return true
}

// BeforePresent registers an overlay drawn under the lock right before every
// snapshot. Overlays must be registered before presentation begins.
func (p *Presenter) BeforePresent(fn func(c core.Canvas)) {
	p.overlays = append(p.overlays, fn)
}

// Start enables periodic presentation.
func (p *Presenter) Start() {
	if !p.enabled.Swap(true) {
		p.logger.Debug("presentation started")
	}
}

// Stop disables periodic presentation. A present already in progress completes.
func (p *Presenter) Stop() {
	if p.enabled.Swap(false) {
		p.logger.Debug("presentation stopped")
	}
}

// Enabled reports whether periodic presentation is on.
func (p *Presenter) Enabled() bool {
	return p.enabled.Load()
}

// Cycle is the periodic entry point: it presents only while enabled.
func (p *Presenter) Cycle() {
	if !p.enabled.Load() {
		return
	}
	p.ShowDirect()
}

// ShowDirect presents immediately regardless of the enabled flag, unless the
// lock is held. It reports whether a frame reached the sink.
func (p *Presenter) ShowDirect() bool {
	if !p.mu.TryLock() {
		p.presentsSkip.Add(1)
		return false
	}
	frame := p.snapshotLocked()
	p.mu.Unlock()

	if err := p.push(frame); err != nil {
		p.logger.Error("present failed", "error", err)
		return false
	}
	p.presents.Add(1)
	return true
}

// Stats returns a copy of the counters.
func (p *Presenter) Stats() Stats {
	return Stats{
		Draws:        p.draws.Load(),
		DrawsSkipped: p.drawsSkipped.Load(),
		Presents:     p.presents.Load(),
		PresentsSkip: p.presentsSkip.Load(),
	}
}

func (p *Presenter) snapshotLocked() core.Frame {
	for _, fn := range p.overlays {
		fn(p.surface)
	}
	return p.surface.Snapshot()
}

// push hands the frame to the sink, turning a sink panic into an error.
func (p *Presenter) push(frame core.Frame) (err error) {
	if p.sink == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("display: sink panicked: %v", r)
		}
	}()
	p.sink.Present(frame)
	return nil
}
