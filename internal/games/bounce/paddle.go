package bounce

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// Presenter is the part of the display the game draws through.
type Presenter interface {
	TryDraw(fn func(c core.Canvas)) bool
	Start()
	Stop()
	ShowDirect() bool
}

// span is a horizontal run [left, left+width).
type span struct{ left, width int }

func (s span) right() int { return s.left + s.width }

// Paddle is the player's bat along the bottom edge.
//
// Geometry lives in atomics so the ball can read it without locking; writers
// serialise on geo. What is actually on the surface is tracked separately so
// a skipped draw is repaired by the next one.
type Paddle struct {
	layout    Layout
	color     core.Color
	presenter Presenter
	logger    *log.Logger

	left  atomic.Int64
	width atomic.Int64

	geo    sync.Mutex
	drawn  span
	moving atomic.Bool

	skipped atomic.Uint64
}

// NewPaddle creates a paddle. Call Reset before the first round.
func NewPaddle(layout Layout, color core.Color, presenter Presenter, logger *log.Logger) *Paddle {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Paddle{
		layout:    layout,
		color:     color,
		presenter: presenter,
		logger:    logger,
	}
}

// Span returns the paddle's left edge and width.
func (p *Paddle) Span() (left, width int) {
	return int(p.left.Load()), int(p.width.Load())
}

// Left returns the left edge.
func (p *Paddle) Left() int {
	return int(p.left.Load())
}

// Width returns the current width.
func (p *Paddle) Width() int {
	return int(p.width.Load())
}

// Skipped returns how many paddle draws were dropped on contention.
func (p *Paddle) Skipped() uint64 {
	return p.skipped.Load()
}

// Reset erases the paddle and redraws it at the start position and width.
func (p *Paddle) Reset() {
	p.geo.Lock()
	defer p.geo.Unlock()

	target := span{left: p.layout.PaddleStart, width: p.layout.PaddleStart}
	old := p.drawn
	y, h := p.layout.PaddleY, p.layout.PaddleHeight

	p.left.Store(int64(target.left))
	p.width.Store(int64(target.width))

	ok := p.presenter.TryDraw(func(c core.Canvas) {
		if old.width > 0 {
			c.FillRect(old.left, y, old.width, h, core.ColorBackground)
		}
		c.FillRect(target.left, y, target.width, h, p.color)
	})
	if !ok {
		p.skipped.Add(1)
		// Surface still shows the old span, the next redraw diffs from it.
		p.logger.Warn("paddle reset draw skipped")
		return
	}
	p.drawn = target
}

// MoveLeft moves one step left.
func (p *Paddle) MoveLeft() bool {
	return p.Move(-p.layout.PaddleStep)
}

// MoveRight moves one step right.
func (p *Paddle) MoveRight() bool {
	return p.Move(p.layout.PaddleStep)
}

// Move shifts the paddle by delta pixels, clamped to the screen.
// Only the slivers that changed are redrawn. The move is dropped when another
// move is in flight or the surface is busy; it reports whether it happened.
func (p *Paddle) Move(delta int) (moved bool) {
	if !p.moving.CompareAndSwap(false, true) {
		return false
	}
	defer p.moving.Store(false)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("paddle move panicked", "panic", fmt.Sprint(r))
			moved = false
		}
	}()

	p.geo.Lock()
	defer p.geo.Unlock()

	left, width := p.Span()
	newLeft := core.Clamp(left+delta, 0, p.layout.Width-width)
	if newLeft == left {
		return false
	}

	target := span{left: newLeft, width: width}
	if !p.redrawLocked(target) {
		return false
	}
	p.left.Store(int64(newLeft))
	return true
}

// Shrink narrows the paddle by the shrink step, never below the floor, and
// erases the exposed strip at the right edge. It is a no-op at the floor.
func (p *Paddle) Shrink() bool {
	if p.layout.ShrinkStep <= 0 {
		return false
	}

	p.geo.Lock()
	defer p.geo.Unlock()

	left, width := p.Span()
	if width <= p.layout.PaddleFloor {
		return false
	}
	newWidth := max(width-p.layout.ShrinkStep, p.layout.PaddleFloor)
	p.width.Store(int64(newWidth))

	// Difficulty progresses even if the erase is skipped; the next
	// successful draw removes the stale strip.
	p.redrawLocked(span{left: left, width: newWidth})
	return true
}

// redrawLocked brings the surface from the drawn span to target, touching
// only the pixels that differ.
func (p *Paddle) redrawLocked(target span) bool {
	old := p.drawn
	y, h := p.layout.PaddleY, p.layout.PaddleHeight

	ok := p.presenter.TryDraw(func(c core.Canvas) {
		// Vacated pixels: old minus target
		if end := min(old.right(), target.left); end > old.left {
			c.FillRect(old.left, y, end-old.left, h, core.ColorBackground)
		}
		if start := max(old.left, target.right()); start < old.right() {
			c.FillRect(start, y, old.right()-start, h, core.ColorBackground)
		}
		// Newly covered pixels: target minus old
		if end := min(target.right(), old.left); end > target.left {
			c.FillRect(target.left, y, end-target.left, h, p.color)
		}
		if start := max(target.left, old.right()); start < target.right() {
			c.FillRect(start, y, target.right()-start, h, p.color)
		}
	})
	if !ok {
		p.skipped.Add(1)
		return false
	}
	p.drawn = target
	return true
}
