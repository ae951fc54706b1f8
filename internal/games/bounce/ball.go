package bounce

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/tui-bounce/internal/audio"
	"github.com/vovakirdan/tui-bounce/internal/core"
)

// BallState is the ball's lifecycle stage.
type BallState int32

const (
	BallIdle BallState = iota
	BallMoving
	BallExploding
)

// String returns the state name.
func (s BallState) String() string {
	switch s {
	case BallIdle:
		return "idle"
	case BallMoving:
		return "moving"
	case BallExploding:
		return "exploding"
	default:
		return "unknown"
	}
}

// Ticker is the periodic source that drives Advance.
type Ticker interface {
	Start()
	Stop()
}

// Scorer receives paddle hits.
type Scorer interface {
	Increment() int
}

// Explosion frame radii, each frame doubles the previous one.
var explosionRadii = [...]int{4, 8, 16, 32}

// BallOptions wires a ball to its collaborators.
type BallOptions struct {
	Layout    Layout
	Color     core.Color
	Presenter Presenter
	Paddle    *Paddle
	Ticker    Ticker
	Sounds    audio.Player
	Score     Scorer
	Clock     clockwork.Clock
	Pause     time.Duration // After each explosion frame
	Rand      *rand.Rand
	Logger    *log.Logger
}

// Ball is the moving body.
//
// Advance runs on the tick goroutine; a tick that arrives while the previous
// one is still running is dropped, never queued. Lock order is mu, then the
// presenter's lock.
type Ball struct {
	layout    Layout
	color     core.Color
	presenter Presenter
	paddle    *Paddle
	ticker    Ticker
	sounds    audio.Player
	score     Scorer
	clock     clockwork.Clock
	pause     time.Duration
	logger    *log.Logger

	state    atomic.Int32
	inFlight atomic.Bool
	dropped  atomic.Uint64
	panics   atomic.Uint64

	mu     sync.Mutex
	rng    *rand.Rand
	x, y   int
	dx, dy int
	drawnX int
	drawnY int
	drawn  bool

	subMu     sync.Mutex
	observers []func()
}

// NewBall creates an idle ball. Call Reset before starting it.
func NewBall(opts BallOptions) *Ball {
	if opts.Sounds == nil {
		opts.Sounds = audio.Silent{}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Ball{
		layout:    opts.Layout,
		color:     opts.Color,
		presenter: opts.Presenter,
		paddle:    opts.Paddle,
		ticker:    opts.Ticker,
		sounds:    opts.Sounds,
		score:     opts.Score,
		clock:     opts.Clock,
		pause:     opts.Pause,
		rng:       opts.Rand,
		logger:    opts.Logger,
	}
}

// OnGameOver registers fn to run once per missed ball, after the explosion.
func (b *Ball) OnGameOver(fn func()) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.observers = append(b.observers, fn)
}

// State returns the current lifecycle state.
func (b *Ball) State() BallState {
	return BallState(b.state.Load())
}

// Position returns the top-left corner of the ball.
func (b *Ball) Position() (x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.x, b.y
}

// Velocity returns the per-tick displacement.
func (b *Ball) Velocity() (dx, dy int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dx, b.dy
}

// DroppedTicks returns how many ticks were skipped because one was in flight.
func (b *Ball) DroppedTicks() uint64 {
	return b.dropped.Load()
}

// Reset places the ball at a random x just under the top wall, heading down
// with a random speed, and draws it there. The ball is left idle.
func (b *Ball) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	lo, hi := 5, b.layout.Width-5-b.layout.BallSize
	b.x = lo + b.rng.Intn(max(hi-lo+1, 1))
	b.y = b.layout.MinY + 1

	m := 6 + b.rng.Intn(4)
	if b.rng.Intn(2) == 0 {
		b.dx = -m
	} else {
		b.dx = m
	}
	b.dy = 20 - m

	b.state.Store(int32(BallIdle))
	b.drawLocked()
}

// StartMoving enables ticking. It moves an idle ball to Moving.
func (b *Ball) StartMoving() {
	if b.state.CompareAndSwap(int32(BallIdle), int32(BallMoving)) {
		b.logger.Debug("ball moving")
	}
	if b.State() == BallMoving && b.ticker != nil {
		b.ticker.Start()
	}
}

// StopMoving disables ticking. A moving ball goes back to idle.
func (b *Ball) StopMoving() {
	if b.ticker != nil {
		b.ticker.Stop()
	}
	b.state.CompareAndSwap(int32(BallMoving), int32(BallIdle))
}

// Advance runs one tick: collisions, movement, redraw.
func (b *Ball) Advance() {
	if !b.inFlight.CompareAndSwap(false, true) {
		b.dropped.Add(1)
		return
	}
	defer b.inFlight.Store(false)
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			b.logger.Error("ball tick panicked", "panic", fmt.Sprint(r))
		}
	}()

	if b.State() != BallMoving {
		return
	}

	missed, cx, cy := b.step()
	if !missed {
		return
	}
	b.explode(cx, cy)
	b.notifyGameOver()
}

// step runs collision detection and movement under mu. On a miss it returns
// the ball's centre for the explosion.
func (b *Ball) step() (missed bool, cx, cy int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.collideLocked() {
		x, y := b.centerLocked()
		return true, x, y
	}

	l := b.layout
	nx := core.Clamp(b.x+b.dx, 0, l.MaxX)
	ny := core.Clamp(b.y+b.dy, l.MinY, l.MaxY)
	if nx == b.x && ny == b.y {
		return false, 0, 0
	}
	b.x, b.y = nx, ny
	b.drawLocked()
	return false, 0, 0
}

// collideLocked tests the paddle plane, then the walls. It reports a miss.
func (b *Ball) collideLocked() bool {
	l := b.layout

	if b.y >= l.MaxY {
		left, width := b.paddle.Span()
		cx := b.x + l.BallSize/2
		if cx >= left && cx < left+width {
			b.bounceOffPaddleLocked(cx-left, width)
			return false
		}
		b.missLocked()
		return true
	}

	// A wall only reflects a ball heading into it.
	hit := false
	if (b.x <= 0 && b.dx < 0) || (b.x >= l.MaxX && b.dx > 0) {
		b.dx = clampSpeed(-b.dx, -b.dx)
		b.dy = clampSpeed(b.dy+b.jitter(), b.dy)
		hit = true
	}
	if b.y <= l.MinY && b.dy < 0 {
		b.dy = clampSpeed(-b.dy, -b.dy)
		b.dx = clampSpeed(b.dx+b.jitter(), b.dx)
		hit = true
	}
	if hit {
		b.sounds.Play(audio.BorderHit)
	}
	return false
}

// bounceOffPaddleLocked reflects the ball and steers it by where it struck:
// edge hits turn the rebound more vertical, mirrored by travel direction.
func (b *Ball) bounceOffPaddleLocked(offset, width int) {
	b.sounds.Play(audio.PaddleHit)
	if b.score != nil {
		b.score.Increment()
	}

	ex, ey := paddleDeltas(offset, width, b.dx)
	b.dy = -b.dy
	b.dx = clampSpeed(b.dx+ex+b.jitter(), b.dx)
	b.dy = clampSpeed(b.dy+ey+b.jitter(), b.dy)

	b.paddle.Shrink()
}

// paddleDeltas returns the extra velocity for a hit offset pixels from the
// paddle's left edge.
func paddleDeltas(offset, width, dx int) (ex, ey int) {
	third := width / 3
	switch {
	case offset < third:
		if dx > 0 {
			return -2, -2
		}
		return -2, 2
	case offset >= width-third:
		if dx > 0 {
			return 2, 2
		}
		return 2, -2
	default:
		return 0, 0
	}
}

func (b *Ball) missLocked() {
	b.presenter.Stop()
	if b.ticker != nil {
		b.ticker.Stop()
	}
	b.sounds.Play(audio.GameOver)
	b.state.Store(int32(BallExploding))
	b.logger.Info("ball missed", "x", b.x, "paddle_left", b.paddle.Left(), "paddle_width", b.paddle.Width())
}

// explode plays the four explosion frames around (cx, cy).
func (b *Ball) explode(cx, cy int) {
	for _, r := range explosionRadii {
		b.presenter.TryDraw(func(c core.Canvas) {
			c.FillCircle(cx, cy, r, core.ColorYellow)
			c.FillCircle(cx, cy, r*7/10, core.ColorOrange)
			c.FillCircle(cx, cy, r*4/10, core.ColorRed)
			c.FillCircle(cx, cy, r*2/10, core.ColorBlack)
		})
		b.presenter.ShowDirect()
		if b.pause > 0 {
			b.clock.Sleep(b.pause)
		}
	}
}

func (b *Ball) notifyGameOver() {
	b.subMu.Lock()
	observers := append([]func(){}, b.observers...)
	b.subMu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// drawLocked erases the ball where it was last drawn and draws it at the
// current position. A skipped draw leaves the old pixels for the next one.
func (b *Ball) drawLocked() {
	r := (b.layout.BallSize - 1) / 2
	half := b.layout.BallSize / 2
	x, y := b.x, b.y
	px, py, erase := b.drawnX, b.drawnY, b.drawn

	ok := b.presenter.TryDraw(func(c core.Canvas) {
		if erase {
			c.FillCircle(px+half, py+half, r, core.ColorBackground)
		}
		c.FillCircle(x+half, y+half, r, b.color)
	})
	if !ok {
		return
	}
	b.drawnX, b.drawnY, b.drawn = x, y, true
}

func (b *Ball) centerLocked() (int, int) {
	half := b.layout.BallSize / 2
	return b.x + half, b.y + half
}

// jitter returns a random nudge in {-1, 0, 1}.
func (b *Ball) jitter() int {
	return b.rng.Intn(3) - 1
}

// clampSpeed raises |v| to MinSpeed keeping the sign of ref.
func clampSpeed(v, ref int) int {
	sign := core.Sign(ref)
	if sign == 0 {
		sign = core.Sign(v)
	}
	if sign == 0 {
		sign = 1
	}
	return sign * max(core.Abs(v), MinSpeed)
}
