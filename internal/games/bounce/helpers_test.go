package bounce

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vovakirdan/tui-bounce/internal/audio"
	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/display"
	"github.com/vovakirdan/tui-bounce/internal/score"
)

type recordSink struct {
	mu     sync.Mutex
	frames []core.Frame
}

func (r *recordSink) Present(f core.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recordSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recordSink) last() core.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

type recordPlayer struct {
	mu     sync.Mutex
	played []audio.Effect
}

func (p *recordPlayer) Play(e audio.Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, e)
}

func (p *recordPlayer) count(e audio.Effect) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, got := range p.played {
		if got == e {
			n++
		}
	}
	return n
}

func (p *recordPlayer) effects() []audio.Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]audio.Effect(nil), p.played...)
}

type fakeTicker struct {
	running atomic.Bool
	stops   atomic.Int32
}

func (f *fakeTicker) Start() { f.running.Store(true) }

func (f *fakeTicker) Stop() {
	f.stops.Add(1)
	f.running.Store(false)
}

// rig is a ball and paddle on a real presenter, without a controller.
type rig struct {
	layout    Layout
	surface   *core.Surface
	presenter *display.Presenter
	sink      *recordSink
	sounds    *recordPlayer
	ticker    *fakeTicker
	score     *score.Counter
	paddle    *Paddle
	ball      *Ball
}

func newRig(t *testing.T, seed int64) *rig {
	t.Helper()

	cfg := config.DefaultConfig()
	r := &rig{
		layout: NewLayout(cfg),
		sink:   &recordSink{},
		sounds: &recordPlayer{},
		ticker: &fakeTicker{},
		score:  score.NewCounter(),
	}
	r.surface = core.NewSurface(r.layout.Width, r.layout.Height)
	r.presenter = display.New(r.surface, r.sink, nil)
	r.paddle = NewPaddle(r.layout, core.ColorGreen, r.presenter, nil)
	r.ball = NewBall(BallOptions{
		Layout:    r.layout,
		Color:     core.ColorWhite,
		Presenter: r.presenter,
		Paddle:    r.paddle,
		Ticker:    r.ticker,
		Sounds:    r.sounds,
		Score:     r.score,
		Rand:      rand.New(rand.NewSource(seed)),
	})
	r.paddle.Reset()
	r.ball.Reset()
	return r
}

// place puts the ball at (x, y) with velocity (dx, dy) and marks it moving.
func (r *rig) place(x, y, dx, dy int) {
	r.ball.mu.Lock()
	r.ball.x, r.ball.y, r.ball.dx, r.ball.dy = x, y, dx, dy
	r.ball.mu.Unlock()
	r.ball.StartMoving()
}

// countColor counts pixels of color c in the rectangle.
func countColor(s *core.Surface, rect core.Rect, c core.Color) int {
	n := 0
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			if s.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

// paddleRow returns the [first, last] green columns on the paddle's top row.
func paddleRow(s *core.Surface, l Layout) (first, last int) {
	first, last = -1, -1
	for x := 0; x < l.Width; x++ {
		if s.At(x, l.PaddleY) == core.ColorGreen {
			if first < 0 {
				first = x
			}
			last = x
		}
	}
	return first, last
}
