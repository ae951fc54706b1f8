package bounce

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/tui-bounce/internal/audio"
	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/display"
	"github.com/vovakirdan/tui-bounce/internal/input"
	"github.com/vovakirdan/tui-bounce/internal/sched"
	"github.com/vovakirdan/tui-bounce/internal/score"
)

// Phase is the controller's screen.
type Phase int32

const (
	PhaseInstructions Phase = iota // Title screen, waiting for a click
	PhasePlaying                   // Ball in play
	PhaseGameOver                  // Ball lost, waiting for a click
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInstructions:
		return "instructions"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Task names registered with the scheduler.
const (
	TaskBall    = "ball"
	TaskPresent = "present"
)

// Options configures a Game.
type Options struct {
	Config config.Config
	Sink   display.Sink
	Sounds audio.Player
	Clock  clockwork.Clock
	Seed   int64 // 0 picks a time-based seed
	Logger *log.Logger
}

// Game wires the ball, paddle, score and display together and turns input
// events into game actions.
type Game struct {
	cfg    config.Config
	layout Layout
	logger *log.Logger
	clock  clockwork.Clock

	presenter *display.Presenter
	scheduler *sched.Scheduler
	ballTask  *sched.Task
	present   *sched.Task

	paddle *Paddle
	ball   *Ball
	score  *score.Counter
	sounds audio.Player

	rotary *input.Rotary
	clicks *input.Debouncer

	phase       atomic.Int32
	best        atomic.Int64
	rounds      atomic.Int64
	bannerDirty atomic.Bool
}

// New builds a game from a validated config.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bounce: %w", err)
	}
	paddleColor, err := cfg.PaddleColor()
	if err != nil {
		return nil, fmt.Errorf("bounce: %w", err)
	}
	ballColor, err := cfg.BallColor()
	if err != nil {
		return nil, fmt.Errorf("bounce: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	sounds := opts.Sounds
	if sounds == nil {
		sounds = audio.Silent{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	layout := NewLayout(cfg)
	g := &Game{
		cfg:    cfg,
		layout: layout,
		logger: logger,
		clock:  clock,
		score:  score.NewCounter(),
		sounds: sounds,
		rotary: input.NewRotary(clock, cfg.Input.Debounce(), cfg.Input.ReverseConfirm),
		clicks: input.NewDebouncer(clock, cfg.Input.ClickDebounce()),
	}

	surface := core.NewSurface(layout.Width, layout.Height)
	g.presenter = display.New(surface, opts.Sink, logger.WithPrefix("display"))
	g.presenter.BeforePresent(g.drawBanner)

	g.scheduler = sched.New(clock, logger.WithPrefix("sched"))
	g.paddle = NewPaddle(layout, paddleColor, g.presenter, logger.WithPrefix("paddle"))

	var ball *Ball
	g.ballTask = g.scheduler.Every(TaskBall, cfg.Timing.Tick(), func() { ball.Advance() })
	ball = NewBall(BallOptions{
		Layout:    layout,
		Color:     ballColor,
		Presenter: g.presenter,
		Paddle:    g.paddle,
		Ticker:    g.ballTask,
		Sounds:    sounds,
		Score:     g.score,
		Clock:     clock,
		Pause:     cfg.Timing.ExplosionPause(),
		Rand:      rand.New(rand.NewSource(seed)),
		Logger:    logger.WithPrefix("ball"),
	})
	g.ball = ball
	g.ball.OnGameOver(g.gameOver)

	g.present = g.scheduler.Every(TaskPresent, cfg.Timing.Present(), g.presenter.Cycle)
	g.present.Start()

	g.score.Subscribe(func(_, _ int) { g.bannerDirty.Store(true) })

	return g, nil
}

// Layout returns the playfield geometry.
func (g *Game) Layout() Layout { return g.layout }

// Presenter returns the display presenter.
func (g *Game) Presenter() *display.Presenter { return g.presenter }

// Scheduler returns the task scheduler.
func (g *Game) Scheduler() *sched.Scheduler { return g.scheduler }

// Ball returns the ball.
func (g *Game) Ball() *Ball { return g.ball }

// Paddle returns the paddle.
func (g *Game) Paddle() *Paddle { return g.paddle }

// Phase returns the current screen.
func (g *Game) Phase() Phase { return Phase(g.phase.Load()) }

// Score returns the current round's score.
func (g *Game) Score() int { return g.score.Value() }

// Best returns the best score of this session.
func (g *Game) Best() int { return int(g.best.Load()) }

// Rounds returns how many rounds were started.
func (g *Game) Rounds() int { return int(g.rounds.Load()) }

// Run shows the instruction screen and drives the periodic tasks until ctx
// is cancelled.
func (g *Game) Run(ctx context.Context) error {
	g.ShowInstructions()
	g.sounds.Play(audio.Ready)

	g.logger.Info("game running", "width", g.layout.Width, "height", g.layout.Height,
		"tick", g.cfg.Timing.Tick(), "preset", g.cfg.Difficulty.Preset)
	err := g.scheduler.Run(ctx)

	g.ball.StopMoving()
	g.presenter.Stop()
	return err
}

// ShowInstructions draws and presents the title screen.
func (g *Game) ShowInstructions() {
	g.phase.Store(int32(PhaseInstructions))
	g.presenter.Clear()

	l := g.layout
	g.presenter.TryDraw(func(c core.Canvas) {
		drawCentered(c, l, l.Height/4, "BOUNCE", core.ColorYellow)
		drawCentered(c, l, l.Height/2-core.GlyphHeight, "turn to move", core.ColorWhite)
		drawCentered(c, l, l.Height/2+core.GlyphHeight/2, "click to start", core.ColorWhite)
		c.FillRect(l.PaddleStart, l.PaddleY, l.PaddleStart, l.PaddleHeight, core.ColorGray)
	})
	g.presenter.ShowDirect()
}

// Handle dispatches an abstract action. Quit is left to the backend.
func (g *Game) Handle(a core.Action) {
	switch a {
	case core.ActionLeft:
		g.OnRotateLeft()
	case core.ActionRight:
		g.OnRotateRight()
	case core.ActionClick:
		g.OnClick()
	}
}

// OnRotateLeft handles a knob step to the left.
func (g *Game) OnRotateLeft() {
	g.rotate(input.DirLeft)
}

// OnRotateRight handles a knob step to the right.
func (g *Game) OnRotateRight() {
	g.rotate(input.DirRight)
}

func (g *Game) rotate(d input.Direction) {
	defer g.recoverInput("rotate")

	if g.ball.State() != BallMoving {
		return
	}
	if !g.rotary.Accept(d) {
		return
	}
	if d == input.DirLeft {
		g.paddle.MoveLeft()
	} else {
		g.paddle.MoveRight()
	}
}

// OnClick starts a round from the title or game-over screen.
func (g *Game) OnClick() {
	defer g.recoverInput("click")

	if !g.clicks.Allow() {
		return
	}
	switch g.Phase() {
	case PhaseInstructions, PhaseGameOver:
		g.startRound()
	}
}

func (g *Game) startRound() {
	from := g.phase.Load()
	if from == int32(PhasePlaying) || !g.phase.CompareAndSwap(from, int32(PhasePlaying)) {
		return
	}
	n := g.rounds.Add(1)

	if !g.presenter.Clear() {
		g.logger.Warn("surface clear skipped at round start")
	}
	l := g.layout
	g.presenter.TryDraw(func(c core.Canvas) {
		c.DrawLine(0, l.WallY, l.Width-1, l.WallY, core.ColorGray)
	})

	g.score.Reset()
	g.bannerDirty.Store(true)
	g.rotary.Reset()
	g.paddle.Reset()
	g.ball.Reset()

	g.sounds.Play(audio.Start)
	g.presenter.Start()
	g.ball.StartMoving()

	g.logger.Info("round started", "round", n)
}

// gameOver runs on the tick goroutine once the explosion has finished.
func (g *Game) gameOver() {
	if !g.phase.CompareAndSwap(int32(PhasePlaying), int32(PhaseGameOver)) {
		return
	}

	s := g.score.Value()
	for {
		best := g.best.Load()
		if int64(s) <= best || g.best.CompareAndSwap(best, int64(s)) {
			break
		}
	}
	g.bannerDirty.Store(true)

	l := g.layout
	g.presenter.TryDraw(func(c core.Canvas) {
		drawCentered(c, l, l.Height/2-core.GlyphHeight, "GAME OVER", core.ColorRed)
		drawCentered(c, l, l.Height/2+core.GlyphHeight/2, "click to restart", core.ColorWhite)
	})
	g.presenter.ShowDirect()
	g.sounds.Play(audio.Ready)

	g.logger.Info("game over", "score", s, "best", g.Best())
}

// drawBanner repaints the score band when the score changed. It runs under
// the presenter lock right before each snapshot.
func (g *Game) drawBanner(c core.Canvas) {
	if g.Phase() == PhaseInstructions || !g.bannerDirty.Swap(false) {
		return
	}
	l := g.layout
	c.FillRect(0, 0, l.Width, l.BannerHeight, core.ColorBackground)

	y := max((l.BannerHeight-core.GlyphHeight)/2, 0)
	c.DrawText(2, y, fmt.Sprintf("SCORE %d", g.score.Value()), core.ColorWhite)
	best := fmt.Sprintf("BEST %d", g.Best())
	c.DrawText(l.Width-2-core.TextWidth(best), y, best, core.ColorCyan)
}

func (g *Game) recoverInput(what string) {
	if r := recover(); r != nil {
		g.logger.Error("input handler panicked", "handler", what, "panic", fmt.Sprint(r))
	}
}

func drawCentered(c core.Canvas, l Layout, y int, text string, color core.Color) {
	x := max((l.Width-core.TextWidth(text))/2, 0)
	c.DrawText(x, y, text, color)
}
