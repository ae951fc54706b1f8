package bounce

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/tui-bounce/internal/audio"
	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
)

func newTestGame(t *testing.T) (*Game, *recordSink, *recordPlayer, clockwork.FakeClock) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Timing.ExplosionPauseMS = 0
	sink := &recordSink{}
	sounds := &recordPlayer{}
	clock := clockwork.NewFakeClock()

	g, err := New(Options{
		Config: cfg,
		Sink:   sink,
		Sounds: sounds,
		Clock:  clock,
		Seed:   42,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g, sink, sounds, clock
}

func hasText(f core.Frame, sub string) bool {
	for _, txt := range f.Texts {
		if strings.Contains(txt.S, sub) {
			return true
		}
	}
	return false
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ball.Size = 0

	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("New() with ball size 0 expected error")
	}
}

func TestInstructionsScreen(t *testing.T) {
	g, sink, _, _ := newTestGame(t)

	g.ShowInstructions()

	if g.Phase() != PhaseInstructions {
		t.Errorf("Phase() = %v, expected instructions", g.Phase())
	}
	if sink.count() != 1 {
		t.Fatalf("frames presented = %d, expected 1", sink.count())
	}
	if !hasText(sink.last(), "BOUNCE") {
		t.Error("instruction screen should show the title")
	}
}

func TestClickStartsRound(t *testing.T) {
	g, _, sounds, _ := newTestGame(t)
	g.ShowInstructions()

	g.OnClick()

	if g.Phase() != PhasePlaying {
		t.Fatalf("Phase() = %v, expected playing", g.Phase())
	}
	if g.Rounds() != 1 {
		t.Errorf("Rounds() = %d, expected 1", g.Rounds())
	}
	if g.Ball().State() != BallMoving {
		t.Errorf("ball state = %v, expected moving", g.Ball().State())
	}
	if !g.ballTask.Running() {
		t.Error("ball task should be running")
	}
	if !g.Presenter().Enabled() {
		t.Error("presentation should be enabled")
	}
	if got := sounds.count(audio.Start); got != 1 {
		t.Errorf("start sounds = %d, expected 1", got)
	}
	if left, width := g.Paddle().Span(); left != 80 || width != 80 {
		t.Errorf("paddle span = (%d, %d), expected (80, 80)", left, width)
	}
}

func TestClickDebouncedAndIgnoredWhilePlaying(t *testing.T) {
	g, _, _, clock := newTestGame(t)
	g.ShowInstructions()

	g.OnClick()
	g.OnClick()
	clock.Advance(time.Second)
	g.OnClick()

	if g.Rounds() != 1 {
		t.Errorf("Rounds() = %d, expected 1", g.Rounds())
	}
}

func TestRotationMovesPaddle(t *testing.T) {
	g, _, _, clock := newTestGame(t)

	// Before a round, rotation does nothing
	g.OnRotateRight()
	if g.Paddle().Left() != 0 {
		t.Errorf("paddle moved before the round started: left %d", g.Paddle().Left())
	}

	g.OnClick()
	step := func(fn func()) int {
		clock.Advance(150 * time.Millisecond)
		fn()
		return g.Paddle().Left()
	}

	if got := step(g.OnRotateRight); got != 110 {
		t.Errorf("after right: left = %d, expected 110", got)
	}
	g.OnRotateRight()
	if got := g.Paddle().Left(); got != 110 {
		t.Errorf("debounced right moved the paddle to %d", got)
	}
	if got := step(g.OnRotateLeft); got != 110 {
		t.Errorf("single reversing step moved the paddle to %d", got)
	}
	if got := step(g.OnRotateLeft); got != 80 {
		t.Errorf("confirmed reversal: left = %d, expected 80", got)
	}
}

func TestHandleDispatchesActions(t *testing.T) {
	g, _, _, clock := newTestGame(t)

	g.Handle(core.ActionClick)
	if g.Phase() != PhasePlaying {
		t.Fatalf("Phase() = %v, expected playing", g.Phase())
	}
	clock.Advance(time.Second)
	g.Handle(core.ActionRight)
	if got := g.Paddle().Left(); got != 110 {
		t.Errorf("left = %d, expected 110", got)
	}
	g.Handle(core.ActionQuit)
}

func TestScoreBannerDrawnOnPresent(t *testing.T) {
	g, sink, _, _ := newTestGame(t)
	g.OnClick()

	g.score.Increment()
	g.score.Increment()
	g.Presenter().Cycle()

	if !hasText(sink.last(), "SCORE 2") {
		t.Errorf("presented frame texts %+v, expected SCORE 2", sink.last().Texts)
	}
}

func TestGameOverFlow(t *testing.T) {
	g, sink, sounds, clock := newTestGame(t)
	g.OnClick()
	g.score.Increment()
	g.score.Increment()
	g.score.Increment()

	b := g.Ball()
	b.mu.Lock()
	b.x, b.y = 0, g.Layout().MaxY
	b.mu.Unlock()
	b.Advance()

	if g.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, expected gameover", g.Phase())
	}
	if g.Best() != 3 {
		t.Errorf("Best() = %d, expected 3", g.Best())
	}
	if g.Presenter().Enabled() {
		t.Error("presentation should stay stopped after game over")
	}
	if g.ballTask.Running() {
		t.Error("ball task should be stopped after game over")
	}
	last := sink.last()
	if !hasText(last, "GAME OVER") || !hasText(last, "BEST 3") {
		t.Errorf("game over frame texts %+v", last.Texts)
	}
	played := sounds.effects()
	if played[len(played)-1] != audio.Ready || sounds.count(audio.GameOver) != 1 {
		t.Errorf("sounds = %v, expected game-over then ready", played)
	}

	// Restart keeps the best score and resets the round
	clock.Advance(time.Second)
	g.OnClick()
	if g.Phase() != PhasePlaying || g.Score() != 0 || g.Best() != 3 || g.Rounds() != 2 {
		t.Errorf("after restart: phase %v score %d best %d rounds %d", g.Phase(), g.Score(), g.Best(), g.Rounds())
	}
	if g.Ball().State() != BallMoving {
		t.Errorf("ball state = %v, expected moving", g.Ball().State())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g, sink, sounds, clock := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	clock.BlockUntil(2) // both task tickers registered
	if sink.count() == 0 || !hasText(sink.last(), "BOUNCE") {
		t.Error("Run() should present the instruction screen")
	}
	if sounds.count(audio.Ready) != 1 {
		t.Errorf("ready sounds = %d, expected 1", sounds.count(audio.Ready))
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestScheduledRound(t *testing.T) {
	g, _, _, clock := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()
	clock.BlockUntil(2)

	g.OnClick()
	_, y0 := g.Ball().Position()
	clock.Advance(g.cfg.Timing.Tick())

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, y := g.Ball().Position(); y != y0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("ball did not move on a scheduled tick (fired %d)", g.ballTask.Fired())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	<-done
}
