package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestTaskStartStopIdempotent(t *testing.T) {
	s := New(nil, nil)
	task := s.Every("tick", time.Second, func() {})

	if task.Running() {
		t.Error("new task should be stopped")
	}
	task.Start()
	task.Start()
	if !task.Running() {
		t.Error("task should be running after Start")
	}
	task.Stop()
	task.Stop()
	if task.Running() {
		t.Error("task should be stopped after Stop")
	}
}

func TestTaskFireRecoversPanic(t *testing.T) {
	s := New(nil, nil)
	calls := 0
	task := s.Every("boom", time.Second, func() {
		calls++
		if calls == 1 {
			panic("first tick fails")
		}
	})

	task.Fire()
	task.Fire()

	if calls != 2 {
		t.Errorf("callback ran %d times, expected 2", calls)
	}
	if task.Panics() != 1 {
		t.Errorf("Panics() = %d, expected 1", task.Panics())
	}
	if task.Fired() != 2 {
		t.Errorf("Fired() = %d, expected 2", task.Fired())
	}
}

func TestRunFiresOnlyStartedTasks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, nil)

	var ticks, presents atomic.Int32
	tick := s.Every("tick", 50*time.Millisecond, func() { ticks.Add(1) })
	s.Every("present", 93*time.Millisecond, func() { presents.Add(1) })
	tick.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	clock.BlockUntil(2) // both tickers registered
	clock.Advance(50 * time.Millisecond)
	waitFor(t, "first tick", func() bool { return ticks.Load() == 1 })

	tick.Stop()
	clock.Advance(100 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if got := ticks.Load(); got != 1 {
		t.Errorf("stopped task fired: ticks = %d, expected 1", got)
	}
	if got := presents.Load(); got != 0 {
		t.Errorf("never-started task fired %d times", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestRunTwiceFails(t *testing.T) {
	s := New(clockwork.NewFakeClock(), nil)
	s.Every("tick", time.Second, func() {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx) //nolint:errcheck // returns nil on cancel

	waitFor(t, "scheduler start", func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.started
	})
	if err := s.Run(ctx); err == nil {
		t.Error("second Run() should fail")
	}
}

func TestRunRejectsZeroInterval(t *testing.T) {
	s := New(clockwork.NewFakeClock(), nil)
	s.Every("bad", 0, func() {})

	if err := s.Run(context.Background()); err == nil {
		t.Error("Run() should reject a zero interval")
	}
}
