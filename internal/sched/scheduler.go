// Package sched runs the game's periodic work (ball ticks, frame pushes) as
// named tasks on an injectable clock.
package sched

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// Task is a periodic callback that only fires while started.
// Start and Stop are idempotent and cooperative: a callback already running
// finishes, later ticks are suppressed.
type Task struct {
	name     string
	interval time.Duration
	fn       func()
	logger   *log.Logger

	running atomic.Bool
	fired   atomic.Uint64
	panics  atomic.Uint64
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// Interval returns the tick period.
func (t *Task) Interval() time.Duration {
	return t.interval
}

// Start enables the task.
func (t *Task) Start() {
	t.running.Store(true)
}

// Stop disables the task.
func (t *Task) Stop() {
	t.running.Store(false)
}

// Running reports whether the task is enabled.
func (t *Task) Running() bool {
	return t.running.Load()
}

// Fired returns how many times the callback ran.
func (t *Task) Fired() uint64 {
	return t.fired.Load()
}

// Panics returns how many callback runs panicked.
func (t *Task) Panics() uint64 {
	return t.panics.Load()
}

// Fire runs the callback once regardless of the enabled flag.
// A panic is logged and swallowed so one bad tick never stops the schedule.
func (t *Task) Fire() {
	t.fired.Add(1)
	defer func() {
		if r := recover(); r != nil {
			t.panics.Add(1)
			t.logger.Error("task panicked", "task", t.name, "panic", fmt.Sprint(r))
		}
	}()
	t.fn()
}

// Scheduler owns a set of tasks and drives them from one clock.
type Scheduler struct {
	clock  clockwork.Clock
	logger *log.Logger

	mu      sync.Mutex
	tasks   []*Task
	started bool
}

// New creates a scheduler. A nil clock means the real clock, a nil logger
// discards output.
func New(clock clockwork.Clock, logger *log.Logger) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{
		clock:  clock,
		logger: logger,
	}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// Every registers a task that calls fn every interval while started.
// Tasks start disabled. Registration must happen before Run.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) *Task {
	t := &Task{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   s.logger,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		s.logger.Warn("task registered after Run, it will never fire", "task", name)
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Tasks returns the registered tasks.
func (s *Scheduler) Tasks() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Task(nil), s.tasks...)
}

// Run drives every task on its own ticker until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("sched: already running")
	}
	s.started = true
	tasks := append([]*Task(nil), s.tasks...)
	s.mu.Unlock()

	for _, t := range tasks {
		if t.interval <= 0 {
			return fmt.Errorf("sched: task %q has non-positive interval %v", t.name, t.interval)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error {
			ticker := s.clock.NewTicker(t.interval)
			defer ticker.Stop()

			s.logger.Debug("task loop started", "task", t.name, "interval", t.interval)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.Chan():
					if t.Running() {
						t.Fire()
					}
				}
			}
		})
	}
	return g.Wait()
}
