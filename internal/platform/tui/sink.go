package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// FrameMsg carries a presented frame into the Bubble Tea loop.
type FrameMsg core.Frame

// mailbox is a latest-wins frame slot. Present never blocks, so the
// presenter cannot stall on a slow terminal; intermediate frames are dropped.
type mailbox struct {
	mu     sync.Mutex
	frame  core.Frame
	full   bool
	notify chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{notify: make(chan struct{}, 1)}
}

// Present stores f, replacing any frame not yet delivered.
func (m *mailbox) Present(f core.Frame) {
	m.mu.Lock()
	m.frame = f
	m.full = true
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *mailbox) take() (core.Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.full {
		return core.Frame{}, false
	}
	f := m.frame
	m.frame = core.Frame{}
	m.full = false
	return f, true
}

// pump forwards frames to send until ctx is done.
func (m *mailbox) pump(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.notify:
			if f, ok := m.take(); ok {
				send(FrameMsg(f))
			}
		}
	}
}
