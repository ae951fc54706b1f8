package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/registry"
)

func newTestGame(t *testing.T) *bounce.Game {
	t.Helper()
	g, err := bounce.New(bounce.Options{Config: config.DefaultConfig(), Seed: 1})
	if err != nil {
		t.Fatalf("bounce.New() error: %v", err)
	}
	return g
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionClick},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionClick},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestRenderCellsShape(t *testing.T) {
	f := core.NewSurface(24, 16)
	f.FillRect(0, 0, 12, 8, core.ColorGreen)
	grid := f.Snapshot().Cells(2)

	out := RenderCells(grid)
	lines := strings.Split(out, "\n")
	if len(lines) != len(grid) {
		t.Fatalf("rendered %d lines, expected %d", len(lines), len(grid))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != len(grid[i]) {
			t.Errorf("line %d width = %d, expected %d", i, w, len(grid[i]))
		}
	}
}

func TestModelFrameAndQuit(t *testing.T) {
	m := NewModel(newTestGame(t), core.RuntimeConfig{TermW: 120, TermH: 40})

	if !strings.Contains(m.View(), "starting") {
		t.Error("View() before the first frame should show a placeholder")
	}

	s := core.NewSurface(240, 135)
	s.DrawText(0, 0, "HI", core.ColorWhite)
	next, _ := m.Update(FrameMsg(s.Snapshot()))
	m = next.(Model)
	if !strings.Contains(m.View(), "HI") {
		t.Error("View() should contain the frame text")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if cmd == nil || !m.quitting {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelForwardsClick(t *testing.T) {
	g := newTestGame(t)
	m := NewModel(g, core.RuntimeConfig{})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if g.Phase() != bounce.PhasePlaying {
		t.Errorf("Phase() = %v, expected playing after enter", g.Phase())
	}
}

func TestMailboxKeepsLatest(t *testing.T) {
	box := newMailbox()
	box.Present(core.Frame{Width: 1})
	box.Present(core.Frame{Width: 2})

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan tea.Msg, 4)
	go box.pump(ctx, func(msg tea.Msg) { got <- msg })
	defer cancel()

	select {
	case msg := <-got:
		if f := core.Frame(msg.(FrameMsg)); f.Width != 2 {
			t.Errorf("delivered frame width = %d, expected 2", f.Width)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}
	select {
	case msg := <-got:
		t.Errorf("unexpected second delivery %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBackendRegistered(t *testing.T) {
	if !registry.Exists(BackendID) {
		t.Errorf("backend %q not registered", BackendID)
	}
}
