// Package tui provides the Bubble Tea backend: it renders presented frames
// as half-block cells and maps keys to knob actions.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/registry"
)

// BackendID is the registry name of this backend.
const BackendID = "tui"

// Rows reserved under the playfield for the help footer.
const footerRows = 1

func init() {
	registry.Register(registry.Backend{
		ID:    BackendID,
		Title: "Bubble Tea (half-block terminal)",
		Run:   Run,
	})
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for the game screen. The game itself runs on
// its own goroutines; the model only shows frames and forwards input.
type Model struct {
	game     *bounce.Game
	keys     KeyMap
	help     help.Model
	frame    core.Frame
	hasFrame bool
	scale    int
	quitting bool
}

// NewModel creates a model for game, sized for the terminal in rt.
func NewModel(game *bounce.Game, rt core.RuntimeConfig) Model {
	l := game.Layout()
	return Model{
		game:  game,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		scale: core.FitScale(l.Width, l.Height, rt.TermW, rt.TermH-footerRows),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		l := m.game.Layout()
		m.scale = core.FitScale(l.Width, l.Height, msg.Width, msg.Height-footerRows)
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = core.Frame(msg)
		m.hasFrame = true
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.game.Handle(action)
	return m, nil
}

// View renders the latest frame and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	footer := footerStyle.Render(m.help.View(m.keys))
	if !m.hasFrame {
		return "starting...\n" + footer
	}
	return RenderFrame(m.frame, m.scale) + "\n" + footer
}

// Run builds the game and drives it under a Bubble Tea program until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, rt core.RuntimeConfig, newGame registry.GameFactory) error {
	box := newMailbox()
	game, err := newGame(box)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		NewModel(game, rt),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := game.Run(gctx)
		if err != nil {
			p.Quit()
		}
		return err
	})
	g.Go(func() error {
		box.pump(gctx, p.Send)
		return nil
	})

	_, runErr := p.Run()
	cancel()
	waitErr := g.Wait()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", runErr)
	}
	return waitErr
}
