// Package tcellscreen is a display backend that draws frames straight onto
// the terminal with tcell.
package tcellscreen

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/registry"
)

// BackendID is the registry name of this backend.
const BackendID = "tcell"

const statusLine = " ←/→ turn   space click   q quit"

func init() {
	registry.Register(registry.Backend{
		ID:    BackendID,
		Title: "tcell (direct terminal cells)",
		Run:   Run,
	})
}

// frameSlot is a latest-wins sink; a frame not yet drawn is replaced.
type frameSlot chan core.Frame

// Present implements display.Sink without blocking.
func (s frameSlot) Present(f core.Frame) {
	for {
		select {
		case s <- f:
			return
		default:
		}
		select {
		case <-s:
		default:
		}
	}
}

// Run opens the terminal and plays until the user quits or ctx is cancelled.
func Run(ctx context.Context, _ core.RuntimeConfig, newGame registry.GameFactory) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcellscreen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcellscreen: init: %w", err)
	}
	return run(ctx, screen, newGame)
}

// run drives an initialised screen and finalises it on return.
func run(ctx context.Context, screen tcell.Screen, newGame registry.GameFactory) error {
	defer screen.Fini()

	frames := make(frameSlot, 1)
	game, err := newGame(frames)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// PollEvent returns nil once the screen is finalised
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return game.Run(gctx) })

	var last core.Frame
	for {
		select {
		case <-gctx.Done():
			cancel()
			return g.Wait()

		case f := <-frames:
			last = f
			draw(screen, last)

		case ev, ok := <-events:
			if !ok {
				cancel()
				return g.Wait()
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				action := actionFor(ev.Key(), ev.Rune())
				if action == core.ActionQuit {
					cancel()
					return g.Wait()
				}
				game.Handle(action)
			case *tcell.EventResize:
				screen.Sync()
				if last.Width > 0 {
					draw(screen, last)
				}
			}
		}
	}
}

// actionFor maps a key to a game action.
func actionFor(k tcell.Key, r rune) core.Action {
	switch k {
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyEnter:
		return core.ActionClick
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		switch r {
		case 'a', 'h':
			return core.ActionLeft
		case 'd', 'l':
			return core.ActionRight
		case ' ':
			return core.ActionClick
		case 'q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}

func styleFor(fg, bg core.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(fg.ANSI())).
		Background(tcell.PaletteColor(bg.ANSI()))
}

// draw paints a frame scaled to the current terminal size, with a status
// line underneath.
func draw(screen tcell.Screen, f core.Frame) {
	cols, rows := screen.Size()
	scale := core.FitScale(f.Width, f.Height, cols, rows-1)

	screen.Clear()
	grid := f.Cells(scale)
	for y, row := range grid {
		for x, c := range row {
			screen.SetContent(x, y, c.Rune, nil, styleFor(c.FG, c.BG))
		}
	}

	status := tcell.StyleDefault.Foreground(tcell.PaletteColor(core.ColorGray.ANSI()))
	for i, r := range []rune(statusLine) {
		if i >= cols {
			break
		}
		screen.SetContent(i, len(grid), r, nil, status)
	}
	screen.Show()
}
