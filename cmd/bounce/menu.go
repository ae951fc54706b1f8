package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty from a menu, then play",
	Long: `Start the game in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a difficulty.
After you quit a session, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Q            - Quit

Examples:
  bounce menu
  bounce menu --backend tcell`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Display backend (see 'bounce backends')")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runMenu(_ *cobra.Command, _ []string) {
	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	rt := core.RuntimeConfig{TermW: width, TermH: height}

	current := config.DifficultyNormal
	best := 0

	// Menu loop
	for {
		result, err := tui.RunMenu(rt, current, best)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		rt = result.Config
		if result.Quit {
			return
		}

		current = result.Preset
		flagDifficulty = string(current)

		sessionBest, err := play()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		best = max(best, sessionBest)

		// Loop back to menu
	}
}
