// bounce is a single-screen paddle-and-ball game for the terminal.
//
// Usage:
//
//	bounce play              - Play (default backend: tui)
//	bounce menu              - Pick a difficulty, play, repeat
//	bounce backends          - List display backends
//	bounce config            - Print the effective configuration
//	bounce sounds [effect]   - Play sound effects
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--log-file <path>    - Log destination (default: ~/.bounce/bounce.log)
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/tui-bounce/internal/platform/tcellscreen"
	_ "github.com/vovakirdan/tui-bounce/internal/platform/tui"
)

var (
	// Global flags
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bounce",
	Short: "Bounce - keep the ball off the floor",
	Long: `Bounce is a single-screen paddle game. Turn the knob (or press the
arrow keys) to move the paddle, click to serve. Every hit scores a point and
makes the paddle a little narrower.

Available commands:
  play      - Start the game
  menu      - Difficulty picker, returns after each session
  backends  - Show available display backends
  config    - Print the effective configuration
  sounds    - Play the sound effects

Examples:
  bounce play
  bounce play --backend tcell --difficulty hard
  bounce config --difficulty easy
  bounce sounds paddle-hit`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.bounce/bounce.log", "Path to the log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(soundsCmd)
}
