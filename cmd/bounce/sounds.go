package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/audio"
)

var flagVolume int

var soundsCmd = &cobra.Command{
	Use:   "sounds [effect...]",
	Short: "Play sound effects",
	Long: `Plays the named sound effects, or all of them in order.

Effects: border-hit, paddle-hit, game-over, start, ready

Examples:
  bounce sounds
  bounce sounds game-over --volume 100`,
	Run: runSounds,
}

func init() {
	soundsCmd.Flags().IntVar(&flagVolume, "volume", 60, "Volume 0-100")
}

func runSounds(cmd *cobra.Command, args []string) {
	effects := audio.Effects()
	if len(args) > 0 {
		effects = effects[:0]
		for _, name := range args {
			e, err := audio.ParseEffect(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			effects = append(effects, e)
		}
	}

	p, err := audio.NewBeepPlayer(audio.Options{Volume: flagVolume, QueueSize: len(effects)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	for _, e := range effects {
		fmt.Printf("  %-12s %v\n", e, audio.Duration(e))
		p.Play(e)
		time.Sleep(audio.Duration(e) + 250*time.Millisecond)
	}
}
