package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bounce/internal/audio"
	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/display"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/registry"
)

var (
	flagBackend    string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game on the selected display backend.

Controls:
  Left/A, Right/D  - Turn the knob (move the paddle)
  Space/Enter      - Click (serve, restart)
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ball, paddle shrinks by 2 per hit
  normal - Configured speed and shrink step
  hard   - Faster ball, paddle shrinks by 6 per hit
  fixed  - Paddle never shrinks

Examples:
  bounce play
  bounce play --difficulty hard
  bounce play --backend tcell --mute
  bounce play --config ./my-bounce.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Display backend (see 'bounce backends')")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(cmd *cobra.Command, args []string) {
	if _, err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play runs one session and returns its best score.
func play() (int, error) {
	backend, err := registry.Get(flagBackend)
	if err != nil {
		return 0, fmt.Errorf("%w (run 'bounce backends' to see available backends)", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return 0, err
	}

	logger, closeLog, err := openLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return 0, err
	}
	defer closeLog()

	sounds, closeSounds := openSounds(cfg, logger)
	defer closeSounds()

	// Get terminal size for the initial scale
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := core.RuntimeConfig{
		TermW: width,
		TermH: height,
		Seed:  flagSeed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "backend", backend.ID, "preset", cfg.Difficulty.Preset, "seed", flagSeed)
	var game *bounce.Game
	newGame := func(sink display.Sink) (*bounce.Game, error) {
		g, err := bounce.New(bounce.Options{
			Config: cfg,
			Sink:   sink,
			Sounds: sounds,
			Seed:   rt.Seed,
			Logger: logger,
		})
		game = g
		return g, err
	}
	if err := backend.Run(ctx, rt, newGame); err != nil {
		logger.Error("backend failed", "error", err)
		return 0, err
	}

	best := 0
	if game != nil {
		best = game.Best()
		stats := game.Presenter().Stats()
		logger.Info("session over", "rounds", game.Rounds(), "best", best,
			"presents", stats.Presents, "presents_skipped", stats.PresentsSkip, "draws_skipped", stats.DrawsSkipped,
			"ticks_dropped", game.Ball().DroppedTicks())
	}
	return best, nil
}

// loadConfig loads the config file and applies the difficulty flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	preset := cfg.Difficulty.Preset
	if flagDifficulty != "" {
		preset = config.DifficultyPreset(flagDifficulty)
		if !preset.Valid() {
			return config.Config{}, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openSounds returns the speaker-backed player, or a silent one when muted or
// when the audio device is unavailable.
func openSounds(cfg config.Config, logger *log.Logger) (audio.Player, func()) {
	if flagMute || !cfg.Audio.Enabled {
		return audio.Silent{}, func() {}
	}

	p, err := audio.NewBeepPlayer(audio.Options{
		SampleRate: cfg.Audio.SampleRate,
		Volume:     cfg.Audio.Volume,
		Workers:    cfg.Audio.Workers,
		QueueSize:  cfg.Audio.QueueSize,
		Logger:     logger.WithPrefix("audio"),
	})
	if err != nil {
		// Non-fatal, the game runs without sound
		logger.Warn("audio unavailable", "error", err)
		return audio.Silent{}, func() {}
	}
	return p, func() {
		logger.Debug("audio closed", "played", p.Played(), "dropped", p.Dropped())
		p.Close()
	}
}
