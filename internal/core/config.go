package core

// RuntimeConfig contains process-level settings passed to backends and the game.
type RuntimeConfig struct {
	TermW int   // Terminal width in cells (0 = unknown)
	TermH int   // Terminal height in cells (0 = unknown)
	Seed  int64 // RNG seed, 0 means use current time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TermW: 80,
		TermH: 24,
	}
}
