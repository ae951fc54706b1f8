// Package bounce implements the bounce game: a ball ricochets off the walls
// and a shrinking paddle, all drawn onto a shared surface that a separate
// cycle presents.
package bounce

import (
	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
)

// MinSpeed is the smallest per-axis speed after any collision.
const MinSpeed = 7

// Layout is the fixed playfield geometry derived from the config.
type Layout struct {
	Width  int
	Height int

	BannerHeight int // Score band, the top wall sits right below it
	WallY        int
	MinY         int // Topmost row the ball may occupy

	PaddleY      int
	PaddleHeight int
	PaddleStep   int
	ShrinkStep   int
	PaddleFloor  int // Minimum paddle width
	PaddleStart  int // Left edge and width after a reset

	BallSize int
	MaxX     int
	MaxY     int
}

// NewLayout derives the playfield geometry.
func NewLayout(cfg config.Config) Layout {
	w, h := cfg.Display.Width, cfg.Display.Height
	size := cfg.Ball.Size
	paddleY := h - cfg.Paddle.Height
	wallY := cfg.Display.BannerHeight

	return Layout{
		Width:        w,
		Height:       h,
		BannerHeight: cfg.Display.BannerHeight,
		WallY:        wallY,
		MinY:         wallY + 2,
		PaddleY:      paddleY,
		PaddleHeight: cfg.Paddle.Height,
		PaddleStep:   cfg.Paddle.Step,
		ShrinkStep:   cfg.Paddle.ShrinkStep,
		PaddleFloor:  w / 5,
		PaddleStart:  w / 3,
		BallSize:     size,
		MaxX:         w - size,
		MaxY:         paddleY - size,
	}
}

// BallBounds returns the rectangle the ball's top-left corner stays in.
func (l Layout) BallBounds() core.Rect {
	return core.NewRect(0, l.MinY, l.MaxX+1, l.MaxY-l.MinY+1)
}
