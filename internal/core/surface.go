package core

import "sort"

// Glyph metrics of the panel's built-in text font. Banners are laid out in
// surface pixels using these, terminal backends place one rune per glyph.
const (
	GlyphWidth  = 6
	GlyphHeight = 8
)

// TextWidth returns the width in surface pixels of a rendered string.
func TextWidth(s string) int {
	return len([]rune(s)) * GlyphWidth
}

// Canvas is the set of primitive drawing operations the game uses.
// Erasing is done by drawing in ColorBackground.
type Canvas interface {
	DrawLine(x0, y0, x1, y1 int, c Color)
	FillRect(x, y, w, h int, c Color)
	FillCircle(cx, cy, r int, c Color)
	DrawText(x, y int, text string, c Color)
}

// Text is a string anchored at a surface pixel (top-left of the first glyph).
type Text struct {
	X, Y  int
	S     string
	Color Color
}

type textKey struct{ x, y int }

// Surface is an in-memory pixel buffer plus a text layer.
// It is not safe for concurrent use; the display presenter serializes access.
type Surface struct {
	width  int
	height int
	pix    []Color
	texts  map[textKey]Text
}

var _ Canvas = (*Surface)(nil)

// NewSurface creates a surface filled with the background color.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
		texts:  make(map[textKey]Text),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Set colors one pixel. Out-of-bounds coordinates are silently ignored.
func (s *Surface) Set(x, y int, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.pix[y*s.width+x] = c
}

// At returns the color of one pixel, background when out of bounds.
func (s *Surface) At(x, y int) Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ColorBackground
	}
	return s.pix[y*s.width+x]
}

// Clear fills every pixel with c and drops all text.
func (s *Surface) Clear(c Color) {
	for i := range s.pix {
		s.pix[i] = c
	}
	clear(s.texts)
}

// FillRect fills a rectangle, clipped to the surface. Text anchored inside
// the rectangle is removed, so a background fill erases banners too.
func (s *Surface) FillRect(x, y, w, h int, c Color) {
	r := NewRect(x, y, w, h).Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	for py := r.Y; py < r.Bottom(); py++ {
		row := s.pix[py*s.width : (py+1)*s.width]
		for px := r.X; px < r.Right(); px++ {
			row[px] = c
		}
	}
	for k := range s.texts {
		if r.Contains(k.x, k.y) {
			delete(s.texts, k)
		}
	}
}

// FillCircle fills all pixels within radius r of (cx, cy).
func (s *Surface) FillCircle(cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= rr {
				s.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// DrawLine draws a one pixel wide line using Bresenham's algorithm.
func (s *Surface) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := Abs(x1 - x0)
	dy := -Abs(y1 - y0)
	sx := Sign(x1 - x0)
	sy := Sign(y1 - y0)
	err := dx + dy
	for {
		s.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawText places text at (x, y). Drawing an empty string at the same anchor
// removes it.
func (s *Surface) DrawText(x, y int, text string, c Color) {
	k := textKey{x, y}
	if text == "" {
		delete(s.texts, k)
		return
	}
	s.texts[k] = Text{X: x, Y: y, S: text, Color: c}
}

// Texts returns the text layer ordered top-to-bottom, left-to-right.
func (s *Surface) Texts() []Text {
	out := make([]Text, 0, len(s.texts))
	for _, t := range s.texts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Snapshot copies the surface into an immutable Frame.
func (s *Surface) Snapshot() Frame {
	pix := make([]Color, len(s.pix))
	copy(pix, s.pix)
	return Frame{
		Width:  s.width,
		Height: s.height,
		Pix:    pix,
		Texts:  s.Texts(),
	}
}
