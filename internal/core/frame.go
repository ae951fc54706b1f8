package core

// Frame is a presented copy of the surface. Sinks may keep it.
type Frame struct {
	Width  int
	Height int
	Pix    []Color
	Texts  []Text
}

// At returns the color of one pixel, background when out of bounds.
func (f Frame) At(x, y int) Color {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return ColorBackground
	}
	return f.Pix[y*f.Width+x]
}

// HalfBlock is the rune used to show two vertically stacked pixel blocks in
// one terminal cell: FG paints the upper half, BG the lower half.
const HalfBlock = '▀'

// Cell is one terminal character cell.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

// FitScale returns the smallest pixel block size that fits a w×h frame into
// cols×rows terminal cells. Each cell shows scale×(2·scale) pixels.
func FitScale(w, h, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 3
	}
	for s := 1; s < 64; s++ {
		if ceilDiv(w, s) <= cols && ceilDiv(h, 2*s) <= rows {
			return s
		}
	}
	return 64
}

// Cells downsamples the frame into rows of terminal cells. A block shows the
// first non-background pixel it contains, so one pixel wide lines survive.
func (f Frame) Cells(scale int) [][]Cell {
	if scale < 1 {
		scale = 1
	}
	cols := ceilDiv(f.Width, scale)
	rows := ceilDiv(f.Height, 2*scale)

	grid := make([][]Cell, rows)
	for cy := range rows {
		grid[cy] = make([]Cell, cols)
		for cx := range cols {
			x := cx * scale
			y := cy * 2 * scale
			grid[cy][cx] = Cell{
				Rune: HalfBlock,
				FG:   f.block(x, y, scale),
				BG:   f.block(x, y+scale, scale),
			}
		}
	}

	for _, t := range f.Texts {
		runes := []rune(t.S)
		centre := t.X + len(runes)*GlyphWidth/2
		row := (t.Y + GlyphHeight/2) / (2 * scale)
		if row < 0 || row >= rows {
			continue
		}
		col := centre/scale - len(runes)/2
		for i, r := range runes {
			c := col + i
			if c < 0 || c >= cols {
				continue
			}
			grid[row][c] = Cell{Rune: r, FG: t.Color, BG: ColorBackground}
		}
	}
	return grid
}

func (f Frame) block(x0, y0, size int) Color {
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			if c := f.At(x, y); c != ColorBackground {
				return c
			}
		}
	}
	return ColorBackground
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
