package core

import "testing"

func countColor(s *Surface, c Color) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestNewSurface(t *testing.T) {
	s := NewSurface(240, 135)

	if s.Width() != 240 || s.Height() != 135 {
		t.Errorf("size = %dx%d, expected 240x135", s.Width(), s.Height())
	}
	if n := countColor(s, ColorBackground); n != 240*135 {
		t.Errorf("new surface has %d background pixels, expected %d", n, 240*135)
	}
}

func TestSurfaceSetOutOfBounds(t *testing.T) {
	s := NewSurface(10, 10)

	s.Set(-1, 0, ColorRed)
	s.Set(10, 0, ColorRed)
	s.Set(0, -1, ColorRed)
	s.Set(0, 10, ColorRed)

	if n := countColor(s, ColorRed); n != 0 {
		t.Errorf("out of bounds Set painted %d pixels", n)
	}
	if s.At(-1, -1) != ColorBackground {
		t.Error("out of bounds At should return background")
	}
}

func TestSurfaceFillRectClips(t *testing.T) {
	s := NewSurface(10, 10)
	s.FillRect(-2, -2, 5, 5, ColorGreen)

	if n := countColor(s, ColorGreen); n != 9 {
		t.Errorf("clipped FillRect painted %d pixels, expected 9", n)
	}
	if s.At(2, 2) != ColorGreen || s.At(3, 3) != ColorBackground {
		t.Error("FillRect painted the wrong area")
	}
}

func TestSurfaceFillRectErasesText(t *testing.T) {
	s := NewSurface(100, 50)
	s.DrawText(10, 10, "SCORE 3", ColorWhite)
	s.DrawText(60, 10, "BEST 9", ColorWhite)

	s.FillRect(0, 0, 50, 20, ColorBackground)

	texts := s.Texts()
	if len(texts) != 1 || texts[0].S != "BEST 9" {
		t.Errorf("Texts() = %+v, expected only BEST 9", texts)
	}
}

func TestSurfaceFillCircle(t *testing.T) {
	s := NewSurface(20, 20)
	s.FillCircle(10, 10, 2, ColorYellow)

	// Radius 2 disc: 13 pixels
	if n := countColor(s, ColorYellow); n != 13 {
		t.Errorf("FillCircle(r=2) painted %d pixels, expected 13", n)
	}
	if s.At(12, 10) != ColorYellow || s.At(12, 12) != ColorBackground {
		t.Error("FillCircle painted the wrong shape")
	}

	s.FillCircle(10, 10, 2, ColorBackground)
	if n := countColor(s, ColorYellow); n != 0 {
		t.Errorf("erasing circle left %d pixels", n)
	}
}

func TestSurfaceDrawLine(t *testing.T) {
	s := NewSurface(20, 20)
	s.DrawLine(0, 5, 19, 5, ColorWhite)

	if n := countColor(s, ColorWhite); n != 20 {
		t.Errorf("horizontal line painted %d pixels, expected 20", n)
	}

	s.DrawLine(0, 0, 9, 9, ColorRed)
	for i := 0; i < 10; i++ {
		if s.At(i, i) != ColorRed {
			t.Errorf("diagonal line missing pixel (%d, %d)", i, i)
		}
	}
}

func TestSurfaceTextLayer(t *testing.T) {
	s := NewSurface(100, 50)
	s.DrawText(5, 30, "B", ColorWhite)
	s.DrawText(5, 2, "A", ColorWhite)

	texts := s.Texts()
	if len(texts) != 2 || texts[0].S != "A" || texts[1].S != "B" {
		t.Errorf("Texts() = %+v, expected A then B", texts)
	}

	s.DrawText(5, 2, "", ColorWhite)
	if len(s.Texts()) != 1 {
		t.Error("empty DrawText should remove the anchored text")
	}

	s.Clear(ColorBackground)
	if len(s.Texts()) != 0 {
		t.Error("Clear should drop all text")
	}
}

func TestSurfaceSnapshotIsCopy(t *testing.T) {
	s := NewSurface(4, 4)
	s.Set(1, 1, ColorRed)

	f := s.Snapshot()
	s.Set(1, 1, ColorBlue)

	if f.At(1, 1) != ColorRed {
		t.Errorf("snapshot changed after surface write: %v", f.At(1, 1))
	}
}
