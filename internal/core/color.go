package core

import (
	"fmt"
	"strings"
)

// Color is a palette index for one surface pixel.
// The palette is small on purpose: the target panels are 16-bit and the
// terminal backends map every entry to an ANSI 256-color code.
type Color uint8

// Palette entries. ColorBlack is the background.
const (
	ColorBlack Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorGray
)

// ColorBackground is the color used to erase shapes.
const ColorBackground = ColorBlack

var colorNames = map[Color]string{
	ColorBlack:   "black",
	ColorWhite:   "white",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorOrange:  "orange",
	ColorGray:    "gray",
}

// ansi maps palette entries to ANSI 256-color codes.
var ansi = map[Color]int{
	ColorBlack:   16,
	ColorWhite:   15,
	ColorRed:     9,
	ColorGreen:   10,
	ColorYellow:  11,
	ColorBlue:    12,
	ColorMagenta: 13,
	ColorCyan:    14,
	ColorOrange:  208,
	ColorGray:    245,
}

// String returns the lowercase color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ANSI returns the ANSI 256-color code for the palette entry.
func (c Color) ANSI() int {
	if code, ok := ansi[c]; ok {
		return code
	}
	return ansi[ColorWhite]
}

// ParseColor resolves a color name (case-insensitive).
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "grey" {
		name = "gray"
	}
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorBlack, fmt.Errorf("core: unknown color %q", name)
}
