package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

type cellStyle struct{ fg, bg core.Color }

// style returns the lipgloss style for a foreground/background pair.
func (s cellStyle) style() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(s.fg.ANSI()))).
		Background(lipgloss.Color(strconv.Itoa(s.bg.ANSI())))
}

// RenderFrame downsamples a frame to half-block cells and styles it.
func RenderFrame(f core.Frame, scale int) string {
	return RenderCells(f.Cells(scale))
}

// RenderCells converts a cell grid to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderCells(grid [][]core.Cell) string {
	styles := make(map[cellStyle]lipgloss.Style)

	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < len(row) {
			key := cellStyle{row[x].FG, row[x].BG}

			// Collect consecutive cells with the same colors
			var run strings.Builder
			for x < len(row) && (cellStyle{row[x].FG, row[x].BG}) == key {
				run.WriteRune(row[x].Rune)
				x++
			}

			st, ok := styles[key]
			if !ok {
				st = key.style()
				styles[key] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
