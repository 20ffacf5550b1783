package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tin-quest/internal/core"
)

// cellStyle returns the lipgloss style for a cell colour.
func cellStyle(c core.Color) lipgloss.Style {
	if code := c.ANSI(); code != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string. Runs of cells
// sharing a colour are styled together to keep escape sequences short.
func RenderScreen(s *core.Screen) string {
	styles := make(map[core.Color]lipgloss.Style)

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			c := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != c {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if c == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[c]
			if !ok {
				style = cellStyle(c)
				styles[c] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
