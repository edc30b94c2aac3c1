package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

var plainStyle = lipgloss.NewStyle()

// cellStyle returns the lipgloss style of a cell colour.
func cellStyle(c core.Color) lipgloss.Style {
	code := c.ANSI()
	if code == "" {
		return plainStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// RenderScreen turns a frame into styled terminal text. Runs of cells that
// share a colour are styled once.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(cellStyle(color).Render(run.String()))
		}
	}
	return sb.String()
}
