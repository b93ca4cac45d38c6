package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilefall/internal/core"
)

// ansiColors maps core.Color to terminal color codes. ColorDefault has no
// entry and leaves the terminal's own color in place.
var ansiColors = map[core.Color]lipgloss.Color{
	core.ColorBlack:   lipgloss.Color("0"),
	core.ColorRed:     lipgloss.Color("1"),
	core.ColorGreen:   lipgloss.Color("2"),
	core.ColorYellow:  lipgloss.Color("3"),
	core.ColorBlue:    lipgloss.Color("4"),
	core.ColorMagenta: lipgloss.Color("5"),
	core.ColorCyan:    lipgloss.Color("6"),
	core.ColorWhite:   lipgloss.Color("7"),
	core.ColorPurple:  lipgloss.Color("93"),
	core.ColorOrange:  lipgloss.Color("208"),
	core.ColorGray:    lipgloss.Color("245"),
}

type colorPair struct {
	fg, bg core.Color
}

// cellStyle builds the lipgloss style for a foreground/background pair.
func cellStyle(p colorPair) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := ansiColors[p.fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := ansiColors[p.bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := make(map[colorPair]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			pair := colorPair{fg: start.Fg, bg: start.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != pair.fg || cell.Bg != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[pair]
			if !ok {
				style = cellStyle(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
