package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/llama-leap/internal/core"
)

// palette maps core.Color to terminal colors.
var palette = map[core.Color]lipgloss.TerminalColor{
	core.ColorSky:          lipgloss.AdaptiveColor{Light: "117", Dark: "74"},
	core.ColorCloud:        lipgloss.Color("255"),
	core.ColorPipe:         lipgloss.Color("34"),
	core.ColorPipeCap:      lipgloss.Color("28"),
	core.ColorGround:       lipgloss.Color("179"),
	core.ColorGroundStripe: lipgloss.Color("137"),
	core.ColorGrass:        lipgloss.Color("70"),
	core.ColorLlama:        lipgloss.Color("230"),
	core.ColorText:         lipgloss.Color("15"),
	core.ColorBanner:       lipgloss.Color("61"),
}

// backgroundStyle renders host content showing through transparent cells.
var backgroundStyle = lipgloss.NewStyle().Faint(true)

type cellStyle struct {
	fg, bg      core.Color
	transparent bool
}

// styleFor builds the lipgloss style of a cell run.
func styleFor(cs cellStyle) lipgloss.Style {
	if cs.transparent {
		return backgroundStyle
	}
	st := lipgloss.NewStyle()
	if c, ok := palette[cs.fg]; ok {
		st = st.Foreground(c)
	}
	if c, ok := palette[cs.bg]; ok {
		st = st.Background(c)
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return CompositeScreen(s, nil)
}

// CompositeScreen renders s over background lines. Transparent cells take
// the rune at the same position of the background, or a space.
func CompositeScreen(s *core.Screen, background []string) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		var bgLine []rune
		if y < len(background) {
			bgLine = []rune(background[y])
		}

		// Group consecutive cells with the same style
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			key := cellStyle{fg: start.Fg, bg: start.Bg, transparent: start.Transparent}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if (cellStyle{fg: cell.Fg, bg: cell.Bg, transparent: cell.Transparent}) != key {
					break
				}
				r := cell.Rune
				if cell.Transparent {
					r = ' '
					if x < len(bgLine) {
						r = bgLine[x]
					}
				}
				run.WriteRune(r)
				x++
			}

			style, ok := styles[key]
			if !ok {
				style = styleFor(key)
				styles[key] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
