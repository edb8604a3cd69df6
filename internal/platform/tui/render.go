package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// styleFor returns the style for a color with attributes applied.
// Unknown colors render unstyled.
func styleFor(c core.Color, a core.Attr) lipgloss.Style {
	style, ok := colorStyles[c]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	if a&core.AttrBold != 0 {
		style = style.Bold(true)
	}
	if a&core.AttrFaint != 0 {
		style = style.Faint(true)
	}
	return style
}

// segment is a run of adjacent cells sharing color and attributes.
type segment struct {
	text  string
	color core.Color
	attr  core.Attr
}

// segments splits screen row y into runs of equally styled cells.
func segments(s *core.Screen, y int) []segment {
	var out []segment
	var run strings.Builder
	x := 0
	for x < s.Width() {
		first := s.GetCell(x, y)
		run.Reset()
		for x < s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != first.Color || cell.Attr != first.Attr {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}
		out = append(out, segment{text: run.String(), color: first.Color, attr: first.Attr})
	}
	return out
}

// RenderScreen converts a Screen buffer to a styled string for display.
// One escape sequence is emitted per segment rather than per cell.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, seg := range segments(s, y) {
			sb.WriteString(styleFor(seg.color, seg.attr).Render(seg.text))
		}
	}
	return sb.String()
}
