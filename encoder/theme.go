package encoder

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/pooriaaskarim/logd/segment"
)

// Theme resolves segment style hints to concrete lipgloss styles. The
// renderer is pinned to the 16-color ANSI profile so encoded output is
// deterministic regardless of the environment the process runs in.
type Theme struct {
	renderer *lipgloss.Renderer
}

// NewTheme returns the standard theme.
func NewTheme() *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return &Theme{renderer: r}
}

var ansiColors = map[segment.Color]string{
	segment.ColorBlack:   "0",
	segment.ColorRed:     "1",
	segment.ColorGreen:   "2",
	segment.ColorYellow:  "3",
	segment.ColorBlue:    "4",
	segment.ColorMagenta: "5",
	segment.ColorCyan:    "6",
	segment.ColorWhite:   "7",
	segment.ColorGray:    "8",
}

// Style builds the lipgloss style for one hint.
func (t *Theme) Style(hint segment.Style) lipgloss.Style {
	style := t.renderer.NewStyle()
	if name, ok := ansiColors[hint.Color]; ok {
		style = style.Foreground(lipgloss.Color(name))
	}
	if hint.Bold {
		style = style.Bold(true)
	}
	if hint.Dim {
		style = style.Faint(true)
	}
	if hint.Italic {
		style = style.Italic(true)
	}
	if hint.Inverse {
		style = style.Reverse(true)
	}
	if hint.Underline {
		style = style.Underline(true)
	}
	return style
}

// Render applies the hint to text, returning text unchanged when the hint
// is empty.
func (t *Theme) Render(text string, hint segment.Style) string {
	if hint.IsZero() || text == "" {
		return text
	}
	return t.Style(hint).Render(text)
}
