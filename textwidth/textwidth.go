// Package textwidth provides ANSI-aware terminal width math: visible cell
// width (double-width CJK/emoji, tab stops), greedy word wrapping, and
// visible-width padding. All functions are pure and deterministic.
package textwidth

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Reset clears all terminal styling.
const Reset = "\x1b[0m"

const tabStop = 8

// Strip removes recognized ANSI escape sequences. Unrecognized escape-like
// byte runs are left in place and measured as raw characters, so corrupt
// input degrades instead of crashing width math.
func Strip(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return xansi.Strip(s)
}

// Visible returns the visible cell width of s starting at column 0.
func Visible(s string) int {
	return VisibleAt(s, 0)
}

// VisibleAt returns the visible cell width of s when rendering begins at
// startCol. The start column only matters for tab expansion: a tab advances
// to the next multiple-of-8 stop relative to the physical line start.
func VisibleAt(s string, startCol int) int {
	if startCol < 0 {
		startCol = 0
	}
	stripped := Strip(s)
	col := startCol
	g := uniseg.NewGraphemes(stripped)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			col += tabStop - col%tabStop
			continue
		}
		col += clusterWidth(cluster)
	}
	return col - startCol
}

// clusterWidth measures one grapheme cluster. CJK, Hangul, fullwidth forms
// and emoji-adjacent clusters occupy 2 cells; everything else 1 (or 0 for
// pure combining marks).
func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	w := runewidth.StringWidth(cluster)
	if w > 2 {
		// A cluster never renders wider than 2 cells on a real terminal;
		// StringWidth over-counts multi-rune emoji sequences.
		w = 2
	}
	return w
}

// ClampWidth coerces a non-positive width budget to 1 so wrap loops always
// terminate. Deliberately invalid configuration is rejected earlier, at
// construction time.
func ClampWidth(width int) int {
	if width < 1 {
		return 1
	}
	return width
}

// Wrap splits s into lines no wider than width visible cells. Existing line
// breaks are honored first; within a line it breaks greedily at the last
// whitespace boundary before the limit. An unbreakable run wider than the
// budget is force-split, and a single glyph wider than the budget is emitted
// alone on its own line rather than dropped.
func Wrap(s string, width int) []string {
	width = ClampWidth(width)
	var out []string
	for _, line := range strings.Split(s, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	if out == nil {
		out = []string{""}
	}
	return out
}

func wrapLine(line string, width int) []string {
	if Visible(line) <= width {
		return []string{line}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0
	lastBreak := -1 // byte offset in cur just past the last whitespace

	flush := func() {
		lines = append(lines, strings.TrimRight(cur.String(), " \t"))
		cur.Reset()
		curWidth = 0
		lastBreak = -1
	}

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		cw := clusterWidth(cluster)
		if cluster == "\t" {
			cw = tabStop - curWidth%tabStop
		}
		if curWidth+cw > width && curWidth > 0 {
			if isBreakCluster(cluster) {
				// Break exactly here; the whitespace is absorbed.
				flush()
				continue
			}
			if lastBreak >= 0 {
				// Rewind to the last whitespace boundary.
				full := cur.String()
				lines = append(lines, strings.TrimRight(full[:lastBreak], " \t"))
				rest := strings.TrimLeft(full[lastBreak:], " \t")
				cur.Reset()
				cur.WriteString(rest)
				curWidth = Visible(rest)
				lastBreak = -1
			}
			// Still too wide after rewinding: force-split the run.
			if curWidth+cw > width && curWidth > 0 {
				flush()
			}
		}
		if isBreakCluster(cluster) {
			cur.WriteString(cluster)
			lastBreak = cur.Len()
			curWidth += cw
			continue
		}
		cur.WriteString(cluster)
		curWidth += cw
	}
	if cur.Len() > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func isBreakCluster(cluster string) bool {
	return cluster == " " || cluster == "\t"
}

// leadingEscapes returns the run of escape sequences at the start of s.
func leadingEscapes(s string) string {
	end := 0
	for strings.HasPrefix(s[end:], "\x1b[") {
		rest := s[end+2:]
		i := strings.IndexFunc(rest, func(r rune) bool {
			return r >= 0x40 && r <= 0x7e
		})
		if i < 0 {
			break
		}
		end += 2 + i + 1
	}
	return s[:end]
}

// WrapPreserveANSI wraps like Wrap, operating on the ANSI-stripped text, but
// re-applies any leading escape prefix to every produced line and terminates
// each styled line with a reset so color never bleeds across wrap boundaries.
func WrapPreserveANSI(s string, width int) []string {
	prefix := leadingEscapes(s)
	plain := Strip(s)
	lines := Wrap(plain, width)
	if prefix == "" {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = prefix + line + Reset
	}
	return out
}

// Truncate cuts s to at most width visible cells, never splitting a
// grapheme cluster. A double-width glyph straddling the limit is dropped.
func Truncate(s string, width int) string {
	width = ClampWidth(width)
	if Visible(s) <= width {
		return s
	}
	var b strings.Builder
	col := 0
	g := uniseg.NewGraphemes(Strip(s))
	for g.Next() {
		cluster := g.Str()
		cw := clusterWidth(cluster)
		if cluster == "\t" {
			cw = tabStop - col%tabStop
		}
		if col+cw > width {
			break
		}
		b.WriteString(cluster)
		col += cw
	}
	return b.String()
}

// Repeat tiles pattern until the result is exactly width visible cells,
// truncating a final partial repetition.
func Repeat(pattern string, width int) string {
	width = ClampWidth(width)
	if pattern == "" {
		return strings.Repeat(" ", width)
	}
	pw := Visible(pattern)
	if pw < 1 {
		pw = 1
	}
	tiled := strings.Repeat(pattern, width/pw+1)
	out := Truncate(tiled, width)
	if missing := width - Visible(out); missing > 0 {
		out += strings.Repeat(" ", missing)
	}
	return out
}

// PadRight pads s with spaces to the requested visible width. Styled input
// keeps its leading ANSI prefix and gains a trailing reset so the padding
// inherits the style without leaking past the line. Width is clamped to 1.
func PadRight(s string, width int) string {
	width = ClampWidth(width)
	visible := Visible(s)
	if visible >= width {
		if strings.ContainsRune(s, 0x1b) && !strings.HasSuffix(s, Reset) {
			return s + Reset
		}
		return s
	}
	padding := strings.Repeat(" ", width-visible)
	if strings.ContainsRune(s, 0x1b) {
		return s + padding + Reset
	}
	return s + padding
}
