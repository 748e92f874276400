// Package layout resolves a semantic document tree into physical terminal
// lines against a concrete column width. It reads the tree, never mutates
// it, and allocates every produced line from the arena the document came
// from.
package layout

import (
	"strings"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/segment"
	"github.com/pooriaaskarim/logd/textwidth"
)

// Border glyph sets are fixed per style and must render identically across
// every encoder that supports boxing.
type borderGlyphs struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
}

var borders = map[document.BorderStyle]borderGlyphs{
	document.BorderSharp:   {"┌", "┐", "└", "┘", "─", "│"},
	document.BorderRounded: {"╭", "╮", "╰", "╯", "─", "│"},
	document.BorderDouble:  {"╔", "╗", "╚", "╝", "═", "║"},
}

// boxOverhead is the per-line cell cost of framing: border glyph plus one
// padding space on each side.
const boxOverhead = 4

// fallbackIndent is the minimal continuation indent used when a hanging
// offset would not leave room to wrap anything.
const fallbackIndent = "  "

// Engine lays documents out. It holds only the arena reference and is safe
// for concurrent use as long as the arena is.
type Engine struct {
	arena *document.Arena
}

// New returns an engine allocating physical lines from arena.
func New(arena *document.Arena) *Engine {
	return &Engine{arena: arena}
}

// Layout resolves the whole document at the given width budget. A width of
// zero or less is clamped to 1; layout never fails for any width. The
// caller owns the returned lines and releases them via arena.ReleaseLines.
func (e *Engine) Layout(doc *document.Document, width int) []*document.PhysicalLine {
	width = textwidth.ClampWidth(width)
	var lines []*document.PhysicalLine
	for _, n := range doc.Nodes {
		lines = append(lines, e.node(n, width)...)
	}
	if lines == nil {
		// Metadata mandates at least one line of output per event.
		lines = append(lines, e.arena.CheckoutLine())
	}
	return lines
}

func (e *Engine) node(n *document.Node, width int) []*document.PhysicalLine {
	width = textwidth.ClampWidth(width)
	switch n.Kind {
	case document.KindHeader, document.KindMessage, document.KindError,
		document.KindFooter, document.KindMetadata, document.KindParagraph:
		return e.leaf(n, width)
	case document.KindFiller:
		return e.filler(n, width)
	case document.KindGroup:
		return e.group(n.Children, width)
	case document.KindBox:
		return e.box(n, width)
	case document.KindIndentation:
		return e.indentation(n, width)
	case document.KindDecorated:
		return e.decorated(n, width)
	case document.KindRow:
		return e.row(n, width)
	case document.KindMap:
		return e.mapNode(n, width)
	case document.KindList:
		return e.list(n, width)
	}
	// Unreachable for the closed Kind set.
	return nil
}

// leaf wraps a text node at the width budget, one physical line per wrapped
// run, every run tagged with the node's semantic tags. Nodes tagged noWrap
// are exempt from splitting and may exceed the nominal width.
func (e *Engine) leaf(n *document.Node, width int) []*document.PhysicalLine {
	if n.Tags.Has(segment.TagNoWrap) {
		l := e.arena.CheckoutLine()
		l.Append(segment.Styled(n.Text, n.Tags, n.Style))
		return []*document.PhysicalLine{l}
	}
	wrapped := textwidth.WrapPreserveANSI(n.Text, width)
	lines := make([]*document.PhysicalLine, 0, len(wrapped))
	for _, run := range wrapped {
		l := e.arena.CheckoutLine()
		l.Append(segment.Styled(run, n.Tags, n.Style))
		lines = append(lines, l)
	}
	return lines
}

func (e *Engine) filler(n *document.Node, width int) []*document.PhysicalLine {
	l := e.arena.CheckoutLine()
	l.Append(segment.Styled(textwidth.Repeat(n.Text, width), n.Tags, n.Style))
	return []*document.PhysicalLine{l}
}

func (e *Engine) group(children []*document.Node, width int) []*document.PhysicalLine {
	var lines []*document.PhysicalLine
	for _, child := range children {
		lines = append(lines, e.node(child, width)...)
	}
	return lines
}

// box frames its children. The effective inner width is the larger of the
// configured width and the widest content line achieved: a box expands to
// fit, it never truncates. Composing a wrap decorator upstream is the way
// to force width instead.
func (e *Engine) box(n *document.Node, width int) []*document.PhysicalLine {
	glyphs := borders[n.Border]
	inner := e.group(n.Children, textwidth.ClampWidth(width-boxOverhead))

	// Effective inner width is max(configured, widest content line): the
	// box expands to fit and shrinks to content when no width was asked.
	contentWidth := 1
	if n.BoxWidth > 0 {
		contentWidth = textwidth.ClampWidth(n.BoxWidth - boxOverhead)
	}
	for _, l := range inner {
		if w := l.Width(); w > contentWidth {
			contentWidth = w
		}
	}

	borderStyle := segment.Style{}
	if n.UseColors {
		borderStyle = segment.Style{Color: segment.ColorGray, Dim: true}
	}
	borderSeg := func(text string) segment.Segment {
		return segment.Styled(text, segment.TagBorder, borderStyle)
	}

	horizontal := strings.Repeat(glyphs.horizontal, contentWidth+2)
	top := e.arena.CheckoutLine()
	top.Append(borderSeg(glyphs.topLeft + horizontal + glyphs.topRight))

	lines := make([]*document.PhysicalLine, 0, len(inner)+2)
	lines = append(lines, top)
	for _, l := range inner {
		pad := contentWidth - l.Width()
		l.Prepend(borderSeg(glyphs.vertical + " "))
		if pad > 0 {
			l.Append(segment.New(strings.Repeat(" ", pad), segment.TagNone))
		}
		l.Append(borderSeg(" " + glyphs.vertical))
		lines = append(lines, l)
	}
	bottom := e.arena.CheckoutLine()
	bottom.Append(borderSeg(glyphs.bottomLeft + horizontal + glyphs.bottomRight))
	return append(lines, bottom)
}

func (e *Engine) indentation(n *document.Node, width int) []*document.PhysicalLine {
	indentWidth := textwidth.Visible(n.Indent)
	inner := e.group(n.Children, textwidth.ClampWidth(width-indentWidth))
	for _, l := range inner {
		l.Prepend(segment.New(n.Indent, segment.TagHierarchy))
	}
	return inner
}

// decorated lays out a label/value pair with hanging indentation. When the
// hanging offset would consume more than the available width, it falls back
// to stacking the label and the value with minimal indent instead of
// producing negative-width wraps.
func (e *Engine) decorated(n *document.Node, width int) []*document.PhysicalLine {
	label := n.Text
	labelWidth := textwidth.Visible(label)
	hang := n.Hang
	if hang <= 0 {
		hang = labelWidth
	}

	if hang >= width-1 {
		return e.decoratedFallback(n, width)
	}

	value := e.group(n.Children, textwidth.ClampWidth(width-hang))
	if len(value) == 0 {
		l := e.arena.CheckoutLine()
		l.Append(segment.Styled(label, n.Tags, n.Style))
		return []*document.PhysicalLine{l}
	}

	first := value[0]
	switch {
	case label == "":
		// No label: the first line starts at column zero, continuation
		// lines carry the hanging prefix.
	case labelWidth <= hang:
		first.Prepend(segment.Styled(textwidth.PadRight(label, hang), n.Tags, n.Style))
	default:
		return e.decoratedFallback(n, width)
	}

	continuation := n.ContinuationPrefix
	if continuation == "" {
		continuation = strings.Repeat(" ", hang)
	} else {
		continuation = textwidth.PadRight(continuation, hang)
	}
	for _, l := range value[1:] {
		l.Prepend(segment.New(continuation, segment.TagPrefix))
	}
	return value
}

func (e *Engine) decoratedFallback(n *document.Node, width int) []*document.PhysicalLine {
	var lines []*document.PhysicalLine
	if n.Text != "" {
		for _, run := range textwidth.WrapPreserveANSI(n.Text, width) {
			label := e.arena.CheckoutLine()
			label.Append(segment.Styled(run, n.Tags, n.Style))
			lines = append(lines, label)
		}
	}
	value := e.group(n.Children, textwidth.ClampWidth(width-len(fallbackIndent)))
	for _, l := range value {
		l.Prepend(segment.New(fallbackIndent, segment.TagPrefix))
	}
	return append(lines, value...)
}

// row lays out each cell at its allotted column width and joins them per
// physical row. Cells producing fewer lines than their siblings are padded
// with width-matched blanks.
func (e *Engine) row(n *document.Node, width int) []*document.PhysicalLine {
	cells := n.Children
	if len(cells) == 0 {
		return nil
	}
	widths := make([]int, len(cells))
	even := width / len(cells)
	for i := range cells {
		if i < len(n.CellWidths) && n.CellWidths[i] > 0 {
			widths[i] = n.CellWidths[i]
		} else {
			widths[i] = textwidth.ClampWidth(even)
		}
	}

	laid := make([][]*document.PhysicalLine, len(cells))
	rows := 0
	for i, cell := range cells {
		laid[i] = e.node(cell, widths[i])
		if len(laid[i]) > rows {
			rows = len(laid[i])
		}
	}

	lines := make([]*document.PhysicalLine, 0, rows)
	for r := range rows {
		out := e.arena.CheckoutLine()
		for i := range cells {
			if r < len(laid[i]) {
				cellLine := laid[i][r]
				pad := widths[i] - cellLine.Width()
				for _, s := range cellLine.Segments() {
					out.Append(s)
				}
				if pad > 0 {
					out.Append(segment.New(strings.Repeat(" ", pad), segment.TagNone))
				}
			} else {
				out.Append(segment.New(strings.Repeat(" ", widths[i]), segment.TagNone))
			}
		}
		lines = append(lines, out)
	}
	// The per-cell lines were merged into joined rows; recycle them.
	for _, cellLines := range laid {
		e.arena.ReleaseLines(cellLines)
	}
	return lines
}

// mapNode renders recursive key/value entries. Leaf values sit on the key's
// line with hanging continuation; structured values are stacked under the
// key with a two-cell indent.
func (e *Engine) mapNode(n *document.Node, width int) []*document.PhysicalLine {
	var lines []*document.PhysicalLine
	for _, entry := range n.Children {
		lines = append(lines, e.mapEntry(entry, width)...)
	}
	return lines
}

func (e *Engine) mapEntry(entry *document.Node, width int) []*document.PhysicalLine {
	key := entry.Text + ": "
	structured := false
	for _, v := range entry.Children {
		if v.Kind == document.KindMap || v.Kind == document.KindList {
			structured = true
		}
	}
	if !structured {
		keyWidth := textwidth.Visible(key)
		if keyWidth < width-1 {
			value := e.group(entry.Children, textwidth.ClampWidth(width-keyWidth))
			if len(value) == 0 {
				l := e.arena.CheckoutLine()
				l.Append(segment.Styled(key, segment.TagKey, entry.Style))
				return []*document.PhysicalLine{l}
			}
			value[0].Prepend(segment.Styled(key, segment.TagKey, entry.Style))
			pad := strings.Repeat(" ", keyWidth)
			for _, l := range value[1:] {
				l.Prepend(segment.New(pad, segment.TagPrefix))
			}
			return value
		}
	}
	keyLine := e.arena.CheckoutLine()
	keyLine.Append(segment.Styled(entry.Text+":", segment.TagKey, entry.Style))
	value := e.group(entry.Children, textwidth.ClampWidth(width-len(fallbackIndent)))
	for _, l := range value {
		l.Prepend(segment.New(fallbackIndent, segment.TagPrefix))
	}
	return append([]*document.PhysicalLine{keyLine}, value...)
}

// list renders sequence items with a dash marker and two-cell continuation
// indent.
func (e *Engine) list(n *document.Node, width int) []*document.PhysicalLine {
	var lines []*document.PhysicalLine
	for _, item := range n.Children {
		itemLines := e.node(item, textwidth.ClampWidth(width-2))
		for i, l := range itemLines {
			if i == 0 {
				l.Prepend(segment.New("- ", segment.TagPunctuation))
			} else {
				l.Prepend(segment.New("  ", segment.TagPrefix))
			}
		}
		lines = append(lines, itemLines...)
	}
	return lines
}
