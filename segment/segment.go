// Package segment defines the indivisible unit of rendered content: an
// immutable run of text carrying a semantic tag bitmask and an optional
// style hint. Tags let decorators locate content without parsing text;
// style hints are resolved to concrete escape codes only at encode time.
package segment

import (
	"strings"

	"github.com/pooriaaskarim/logd/textwidth"
)

// Tag is a bitmask of semantic markers attached to a segment or node.
// Tags combine with bitwise OR and form a closed set.
type Tag uint32

const (
	TagHeader Tag = 1 << iota
	TagOrigin
	TagMessage
	TagError
	TagStackFrame
	TagLevel
	TagBorder
	TagTimestamp
	TagLoggerName
	TagHierarchy
	TagPrefix
	TagSuffix
	TagKey
	TagValue
	TagPunctuation
	TagNoWrap
	TagCollapsible

	// TagNone marks untagged content.
	TagNone Tag = 0
)

// Has reports whether every bit of other is set in t.
func (t Tag) Has(other Tag) bool {
	return t&other == other
}

// Color names resolved by the ANSI encoder's theme. Encoders that cannot
// style (plain, JSON) ignore them.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// Style is an optional rendering hint. The zero value means "no styling".
type Style struct {
	Color     Color
	Bold      bool
	Dim       bool
	Italic    bool
	Inverse   bool
	Underline bool
}

// IsZero reports whether the style carries no hint at all.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Segment is an immutable run of text plus semantic tags and a style hint.
// Construct with New; the zero value is a valid empty untagged segment.
type Segment struct {
	Text  string
	Tags  Tag
	Style Style
}

// New builds a segment. Tags are required at construction; pass TagNone for
// untagged content.
func New(text string, tags Tag) Segment {
	return Segment{Text: text, Tags: tags}
}

// Styled builds a segment with a style hint.
func Styled(text string, tags Tag, style Style) Segment {
	return Segment{Text: text, Tags: tags, Style: style}
}

// Width returns the ANSI-stripped visible cell width of the segment text,
// with tab expansion measured from column 0.
func (s Segment) Width() int {
	return textwidth.Visible(s.Text)
}

// WidthAt measures the segment starting at the given physical column, which
// only matters when the text contains tabs.
func (s Segment) WidthAt(startCol int) int {
	return textwidth.VisibleAt(s.Text, startCol)
}

// PadRightVisible returns the segment text padded to the requested visible
// width. Styled text keeps its ANSI prefix and gains a trailing reset so the
// padding inherits the style without leaking past the line.
func (s Segment) PadRightVisible(width int) string {
	return textwidth.PadRight(s.Text, width)
}

// WithText returns a copy of the segment carrying different text. Tags and
// style are preserved; the original is untouched.
func (s Segment) WithText(text string) Segment {
	s.Text = text
	return s
}

// IsBlank reports whether the visible text is empty or whitespace only.
func (s Segment) IsBlank() bool {
	return strings.TrimSpace(textwidth.Strip(s.Text)) == ""
}
