package document

import (
	"strings"

	"github.com/pooriaaskarim/logd/segment"
	"github.com/pooriaaskarim/logd/textwidth"
)

// PhysicalLine is one terminal row: an ordered run of segments with a
// cached visible width. The cache is invalidated on every mutation and
// recomputed on read, so it stays correct no matter how decorators and the
// layout engine rearrange the line.
type PhysicalLine struct {
	segments []segment.Segment

	width      int
	widthValid bool

	pooled bool
}

// Append adds segments at the end of the line.
func (l *PhysicalLine) Append(segs ...segment.Segment) {
	l.segments = append(l.segments, segs...)
	l.widthValid = false
}

// Prepend inserts segments at the start of the line. Used by indentation
// and box framing, which wrap already-laid-out content.
func (l *PhysicalLine) Prepend(segs ...segment.Segment) {
	if len(segs) == 0 {
		return
	}
	l.segments = append(l.segments, segs...) // grow
	copy(l.segments[len(segs):], l.segments[:len(l.segments)-len(segs)])
	copy(l.segments, segs)
	l.widthValid = false
}

// Segments exposes the line's segments in order. Callers must not mutate
// the returned slice.
func (l *PhysicalLine) Segments() []segment.Segment {
	return l.segments
}

// Width returns the visible cell width of the whole line, tracking the
// running column so tab expansion is measured against the physical line
// start rather than each segment's own start.
func (l *PhysicalLine) Width() int {
	if l.widthValid {
		return l.width
	}
	col := 0
	for _, s := range l.segments {
		col += s.WidthAt(col)
	}
	l.width = col
	l.widthValid = true
	return col
}

// Tags folds every segment's tags together.
func (l *PhysicalLine) Tags() segment.Tag {
	var tags segment.Tag
	for _, s := range l.segments {
		tags |= s.Tags
	}
	return tags
}

// Text concatenates the raw segment text, escape codes included.
func (l *PhysicalLine) Text() string {
	var b strings.Builder
	for _, s := range l.segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// PlainText concatenates the segment text with all escape codes stripped.
func (l *PhysicalLine) PlainText() string {
	return textwidth.Strip(l.Text())
}

// IsBlank reports whether the line renders as empty or whitespace only.
func (l *PhysicalLine) IsBlank() bool {
	for _, s := range l.segments {
		if !s.IsBlank() {
			return false
		}
	}
	return true
}

func (l *PhysicalLine) reset() {
	l.segments = l.segments[:0]
	l.width = 0
	l.widthValid = false
}
