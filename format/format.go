// Package format populates semantic documents from log entries. A formatter
// decides document structure only; physical concerns (wrapping, padding,
// borders) belong to layout, and styling to the decorator pipeline.
package format

import (
	"fmt"
	"strings"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/record"
	"github.com/pooriaaskarim/logd/segment"
)

// Formatter checks out a document from the arena and fills it with typed
// nodes for one entry. The caller owns the returned document and must
// release it.
type Formatter interface {
	Format(arena *document.Arena, entry *record.Entry) *document.Document
}

// HeaderLine renders the fixed plain header order:
// "[LEVEL] timestamp [logger] message", space-joined, optional fields
// included only when enabled. Level and message are unconditional; an empty
// message still leaves the header non-empty because the level token is
// always present.
func HeaderLine(entry *record.Entry, fields record.Fields) string {
	parts := []string{"[" + entry.Level.String() + "]"}
	if fields.Timestamp && entry.Timestamp != "" {
		parts = append(parts, entry.Timestamp)
	}
	if fields.LoggerName && entry.LoggerName != "" {
		parts = append(parts, "["+entry.LoggerName+"]")
	}
	if fields.Origin && entry.Origin != "" {
		parts = append(parts, entry.Origin)
	}
	if entry.Message != "" {
		parts = append(parts, entry.Message)
	}
	return strings.Join(parts, " ")
}

// ErrorText renders the entry's structured error value for display.
func ErrorText(err any) string {
	switch v := err.(type) {
	case nil:
		return ""
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FrameText renders one stack frame in the fixed "at method (file:line)"
// shape shared by every formatter.
func FrameText(f record.StackFrame) string {
	if f.File == "" {
		return "at " + f.Method
	}
	return fmt.Sprintf("at %s (%s:%d)", f.Method, f.File, f.Line)
}

// Plain emits the whole entry as flat lines: the fixed header, then error
// and stack frames when enabled. The header is a single leaf so a
// sufficiently wide budget yields exactly one physical line.
type Plain struct {
	Fields record.Fields
}

// Format implements Formatter.
func (f Plain) Format(arena *document.Arena, entry *record.Entry) *document.Document {
	doc := arena.CheckoutDocument(entry)
	doc.Append(arena.NewHeader(HeaderLine(entry, f.Fields),
		segment.TagLevel|segment.TagMessage))

	if f.Fields.Error && entry.Err != nil {
		doc.Append(arena.NewError("error: "+ErrorText(entry.Err), segment.TagNone))
	}
	if f.Fields.StackTrace && len(entry.StackFrames) > 0 {
		frames := make([]*document.Node, 0, len(entry.StackFrames))
		for _, frame := range entry.StackFrames {
			frames = append(frames, arena.NewParagraph(FrameText(frame), segment.TagStackFrame))
		}
		doc.Append(arena.NewIndentation("    ", frames...))
	}
	return doc
}

// ContinuationMarker prefixes wrapped message continuation lines in the
// structured format.
const ContinuationMarker = "----|"

// Structured separates the header from the message and aligns wrapped
// message continuation lines behind a marker column. Errors hang under an
// "error:" label; stack frames nest beneath the error.
type Structured struct {
	Fields record.Fields
}

// Format implements Formatter.
func (f Structured) Format(arena *document.Arena, entry *record.Entry) *document.Document {
	doc := arena.CheckoutDocument(entry)

	headerParts := []string{"[" + entry.Level.String() + "]"}
	if f.Fields.Timestamp && entry.Timestamp != "" {
		headerParts = append(headerParts, entry.Timestamp)
	}
	if f.Fields.LoggerName && entry.LoggerName != "" {
		headerParts = append(headerParts, "["+entry.LoggerName+"]")
	}
	if f.Fields.Origin && entry.Origin != "" {
		headerParts = append(headerParts, entry.Origin)
	}
	doc.Append(arena.NewHeader(strings.Join(headerParts, " "), segment.TagLevel))

	message := arena.NewDecorated("", len(ContinuationMarker),
		arena.NewMessage(entry.Message, segment.TagNone))
	message.ContinuationPrefix = ContinuationMarker
	doc.Append(message)

	if f.Fields.Error && entry.Err != nil {
		errNode := arena.NewDecorated("error: ", 0,
			arena.NewError(ErrorText(entry.Err), segment.TagNone))
		errNode.Tags |= segment.TagError
		doc.Append(errNode)
	}
	if f.Fields.StackTrace && len(entry.StackFrames) > 0 {
		frames := make([]*document.Node, 0, len(entry.StackFrames))
		for _, frame := range entry.StackFrames {
			frames = append(frames, arena.NewParagraph(FrameText(frame), segment.TagStackFrame|segment.TagCollapsible))
		}
		doc.Append(arena.NewIndentation("    ", frames...))
	}
	return doc
}

// Boxed renders the entry inside a border, header and body stacked. Border
// style and width follow the box node semantics: the frame expands to fit
// rather than truncate.
type Boxed struct {
	Fields    record.Fields
	Border    document.BorderStyle
	UseColors bool
	// Width requests a total box width; zero means size to content.
	Width int
}

// Format implements Formatter.
func (f Boxed) Format(arena *document.Arena, entry *record.Entry) *document.Document {
	doc := arena.CheckoutDocument(entry)

	children := []*document.Node{
		arena.NewHeader(HeaderLine(entry, record.Fields{
			Timestamp:  f.Fields.Timestamp,
			LoggerName: f.Fields.LoggerName,
			Origin:     f.Fields.Origin,
		}), segment.TagLevel|segment.TagMessage),
	}
	if f.Fields.Error && entry.Err != nil {
		children = append(children, arena.NewError("error: "+ErrorText(entry.Err), segment.TagNone))
	}
	if f.Fields.StackTrace && len(entry.StackFrames) > 0 {
		for _, frame := range entry.StackFrames {
			children = append(children, arena.NewParagraph("  "+FrameText(frame), segment.TagStackFrame))
		}
	}

	box := arena.NewBox(f.Border, f.UseColors, children...)
	box.BoxWidth = f.Width
	doc.Append(box)
	return doc
}
