package encoder

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/record"
	"github.com/pooriaaskarim/logd/segment"
	"github.com/pooriaaskarim/logd/textwidth"
)

// HTML renders a full document with embedded CSS. Unlike the line-oriented
// encoders it is incremental: Begin writes the document head once,
// WriteEntry appends one entry at a time, and Close writes the footer.
// Encode wraps all three for single-shot use.
type HTML struct {
	Title string
}

const htmlStyle = `body{background:#1b1b1b;color:#d8d8d8;font-family:monospace;margin:1em}
.entry{margin-bottom:.5em;white-space:pre}
.line{min-height:1em}
.level-TRACE{color:#7aa2f7}.level-DEBUG{color:#7dcfff}.level-INFO{color:#9ece6a}
.level-WARN{color:#e0af68}.level-ERROR{color:#f7768e}.level-FATAL{color:#f7768e}
.seg-error{color:#f7768e}.seg-border{color:#565f89}.seg-timestamp{color:#565f89}
`

// Begin writes the document head and opens the body.
func (e HTML) Begin(w io.Writer) error {
	title := e.Title
	if title == "" {
		title = "log"
	}
	_, err := fmt.Fprintf(w,
		"<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s</style>\n</head>\n<body>\n",
		html.EscapeString(title), htmlStyle)
	return err
}

// WriteEntry appends one laid-out entry to the body.
func (e HTML) WriteEntry(w io.Writer, entry *record.Entry, lines []*document.PhysicalLine) error {
	level := record.InfoLevel
	if entry != nil {
		level = entry.Level
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"entry level-%s\">\n", level.String())
	for _, line := range lines {
		b.WriteString("<div class=\"line\">")
		for _, seg := range line.Segments() {
			text := html.EscapeString(stripForHTML(seg))
			if class := segClass(seg.Tags); class != "" {
				fmt.Fprintf(&b, "<span class=\"%s\">%s</span>", class, text)
			} else {
				b.WriteString(text)
			}
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Close terminates the body opened by Begin.
func (e HTML) Close(w io.Writer) error {
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// Encode implements Encoder as a single-shot document.
func (e HTML) Encode(w io.Writer, entry *record.Entry, lines []*document.PhysicalLine, _ int) error {
	if err := e.Begin(w); err != nil {
		return err
	}
	if err := e.WriteEntry(w, entry, lines); err != nil {
		return err
	}
	return e.Close(w)
}

func segClass(tags segment.Tag) string {
	switch {
	case tags.Has(segment.TagError) || tags.Has(segment.TagStackFrame):
		return "seg-error"
	case tags.Has(segment.TagBorder):
		return "seg-border"
	case tags.Has(segment.TagTimestamp):
		return "seg-timestamp"
	default:
		return ""
	}
}

func stripForHTML(seg segment.Segment) string {
	// Style hints become CSS classes; raw escape codes have no place in
	// HTML output.
	return textwidth.Strip(seg.Text)
}
