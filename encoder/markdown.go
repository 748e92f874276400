package encoder

import (
	"fmt"
	"io"
	"strings"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/format"
	"github.com/pooriaaskarim/logd/record"
)

// Markdown renders one entry as a heading plus body: the message under a
// level heading, errors as blockquotes, stack traces inside a collapsible
// details element.
type Markdown struct {
	Fields record.Fields
}

// Encode implements Encoder.
func (e Markdown) Encode(w io.Writer, entry *record.Entry, _ []*document.PhysicalLine, _ int) error {
	var b strings.Builder

	b.WriteString("### [")
	b.WriteString(entry.Level.String())
	b.WriteString("]")
	if e.Fields.Timestamp && entry.Timestamp != "" {
		b.WriteString(" ")
		b.WriteString(entry.Timestamp)
	}
	if e.Fields.LoggerName && entry.LoggerName != "" {
		b.WriteString(" `")
		b.WriteString(entry.LoggerName)
		b.WriteString("`")
	}
	b.WriteString("\n\n")

	b.WriteString(entry.Message)
	b.WriteString("\n")

	if e.Fields.Origin && entry.Origin != "" {
		fmt.Fprintf(&b, "\n_%s_\n", entry.Origin)
	}
	if entry.Err != nil {
		fmt.Fprintf(&b, "\n> error: %s\n", format.ErrorText(entry.Err))
	}
	if len(entry.StackFrames) > 0 {
		b.WriteString("\n<details><summary>stack trace</summary>\n\n```\n")
		for _, f := range entry.StackFrames {
			b.WriteString(format.FrameText(f))
			b.WriteString("\n")
		}
		b.WriteString("```\n\n</details>\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
