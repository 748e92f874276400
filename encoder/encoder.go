// Package encoder converts laid-out physical documents into wire formats:
// ANSI terminal text, plain text, JSON, Markdown and HTML. Encoders never
// mutate the lines they are given and produce identical output for
// identical input.
package encoder

import (
	"io"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/record"
)

// Encoder serializes one laid-out entry. The level travels inside entry;
// width is the budget the lines were laid out against, which some formats
// (HTML, Markdown) ignore.
type Encoder interface {
	Encode(w io.Writer, entry *record.Entry, lines []*document.PhysicalLine, width int) error
}

// ANSI emits terminal text with SGR codes per segment style and a reset
// between styled segments.
type ANSI struct {
	theme *Theme
}

// NewANSI returns the terminal encoder.
func NewANSI() *ANSI {
	return &ANSI{theme: NewTheme()}
}

// Encode implements Encoder.
func (e *ANSI) Encode(w io.Writer, _ *record.Entry, lines []*document.PhysicalLine, _ int) error {
	for _, line := range lines {
		for _, seg := range line.Segments() {
			if _, err := io.WriteString(w, e.theme.Render(seg.Text, seg.Style)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Plain emits the lines with every style hint and escape code stripped.
type Plain struct{}

// Encode implements Encoder.
func (Plain) Encode(w io.Writer, _ *record.Entry, lines []*document.PhysicalLine, _ int) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line.PlainText()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
