package encoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/format"
	"github.com/pooriaaskarim/logd/record"
)

// JSON emits one compact object per entry. Key names and casing are stable
// downstream identifiers and must not change: timestamp, level, logger,
// origin, message, error, stackTrace.
//
// level and message are always present. timestamp, logger and origin render
// only when enabled by Fields and non-empty; error and stackTrace render
// whenever the entry carries them.
type JSON struct {
	Fields record.Fields
}

// Encode implements Encoder. The laid-out lines are ignored: JSON output is
// machine-consumable and derives straight from the entry.
func (e JSON) Encode(w io.Writer, entry *record.Entry, _ []*document.PhysicalLine, _ int) error {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	field := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&buf, "%q:", key)
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		buf.Write(encoded)
		return nil
	}

	if e.Fields.Timestamp && entry.Timestamp != "" {
		if err := field("timestamp", entry.Timestamp); err != nil {
			return err
		}
	}
	if err := field("level", entry.Level.String()); err != nil {
		return err
	}
	if e.Fields.LoggerName && entry.LoggerName != "" {
		if err := field("logger", entry.LoggerName); err != nil {
			return err
		}
	}
	if e.Fields.Origin && entry.Origin != "" {
		if err := field("origin", entry.Origin); err != nil {
			return err
		}
	}
	if err := field("message", entry.Message); err != nil {
		return err
	}
	if entry.Err != nil {
		if err := field("error", format.ErrorText(entry.Err)); err != nil {
			return err
		}
	}
	if len(entry.StackFrames) > 0 {
		frames := make([]map[string]any, 0, len(entry.StackFrames))
		for _, f := range entry.StackFrames {
			frames = append(frames, map[string]any{
				"method": f.Method,
				"file":   f.File,
				"line":   f.Line,
			})
		}
		if err := field("stackTrace", frames); err != nil {
			return err
		}
	}

	buf.WriteByte('}')
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}
