// Package logd is a structured logging library built around a terminal
// layout engine: log entries become semantic documents, decorators
// transform them, a layout engine resolves them into physical lines at a
// column width, and encoders serialize those lines for sinks. Nodes and
// lines are pooled so sustained logging allocates nothing per event.
package logd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pooriaaskarim/logd/decorate"
	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/encoder"
	"github.com/pooriaaskarim/logd/format"
	"github.com/pooriaaskarim/logd/layout"
	"github.com/pooriaaskarim/logd/record"
	"github.com/pooriaaskarim/logd/sink"
)

var bufPool = sync.Pool{
	New: func() any { return &bytes.Buffer{} },
}

// Options configures a Logger. Zero-value fields pick sensible defaults:
// width 80, plain formatter with all fields, ANSI encoder, console sink.
type Options struct {
	Name       string
	Level      record.Level
	Width      int
	Fields     record.Fields
	Formatter  format.Formatter
	Decorators []decorate.Decorator
	Encoder    encoder.Encoder
	Sinks      []sink.Sink
	// Diagnostics receives sink failures; nil means stderr.
	Diagnostics *sink.Diagnostics
	// Clock supplies pre-formatted timestamps for the convenience methods.
	Clock func() string
}

// Logger drives the full pipeline for one configuration: format, decorate,
// lay out, encode, fan out. It is safe for concurrent use; each event
// checks out its own document, so the arena's free lists are the only
// shared mutable state.
type Logger struct {
	name      string
	level     record.Level
	width     int
	arena     *document.Arena
	engine    *layout.Engine
	formatter format.Formatter
	pipeline  *decorate.Pipeline
	enc       encoder.Encoder
	sinks     []sink.Sink
	diag      *sink.Diagnostics
	clock     func() string
}

// New validates opts and builds a logger. A negative width is rejected here
// rather than clamped: clamping is reserved for layout-internal math.
func New(opts Options) (*Logger, error) {
	if opts.Width < 0 {
		return nil, fmt.Errorf("logd: width must be positive, got %d", opts.Width)
	}
	width := opts.Width
	if width == 0 {
		width = 80
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter = format.Plain{Fields: opts.Fields}
	}
	enc := opts.Encoder
	if enc == nil {
		enc = encoder.NewANSI()
	}
	sinks := opts.Sinks
	if len(sinks) == 0 {
		sinks = []sink.Sink{sink.NewConsole(nil)}
	}
	diag := opts.Diagnostics
	if diag == nil {
		diag = sink.NewDiagnostics(nil)
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() string { return time.Now().Format("2006-01-02 15:04:05") }
	}

	arena := document.NewArena()
	return &Logger{
		name:      opts.Name,
		level:     opts.Level,
		width:     width,
		arena:     arena,
		engine:    layout.New(arena),
		formatter: formatter,
		pipeline:  decorate.NewPipeline(opts.Decorators...),
		enc:       enc,
		sinks:     sinks,
		diag:      diag,
		clock:     clock,
	}, nil
}

// NewFromConfig builds a logger from a loaded Config. Sinks default to the
// console when none are supplied.
func NewFromConfig(cfg Config, sinks ...sink.Sink) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := record.ParseLevel(cfg.Level)

	border := document.BorderSharp
	switch strings.ToLower(cfg.Border) {
	case "rounded":
		border = document.BorderRounded
	case "double":
		border = document.BorderDouble
	}

	var formatter format.Formatter
	switch strings.ToLower(cfg.Formatter) {
	case "structured":
		formatter = format.Structured{Fields: cfg.Fields}
	case "boxed":
		formatter = format.Boxed{Fields: cfg.Fields, Border: border}
	default:
		formatter = format.Plain{Fields: cfg.Fields}
	}

	useColor := true
	switch strings.ToLower(cfg.Color) {
	case "never":
		useColor = false
	case "auto":
		if len(sinks) == 0 {
			console := sink.NewConsole(nil)
			useColor = console.ColorCapable()
			sinks = []sink.Sink{console}
		}
	}

	var enc encoder.Encoder
	switch strings.ToLower(cfg.Encoder) {
	case "plain":
		enc = encoder.Plain{}
	case "json":
		enc = encoder.JSON{Fields: cfg.Fields}
	case "markdown":
		enc = encoder.Markdown{Fields: cfg.Fields}
	case "html":
		enc = encoder.HTML{}
	default:
		if useColor {
			enc = encoder.NewANSI()
		} else {
			enc = encoder.Plain{}
		}
	}

	var decorators []decorate.Decorator
	if useColor {
		decorators = append(decorators, decorate.NewStyleDecorator())
	}

	return New(Options{
		Level:      level,
		Width:      cfg.Width,
		Fields:     cfg.Fields,
		Formatter:  formatter,
		Decorators: decorators,
		Encoder:    enc,
		Sinks:      sinks,
	})
}

// Log runs the full pipeline for one entry. The checked-out document and
// every physical line are released on all exit paths; sink failures go to
// diagnostics and never fail the call.
func (l *Logger) Log(ctx context.Context, entry *record.Entry) error {
	if entry.Level < l.level {
		return nil
	}

	doc := l.formatter.Format(l.arena, entry)
	defer l.arena.ReleaseDocument(doc)

	l.pipeline.Run(l.arena, doc, entry)

	lines := l.engine.Layout(doc, l.width)
	defer l.arena.ReleaseLines(lines)

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := l.enc.Encode(buf, entry, lines, l.width); err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	for i, s := range l.sinks {
		if err := s.Consume(ctx, entry, buf.Bytes()); err != nil {
			l.diag.Report(fmt.Sprintf("sink[%d]", i), err)
		}
	}
	return nil
}

func (l *Logger) emit(level record.Level, msg string) {
	entry := record.Entry{
		Level:      level,
		Message:    msg,
		LoggerName: l.name,
		Timestamp:  l.clock(),
	}
	_ = l.Log(context.Background(), &entry)
}

// Trace logs msg at trace level.
func (l *Logger) Trace(msg string) { l.emit(record.TraceLevel, msg) }

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string) { l.emit(record.DebugLevel, msg) }

// Info logs msg at info level.
func (l *Logger) Info(msg string) { l.emit(record.InfoLevel, msg) }

// Warn logs msg at warn level.
func (l *Logger) Warn(msg string) { l.emit(record.WarnLevel, msg) }

// Error logs msg at error level, attaching err when non-nil.
func (l *Logger) Error(msg string, err error) {
	entry := record.Entry{
		Level:      record.ErrorLevel,
		Message:    msg,
		LoggerName: l.name,
		Timestamp:  l.clock(),
	}
	if err != nil {
		entry.Err = err
	}
	_ = l.Log(context.Background(), &entry)
}

// Arena exposes the logger's arena for lifecycle assertions in tests.
func (l *Logger) Arena() *document.Arena { return l.arena }

// Close closes every sink, reporting individual failures through
// diagnostics.
func (l *Logger) Close() error {
	for i, s := range l.sinks {
		if err := s.Close(); err != nil {
			l.diag.Report(fmt.Sprintf("sink[%d]", i), err)
		}
	}
	return nil
}
