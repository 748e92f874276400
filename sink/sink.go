// Package sink implements the byte-consumption boundary the pipeline
// produces for. A sink receives one fully encoded event at a time; it never
// sees documents or pooled nodes. Sink failures are isolated: they are
// reported through a side-channel diagnostic writer and never travel back
// through the failing sink itself.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/pooriaaskarim/logd/record"
)

// Sink consumes one encoded event. The entry rides along for level-based
// routing decisions; data is the complete encoded output for the event, so
// a single Consume call preserves intra-event line ordering by construction.
type Sink interface {
	Consume(ctx context.Context, entry *record.Entry, data []byte) error
	Close() error
}

// Diagnostics is the non-recursive side channel for sink failures. It
// writes to its own writer (stderr by default) and never routes through a
// sink, which is what prevents self-logging loops.
type Diagnostics struct {
	mu sync.Mutex
	w  io.Writer
}

// NewDiagnostics reports to w; a nil writer means stderr.
func NewDiagnostics(w io.Writer) *Diagnostics {
	if w == nil {
		w = os.Stderr
	}
	return &Diagnostics{w: w}
}

// Report records one sink failure.
func (d *Diagnostics) Report(sinkName string, err error) {
	if d == nil || err == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "logd: sink %s failed: %v\n", sinkName, err)
}

// Writer wraps any io.Writer as a sink. Writes are serialized so events
// from concurrent producers never interleave mid-event.
type Writer struct {
	mu   sync.Mutex
	dst  io.Writer
	name string
}

// NewWriter returns a sink writing to dst. The name appears in diagnostics.
func NewWriter(name string, dst io.Writer) *Writer {
	return &Writer{dst: dst, name: name}
}

// Name identifies the sink in diagnostics.
func (s *Writer) Name() string { return s.name }

// Consume implements Sink.
func (s *Writer) Consume(_ context.Context, _ *record.Entry, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.dst.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	return nil
}

// Close implements Sink. The wrapped writer's lifetime belongs to the
// caller, so Close is a no-op.
func (s *Writer) Close() error { return nil }

// Console writes to stdout (or a supplied terminal writer).
type Console struct {
	*Writer
	colorCapable bool
}

// NewConsole returns a console sink for w, detecting terminal color
// capability when w exposes a file descriptor. A nil writer means stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	capable := false
	if f, ok := w.(*os.File); ok {
		capable = term.IsTerminal(int(f.Fd()))
	}
	return &Console{Writer: NewWriter("console", w), colorCapable: capable}
}

// ColorCapable reports whether the underlying writer is a terminal. The
// caller uses it to pick the ANSI or plain encoder.
func (s *Console) ColorCapable() bool { return s.colorCapable }

// File appends encoded events to a log file.
type File struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// NewFile opens (or creates) path for appending.
func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &File{f: f, path: path}, nil
}

// Consume implements Sink.
func (s *File) Consume(_ context.Context, _ *record.Entry, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Close implements Sink.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// Memory retains encoded events for tests.
type Memory struct {
	mu     sync.Mutex
	events [][]byte
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory { return &Memory{} }

// Consume implements Sink.
func (s *Memory) Consume(_ context.Context, _ *record.Entry, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, append([]byte(nil), data...))
	return nil
}

// Close implements Sink.
func (s *Memory) Close() error { return nil }

// Events returns copies of everything consumed so far.
func (s *Memory) Events() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.events))
	copy(out, s.events)
	return out
}

// Multi fans each event out to several child sinks concurrently. A failing
// child is reported through diagnostics and does not prevent or corrupt its
// siblings' output; each child still receives the event's bytes in one call,
// so no child ever reorders lines within an event.
type Multi struct {
	children []Sink
	diag     *Diagnostics
}

// NewMulti builds a fan-out sink. diag may be nil, in which case failures
// go to stderr.
func NewMulti(diag *Diagnostics, children ...Sink) *Multi {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}
	return &Multi{children: children, diag: diag}
}

// Consume implements Sink. It always returns nil: child failures are
// diagnostics, not pipeline errors.
func (s *Multi) Consume(ctx context.Context, entry *record.Entry, data []byte) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, child := range s.children {
		g.Go(func() error {
			if err := child.Consume(ctx, entry, data); err != nil {
				s.diag.Report(fmt.Sprintf("child[%d]", i), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Close implements Sink, closing every child and reporting (not returning)
// individual failures.
func (s *Multi) Close() error {
	for i, child := range s.children {
		if err := child.Close(); err != nil {
			s.diag.Report(fmt.Sprintf("child[%d]", i), err)
		}
	}
	return nil
}
