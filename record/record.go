// Package record defines the log entry boundary consumed by the rendering
// pipeline. Entries arrive pre-resolved: timestamps are already formatted
// strings and stack traces are already parsed frames, so nothing in this
// module touches clocks or runtime callers.
package record

import "strings"

// Level defines log severity.
type Level int8

const (
	// DebugLevel defines debug log level.
	DebugLevel Level = iota
	// InfoLevel defines info log level.
	InfoLevel
	// WarnLevel defines warn log level.
	WarnLevel
	// ErrorLevel defines error log level.
	ErrorLevel
	// FatalLevel defines fatal log level.
	FatalLevel
	// TraceLevel defines trace log level (below DebugLevel).
	TraceLevel Level = -1
)

// String returns the canonical upper-case level token used in headers.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "INFO"
	}
}

// ParseLevel converts a textual level into a Level value. It accepts values
// such as "trace", "debug", "info", "warn", "warning", "error" and "fatal",
// case insensitive.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "fatal":
		return FatalLevel, true
	default:
		return InfoLevel, false
	}
}

// StackFrame is one pre-parsed frame of a stack trace.
type StackFrame struct {
	Method string
	File   string
	Line   int
}

// Entry is a single log event handed to the pipeline. Level and Message are
// always rendered; every other field is inclusion-optional per Fields.
type Entry struct {
	Level       Level
	Message     string
	LoggerName  string
	Origin      string
	Timestamp   string // pre-formatted by the caller
	Err         any    // optional structured error value
	StackFrames []StackFrame
}

// Fields selects which optional entry fields the pipeline renders. Level and
// Message are unconditional and have no toggle.
type Fields struct {
	Timestamp  bool `toml:"timestamp"`
	LoggerName bool `toml:"logger_name"`
	Origin     bool `toml:"origin"`
	Error      bool `toml:"error"`
	StackTrace bool `toml:"stack_trace"`
}

// AllFields returns a Fields with every optional field enabled.
func AllFields() Fields {
	return Fields{Timestamp: true, LoggerName: true, Origin: true, Error: true, StackTrace: true}
}
