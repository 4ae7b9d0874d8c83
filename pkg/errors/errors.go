// Package errors provides structured error handling for exoclock.
//
// Errors carry the operation that failed and a [ErrorKind] so callers can
// tell configuration mistakes (rejected before the first frame) apart from
// rendering and sink failures (fatal to the running panel).
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates invalid configuration, such as a label set
	// that does not have exactly twelve entries.
	KindConfig
	// KindInit indicates a failure while building the panel or its fonts.
	KindInit
	// KindRender indicates a drawing surface failure.
	KindRender
	// KindSink indicates a failure publishing a composed frame.
	KindSink
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindSink:
		return "sink"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error raised by exoclock.
type ClockError struct {
	// Op is the operation that failed (e.g., "clockface.Draw").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Face is the title of the clock face involved, if any.
	Face string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	if e.Face != "" {
		return fmt.Sprintf("%s [%s] face=%q: %v", e.Op, e.Kind, e.Face, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// New returns a ClockError for op and kind wrapping err.
func New(op string, kind ErrorKind, err error) *ClockError {
	return &ClockError{Op: op, Kind: kind, Err: err}
}

// Config returns a KindConfig error with a formatted message.
func Config(op, format string, args ...any) *ClockError {
	return &ClockError{Op: op, Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of the first ClockError in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) ErrorKind {
	var ce *ClockError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return KindOf(err) == KindConfig
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "sink.serveFrames").
	Op string
	// Value is the value passed to panic().
	Value any
	// Stack holds the program counters of the panicking goroutine.
	Stack []uintptr
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported through [Report] and [ReportPanic].
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
