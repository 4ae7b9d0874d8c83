package errors

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
)

// LogHandler is an ErrorHandler that logs through slog.
type LogHandler struct {
	// Logger receives the records. Nil means slog.Default().
	Logger *slog.Logger
	// Verbose adds the panic stack to panic records.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a ClockError at error level.
func (h *LogHandler) HandleError(err *ClockError) {
	if err == nil {
		return
	}
	attrs := []any{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
	}
	if err.Face != "" {
		attrs = append(attrs, slog.String("face", err.Face))
	}
	attrs = append(attrs, slog.Any("err", err.Err))
	h.logger().Error("exoclock error", attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && len(err.Stack) > 0 {
		attrs = append(attrs, stackAttr(err.Stack))
	}
	h.logger().Error("exoclock panic", attrs...)
}

// stackAttr renders program counters as a "stack" list of
// "function file:line" entries, innermost first.
func stackAttr(pcs []uintptr) slog.Attr {
	frames := runtime.CallersFrames(pcs)
	var lines []string
	for {
		f, more := frames.Next()
		if f.Function != "" {
			lines = append(lines, f.Function+" "+filepath.Base(f.File)+":"+strconv.Itoa(f.Line))
		}
		if !more {
			break
		}
	}
	return slog.Any("stack", lines)
}
