package errors

import (
	"runtime"
	"sync/atomic"
	"time"
)

// handlerSlot boxes the interface so it can live in an atomic.Pointer.
type handlerSlot struct{ h ErrorHandler }

var installed atomic.Pointer[handlerSlot]

// Handler returns the process-wide error handler. Until SetHandler is
// called it is a LogHandler writing through slog.Default.
func Handler() ErrorHandler {
	if s := installed.Load(); s != nil {
		return s.h
	}
	return &LogHandler{}
}

// SetHandler installs h and returns the handler it replaces, so tests can
// restore it. Nil reinstalls the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	prev := Handler()
	if h == nil {
		installed.Store(nil)
	} else {
		installed.Store(&handlerSlot{h: h})
	}
	return prev
}

// Report hands err to the installed handler, stamping it first.
func Report(err *ClockError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// Recover reports a panic in the calling goroutine and lets it continue.
// It must be deferred directly:
//
//	defer errors.Recover("sink.Live.writer")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	// Skip runtime.Callers, Recover and the runtime's panic frame.
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	Handler().HandlePanic(&PanicError{
		Op:        op,
		Value:     r,
		Stack:     pcs[:n:n],
		Timestamp: time.Now(),
	})
}
