package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes errors through a charm logger.
type LogHandler struct {
	// Logger receives the records. A stderr logger is used when nil.
	Logger *log.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

var stderrLogger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "photoedit"})

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return stderrLogger
}

// HandleError logs an EditError.
func (h *LogHandler) HandleError(err *EditError) {
	if err == nil {
		return
	}
	l := h.logger()
	if !h.Verbose {
		l.Error(err.Op, "err", err.Err)
		return
	}
	kv := []any{"kind", err.Kind.String(), "err", err.Err}
	if err.Path != "" {
		kv = append(kv, "path", err.Path)
	}
	if err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	l.Error(err.Op, kv...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	op := err.Op
	if op == "" {
		op = "panic"
	}
	h.logger().Error(op, kv...)
}
