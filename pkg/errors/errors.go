// Package errors provides structured error handling for photoedit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration loading or validation error.
	KindConfig
	// KindFont indicates a font registration or face resolution error.
	KindFont
	// KindInit indicates an initialization error.
	KindInit
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindContract indicates a violated precondition.
	KindContract
	// KindIO indicates an image decode or encode failure.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindFont:
		return "font"
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindContract:
		return "contract"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// EditError represents a structured error raised by an editing component.
type EditError struct {
	// Op is the operation that failed (e.g., "watermark.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Path is the file involved, if applicable.
	Path string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EditError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "overlay.Paint").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ContractError describes a violated precondition. It is raised with panic
// because the caller, not the user, is at fault.
type ContractError struct {
	// Op is the operation whose precondition failed.
	Op string
	// Field names the offending input.
	Field string
	// Value is the offending value.
	Value any
	// Want describes the accepted range.
	Want string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s = %v, want %s", e.Op, e.Field, e.Value, e.Want)
}

// ErrorHandler receives errors reported by photoedit components.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *EditError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
