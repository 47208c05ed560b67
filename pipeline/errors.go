package pipeline

import (
	"errors"
	"fmt"
)

// ErrNilResponse is reported when a stage returns a nil response function.
var ErrNilResponse = errors.New("handler returned nil response")

// PanicError gives error handlers access to a recovered panic's value and
// stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any { return e.value }

func (e *panicError) Stack() []byte { return e.stack }
