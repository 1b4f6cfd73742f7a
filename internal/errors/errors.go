// Package apperrors holds the error types shared by the bncalc front ends
// and the exit codes they map to.
//
// Every type here unwraps to its cause where it has one, so callers use
// errors.Is and errors.As rather than comparing messages.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // the reference oracle disagreed with a result
	ExitErrorConfig   = 4 // bad flags, profile or operands
	ExitErrorOverflow = 5 // strict mode and a result wrapped
	ExitErrorCanceled = 130
)

// ConfigError reports flags, environment or profile values the program
// cannot run with.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ServerError wraps a failure of the HTTP listener or its shutdown.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError returns a ServerError; cause may be nil.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError prefixes err with a formatted context message, keeping it
// inspectable with errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError rejects an operand or request field. Value holds the
// offending input when it is worth echoing back.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// OverflowError reports that op produced a result wider than the layout.
// Only strict evaluation returns it; otherwise the overflow flag travels
// with the wrapped result.
type OverflowError struct {
	Op   string
	Bits int
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("%s overflowed the %d-bit layout", e.Op, e.Bits)
}

// NewOverflowError returns an OverflowError for op on a bits-wide layout.
func NewOverflowError(op string, bits int) error {
	return OverflowError{Op: op, Bits: bits}
}
