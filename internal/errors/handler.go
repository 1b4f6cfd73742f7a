package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape codes used to highlight durations. It
// lives here so apperrors does not import the ui package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider emits no escape codes.
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError writes a one-line status for a failed evaluation to
// out and returns the matching exit code. A zero duration omits the elapsed
// time; nil colors print plain text.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	}
	var overflowErr OverflowError
	if errors.As(err, &overflowErr) {
		fmt.Fprintf(out, "%sStatus: Overflow.%s %v%s.\n", colors.Yellow(), colors.Reset(), err, msgSuffix)
		return ExitErrorOverflow
	}
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(out, "Status: Rejected. %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
