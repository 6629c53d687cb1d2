package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color sequences for error reporting. A nil
// ColorProvider disables colorization entirely, which is what non-terminal
// presenters (e.g. the TUI bridge) pass.
type ColorProvider interface {
	// Red returns the ANSI sequence for error text.
	Red() string
	// Yellow returns the ANSI sequence for warning text.
	Yellow() string
	// Reset returns the ANSI reset sequence.
	Reset() string
}

// HandleDivisionError reports a division run failure to the given writer and
// translates it into the process exit code. It recognizes the structured
// error types of this package as well as context cancellation and deadline
// errors, falling back to ExitErrorGeneric for anything else.
//
// Parameters:
//   - err: The error to report. A nil error yields ExitSuccess.
//   - duration: How long the run had been going when it failed.
//   - out: The writer receiving the human-readable report.
//   - colors: Optional ANSI colors for the report; nil disables colors.
//
// Returns:
//   - int: The exit code corresponding to the error class.
func HandleDivisionError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var red, yellow, reset string
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	var (
		timeoutErr TimeoutError
		syntaxErr  InputSyntaxError
		rangeErr   DivisorRangeError
		configErr  ConfigError
		validErr   ValidationError
	)

	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sError: division timed out after %s%s\n", red, duration.Round(time.Millisecond), reset)
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sDivision canceled after %s%s\n", yellow, duration.Round(time.Millisecond), reset)
		return ExitErrorCanceled

	case errors.As(err, &syntaxErr):
		fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
		return ExitErrorInput

	case errors.As(err, &rangeErr), errors.As(err, &configErr), errors.As(err, &validErr):
		fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
		return ExitErrorConfig

	default:
		fmt.Fprintf(out, "%sError: %v%s\n", red, err, reset)
		return ExitErrorGeneric
	}
}
