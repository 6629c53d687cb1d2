package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a quotient mismatch between engines.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorInput    = 5   // Indicates a malformed numerator stream.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// DivisionError encapsulates a division run failure while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong while streaming the quotient.
type DivisionError struct {
	// Cause is the underlying error that triggered this division error.
	Cause error
}

// Error returns the error message from the underlying cause.
//
// Returns:
//   - string: The error message string from the wrapped error.
func (e DivisionError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the DivisionError.
func (e DivisionError) Unwrap() error { return e.Cause }

// TimeoutError represents a division timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents a memory limit exceeded condition. It captures the
// requested, available, and limit memory values for diagnostic purposes.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes currently available.
	Available uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
//
// Returns:
//   - string: The error message string.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// InputSyntaxError reports a byte in the numerator stream that is not an
// ASCII decimal digit. It records the offending byte and its zero-based
// offset so the caller can point at the exact position in the input.
type InputSyntaxError struct {
	// Offset is the zero-based position of the offending byte in the stream.
	Offset int64
	// Byte is the offending byte value.
	Byte byte
}

// Error returns a formatted message identifying the offending byte and its
// position.
//
// Returns:
//   - string: The error message string.
func (e InputSyntaxError) Error() string {
	return fmt.Sprintf("invalid numerator byte %q at offset %d: expected decimal digit", e.Byte, e.Offset)
}

// DivisorRangeError reports a divisor outside the supported range. A divisor
// of zero is never valid; divisors above Max would overflow the running
// remainder when it is scaled by the base.
type DivisorRangeError struct {
	// Divisor is the rejected divisor value.
	Divisor uint64
	// Max is the largest supported divisor.
	Max uint64
}

// Error returns a formatted message describing the range violation.
//
// Returns:
//   - string: The error message string.
func (e DivisorRangeError) Error() string {
	if e.Divisor == 0 {
		return "divisor must not be zero"
	}
	return fmt.Sprintf("divisor %d exceeds maximum %d", e.Divisor, e.Max)
}

// StreamError represents an I/O failure on a numerator or quotient stream.
// It captures the operation and the stream path while preserving the
// original cause.
type StreamError struct {
	// Op is the failed operation: "open", "create", "read", "write", or
	// "close".
	Op string
	// Path is the file path of the stream ("-" denotes a standard stream).
	Path string
	// Cause is the underlying I/O error.
	Cause error
}

// Error returns a formatted message describing the stream failure.
//
// Returns:
//   - string: The error message string.
func (e StreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying I/O error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the StreamError.
func (e StreamError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
