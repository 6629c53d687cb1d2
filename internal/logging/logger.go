package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging abstraction used throughout the application.
// It supports leveled, structured logging plus the Printf/Println style
// used by components that predate structured fields.
type Logger interface {
	// Debug logs a message at debug level with optional structured fields.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level with optional structured fields.
	Info(msg string, fields ...Field)
	// Error logs a message at error level with the triggering error and
	// optional structured fields.
	Error(msg string, err error, fields ...Field)
	// Printf logs a formatted message in the style of fmt.Printf.
	Printf(format string, args ...any)
	// Println logs its arguments in the style of fmt.Println.
	Println(args ...any)
}

// Field is a structured logging key/value pair.
type Field struct {
	// Key is the field name.
	Key string
	// Value is the field value; applyFields switches on its dynamic type.
	Value any
}

// String creates a Field with a string value.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates a Field with an int value.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates a Field with an int64 value.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a Field with a uint64 value.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a Field with a float64 value.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a Field with a bool value.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates a Field carrying an error under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// Verify interface compliance.
var _ Logger = (*ZerologAdapter)(nil)

// NewZerologAdapter wraps an existing zerolog.Logger.
//
// Parameters:
//   - logger: The zerolog logger to adapt.
//
// Returns:
//   - *ZerologAdapter: The adapter implementing the Logger interface.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a structured JSON logger writing to w, tagged with the
// given component name.
//
// Parameters:
//   - w: The destination writer.
//   - component: The component name added to every entry.
//
// Returns:
//   - *ZerologAdapter: The adapter implementing the Logger interface.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	logger := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return NewZerologAdapter(logger)
}

// NewDefaultLogger creates the standard application logger: human-readable
// console output on stderr.
//
// Returns:
//   - *ZerologAdapter: The adapter implementing the Logger interface.
func NewDefaultLogger() *ZerologAdapter {
	return NewConsoleLogger(os.Stderr)
}

// NewConsoleLogger creates a human-readable console logger writing to w.
//
// Parameters:
//   - w: The destination writer.
//
// Returns:
//   - *ZerologAdapter: The adapter implementing the Logger interface.
func NewConsoleLogger(w io.Writer) *ZerologAdapter {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	logger := zerolog.New(console).With().Timestamp().Logger()
	return NewZerologAdapter(logger)
}

// Debug logs a message at debug level.
func (l *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(l.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level.
func (l *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs a message at error level with its cause.
func (l *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(l.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (l *ZerologAdapter) Printf(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

// Println logs its arguments at info level.
func (l *ZerologAdapter) Println(args ...any) {
	l.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// applyFields attaches structured fields to a zerolog event, switching on
// the dynamic type of each value to use the typed zerolog setters.
func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// StdLoggerAdapter implements Logger on top of the standard library's
// log.Logger, for contexts where zerolog is not wanted (e.g. tests or
// embedding in other tooling).
type StdLoggerAdapter struct {
	logger *log.Logger
}

// Verify interface compliance.
var _ Logger = (*StdLoggerAdapter)(nil)

// NewStdLoggerAdapter wraps a standard library logger.
//
// Parameters:
//   - logger: The log.Logger to adapt.
//
// Returns:
//   - *StdLoggerAdapter: The adapter implementing the Logger interface.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Debug logs a message with a [DEBUG] prefix.
func (l *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	l.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Info logs a message with an [INFO] prefix.
func (l *StdLoggerAdapter) Info(msg string, fields ...Field) {
	l.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs a message with an [ERROR] prefix and its cause.
func (l *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		l.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
		return
	}
	l.logger.Printf("[ERROR] %s%s", msg, formatFields(fields))
}

// Printf logs a formatted message.
func (l *StdLoggerAdapter) Printf(format string, args ...any) {
	l.logger.Printf(format, args...)
}

// Println logs its arguments.
func (l *StdLoggerAdapter) Println(args ...any) {
	l.logger.Println(args...)
}

// formatFields renders structured fields as " key=value" pairs for the
// plain-text adapter.
func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
