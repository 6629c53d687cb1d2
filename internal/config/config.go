// Package config handles the application configuration: command-line flag
// parsing, environment variable overrides, validation, and adaptive buffer
// sizing. The resolution priority is CLI flags > environment variables >
// adaptive estimation > static defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/divcalc/internal/division"
	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/streams"
)

// EnvPrefix is the prefix of every environment variable the application
// consults for configuration overrides.
const EnvPrefix = "DIVCALC_"

// DefaultVerifyLimit bounds how many numerator bytes verify mode will admit.
// The reference engine materializes the whole numerator, so verify mode
// cannot stay constant-memory; 64 MiB keeps cross-checks affordable while
// still covering numerators far beyond any fixed-width integer type.
const DefaultVerifyLimit int64 = 64 << 20

// AppConfig holds the complete runtime configuration of a division run.
type AppConfig struct {
	// Divisor is the fixed divisor D of the long division.
	Divisor uint64
	// InputFile is the numerator source path; "-" selects stdin.
	InputFile string
	// OutputFile is the quotient destination path; "-" selects stdout.
	OutputFile string
	// Timeout bounds the whole run; zero disables the limit.
	Timeout time.Duration
	// BufferSize is the stream buffer size in bytes; zero selects the
	// adaptive estimate.
	BufferSize int
	// Strict rejects every non-digit byte, including a trailing newline.
	Strict bool
	// Verify runs the reference engine alongside the streaming engine and
	// compares the two quotients.
	Verify bool
	// VerifyLimit caps the numerator size admitted in verify mode.
	VerifyLimit int64
	// MetricsFile, when set, receives Prometheus textfile metrics after
	// the run.
	MetricsFile string
	// Completion selects a shell to emit a completion script for.
	Completion string

	// Mode and presentation toggles.
	TUI     bool
	REPL    bool
	Quiet   bool
	Verbose bool
	Details bool
	NoColor bool
}

// defaultConfig returns the configuration with every static default applied.
func defaultConfig() AppConfig {
	return AppConfig{
		Divisor:     division.DefaultDivisor,
		InputFile:   streams.StdStreamName,
		OutputFile:  streams.StdStreamName,
		VerifyLimit: DefaultVerifyLimit,
	}
}

// registerFlags declares every command-line flag on the given FlagSet,
// binding each one to the corresponding AppConfig field. Short aliases share
// the destination variable with their long form, so either spelling works
// and the last occurrence wins.
func registerFlags(fs *flag.FlagSet, cfg *AppConfig) {
	fs.Uint64Var(&cfg.Divisor, "divisor", cfg.Divisor,
		fmt.Sprintf("divisor D of the long division, 1 <= D <= %d", division.MaxDivisor))
	fs.Uint64Var(&cfg.Divisor, "d", cfg.Divisor, "shorthand for -divisor")
	fs.StringVar(&cfg.InputFile, "input", cfg.InputFile, "numerator input path, '-' for stdin")
	fs.StringVar(&cfg.InputFile, "i", cfg.InputFile, "shorthand for -input")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "quotient output path, '-' for stdout")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "shorthand for -output")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum run duration, 0 disables the limit")
	fs.IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "stream buffer size in bytes, 0 selects an adaptive size")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject every non-digit byte, including a trailing newline")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "cross-check the streaming quotient against the reference engine")
	fs.Int64Var(&cfg.VerifyLimit, "verify-limit", cfg.VerifyLimit, "maximum numerator bytes admitted in verify mode")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus textfile metrics to this path after the run")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "generate a completion script for the given shell (bash, zsh, fish, powershell)")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "live dashboard mode (requires file -input and -output)")
	fs.BoolVar(&cfg.REPL, "repl", cfg.REPL, "interactive mode")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print the quotient only, no informational output")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "emit structured run logs")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "print post-run statistics")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable ANSI colors in informational output")
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// environment variable overrides for flags left unset, and validates the
// result.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The raw command-line arguments, without the program name.
//   - errWriter: The destination for usage, flag, and validation error
//     messages.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: flag.ErrHelp when help was requested, a flag parsing error, or
//     a validation error describing the invalid setting.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	registerFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		// Parse errors are reported by the FlagSet itself; validation
		// errors get the same treatment so the caller can exit on any
		// returned error without printing twice.
		fmt.Fprintf(errWriter, "%s: %v\n", programName, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting found, or nil when the
// configuration is usable.
//
// Returns:
//   - error: A DivisorRangeError or ConfigError describing the problem.
func (c AppConfig) Validate() error {
	if c.Divisor == 0 || c.Divisor > division.MaxDivisor {
		return apperrors.DivisorRangeError{Divisor: c.Divisor, Max: division.MaxDivisor}
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout must not be negative, got %s", c.Timeout)
	}
	if c.BufferSize < 0 {
		return apperrors.NewConfigError("buffer size must not be negative, got %d", c.BufferSize)
	}
	if c.VerifyLimit <= 0 {
		return apperrors.NewConfigError("verify limit must be positive, got %d", c.VerifyLimit)
	}
	if c.TUI && c.REPL {
		return apperrors.NewConfigError("-tui and -repl are mutually exclusive")
	}
	if c.TUI && IsStdStream(c.OutputFile) {
		return apperrors.NewConfigError("the dashboard occupies the terminal: direct the quotient to a file with -output")
	}
	if c.TUI && IsStdStream(c.InputFile) {
		return apperrors.NewConfigError("the dashboard cannot share the terminal with stdin: name the numerator with -input")
	}
	return nil
}

// IsStdStream reports whether the path names a process standard stream
// rather than a file.
func IsStdStream(path string) bool {
	return path == "" || path == streams.StdStreamName
}
