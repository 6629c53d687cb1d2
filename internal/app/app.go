package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/divcalc/internal/cli"
	"github.com/agbru/divcalc/internal/config"
	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/tui"
	"github.com/agbru/divcalc/internal/ui"
)

// Application represents the divcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "divcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode. The quotient
// goes to the configured output stream; out only receives direct command
// products such as completion scripts, while informational output rides
// ErrWriter so a quotient on standard output stays pipe-clean.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logLevel(a.Config))
	ui.InitTheme(a.Config.NoColor)

	if a.Config.REPL {
		return a.runREPL(out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	return a.runDivide(ctx)
}

// logLevel maps the verbosity flags onto the global zerolog level.
func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Quiet:
		return zerolog.ErrorLevel
	case cfg.Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Divisor: a.Config.Divisor,
		Timeout: a.Config.Timeout,
		Strict:  a.Config.Strict,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
