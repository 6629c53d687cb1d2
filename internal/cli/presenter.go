package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/format"
	"github.com/agbru/divcalc/internal/orchestration"
	"github.com/agbru/divcalc/internal/progress"
	"github.com/agbru/divcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during division passes.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing passes.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEngines, out)
}

// CLIColorProvider supplies the error reporter with the ANSI sequences of
// the active theme.
type CLIColorProvider struct{}

// Verify that CLIColorProvider implements apperrors.ColorProvider.
var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the error color of the active theme.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the warning color of the active theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset sequence of the active theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for division results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable displays the verification summary table with
// engine names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.DivisionResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Verification Summary ---\n")

	// Find the maximum engine name width for proper alignment
	maxNameLen := 6     // "Engine" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sEngine%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-6),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final division result. Quiet mode suppresses
// all of it: the quotient stream on standard output is then the only thing
// the run prints.
func (CLIResultPresenter) PresentResult(result orchestration.DivisionResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		return
	}
	if result.Quotient != "" {
		DisplayQuotient(result.Quotient, opts.Divisor, opts.Verbose, out)
	}
	DisplayRunLine(out, result.Stats, result.Duration)
	if opts.Details {
		DisplayDetails(result.Stats, result.Duration, out)
	}
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError handles division errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleDivisionError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows memory statistics after a division run.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	if pauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (GC disabled)\n")
	}
}
