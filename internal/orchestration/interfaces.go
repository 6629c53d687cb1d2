package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/divcalc/internal/division"
	"github.com/agbru/divcalc/internal/progress"
)

// DivisionResult encapsulates the outcome of a single division engine run.
// It serves as the shared domain type between orchestration and presentation
// layers.
type DivisionResult struct {
	// Name is the identifier of the engine used (e.g., "streaming").
	Name string
	// Quotient is the decimal quotient string. It is empty when the engine
	// failed, and also when the quotient was streamed directly to the
	// output sink instead of being materialized.
	Quotient string
	// Stats carries the digit and byte counters of the pass when the
	// engine exposes them.
	Stats division.Result
	// Duration is the time taken to complete the division.
	Duration time.Duration
	// Err contains any error that occurred during the division.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Divisor uint64
	Verbose bool
	Details bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying division progress.
// This interface decouples the orchestration layer from the presentation
// layer, following Clean Architecture principles where business logic should
// not depend on UI concerns.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on coordinating
// the engines.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from engines.
	//   - numEngines: The number of concurrent engines being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	f(wg, progressChan, numEngines, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting division results.
// This interface decouples the orchestration layer from presentation
// concerns, allowing different output formats (CLI, TUI) without modifying
// the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the engine comparison summary table.
	PresentComparisonTable(results []DivisionResult, out io.Writer)

	// PresentResult displays the final division result.
	PresentResult(result DivisionResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles division errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
