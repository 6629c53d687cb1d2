package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/divcalc/internal/division"
	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/progress"
)

// tracer instruments the orchestration entry points. Without a configured
// SDK the global provider is a no-op, so tracing costs nothing unless the
// embedding process installs one.
var tracer = otel.Tracer("github.com/agbru/divcalc/internal/orchestration")

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking engine
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteDivisions orchestrates the concurrent execution of one or more
// division engines over the same job.
//
// It manages the lifecycle of engine goroutines, collects their results, and
// coordinates the display of progress updates. This is the core of verify
// mode, where the streaming engine and the reference engine must process the
// same numerator independently.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - engines: A slice of engines to execute.
//   - job: The division job every engine receives.
//   - progressReporter: The progress reporter for displaying updates (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []DivisionResult: A slice containing the result of each engine.
func ExecuteDivisions(ctx context.Context, engines []division.Engine, job division.Job, progressReporter ProgressReporter, out io.Writer) []DivisionResult {
	ctx, span := tracer.Start(ctx, "orchestration.ExecuteDivisions", trace.WithAttributes(
		attribute.Int("divcalc.engines", len(engines)),
		attribute.Int64("divcalc.divisor", int64(job.Divisor)),
		attribute.Int("divcalc.numerator_bytes", len(job.Numerator)),
	))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]DivisionResult, len(engines))
	progressChan := make(chan progress.ProgressUpdate, len(engines)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	for i, eng := range engines {
		idx, engine := i, eng
		g.Go(func() error {
			startTime := time.Now()
			quotient, stats, err := engine.Quotient(ctx, progressChan, idx, job)
			results[idx] = DivisionResult{
				Name: engine.Name(), Quotient: quotient, Stats: stats, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// StreamRun describes one streaming pass wired to real input and output. The
// source and sink stay owned by the caller; the orchestrator only drives the
// pass and the progress display around it.
type StreamRun struct {
	Divider    *division.Divider
	Source     division.DigitSource
	Sink       io.ByteWriter
	TotalBytes int64

	// Observers receive every progress update in addition to the reporter,
	// e.g. a logging observer in verbose mode.
	Observers []progress.ProgressObserver
}

// ExecuteStreaming runs a single streaming division pass with the same
// progress channel lifecycle as ExecuteDivisions: the reporter goroutine is
// started first, the pass reports into the buffered channel, and the channel
// is closed before waiting for the display to finish.
//
// Returns the result of the pass; the quotient itself goes to run.Sink and is
// therefore not materialized in the result.
func ExecuteStreaming(ctx context.Context, run StreamRun, progressReporter ProgressReporter, out io.Writer) DivisionResult {
	ctx, span := tracer.Start(ctx, "orchestration.ExecuteStreaming", trace.WithAttributes(
		attribute.Int64("divcalc.divisor", int64(run.Divider.Divisor())),
		attribute.Int64("divcalc.total_bytes", run.TotalBytes),
	))
	defer span.End()

	progressChan := make(chan progress.ProgressUpdate, ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, 1, out)

	subject := progress.NewProgressSubject()
	subject.Register(progress.NewChannelObserver(progressChan))
	for _, o := range run.Observers {
		subject.Register(o)
	}

	startTime := time.Now()
	stats, err := run.Divider.Divide(ctx, run.Sink, run.Source, division.Options{
		EngineIndex: 0,
		Progress:    subject.Freeze(0),
		TotalBytes:  run.TotalBytes,
	})
	duration := time.Since(startTime)

	close(progressChan)
	displayWg.Wait()

	span.SetAttributes(
		attribute.Int64("divcalc.digits_read", stats.DigitsRead),
		attribute.Int64("divcalc.digits_written", stats.DigitsWritten),
	)
	if err != nil {
		span.RecordError(err)
	}

	return DivisionResult{Name: "streaming", Stats: stats, Duration: duration, Err: err}
}

// AnalyzeVerificationResults processes the results from multiple engines and
// generates a summary report.
//
// It sorts the results by execution time, validates quotient agreement across
// successful engines, and displays a comparative table. It handles the logic
// for determining global success or failure based on the individual outcomes.
//
// Parameters:
//   - results: The slice of division results to analyze.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The handler translating a global failure into an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeVerificationResults(results []DivisionResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *DivisionResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	// Present the comparison table
	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the division.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && res.Quotient != firstValidResult.Quotient {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The engines disagree on the quotient.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All engine quotients agree.\n")
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}
