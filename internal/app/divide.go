package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/agbru/divcalc/internal/cli"
	"github.com/agbru/divcalc/internal/config"
	"github.com/agbru/divcalc/internal/division"
	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/logging"
	"github.com/agbru/divcalc/internal/metrics"
	"github.com/agbru/divcalc/internal/orchestration"
	"github.com/agbru/divcalc/internal/progress"
	"github.com/agbru/divcalc/internal/streams"
	"github.com/agbru/divcalc/internal/ui"
)

// memSampleInterval is how often the run recorder samples heap usage while
// a division is in flight.
const memSampleInterval = 100 * time.Millisecond

// runOutcome carries the counters a finished run hands to the metrics
// recorder, regardless of which mode produced them.
type runOutcome struct {
	stats    division.Result
	duration time.Duration
}

// runDivide orchestrates a division run in plain CLI mode. The quotient goes
// to the configured output stream; everything else goes to ErrWriter.
func (a *Application) runDivide(ctx context.Context) int {
	info := a.ErrWriter
	presenter := cli.CLIResultPresenter{}
	logger := a.runLogger()

	// Lifecycle (optional timeout + signals)
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if logger != nil {
		logger.Info("run starting",
			logging.Uint64("divisor", a.Config.Divisor),
			logging.String("input", a.Config.InputFile),
			logging.String("output", a.Config.OutputFile),
			logging.Bool("verify", a.Config.Verify),
			logging.Bool("strict", a.Config.Strict),
		)
	}

	in, size, err := streams.OpenInput(a.Config.InputFile)
	if err != nil {
		return presenter.HandleError(err, 0, info)
	}
	defer in.Close()

	out, err := streams.OpenOutput(a.Config.OutputFile)
	if err != nil {
		return presenter.HandleError(err, 0, info)
	}

	// The adaptive estimate needs the input size, so it runs after OpenInput
	// but before the banner prints the resolved buffer.
	a.Config = config.ApplyAdaptiveBufferSize(a.Config, size)

	if logger != nil {
		logger.Info("numerator source opened",
			logging.String("path", a.Config.InputFile),
			logging.Int64("size_bytes", size),
			logging.Int("buffer_bytes", a.Config.BufferSize),
		)
	}

	engines := orchestration.EnginesToRun(a.Config.Verify)
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, info)
		cli.PrintExecutionMode(engines, info)
	}

	reporter, progressOut := a.progressSink(info)
	recorder := a.newRunRecorder()

	var code int
	var run runOutcome
	if a.Config.Verify {
		code, run = a.runVerify(ctx, in, out, engines, reporter, progressOut)
	} else {
		code, run = a.runStream(ctx, in, size, out, logger, reporter, progressOut)
	}

	if cerr := out.Close(); cerr != nil && code == apperrors.ExitSuccess {
		code = presenter.HandleError(apperrors.StreamError{Op: "close", Path: a.Config.OutputFile, Cause: cerr}, run.duration, info)
	}

	if code == apperrors.ExitSuccess && !a.Config.Quiet && !config.IsStdStream(a.Config.OutputFile) {
		fmt.Fprintf(info, "\n%s✓ Quotient saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}

	if a.Config.Details && !a.Config.Quiet {
		snap := metrics.NewMemoryCollector().Snapshot()
		cli.DisplayMemoryStats(snap.HeapAlloc, snap.TotalAlloc, snap.NumGC, snap.PauseTotalNs, info)
	}

	recorder.finish(code, run)
	if logger != nil {
		logger.Info("run finished",
			logging.Int("exit_code", code),
			logging.Int64("digits_read", run.stats.DigitsRead),
			logging.Int64("digits_written", run.stats.DigitsWritten),
			logging.Uint64("remainder", run.stats.Remainder),
			logging.Float64("seconds", run.duration.Seconds()),
		)
	}
	return code
}

// runLogger returns the structured run logger, or nil outside verbose mode.
func (a *Application) runLogger() logging.Logger {
	if !a.Config.Verbose {
		return nil
	}
	return logging.NewConsoleLogger(a.ErrWriter)
}

// runStream executes the single-pass streaming division, writing quotient
// digits to out as they are produced.
func (a *Application) runStream(ctx context.Context, in io.Reader, size int64, out io.Writer, logger logging.Logger, reporter orchestration.ProgressReporter, progressOut io.Writer) (int, runOutcome) {
	info := a.ErrWriter
	presenter := cli.CLIResultPresenter{}

	divider, err := division.NewDivider(a.Config.Divisor)
	if err != nil {
		return presenter.HandleError(err, 0, info), runOutcome{}
	}

	sink := streams.NewQuotientWriterSize(out, a.Config.BufferSize)
	source := streams.NewDigitReaderSize(in, a.Config.BufferSize, a.Config.Strict)

	var observers []progress.ProgressObserver
	if logger != nil {
		observers = append(observers, progress.NewLoggingObserver(logger))
	}

	res := orchestration.ExecuteStreaming(ctx, orchestration.StreamRun{
		Divider:    divider,
		Source:     source,
		Sink:       sink,
		TotalBytes: size,
		Observers:  observers,
	}, reporter, progressOut)
	run := runOutcome{stats: res.Stats, duration: res.Duration}

	if res.Err != nil {
		return presenter.HandleError(res.Err, res.Duration, info), run
	}
	if werr := sink.Newline(); werr != nil {
		return presenter.HandleError(apperrors.StreamError{Op: "write", Path: a.Config.OutputFile, Cause: werr}, res.Duration, info), run
	}
	if ferr := sink.Flush(); ferr != nil {
		return presenter.HandleError(apperrors.StreamError{Op: "write", Path: a.Config.OutputFile, Cause: ferr}, res.Duration, info), run
	}

	presenter.PresentResult(res, a.presentationOptions(), info)
	return apperrors.ExitSuccess, run
}

// runVerify executes the streaming and reference engines over the same
// numerator and cross-checks their quotients. Verify mode materializes the
// numerator, so the input is read up front and capped at VerifyLimit.
func (a *Application) runVerify(ctx context.Context, in io.Reader, out io.Writer, engines []division.Engine, reporter orchestration.ProgressReporter, progressOut io.Writer) (int, runOutcome) {
	info := a.ErrWriter
	presenter := cli.CLIResultPresenter{}

	numerator, err := streams.ReadCapped(in, a.Config.InputFile, a.Config.VerifyLimit)
	if err != nil {
		return presenter.HandleError(err, 0, info), runOutcome{}
	}

	job := division.Job{
		Numerator: numerator,
		Divisor:   a.Config.Divisor,
		Strict:    a.Config.Strict,
	}
	results := orchestration.ExecuteDivisions(ctx, engines, job, reporter, progressOut)

	// Quiet mode buffers the analysis so a clean run stays silent while a
	// failing one still explains itself.
	analysisOut := info
	var held bytes.Buffer
	if a.Config.Quiet {
		analysisOut = &held
	}
	code := orchestration.AnalyzeVerificationResults(results, a.presentationOptions(), presenter, presenter, analysisOut)
	if a.Config.Quiet && code != apperrors.ExitSuccess {
		io.Copy(info, &held)
	}

	// AnalyzeVerificationResults sorts successes first, so results[0] is the
	// agreed quotient once the code says success.
	run := runOutcome{stats: results[0].Stats, duration: results[0].Duration}
	if code != apperrors.ExitSuccess {
		return code, run
	}

	if _, werr := io.WriteString(out, results[0].Quotient); werr != nil {
		return presenter.HandleError(apperrors.StreamError{Op: "write", Path: a.Config.OutputFile, Cause: werr}, results[0].Duration, info), run
	}
	if _, werr := io.WriteString(out, "\n"); werr != nil {
		return presenter.HandleError(apperrors.StreamError{Op: "write", Path: a.Config.OutputFile, Cause: werr}, results[0].Duration, info), run
	}
	return apperrors.ExitSuccess, run
}

// progressSink chooses the progress reporter and its writer based on quiet
// mode.
func (a *Application) progressSink(info io.Writer) (orchestration.ProgressReporter, io.Writer) {
	if a.Config.Quiet {
		return orchestration.NullProgressReporter{}, io.Discard
	}
	return cli.CLIProgressReporter{}, info
}

func (a *Application) presentationOptions() orchestration.PresentationOptions {
	return orchestration.PresentationOptions{
		Divisor: a.Config.Divisor,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
		Quiet:   a.Config.Quiet,
	}
}

// runRecorder accumulates run metrics and exports them as a Prometheus
// textfile when the run ends. A nil runRecorder is a no-op.
type runRecorder struct {
	cfg     config.AppConfig
	metrics *metrics.RunMetrics
	peak    *metrics.PeakTracker
	stop    func()
	errOut  io.Writer
}

// newRunRecorder returns a recorder sampling heap usage in the background,
// or nil when no metrics file is configured.
func (a *Application) newRunRecorder() *runRecorder {
	if a.Config.MetricsFile == "" {
		return nil
	}
	tracker := metrics.NewPeakTracker()
	return &runRecorder{
		cfg:     a.Config,
		metrics: metrics.NewRunMetrics(),
		peak:    tracker,
		stop:    samplePeriodically(tracker, memSampleInterval),
		errOut:  a.ErrWriter,
	}
}

// samplePeriodically samples the tracker on every tick until the returned
// stop function is called. Stop blocks until the sampling goroutine exits.
func samplePeriodically(tracker *metrics.PeakTracker, interval time.Duration) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				tracker.Sample()
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

// finish stops sampling, records the outcome, and writes the textfile. A
// failed export is reported but never changes the exit code: the division
// itself already succeeded or failed on its own terms.
func (r *runRecorder) finish(code int, run runOutcome) {
	if r == nil {
		return
	}
	r.stop()
	r.peak.Sample()

	r.metrics.Record(metrics.RunStats{
		Outcome:       outcomeForCode(code),
		Divisor:       r.cfg.Divisor,
		Remainder:     run.stats.Remainder,
		DigitsRead:    run.stats.DigitsRead,
		DigitsWritten: run.stats.DigitsWritten,
		BytesRead:     run.stats.BytesRead,
		Duration:      run.duration,
	})
	r.metrics.SetPeakHeap(r.peak.Peak())

	if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
		fmt.Fprintf(r.errOut, "Error writing metrics file: %v\n", err)
	}
}

// outcomeForCode maps a process exit code onto the metrics outcome label.
func outcomeForCode(code int) string {
	switch code {
	case apperrors.ExitSuccess:
		return metrics.OutcomeSuccess
	case apperrors.ExitErrorTimeout:
		return metrics.OutcomeTimeout
	case apperrors.ExitErrorMismatch:
		return metrics.OutcomeMismatch
	case apperrors.ExitErrorInput:
		return metrics.OutcomeInput
	case apperrors.ExitErrorCanceled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
