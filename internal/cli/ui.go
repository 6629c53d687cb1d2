//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/divcalc/internal/format"
	"github.com/agbru/divcalc/internal/orchestration"
	"github.com/agbru/divcalc/internal/progress"
)

// FormatExecutionDuration formats a time.Duration for display.
// It is kept here for backward compatibility within the CLI package and
// delegates to format.FormatExecutionDuration.
func FormatExecutionDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

const (
	// TruncationLimit is the digit threshold from which a quotient is
	// truncated in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated quotient.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// Optimized to 200ms to reduce updates and improve performance.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes progress updates from progressChan and renders a
// consolidated spinner line with a progress bar and an ETA estimate. It runs
// until the channel is closed and signals completion through wg, which lets
// the orchestrator guarantee that the final result output never interleaves
// with a progress frame.
//
// When the input size is unknown the bar is replaced by a running byte
// count, since a completion fraction cannot be computed for an unbounded
// stream.
//
// Parameters:
//   - wg: The wait group signaled when the display loop ends.
//   - progressChan: The channel carrying updates; close it to stop the loop.
//   - numEngines: The number of engines reporting. Zero or negative drains
//     the channel without rendering anything.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numEngines)
	if agg == nil {
		for range progressChan {
		}
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" Dividing...")
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var sawFraction bool
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			if !update.Indeterminate() {
				sawFraction = true
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg, sawFraction))
		}
	}
}

// progressSuffix renders the spinner status line from the aggregated state.
func progressSuffix(agg *orchestration.ProgressAggregator, determinate bool) string {
	if !determinate {
		return fmt.Sprintf(" Dividing... %s read", format.FormatBytes(uint64(agg.BytesConsumed())))
	}
	return " Dividing... " + format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth)
}
