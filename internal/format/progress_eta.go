package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// ETASmoothingFactor controls the exponential smoothing of the progress
	// rate. Lower values favor the historical rate and damp jitter from
	// bursty updates.
	ETASmoothingFactor = 0.3

	// MaxETA caps the reported estimate. Rates measured from the first few
	// updates can be arbitrarily small and would otherwise yield estimates
	// in the range of days.
	MaxETA = 24 * time.Hour
)

// ProgressState tracks the individual progress of a set of concurrent
// workers and computes the average, which is what a single consolidated
// progress bar displays.
type ProgressState struct {
	progresses     []float64
	numWorkers int
}

// NewProgressState creates and initializes a new ProgressState.
//
// Parameters:
//   - numWorkers: The number of workers to track.
//
// Returns:
//   - *ProgressState: A pointer to the new progress state object.
func NewProgressState(numWorkers int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numWorkers),
		numWorkers: numWorkers,
	}
}

// Update records a new progress value for a specific worker. Updates for
// out-of-range indices are ignored.
//
// Parameters:
//   - index: The index of the worker (0 to numWorkers-1).
//   - value: The progress value (0.0 to 1.0).
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked workers.
//
// Returns:
//   - float64: The average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	var totalProgress float64
	for _, p := range ps.progresses {
		totalProgress += p
	}
	if ps.numWorkers == 0 {
		return 0.0
	}
	return totalProgress / float64(ps.numWorkers)
}

// ProgressWithETA extends ProgressState with a smoothed progress rate used
// to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	mu             sync.Mutex
	numWorkers int
	progressRate   float64 // fraction per second, exponentially smoothed
	startTime      time.Time
	lastUpdateTime time.Time
	lastAverage    float64
}

// NewProgressWithETA creates a progress tracker with ETA estimation for the
// given number of workers.
func NewProgressWithETA(numWorkers int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numWorkers),
		numWorkers:     numWorkers,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// UpdateWithETA records a progress value and refreshes the rate estimate.
//
// Parameters:
//   - index: The index of the reporting worker.
//   - value: The progress value (0.0 to 1.0).
//
// Returns:
//   - float64: The aggregated average progress.
//   - time.Duration: The current ETA estimate (0 while still calculating).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdateTime)
	if elapsed > 0 {
		instantRate := (avg - p.lastAverage) / elapsed.Seconds()
		if instantRate > 0 {
			if p.progressRate == 0 {
				p.progressRate = instantRate
			} else {
				p.progressRate = ETASmoothingFactor*instantRate + (1-ETASmoothingFactor)*p.progressRate
			}
		}
	}
	p.lastUpdateTime = now
	p.lastAverage = avg

	return avg, p.etaLocked(avg)
}

// GetETA returns the current ETA estimate without recording an update.
// It returns 0 while no usable rate has been measured.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

// etaLocked computes the estimate from the smoothed rate. Callers must hold mu.
func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - avg
	if remaining <= 0 {
		return 0
	}
	seconds := remaining / p.progressRate
	if seconds > MaxETA.Seconds() {
		return MaxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an ETA estimate in a compact human form: "45s",
// "2m30s", "1h15m". Zero and negative estimates render as "calculating...".
//
// Parameters:
//   - eta: The estimated remaining duration.
//
// Returns:
//   - string: The formatted estimate.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	eta = eta.Round(time.Second)
	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	seconds := int(eta.Seconds()) % 60

	switch {
	case hours > 0:
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case minutes > 0:
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// ProgressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA combines a progress bar, a percentage, and an ETA
// into a single status line.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - eta: The estimated remaining duration.
//   - width: The character width of the bar portion.
//
// Returns:
//   - string: The combined status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
