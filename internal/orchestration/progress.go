package orchestration

import (
	"time"

	"github.com/agbru/divcalc/internal/format"
	"github.com/agbru/divcalc/internal/progress"
)

// ProgressAggregator manages multi-engine progress aggregation.
// It wraps format.ProgressWithETA and provides a higher-level API
// for consuming progress updates from a channel. Both CLI and TUI
// use this to avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numEngines int
	bytes      []int64
}

// NewProgressAggregator creates a new aggregator for the given number
// of engines. Returns nil if numEngines <= 0.
func NewProgressAggregator(numEngines int) *ProgressAggregator {
	if numEngines <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numEngines),
		numEngines: numEngines,
		bytes:      make([]int64, numEngines),
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// EngineIndex is the index of the engine that sent the update.
	EngineIndex int
	// Value is the raw progress value from the update (0.0 to 1.0, or
	// negative for indeterminate).
	Value float64
	// Bytes is the number of input bytes the engine has consumed.
	Bytes int64
	// AverageProgress is the aggregated average across all engines.
	AverageProgress float64
	// ETA is the estimated time remaining based on smoothed progress rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated
// result. Indeterminate updates advance the byte counters but leave the
// fraction state untouched, so an unknown-size stream never drags the
// average below zero.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	if update.EngineIndex >= 0 && update.EngineIndex < len(a.bytes) {
		a.bytes[update.EngineIndex] = update.Bytes
	}

	if update.Indeterminate() {
		return AggregatedProgress{
			EngineIndex:     update.EngineIndex,
			Value:           update.Value,
			Bytes:           update.Bytes,
			AverageProgress: a.state.CalculateAverage(),
			ETA:             a.state.GetETA(),
		}
	}

	avgProgress, eta := a.state.UpdateWithETA(update.EngineIndex, update.Value)
	return AggregatedProgress{
		EngineIndex:     update.EngineIndex,
		Value:           update.Value,
		Bytes:           update.Bytes,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// BytesConsumed returns the highest byte position reported by any engine.
// In verify mode both engines read the same numerator, so the furthest
// reader is the honest measure of input consumption.
func (a *ProgressAggregator) BytesConsumed() int64 {
	var max int64
	for _, b := range a.bytes {
		if b > max {
			max = b
		}
	}
	return max
}

// NumEngines returns the number of engines being tracked.
func (a *ProgressAggregator) NumEngines() int {
	return a.numEngines
}

// IsMultiEngine returns true if tracking more than one engine.
func (a *ProgressAggregator) IsMultiEngine() bool {
	return a.numEngines > 1
}

// DrainChannel reads all updates from the channel without processing.
// Use this when numEngines <= 0 and updates should be discarded.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
