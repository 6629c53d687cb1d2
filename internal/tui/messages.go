package tui

import (
	"time"

	"github.com/agbru/divcalc/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update from the bridge.
type ProgressMsg struct {
	// EngineIndex identifies the reporting engine (0-based).
	EngineIndex int
	// Value is the raw fraction of input consumed, negative when the
	// input size is unknown.
	Value float64
	// Bytes is the number of input bytes the engine has consumed.
	Bytes int64
	// AverageProgress is the aggregated fraction across all engines.
	AverageProgress float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// VerificationResultsMsg carries the per-engine outcomes of a verify run.
type VerificationResultsMsg struct {
	Results []orchestration.DivisionResult
}

// FinalResultMsg carries the presented result of a completed run.
type FinalResultMsg struct {
	Result orchestration.DivisionResult
	Opts   orchestration.PresentationOptions
}

// ErrorMsg reports a run failure.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh of elapsed time and stat samples.
type TickMsg time.Time

// MemStatsMsg carries a snapshot of the Go runtime memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide resource snapshot.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	ProcessRSS uint64
}

// DivisionCompleteMsg signals that the run goroutine has finished.
type DivisionCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the run context was cancelled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
