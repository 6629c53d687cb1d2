package division

import (
	"bytes"
	"context"
	"strings"

	"github.com/agbru/divcalc/internal/streams"
)

// Job describes one division over an in-memory numerator.
type Job struct {
	// Numerator is the raw numerator input, exactly as it would appear
	// on the input stream (digits, optionally surrounded by whitespace).
	Numerator []byte
	// Divisor is the denominator, in (0, MaxDivisor].
	Divisor uint64
	// Strict rejects whitespace around the digit run.
	Strict bool
}

// Engine computes the full quotient string for a Job, together with the
// pass counters. Implementations report progress on progressChan with
// non-blocking sends and honor ctx cancellation. Engines hold no per-job
// state and are safe for concurrent use.
type Engine interface {
	Quotient(ctx context.Context, progressChan chan<- ProgressUpdate, engineIndex int, job Job) (string, Result, error)
	Name() string
}

// StreamingEngine computes quotients with the constant-space streaming
// state machine. It is the production engine; ReferenceEngine recomputes
// the same quotient independently so the two can be compared.
type StreamingEngine struct{}

// NewStreamingEngine returns the streaming engine.
func NewStreamingEngine() *StreamingEngine {
	return &StreamingEngine{}
}

// Name implements Engine.
func (e *StreamingEngine) Name() string { return "streaming" }

// Quotient implements Engine.
func (e *StreamingEngine) Quotient(ctx context.Context, progressChan chan<- ProgressUpdate, engineIndex int, job Job) (string, Result, error) {
	dv, err := NewDivider(job.Divisor)
	if err != nil {
		return "", Result{}, err
	}

	opts := Options{
		EngineIndex: engineIndex,
		TotalBytes:  int64(len(job.Numerator)),
	}
	if progressChan != nil {
		opts.Progress = NewChannelObserver(progressChan).Update
	}

	var sb strings.Builder
	src := streams.NewDigitReader(bytes.NewReader(job.Numerator), job.Strict)
	stats, err := dv.Divide(ctx, &sb, src, opts)
	if err != nil {
		return "", stats, err
	}
	return sb.String(), stats, nil
}

// Compile-time interface compliance check.
var _ Engine = (*StreamingEngine)(nil)
