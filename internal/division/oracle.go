package division

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/streams"
)

// ReferenceEngine computes quotients by materializing the numerator into
// a big integer and dividing once. It exists as an independent
// implementation for verification runs: it shares the input grammar with
// StreamingEngine but none of the arithmetic.
//
// Unlike the streaming engine it holds the whole numerator in memory, so
// callers bound the input they hand it (the application layer enforces a
// verify size limit).
type ReferenceEngine struct{}

// NewReferenceEngine returns the big-integer reference engine. The
// arithmetic backend is selected at build time; see ReferenceBackend.
func NewReferenceEngine() *ReferenceEngine {
	return &ReferenceEngine{}
}

// Name implements Engine.
func (e *ReferenceEngine) Name() string { return "reference" }

// Quotient implements Engine.
func (e *ReferenceEngine) Quotient(ctx context.Context, progressChan chan<- ProgressUpdate, engineIndex int, job Job) (string, Result, error) {
	var stats Result
	if job.Divisor == 0 || job.Divisor > MaxDivisor {
		return "", stats, apperrors.DivisorRangeError{Divisor: job.Divisor, Max: MaxDivisor}
	}

	var report ProgressCallback
	if progressChan != nil {
		report = NewChannelObserver(progressChan).Update
	}

	digits, err := collectDigits(ctx, job, engineIndex, report)
	if err != nil {
		return "", stats, err
	}
	stats.DigitsRead = int64(len(digits))
	stats.BytesRead = int64(len(job.Numerator))

	quotient := "0"
	if digits != "" {
		// SetString and QuoRem are uninterruptible, so check for
		// cancellation once more before committing to them.
		if err := ctx.Err(); err != nil {
			return "", stats, err
		}
		n := newRefInt(0)
		if _, ok := n.SetString(digits, 10); !ok {
			// collectDigits only passes decimal digits through.
			return "", stats, errors.New("reference engine: digit run failed to parse")
		}
		rem := newRefInt(0)
		q, _ := newRefInt(0).QuoRem(n, newRefInt(int64(job.Divisor)), rem)
		quotient = q.String()
		stats.Remainder = rem.Uint64()
	}
	stats.DigitsWritten = int64(len(quotient))

	if report != nil {
		report(ProgressUpdate{
			EngineIndex: engineIndex,
			Value:       1.0,
			Bytes:       int64(len(job.Numerator)),
		})
	}
	return quotient, stats, nil
}

// collectDigits validates the numerator and extracts its digit run. It
// uses the same reader as the streaming engine, so both engines accept
// and reject exactly the same inputs with the same reported offsets.
func collectDigits(ctx context.Context, job Job, engineIndex int, report ProgressCallback) (string, error) {
	src := streams.NewDigitReader(bytes.NewReader(job.Numerator), job.Strict)
	total := int64(len(job.Numerator))

	var sb strings.Builder
	sb.Grow(len(job.Numerator))
	var digitsRead int64
	nextCancel := int64(CancelCheckInterval)
	nextReport := int64(ProgressReportInterval)
	for {
		d, err := src.ReadDigit()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sb.String(), nil
			}
			return "", err
		}
		sb.WriteByte('0' + d)
		digitsRead++

		if digitsRead >= nextCancel {
			nextCancel += CancelCheckInterval
			if cerr := ctx.Err(); cerr != nil {
				return "", cerr
			}
		}
		if report != nil && digitsRead >= nextReport {
			nextReport += ProgressReportInterval
			pos := src.BytesConsumed()
			report(ProgressUpdate{
				EngineIndex: engineIndex,
				Value:       progressFraction(pos, total),
				Bytes:       pos,
			})
		}
	}
}

// Compile-time interface compliance check.
var _ Engine = (*ReferenceEngine)(nil)
