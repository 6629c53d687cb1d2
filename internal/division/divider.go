package division

import (
	"context"
	"errors"
	"io"

	apperrors "github.com/agbru/divcalc/internal/errors"
)

// DigitSource supplies numerator digit values, most significant first.
// Implementations return digit values 0 through 9 and io.EOF at end of
// input. streams.DigitReader is the canonical implementation; any
// validation error it reports passes through Divide unchanged.
type DigitSource interface {
	ReadDigit() (byte, error)
}

// ByteCounter is optionally implemented by digit sources that can report
// how many raw input bytes they have consumed. Progress updates then
// carry byte positions instead of digit counts.
type ByteCounter interface {
	BytesConsumed() int64
}

// Options configures a single Divide pass.
type Options struct {
	// EngineIndex identifies this run in progress updates.
	EngineIndex int

	// Progress receives periodic updates during the pass; nil disables
	// reporting. The callback runs on the hot path and must not block.
	Progress ProgressCallback

	// TotalBytes is the input length in bytes when known. A negative
	// value means unknown; updates then carry IndeterminateValue as
	// their fraction.
	TotalBytes int64
}

// Result carries the counters of a completed or aborted Divide pass.
type Result struct {
	// DigitsRead is the number of numerator digits consumed.
	DigitsRead int64
	// BytesRead is the number of raw input bytes consumed when the
	// source can count them; otherwise it equals DigitsRead.
	BytesRead int64
	// DigitsWritten is the number of quotient digits emitted.
	DigitsWritten int64
	// Remainder is the running remainder at the point the pass stopped.
	// After a successful pass this is the remainder of the division.
	Remainder uint64
}

// Divider runs division passes: it drives a LongDivision over a
// DigitSource and emits the quotient into an io.ByteWriter. A Divider may
// be reused for consecutive passes but is not safe for concurrent use.
type Divider struct {
	ld *LongDivision
}

// NewDivider returns a Divider for the given divisor. Divisors outside
// (0, MaxDivisor] are rejected with a DivisorRangeError.
func NewDivider(divisor uint64) (*Divider, error) {
	ld, err := NewLongDivision(divisor)
	if err != nil {
		return nil, err
	}
	return &Divider{ld: ld}, nil
}

// Divisor returns the configured divisor.
func (dv *Divider) Divisor() uint64 {
	return dv.ld.Divisor()
}

// Divide consumes src to exhaustion and writes the quotient digits to
// dst. It returns the pass counters together with the first error from
// the source, the destination, or ctx. The counters are valid either way
// and describe how far the pass got.
//
// Cancellation is polled every CancelCheckInterval digits, so a canceled
// pass may consume a few thousand digits beyond the cancellation point.
func (dv *Divider) Divide(ctx context.Context, dst io.ByteWriter, src DigitSource, opts Options) (Result, error) {
	dv.ld.Reset()
	var res Result

	counter, countable := src.(ByteCounter)
	consumed := func() int64 {
		if countable {
			return counter.BytesConsumed()
		}
		return res.DigitsRead
	}
	fail := func(err error) (Result, error) {
		res.BytesRead = consumed()
		res.Remainder = dv.ld.Remainder()
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	nextCancel := int64(CancelCheckInterval)
	nextReport := int64(ProgressReportInterval)
	for {
		d, err := src.ReadDigit()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fail(err)
		}
		res.DigitsRead++

		if out, ok := dv.ld.Step(d); ok {
			if werr := dst.WriteByte(out); werr != nil {
				return fail(apperrors.WrapError(werr, "write quotient digit"))
			}
			res.DigitsWritten++
		}

		if res.DigitsRead >= nextCancel {
			nextCancel += CancelCheckInterval
			if cerr := ctx.Err(); cerr != nil {
				return fail(cerr)
			}
		}
		if opts.Progress != nil && res.DigitsRead >= nextReport {
			nextReport += ProgressReportInterval
			pos := consumed()
			opts.Progress(ProgressUpdate{
				EngineIndex: opts.EngineIndex,
				Value:       progressFraction(pos, opts.TotalBytes),
				Bytes:       pos,
			})
		}
	}

	if out, ok := dv.ld.Finalize(); ok {
		if werr := dst.WriteByte(out); werr != nil {
			return fail(apperrors.WrapError(werr, "write quotient digit"))
		}
		res.DigitsWritten++
	}

	res.BytesRead = consumed()
	res.Remainder = dv.ld.Remainder()
	if opts.Progress != nil {
		opts.Progress(ProgressUpdate{
			EngineIndex: opts.EngineIndex,
			Value:       1.0,
			Bytes:       res.BytesRead,
		})
	}
	return res, nil
}

// progressFraction converts a byte position into a completion fraction,
// or IndeterminateValue when the total is unknown.
func progressFraction(consumed, total int64) float64 {
	if total < 0 {
		return IndeterminateValue
	}
	if total == 0 {
		return 1.0
	}
	f := float64(consumed) / float64(total)
	if f > 1.0 {
		f = 1.0
	}
	return f
}
