package division

import (
	apperrors "github.com/agbru/divcalc/internal/errors"
)

// LongDivision is the per-digit state machine of schoolbook long division.
// It consumes the numerator most significant digit first and produces the
// quotient most significant digit first, carrying only the running
// remainder between steps.
//
// For each numerator digit d the machine applies:
//
//	r = r*10 + d
//	q = r / divisor   (one quotient digit, 0..9)
//	r = r - q*divisor (so 0 <= r < divisor holds after every step)
//
// Quotient digits are suppressed until the first nonzero one, so the
// emitted digits never start with a zero run. A numerator that never
// produces a nonzero digit (zero or empty input) emits the single
// canonical "0" from Finalize.
//
// The zero value is not usable; construct with NewLongDivision. Instances
// are not safe for concurrent use.
type LongDivision struct {
	divisor   uint64
	remainder uint64
	emitting  bool
}

// NewLongDivision returns a state machine dividing by divisor. Divisors
// outside (0, MaxDivisor] are rejected with a DivisorRangeError.
func NewLongDivision(divisor uint64) (*LongDivision, error) {
	if divisor == 0 || divisor > MaxDivisor {
		return nil, apperrors.DivisorRangeError{Divisor: divisor, Max: MaxDivisor}
	}
	return &LongDivision{divisor: divisor}, nil
}

// Step consumes one numerator digit value (0 through 9) and produces at
// most one quotient digit. When ok is true, out holds the ASCII quotient
// digit to emit; false means the digit belongs to the suppressed leading
// zero run.
func (ld *LongDivision) Step(digit byte) (out byte, ok bool) {
	if debugDivision && digit > 9 {
		panic("division: Step digit out of range")
	}

	// r <= divisor-1 <= MaxDivisor-1, so r*10+9 cannot wrap.
	ld.remainder = ld.remainder*10 + uint64(digit)
	if ld.remainder >= ld.divisor {
		q := ld.remainder / ld.divisor
		ld.remainder -= q * ld.divisor
		if debugDivision && q > 9 {
			panic("division: quotient digit out of range")
		}
		// q >= 1 here, so emission starts exactly at the first
		// nonzero quotient digit.
		ld.emitting = true
		return '0' + byte(q), true
	}
	if !ld.emitting {
		return 0, false
	}
	return '0', true
}

// Finalize reports the quotient digit owed at end of input. When the whole
// digit run was suppressed, it produces the canonical '0'; otherwise there
// is nothing to emit. Calling Finalize again returns false until Reset.
func (ld *LongDivision) Finalize() (out byte, ok bool) {
	if !ld.emitting {
		ld.emitting = true
		return '0', true
	}
	return 0, false
}

// Reset returns the machine to its initial state, keeping the divisor.
func (ld *LongDivision) Reset() {
	ld.remainder = 0
	ld.emitting = false
}

// Remainder returns the running remainder, which after the final Step is
// the remainder of the whole division.
func (ld *LongDivision) Remainder() uint64 {
	return ld.remainder
}

// Divisor returns the configured divisor.
func (ld *LongDivision) Divisor() uint64 {
	return ld.divisor
}

// Emitting reports whether the leading zero run has ended and quotient
// digits are being emitted.
func (ld *LongDivision) Emitting() bool {
	return ld.emitting
}
