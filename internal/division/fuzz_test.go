package division

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/divcalc/internal/errors"
)

// FuzzStreamingVsReference verifies that the streaming engine and the
// big-integer reference engine agree on every input, valid or malformed.
// This catches state machine bugs that unit tests with hand-picked
// numerators would miss.
func FuzzStreamingVsReference(f *testing.F) {
	// Seed corpus with known interesting values
	seeds := []string{
		"",
		"0",
		"189",
		"190",
		"380",
		"00095",
		"190\n",
		" 42 ",
		"12a3",
		"18446744073709551615", // max uint64
		"19000000000000000000",
		"9999999999999999999999999999",
		"1000000000000000000000000000001",
	}
	for _, s := range seeds {
		f.Add([]byte(s), uint64(190))
	}
	f.Add([]byte("7"), uint64(1))
	f.Add([]byte("18446744073709551610"), MaxDivisor)

	f.Fuzz(func(t *testing.T, numerator []byte, divisor uint64) {
		// Limit to keep iterations quick
		if len(numerator) > 1<<16 {
			return
		}

		ctx := context.Background()
		job := Job{Numerator: numerator, Divisor: divisor}

		streaming, sStats, sErr := NewStreamingEngine().Quotient(ctx, nil, 0, job)
		reference, rStats, rErr := NewReferenceEngine().Quotient(ctx, nil, 0, job)

		if (sErr == nil) != (rErr == nil) {
			t.Fatalf("error disagreement for %q / %d:\n  streaming: %v\n  reference: %v",
				numerator, divisor, sErr, rErr)
		}
		if sErr != nil {
			var sSyn, rSyn apperrors.InputSyntaxError
			if errors.As(sErr, &sSyn) != errors.As(rErr, &rSyn) || sSyn != rSyn {
				t.Fatalf("typed error mismatch for %q / %d:\n  streaming: %v\n  reference: %v",
					numerator, divisor, sErr, rErr)
			}
			return
		}
		if streaming != reference {
			t.Errorf("quotient mismatch for %q / %d:\n  streaming: %s\n  reference: %s",
				numerator, divisor, streaming, reference)
		}
		if sStats.Remainder != rStats.Remainder {
			t.Errorf("remainder mismatch for %q / %d: streaming %d, reference %d",
				numerator, divisor, sStats.Remainder, rStats.Remainder)
		}
	})
}

// FuzzDivisionIdentity verifies N = Q*D + R with 0 <= R < D for
// digit-only numerators, using math/big as the independent checker.
func FuzzDivisionIdentity(f *testing.F) {
	f.Add("0", uint64(190))
	f.Add("189", uint64(190))
	f.Add("18446744073709551615", uint64(190))
	f.Add("123456789012345678901234567890", uint64(97))
	f.Add("42", uint64(1))

	f.Fuzz(func(t *testing.T, numerator string, divisor uint64) {
		if len(numerator) > 1<<16 {
			return
		}
		if divisor == 0 || divisor > MaxDivisor {
			return
		}
		for i := 0; i < len(numerator); i++ {
			if numerator[i] < '0' || numerator[i] > '9' {
				return
			}
		}

		quotient, res, err := streamingPass(numerator, divisor)
		if err != nil {
			t.Fatalf("streaming pass failed for %q / %d: %v", numerator, divisor, err)
		}
		if res.Remainder >= divisor {
			t.Fatalf("remainder %d >= divisor %d", res.Remainder, divisor)
		}

		n, ok := bigFromDigits(numerator)
		if !ok {
			t.Fatalf("failed to parse numerator %q", numerator)
		}
		q, ok := new(big.Int).SetString(quotient, 10)
		if !ok {
			t.Fatalf("failed to parse quotient %q", quotient)
		}
		lhs := new(big.Int).Mul(q, new(big.Int).SetUint64(divisor))
		lhs.Add(lhs, new(big.Int).SetUint64(res.Remainder))
		if lhs.Cmp(n) != 0 {
			t.Errorf("identity violated for %q / %d: Q=%s R=%d", numerator, divisor, quotient, res.Remainder)
		}
	})
}
