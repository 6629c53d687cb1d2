package division

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/divcalc/internal/errors"
	"github.com/agbru/divcalc/internal/progress"
)

// bothEngines returns the two quotient implementations under test.
func bothEngines() []Engine {
	return []Engine{
		NewStreamingEngine(),
		NewReferenceEngine(),
	}
}

// TestEngineQuotients verifies that both engines produce the expected
// quotient strings.
func TestEngineQuotients(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		numerator string
		divisor   uint64
		want      string
		wantRem   uint64
	}{
		{"Empty numerator", "", 190, "0", 0},
		{"Zero", "0", 190, "0", 0},
		{"Below divisor", "189", 190, "0", 189},
		{"Exact divisor", "190", 190, "1", 0},
		{"Leading zeros", "00095", 190, "0", 95},
		{"Whitespace padding", " 380 \n", 190, "2", 0},
		{"Beyond uint64", "19000000000000000000", 190, "100000000000000000", 0},
		{"Long mixed numerator", "9876543210987654321098765432109876543210", 7, "1410934744426807760156966490301410934744", 2},
		{"Divide by one", "42", 1, "42", 0},
	}

	for _, tc := range testCases {
		for _, eng := range bothEngines() {
			t.Run(tc.name+"/"+eng.Name(), func(t *testing.T) {
				t.Parallel()
				got, stats, err := eng.Quotient(context.Background(), nil, 0, Job{
					Numerator: []byte(tc.numerator),
					Divisor:   tc.divisor,
				})
				if err != nil {
					t.Fatalf("Quotient: %v", err)
				}
				if got != tc.want {
					t.Errorf("quotient = %q, want %q", got, tc.want)
				}
				if stats.Remainder != tc.wantRem {
					t.Errorf("remainder = %d, want %d", stats.Remainder, tc.wantRem)
				}
				if stats.DigitsWritten != int64(len(tc.want)) {
					t.Errorf("DigitsWritten = %d, want %d", stats.DigitsWritten, len(tc.want))
				}
			})
		}
	}
}

// TestEngineErrorEquivalence verifies that both engines reject malformed
// numerators with the same typed error at the same offset.
func TestEngineErrorEquivalence(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		numerator  string
		strict     bool
		wantOffset int64
		wantByte   byte
	}{
		{"Letter", "12a3", false, 2, 'a'},
		{"Interior space", "4 2", false, 1, ' '},
		{"Strict newline", "42\n", true, 2, '\n'},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got []apperrors.InputSyntaxError
			for _, eng := range bothEngines() {
				_, _, err := eng.Quotient(context.Background(), nil, 0, Job{
					Numerator: []byte(tc.numerator),
					Divisor:   190,
					Strict:    tc.strict,
				})
				var synErr apperrors.InputSyntaxError
				if !errors.As(err, &synErr) {
					t.Fatalf("%s: error = %v, want InputSyntaxError", eng.Name(), err)
				}
				got = append(got, synErr)
			}
			for _, synErr := range got {
				if synErr.Offset != tc.wantOffset || synErr.Byte != tc.wantByte {
					t.Errorf("error = %+v, want offset %d byte %q", synErr, tc.wantOffset, tc.wantByte)
				}
			}
		})
	}
}

// TestEngineDivisorValidation verifies the divisor bound on both engines.
func TestEngineDivisorValidation(t *testing.T) {
	t.Parallel()
	for _, eng := range bothEngines() {
		for _, divisor := range []uint64{0, MaxDivisor + 1} {
			_, _, err := eng.Quotient(context.Background(), nil, 0, Job{
				Numerator: []byte("42"),
				Divisor:   divisor,
			})
			var rangeErr apperrors.DivisorRangeError
			if !errors.As(err, &rangeErr) {
				t.Errorf("%s divisor %d: error = %v, want DivisorRangeError", eng.Name(), divisor, err)
			}
		}
	}
}

// TestEngineNames verifies the registry names.
func TestEngineNames(t *testing.T) {
	t.Parallel()
	if got := NewStreamingEngine().Name(); got != "streaming" {
		t.Errorf("StreamingEngine.Name() = %q", got)
	}
	if got := NewReferenceEngine().Name(); got != "reference" {
		t.Errorf("ReferenceEngine.Name() = %q", got)
	}
}

// TestEngineProgressCompletion verifies that a final completion update
// reaches the progress channel.
func TestEngineProgressCompletion(t *testing.T) {
	t.Parallel()
	for _, eng := range bothEngines() {
		ch := make(chan progress.ProgressUpdate, 16)
		_, _, err := eng.Quotient(context.Background(), ch, 2, Job{
			Numerator: []byte("380"),
			Divisor:   190,
		})
		if err != nil {
			t.Fatalf("%s: %v", eng.Name(), err)
		}
		close(ch)

		var last progress.ProgressUpdate
		var any bool
		for u := range ch {
			last = u
			any = true
		}
		if !any {
			t.Fatalf("%s: no progress update received", eng.Name())
		}
		if last.Value != 1.0 {
			t.Errorf("%s: final Value = %f, want 1.0", eng.Name(), last.Value)
		}
		if last.EngineIndex != 2 {
			t.Errorf("%s: EngineIndex = %d, want 2", eng.Name(), last.EngineIndex)
		}
	}
}

// TestEngineCanceled verifies context propagation out of both engines.
func TestEngineCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	long := strings.Repeat("9", 3*CancelCheckInterval)
	for _, eng := range bothEngines() {
		_, _, err := eng.Quotient(ctx, nil, 0, Job{
			Numerator: []byte(long),
			Divisor:   190,
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", eng.Name(), err)
		}
	}
}
