package main

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

// TestQuoBig tests the oracle division function with known values.
func TestQuoBig(t *testing.T) {
	tests := []struct {
		name      string
		numerator string
		divisor   uint64
		expected  string
		remainder uint64
	}{
		{"zero numerator", "0", 190, "0", 0},
		{"below divisor", "189", 190, "0", 189},
		{"exact divisor", "190", 190, "1", 0},
		{"one past divisor", "191", 190, "1", 1},
		{"two multiples", "380", 190, "2", 0},
		{"leading zeros", "00095", 190, "0", 95},
		{"last value before rollover", "18999", 190, "99", 189},
		{"rollover to three digits", "19000", 190, "100", 0},
		{"beyond uint64", "19000000000000000000", 190, "100000000000000000", 0},
		{"beyond uint128", "340282366920938463463374607431768211455", 190, "1790959825899676123491445302272464270", 155},
		{"divide by one", "42", 1, "42", 0},
		{"repunit by seven", "111111", 7, "15873", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotient, remainder := quoBig(tt.numerator, tt.divisor)
			if quotient != tt.expected {
				t.Errorf("quoBig(%s, %d) = %s, want %s", tt.numerator, tt.divisor, quotient, tt.expected)
			}
			if remainder != tt.remainder {
				t.Errorf("quoBig(%s, %d) remainder = %d, want %d", tt.numerator, tt.divisor, remainder, tt.remainder)
			}
		})
	}
}

// TestQuoBig_Properties tests mathematical properties of the division.
func TestQuoBig_Properties(t *testing.T) {
	t.Run("Q*D + R reconstructs N", func(t *testing.T) {
		const divisor = 190
		for n := 0; n < 5000; n += 7 {
			numerator := big.NewInt(int64(n)).String()
			quotient, remainder := quoBig(numerator, divisor)

			q, ok := new(big.Int).SetString(quotient, 10)
			if !ok {
				t.Fatalf("quotient %q is not a decimal number", quotient)
			}
			back := new(big.Int).Mul(q, big.NewInt(divisor))
			back.Add(back, new(big.Int).SetUint64(remainder))
			if back.String() != numerator {
				t.Errorf("Q*D+R = %s, want %s", back.String(), numerator)
			}
			if remainder >= divisor {
				t.Errorf("remainder %d not below divisor %d", remainder, divisor)
			}
		}
	})

	t.Run("adding the divisor increments the quotient", func(t *testing.T) {
		const divisor = 190
		for n := 0; n < 2000; n += 13 {
			qn, _ := quoBig(big.NewInt(int64(n)).String(), divisor)
			qnd, _ := quoBig(big.NewInt(int64(n+divisor)).String(), divisor)

			a, _ := new(big.Int).SetString(qn, 10)
			b, _ := new(big.Int).SetString(qnd, 10)
			diff := new(big.Int).Sub(b, a)
			if diff.Cmp(big.NewInt(1)) != 0 {
				t.Errorf("quotient of %d+%d should be one more than quotient of %d, got %s and %s",
					n, divisor, n, qnd, qn)
			}
		}
	})

	t.Run("random numerators never start with zero", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 1000; i++ {
			n := randomNumerator(rng, 50)
			if len(n) > 1 && strings.HasPrefix(n, "0") {
				t.Fatalf("multi-digit numerator %q has a leading zero", n)
			}
			if len(n) == 0 || len(n) > 50 {
				t.Fatalf("numerator %q has length %d, want 1..50", n, len(n))
			}
		}
	})
}

// TestQuoBig_LargeValues tests a quotient far beyond any fixed-width type.
func TestQuoBig_LargeValues(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large value tests in short mode")
	}

	tests := []struct {
		name      string
		numerator string
		expected  string
		remainder uint64
	}{
		{
			"10^200 by 190",
			"1" + zeros(200),
			"526315789473684210526315789473684210526315789473684210526315789473684210526315789473684210526315789473684210526315789473684210526315789473684210526315789473684210526315789473684210526315789473684210",
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotient, remainder := quoBig(tt.numerator, 190)
			if quotient != tt.expected {
				t.Errorf("quoBig(%s) quotient mismatch\ngot:  %s\nwant: %s", tt.name, quotient, tt.expected)
			}
			if remainder != tt.remainder {
				t.Errorf("quoBig(%s) remainder = %d, want %d", tt.name, remainder, tt.remainder)
			}
		})
	}
}
