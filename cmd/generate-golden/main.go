// Command generate-golden regenerates the golden quotient fixtures the
// division package tests read from testdata/golden.txt. Quotients are
// computed with math/big, independently of the streaming implementation
// under test.
//
// Without flags it emits the fixed canonical set, which is what is
// committed. -count adds seeded random numerators on top for local stress
// runs; those are not meant to be committed.
//
// Usage (from the repository root):
//
//	go run ./cmd/generate-golden
//	go run ./cmd/generate-golden -count 100 -seed 7 -out /tmp/golden.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"os"
)

const defaultOut = "internal/division/testdata/golden.txt"

// canonicalNumerators is the committed fixture set: the documented edge
// cases plus numerators that exceed every fixed-width integer type.
var canonicalNumerators = []string{
	"0",
	"5",
	"189",
	"190",
	"191",
	"380",
	"18999",
	"19000",
	"00095",
	"19000000000000000000",
	"340282366920938463463374607431768211455",
	"99999999999999999999999999999999999999999999999999",
	"111111111111111111111111111111",
	"1" + zeros(100),
}

func main() {
	out := flag.String("out", defaultOut, "fixture file to write")
	divisor := flag.Uint64("divisor", 190, "divisor of the fixtures")
	count := flag.Int("count", 0, "number of random numerators to add")
	seed := flag.Int64("seed", 1, "seed for the random numerators")
	maxDigits := flag.Int("max-digits", 200, "maximum digits of a random numerator")
	flag.Parse()

	if *divisor == 0 {
		fmt.Fprintln(os.Stderr, "divisor must not be zero")
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
		os.Exit(1)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# divcalc golden quotient fixtures")
	fmt.Fprintf(w, "# divisor=%d\n", *divisor)
	fmt.Fprintln(w, "# regenerate: go run ./cmd/generate-golden")
	fmt.Fprintln(w, "# numerator\tquotient\tremainder")

	numerators := canonicalNumerators
	if *count > 0 {
		rng := rand.New(rand.NewSource(*seed))
		for i := 0; i < *count; i++ {
			numerators = append(numerators, randomNumerator(rng, *maxDigits))
		}
	}

	for _, n := range numerators {
		quotient, remainder := quoBig(n, *divisor)
		fmt.Fprintf(w, "%s\t%s\t%d\n", n, quotient, remainder)
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d fixtures to %s\n", len(numerators), *out)
}

// quoBig computes the quotient and remainder of numerator/divisor with
// math/big. The numerator is a decimal digit string; leading zeros are
// accepted the way the divider accepts them.
func quoBig(numerator string, divisor uint64) (string, uint64) {
	n, ok := new(big.Int).SetString(numerator, 10)
	if !ok {
		fmt.Fprintf(os.Stderr, "not a decimal number: %q\n", numerator)
		os.Exit(1)
	}
	rem := new(big.Int)
	quo, _ := new(big.Int).QuoRem(n, new(big.Int).SetUint64(divisor), rem)
	return quo.String(), rem.Uint64()
}

// randomNumerator produces a digit string of random length in
// [1, maxDigits] without a leading zero, except for the single digit "0".
func randomNumerator(rng *rand.Rand, maxDigits int) string {
	length := 1 + rng.Intn(maxDigits)
	digits := make([]byte, length)
	digits[0] = byte('0' + rng.Intn(10))
	if length > 1 && digits[0] == '0' {
		digits[0] = byte('1' + rng.Intn(9))
	}
	for i := 1; i < length; i++ {
		digits[i] = byte('0' + rng.Intn(10))
	}
	return string(digits)
}

// zeros returns a string of n '0' bytes.
func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
