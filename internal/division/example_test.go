package division

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/agbru/divcalc/internal/streams"
)

// ExampleDivider demonstrates a full streaming pass from a validating
// digit reader into a byte sink.
func ExampleDivider() {
	dv, err := NewDivider(190)
	if err != nil {
		fmt.Println(err)
		return
	}

	var out bytes.Buffer
	src := streams.NewDigitReader(strings.NewReader("19000\n"), false)
	res, err := dv.Divide(context.Background(), &out, src, Options{TotalBytes: 6})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out.String())
	fmt.Println(res.Remainder)
	// Output:
	// 100
	// 0
}

// ExampleStreamingEngine demonstrates quotient computation with leading
// zero suppression: a numerator below the divisor yields the canonical
// zero, and the counters carry the remainder.
func ExampleStreamingEngine() {
	eng := NewStreamingEngine()

	quotient, stats, err := eng.Quotient(context.Background(), nil, 0, Job{
		Numerator: []byte("00095"),
		Divisor:   190,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(quotient)
	fmt.Println(stats.Remainder)
	// Output:
	// 0
	// 95
}

// ExampleLongDivision demonstrates driving the state machine digit by
// digit.
func ExampleLongDivision() {
	ld, err := NewLongDivision(7)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, c := range []byte("65") {
		if b, ok := ld.Step(c - '0'); ok {
			fmt.Printf("%c", b)
		}
	}
	if b, ok := ld.Finalize(); ok {
		fmt.Printf("%c", b)
	}
	fmt.Println()
	fmt.Println(ld.Remainder())
	// Output:
	// 9
	// 2
}
