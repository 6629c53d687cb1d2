package streams

import (
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "github.com/agbru/divcalc/internal/errors"
)

// drainDigits reads a DigitReader to its terminating error, returning the
// collected digit values.
func drainDigits(d *DigitReader) ([]byte, error) {
	var digits []byte
	for {
		v, err := d.ReadDigit()
		if err != nil {
			return digits, err
		}
		digits = append(digits, v)
	}
}

// TestDigitReaderValidInputs verifies the accepted numerator grammar.
func TestDigitReaderValidInputs(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name   string
		input  string
		strict bool
		want   []byte
	}{
		{"Plain digits", "190", false, []byte{1, 9, 0}},
		{"Single zero", "0", false, []byte{0}},
		{"Empty stream", "", false, nil},
		{"Leading whitespace", " \t42", false, []byte{4, 2}},
		{"Trailing newline", "42\n", false, []byte{4, 2}},
		{"Trailing CRLF", "42\r\n", false, []byte{4, 2}},
		{"Surrounding whitespace", "\n 42 \n", false, []byte{4, 2}},
		{"Whitespace only", " \n\t", false, nil},
		{"Leading zeros kept", "007", false, []byte{0, 0, 7}},
		{"Strict digits", "190", true, []byte{1, 9, 0}},
		{"Strict empty", "", true, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := NewDigitReader(strings.NewReader(tc.input), tc.strict)
			got, err := drainDigits(d)
			if !errors.Is(err, io.EOF) {
				t.Fatalf("terminating error = %v, want io.EOF", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("digits = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("digit[%d] = %d, want %d", i, got[i], tc.want[i])
				}
			}
		})
	}
}

// TestDigitReaderSyntaxErrors verifies rejection of malformed numerators,
// including the reported offset and byte.
func TestDigitReaderSyntaxErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		input      string
		strict     bool
		wantOffset int64
		wantByte   byte
	}{
		{"Letter inside digits", "12a3", false, 2, 'a'},
		{"Leading punctuation", "+42", false, 0, '+'},
		{"Interior space", "4 2", false, 1, ' '},
		{"Interior newline", "1\n\n2", false, 1, '\n'},
		{"Letter after trailing space", "42 x", false, 3, 'x'},
		{"Non-ASCII byte", "1\x80", false, 1, 0x80},
		{"Strict trailing newline", "42\n", true, 2, '\n'},
		{"Strict leading space", " 42", true, 0, ' '},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := NewDigitReader(strings.NewReader(tc.input), tc.strict)
			_, err := drainDigits(d)
			var synErr apperrors.InputSyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("error = %v, want InputSyntaxError", err)
			}
			if synErr.Offset != tc.wantOffset {
				t.Errorf("Offset = %d, want %d", synErr.Offset, tc.wantOffset)
			}
			if synErr.Byte != tc.wantByte {
				t.Errorf("Byte = %q, want %q", synErr.Byte, tc.wantByte)
			}
		})
	}
}

// TestDigitReaderStickyError verifies that a poisoned reader keeps
// returning the same error.
func TestDigitReaderStickyError(t *testing.T) {
	t.Parallel()
	d := NewDigitReader(strings.NewReader("1a"), false)
	if v, err := d.ReadDigit(); err != nil || v != 1 {
		t.Fatalf("first digit = (%d, %v), want (1, nil)", v, err)
	}
	_, first := d.ReadDigit()
	if first == nil {
		t.Fatal("expected a syntax error, got nil")
	}
	for i := 0; i < 3; i++ {
		if _, err := d.ReadDigit(); !errors.Is(err, first) {
			t.Fatalf("call %d after poisoning returned %v, want %v", i, err, first)
		}
	}
}

// TestDigitReaderBytesConsumed verifies offset accounting.
func TestDigitReaderBytesConsumed(t *testing.T) {
	t.Parallel()
	d := NewDigitReader(strings.NewReader("12\n"), false)

	if _, err := d.ReadDigit(); err != nil {
		t.Fatal(err)
	}
	if got := d.BytesConsumed(); got != 1 {
		t.Errorf("BytesConsumed after one digit = %d, want 1", got)
	}

	if _, err := drainDigits(d); !errors.Is(err, io.EOF) {
		t.Fatalf("drain: %v", err)
	}
	if got := d.BytesConsumed(); got != 3 {
		t.Errorf("BytesConsumed at EOF = %d, want 3", got)
	}
}

// TestNewDigitReaderSizeFallback verifies that non-positive buffer sizes
// still yield a working reader.
func TestNewDigitReaderSizeFallback(t *testing.T) {
	t.Parallel()
	d := NewDigitReaderSize(strings.NewReader("7"), 0, false)
	v, err := d.ReadDigit()
	if err != nil || v != 7 {
		t.Fatalf("ReadDigit = (%d, %v), want (7, nil)", v, err)
	}
}
