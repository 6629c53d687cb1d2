package streams

import (
	"bufio"
	"io"

	apperrors "github.com/agbru/divcalc/internal/errors"
)

// DefaultBufferSize is the buffer size used by NewDigitReader and
// NewQuotientWriter when the caller does not supply one.
const DefaultBufferSize = 64 * 1024

// Parse states for the numerator grammar.
const (
	stateLeading  = iota // optional whitespace before the first digit
	stateDigits          // inside the digit run
	stateTrailing        // optional whitespace after the digit run
)

// DigitReader decodes a numerator stream into decimal digit values.
//
// The accepted grammar is optional ASCII whitespace, a run of ASCII
// digits, optional ASCII whitespace, end of stream. In strict mode no
// whitespace is accepted and the stream must consist of digits only. Any
// byte that violates the grammar surfaces as an
// apperrors.InputSyntaxError carrying the zero-based offset of the
// offending byte.
//
// ReadDigit returns digit values 0 through 9, not ASCII codes. An empty
// stream is valid and yields io.EOF on the first call; the caller decides
// how to render an empty numerator.
type DigitReader struct {
	br     *bufio.Reader
	strict bool

	state    int
	offset   int64 // bytes consumed from the underlying reader
	wsOffset int64 // offset of the first trailing whitespace byte
	wsByte   byte
	err      error // sticky
}

// NewDigitReader returns a DigitReader over r using DefaultBufferSize.
func NewDigitReader(r io.Reader, strict bool) *DigitReader {
	return NewDigitReaderSize(r, DefaultBufferSize, strict)
}

// NewDigitReaderSize is like NewDigitReader with an explicit buffer size.
// Non-positive sizes fall back to DefaultBufferSize.
func NewDigitReaderSize(r io.Reader, size int, strict bool) *DigitReader {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &DigitReader{br: bufio.NewReaderSize(r, size), strict: strict}
}

// ReadDigit returns the next digit value of the numerator, or io.EOF once
// the stream is exhausted. After any error the reader is poisoned and
// every subsequent call returns that same error.
func (d *DigitReader) ReadDigit() (byte, error) {
	if d.err != nil {
		return 0, d.err
	}
	for {
		b, err := d.br.ReadByte()
		if err != nil {
			d.err = err
			return 0, d.err
		}
		pos := d.offset
		d.offset++

		switch {
		case b >= '0' && b <= '9':
			if d.state == stateTrailing {
				// The digit run resumed, so the whitespace that
				// preceded it was interior and therefore invalid.
				d.err = apperrors.InputSyntaxError{Offset: d.wsOffset, Byte: d.wsByte}
				return 0, d.err
			}
			d.state = stateDigits
			return b - '0', nil
		case !d.strict && isSpace(b):
			if d.state == stateDigits {
				d.state = stateTrailing
				d.wsOffset = pos
				d.wsByte = b
			}
		default:
			d.err = apperrors.InputSyntaxError{Offset: pos, Byte: b}
			return 0, d.err
		}
	}
}

// BytesConsumed returns the number of bytes consumed from the underlying
// reader so far. Progress reporting compares it against the input size.
func (d *DigitReader) BytesConsumed() int64 {
	return d.offset
}

// isSpace reports whether b is ASCII whitespace.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
