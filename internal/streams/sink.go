package streams

import (
	"bufio"
	"io"
)

// QuotientWriter is a buffered sink for quotient digits. It counts the
// digit bytes written, which the surrounding layers report as the
// quotient length. Newline and Flush manage presentation framing without
// affecting the digit count.
type QuotientWriter struct {
	bw     *bufio.Writer
	digits int64
}

// NewQuotientWriter returns a QuotientWriter over w using
// DefaultBufferSize.
func NewQuotientWriter(w io.Writer) *QuotientWriter {
	return NewQuotientWriterSize(w, DefaultBufferSize)
}

// NewQuotientWriterSize is like NewQuotientWriter with an explicit buffer
// size. Non-positive sizes fall back to DefaultBufferSize.
func NewQuotientWriterSize(w io.Writer, size int) *QuotientWriter {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &QuotientWriter{bw: bufio.NewWriterSize(w, size)}
}

// WriteByte appends one quotient digit.
func (q *QuotientWriter) WriteByte(b byte) error {
	if err := q.bw.WriteByte(b); err != nil {
		return err
	}
	q.digits++
	return nil
}

// Newline terminates the quotient line. The newline is not counted as a
// quotient digit.
func (q *QuotientWriter) Newline() error {
	return q.bw.WriteByte('\n')
}

// Flush drains buffered output to the underlying writer.
func (q *QuotientWriter) Flush() error {
	return q.bw.Flush()
}

// DigitsWritten returns the number of quotient digits written so far.
func (q *QuotientWriter) DigitsWritten() int64 {
	return q.digits
}

// Compile-time interface compliance check.
var _ io.ByteWriter = (*QuotientWriter)(nil)
