package streams

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/agbru/divcalc/internal/errors"
)

// StdStreamName selects os.Stdin or os.Stdout in place of a file path.
const StdStreamName = "-"

// SizeUnknown is reported by OpenInput when the input length cannot be
// determined, as for pipes and terminals.
const SizeUnknown int64 = -1

// OpenInput opens the numerator stream. The empty path and StdStreamName
// resolve to standard input. For regular files the returned size is the
// file length and the kernel is advised of the sequential access pattern;
// otherwise the size is SizeUnknown.
func OpenInput(path string) (io.ReadCloser, int64, error) {
	if path == "" || path == StdStreamName {
		return io.NopCloser(os.Stdin), SizeUnknown, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, apperrors.StreamError{Op: "open", Path: path, Cause: err}
	}
	size := SizeUnknown
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		size = fi.Size()
	}
	adviseSequential(f)
	return f, size, nil
}

// OpenOutput opens the quotient destination. The empty path and
// StdStreamName resolve to standard output, wrapped so that Close does
// not close the process stream.
func OpenOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == StdStreamName {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, apperrors.StreamError{Op: "create", Path: path, Cause: err}
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// ReadCapped reads r to EOF, refusing inputs larger than limit bytes.
// Verify mode materializes the whole numerator for the reference engine,
// so the cap keeps an oversized input from exhausting memory before the
// comparison even starts. Oversized inputs yield a ValidationError naming
// the verify-limit setting; path only labels I/O failures.
func ReadCapped(r io.Reader, path string, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, apperrors.StreamError{Op: "read", Path: path, Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, apperrors.ValidationError{
			Field:   "verify-limit",
			Message: fmt.Sprintf("input exceeds the %d byte verify cap; raise -verify-limit or drop -verify", limit),
		}
	}
	return data, nil
}
