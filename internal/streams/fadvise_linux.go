//go:build linux

package streams

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential hints the kernel that f will be read once, front to
// back, which enlarges readahead for large numerator files. The hint is
// best effort; errors are ignored.
func adviseSequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
