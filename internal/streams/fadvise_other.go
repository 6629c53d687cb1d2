//go:build !linux

package streams

import "os"

// adviseSequential is a no-op on platforms without posix_fadvise.
func adviseSequential(*os.File) {}
