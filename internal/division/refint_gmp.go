//go:build gmp

package division

import "github.com/ncw/gmp"

// ReferenceBackend names the big-integer library compiled into
// ReferenceEngine. The gmp tag selects the GMP binding, which parses and
// divides very long numerators considerably faster than math/big at the
// cost of cgo.
const ReferenceBackend = "gmp"

// refInt is the big-integer type behind ReferenceEngine. Only the API
// surface shared by math/big and the GMP binding may be used through it:
// SetString, QuoRem, Uint64, and String.
type refInt = gmp.Int

// newRefInt allocates a reference integer holding x.
func newRefInt(x int64) *refInt { return gmp.NewInt(x) }
