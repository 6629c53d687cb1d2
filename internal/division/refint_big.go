//go:build !gmp

package division

import "math/big"

// ReferenceBackend names the big-integer library compiled into
// ReferenceEngine. Builds with the gmp tag substitute the GMP binding.
const ReferenceBackend = "math/big"

// refInt is the big-integer type behind ReferenceEngine. Only the API
// surface shared by math/big and the GMP binding may be used through it:
// SetString, QuoRem, Uint64, and String.
type refInt = big.Int

// newRefInt allocates a reference integer holding x.
func newRefInt(x int64) *refInt { return big.NewInt(x) }
