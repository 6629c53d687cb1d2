// Package division implements streaming decimal long division: the floor
// quotient of an arbitrarily long decimal numerator by a machine-word
// divisor, computed digit by digit in constant space.
//
// The package is layered. LongDivision is the pure per-digit state
// machine: it consumes numerator digit values and produces at most one
// ASCII quotient digit per step, suppressing the leading zero run. Divider
// drives the state machine over a DigitSource and an io.ByteWriter with
// cancellation and progress reporting. The Engine implementations wrap a
// whole division into a single call that returns the quotient string:
// StreamingEngine runs the state machine, ReferenceEngine recomputes the
// quotient with a big-integer library so the two can be compared.
//
// The only sizing constraint is the divisor bound MaxDivisor, which keeps
// the per-digit remainder update inside uint64 without overflow checks.
// Numerator length is unbounded.
package division
