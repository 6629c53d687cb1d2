package division

import "math"

// ─────────────────────────────────────────────────────────────────────────────
// Divisor Domain Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MaxDivisor is the largest supported divisor.
	//
	// The running remainder is kept strictly below the divisor d, so the
	// per-digit update r*10 + digit is bounded by 10*d - 1. Capping d at a
	// tenth of the uint64 range guarantees that bound never wraps, which
	// keeps the hot loop free of overflow checks.
	MaxDivisor uint64 = math.MaxUint64 / 10

	// DefaultDivisor is the divisor used when none is configured.
	DefaultDivisor uint64 = 190
)

// ─────────────────────────────────────────────────────────────────────────────
// Streaming Pass Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// CancelCheckInterval is the number of numerator digits processed
	// between context polls in the streaming pass.
	//
	// Polling a context costs an atomic load and a channel check; doing it
	// per digit roughly doubles the cost of the hot loop. At 4096 digits
	// the overhead is unmeasurable while cancellation latency stays in the
	// microsecond range on current hardware.
	CancelCheckInterval = 4096

	// ProgressReportInterval is the number of numerator digits processed
	// between progress callbacks.
	//
	// Progress consumers repaint terminals or update gauges; feeding them
	// more often than every 64Ki digits only burns cycles on updates that
	// are never displayed.
	ProgressReportInterval = 65536
)
