// This file provides type aliases for progress types that were moved to
// the internal/progress package. These aliases maintain backward compatibility
// so that consumers of the division package can continue to reference these
// types without changing their imports.

package division

import "github.com/agbru/divcalc/internal/progress"

// Type aliases for types moved to internal/progress.
type (
	// ProgressUpdate is a type alias for progress.ProgressUpdate.
	ProgressUpdate = progress.ProgressUpdate

	// ProgressCallback is a type alias for progress.ProgressCallback.
	ProgressCallback = progress.ProgressCallback

	// ChannelObserver is a type alias for progress.ChannelObserver.
	ChannelObserver = progress.ChannelObserver
)

// NewChannelObserver creates a new channel observer.
var NewChannelObserver = progress.NewChannelObserver

// IndeterminateValue mirrors progress.IndeterminateValue for callers that
// only import this package.
const IndeterminateValue = progress.IndeterminateValue
