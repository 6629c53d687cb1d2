package progress

import (
	"sync"

	"github.com/agbru/divcalc/internal/logging"
)

// IndeterminateValue is the Value carried by updates from streams whose
// total size is unknown (e.g. stdin or pipes). Consumers should fall back
// to byte counts when they see it.
const IndeterminateValue = -1.0

// ProgressUpdate reports how far a division engine has advanced through
// its numerator stream.
type ProgressUpdate struct {
	// EngineIndex identifies the reporting engine (0-based).
	EngineIndex int
	// Value is the fraction of input consumed in [0, 1], or
	// IndeterminateValue when the total input size is unknown.
	Value float64
	// Bytes is the number of input bytes consumed so far.
	Bytes int64
}

// Indeterminate reports whether the update carries no usable fraction.
func (u ProgressUpdate) Indeterminate() bool { return u.Value < 0 }

// ProgressCallback receives progress updates from an engine. Callbacks
// must be cheap and must not block; engines invoke them on the hot path.
type ProgressCallback func(update ProgressUpdate)

// ProgressObserver consumes progress updates fanned out by a
// ProgressSubject.
type ProgressObserver interface {
	Update(update ProgressUpdate)
}

// ProgressSubject distributes progress updates to a set of observers.
// Register, Notify, and Freeze are safe for concurrent use.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Notify delivers the update to every registered observer in registration
// order.
func (s *ProgressSubject) Notify(update ProgressUpdate) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(update)
	}
}

// Freeze snapshots the current observer set and returns a callback bound
// to engineIndex. The callback stamps that index on every update and
// notifies only the observers present at freeze time, so it can be handed
// to an engine goroutine without further locking. Observers registered
// after the freeze are not notified by the returned callback.
func (s *ProgressSubject) Freeze(engineIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(update ProgressUpdate) {
		update.EngineIndex = engineIndex
		for _, o := range snapshot {
			o.Update(update)
		}
	}
}

// ChannelObserver forwards updates to a channel without blocking. Updates
// are dropped when the channel is full; progress is advisory and the
// newest update supersedes anything lost.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer forwarding to ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update forwards the update, dropping it if the channel is full.
func (o *ChannelObserver) Update(update ProgressUpdate) {
	select {
	case o.ch <- update:
	default:
	}
}

// LoggingObserver records updates through the application logger at debug
// level.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver creates an observer logging to the given logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Update logs the update.
func (o *LoggingObserver) Update(update ProgressUpdate) {
	if o.logger == nil {
		return
	}
	o.logger.Debug("division progress",
		logging.Int("engine", update.EngineIndex),
		logging.Float64("fraction", update.Value),
		logging.Int64("bytes", update.Bytes),
	)
}

// NoOpObserver discards every update.
type NoOpObserver struct{}

// NewNoOpObserver creates an observer that does nothing.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

// Update discards the update.
func (NoOpObserver) Update(ProgressUpdate) {}
