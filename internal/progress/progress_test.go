package progress

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/agbru/divcalc/internal/logging"
)

// countingObserver tracks the number of Update calls using an atomic
// counter, making it safe for concurrent use.
type countingObserver struct {
	count atomic.Int64
	last  atomic.Int64 // EngineIndex of the last update
}

func (o *countingObserver) Update(update ProgressUpdate) {
	o.count.Add(1)
	o.last.Store(int64(update.EngineIndex))
}

// TestSubjectNotifyFanOut verifies in-order delivery to all registered
// observers.
func TestSubjectNotifyFanOut(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()
	obs1 := &countingObserver{}
	obs2 := &countingObserver{}
	subject.Register(obs1)
	subject.Register(obs2)
	subject.Register(nil) // must be ignored

	subject.Notify(ProgressUpdate{EngineIndex: 1, Value: 0.5, Bytes: 2048})

	if obs1.count.Load() != 1 || obs2.count.Load() != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", obs1.count.Load(), obs2.count.Load())
	}
}

// TestFreezeSnapshotImmutability verifies that after Freeze(), adding new
// observers does NOT affect the frozen callback. The frozen callback
// should only notify observers that were registered at the time of the
// freeze.
func TestFreezeSnapshotImmutability(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()
	obs1 := &countingObserver{}
	subject.Register(obs1)

	// Freeze with 1 observer
	callback := subject.Freeze(0)

	// Add another observer AFTER freeze
	obs2 := &countingObserver{}
	subject.Register(obs2)

	// Invoke frozen callback
	callback(ProgressUpdate{Value: 0.5})

	// obs1 should have been notified (was in snapshot)
	if obs1.count.Load() != 1 {
		t.Errorf("obs1 should have count 1, got %d", obs1.count.Load())
	}
	// obs2 should NOT have been notified (added after freeze)
	if obs2.count.Load() != 0 {
		t.Errorf("obs2 should have count 0, got %d", obs2.count.Load())
	}
}

// TestFreezeStampsEngineIndex verifies that the frozen callback overrides
// the update's engine index with the bound one.
func TestFreezeStampsEngineIndex(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)

	callback := subject.Freeze(3)
	callback(ProgressUpdate{EngineIndex: 99, Value: 0.25})

	if got := obs.last.Load(); got != 3 {
		t.Errorf("observed EngineIndex = %d, want 3", got)
	}
}

// TestFreezeConcurrentRegister verifies that concurrent Freeze() and
// Register() calls do not cause data races. This test should be run with
// -race.
func TestFreezeConcurrentRegister(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()

	var wg sync.WaitGroup

	// Goroutines registering observers
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obs := &countingObserver{}
			subject.Register(obs)
		}()
	}

	// Goroutines freezing
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cb := subject.Freeze(idx)
			cb(ProgressUpdate{Value: 0.5})
		}(i)
	}

	wg.Wait()
	// If we get here without race detector complaints, the test passes
}

// TestMultipleFrozenCallbacksConcurrent verifies that multiple frozen
// callbacks can be invoked concurrently without data races or lost
// updates.
func TestMultipleFrozenCallbacksConcurrent(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)

	callbacks := make([]ProgressCallback, 10)
	for i := range callbacks {
		callbacks[i] = subject.Freeze(i)
	}

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(fn ProgressCallback) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				fn(ProgressUpdate{Value: float64(j) / 1000.0})
			}
		}(cb)
	}
	wg.Wait()

	expected := int64(10 * 1000)
	if obs.count.Load() != expected {
		t.Errorf("expected %d updates, got %d", expected, obs.count.Load())
	}
}

// TestChannelObserverForwards verifies delivery into a buffered channel.
func TestChannelObserverForwards(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	obs := NewChannelObserver(ch)

	obs.Update(ProgressUpdate{EngineIndex: 2, Value: 0.75, Bytes: 4096})

	select {
	case got := <-ch:
		if got.EngineIndex != 2 || got.Value != 0.75 || got.Bytes != 4096 {
			t.Errorf("received %+v", got)
		}
	default:
		t.Fatal("no update forwarded")
	}
}

// TestChannelObserverDropsWhenFull verifies the non-blocking send.
func TestChannelObserverDropsWhenFull(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	obs := NewChannelObserver(ch)

	obs.Update(ProgressUpdate{Value: 0.1})
	// The channel is now full; this must not block.
	obs.Update(ProgressUpdate{Value: 0.2})

	got := <-ch
	if got.Value != 0.1 {
		t.Errorf("kept update Value = %f, want 0.1 (first wins)", got.Value)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected second update %+v", extra)
	default:
	}
}

// TestLoggingObserver verifies debug output and nil-logger tolerance.
func TestLoggingObserver(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, "test")
	obs := NewLoggingObserver(logger)

	obs.Update(ProgressUpdate{EngineIndex: 0, Value: 0.5, Bytes: 4096})

	out := buf.String()
	if !strings.Contains(out, "division progress") {
		t.Errorf("log output missing message: %q", out)
	}
	if !strings.Contains(out, "4096") {
		t.Errorf("log output missing byte count: %q", out)
	}

	// A nil logger must be tolerated.
	NewLoggingObserver(nil).Update(ProgressUpdate{Value: 1.0})
}

// TestIndeterminate verifies the sentinel fraction.
func TestIndeterminate(t *testing.T) {
	t.Parallel()
	if !(ProgressUpdate{Value: IndeterminateValue}).Indeterminate() {
		t.Error("IndeterminateValue should be indeterminate")
	}
	if (ProgressUpdate{Value: 0.0}).Indeterminate() {
		t.Error("zero progress should not be indeterminate")
	}
}

// TestNoOpObserver verifies the discard observer is callable.
func TestNoOpObserver(t *testing.T) {
	t.Parallel()
	NewNoOpObserver().Update(ProgressUpdate{Value: 0.5})
}
