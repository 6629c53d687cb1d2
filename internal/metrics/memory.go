package metrics

import (
	"runtime"
	"sync"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// PeakTracker samples memory and keeps the high-water HeapAlloc reading.
// A constant-memory division pass should keep this flat regardless of the
// numerator size, which is exactly what the post-run statistics surface.
type PeakTracker struct {
	mu        sync.Mutex
	collector *MemoryCollector
	peak      uint64
}

// NewPeakTracker creates a tracker with an initial sample already taken.
func NewPeakTracker() *PeakTracker {
	p := &PeakTracker{collector: NewMemoryCollector()}
	p.Sample()
	return p
}

// Sample takes a snapshot, updates the high-water mark, and returns the
// snapshot. Safe for concurrent use.
func (p *PeakTracker) Sample() MemorySnapshot {
	snap := p.collector.Snapshot()
	p.mu.Lock()
	if snap.HeapAlloc > p.peak {
		p.peak = snap.HeapAlloc
	}
	p.mu.Unlock()
	return snap
}

// Peak returns the largest HeapAlloc seen so far.
func (p *PeakTracker) Peak() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak
}
