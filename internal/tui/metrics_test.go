package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/agbru/divcalc/internal/division"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()

	msg := MemStatsMsg{
		Alloc:        1024 * 1024 * 50, // 50 MB
		HeapSys:      1024 * 1024 * 80,
		NumGC:        10,
		PauseTotalNs: 1_500_000,
		NumGoroutine: 8,
	}
	m.UpdateMemStats(msg)

	if m.alloc != msg.Alloc {
		t.Errorf("expected alloc %d, got %d", msg.Alloc, m.alloc)
	}
	if m.heapSys != msg.HeapSys {
		t.Errorf("expected heapSys %d, got %d", msg.HeapSys, m.heapSys)
	}
	if m.numGC != msg.NumGC {
		t.Errorf("expected numGC %d, got %d", msg.NumGC, m.numGC)
	}
	if m.numGoroutine != msg.NumGoroutine {
		t.Errorf("expected numGoroutine %d, got %d", msg.NumGoroutine, m.numGoroutine)
	}
}

func TestMetricsModel_UpdateThroughput(t *testing.T) {
	m := NewMetricsModel()
	// Force the lastUpdate back in time to ensure dt > 0.05
	m.lastUpdate = time.Now().Add(-1 * time.Second)

	m.UpdateThroughput(1 << 20)
	if m.Throughput() <= 0 {
		t.Error("expected positive throughput after a byte advance")
	}
	if m.lastBytes != 1<<20 {
		t.Errorf("expected lastBytes %d, got %d", 1<<20, m.lastBytes)
	}
}

func TestMetricsModel_UpdateThroughput_Smoothing(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-1 * time.Second)

	// First update: 1 MB over ~1s → rate ≈ 1 MB/s
	m.UpdateThroughput(1 << 20)
	firstRate := m.Throughput()

	if firstRate <= 0 {
		t.Fatal("precondition: first rate should be positive")
	}

	// Second update: another 1 MB over ~0.5s → instant rate ≈ 2 MB/s
	// Smoothed: 0.7*old + 0.3*instant, so the rate must move but not jump
	m.lastUpdate = time.Now().Add(-500 * time.Millisecond)
	m.UpdateThroughput(2 << 20)

	if m.Throughput() <= 0 {
		t.Error("expected positive throughput after second update")
	}
	if m.Throughput() == firstRate {
		t.Error("expected throughput to change after second update with different rate")
	}
}

func TestMetricsModel_UpdateThroughput_TooFast(t *testing.T) {
	m := NewMetricsModel()
	// lastUpdate is now, so dt < 0.05 — should not update the rate
	m.UpdateThroughput(1 << 20)

	if m.Throughput() != 0 {
		t.Errorf("expected throughput to remain 0 when dt < 0.05, got %f", m.Throughput())
	}
}

func TestMetricsModel_UpdateThroughput_NoForward(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-1 * time.Second)
	m.lastBytes = 1 << 20

	// Same byte position (db = 0) should not update the rate
	m.UpdateThroughput(1 << 20)

	if m.Throughput() != 0 {
		t.Errorf("expected throughput to remain 0 without a byte advance, got %f", m.Throughput())
	}
}

func TestMetricsModel_UpdateThroughput_BackwardPosition(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-1 * time.Second)
	m.lastBytes = 2 << 20

	// In verify mode the engines interleave byte positions; a trailing
	// engine reporting a lower position must not produce a negative rate.
	m.UpdateThroughput(1 << 20)

	if m.Throughput() != 0 {
		t.Errorf("expected throughput to ignore a backward position, got %f", m.Throughput())
	}
}

func TestMetricsModel_UpdateResult(t *testing.T) {
	m := NewMetricsModel()

	stats := division.Result{
		DigitsRead:    1000,
		BytesRead:     1002,
		DigitsWritten: 998,
		Remainder:     57,
	}
	m.UpdateResult(stats)

	if !m.hasResult {
		t.Error("expected hasResult after UpdateResult")
	}
	if m.stats.Remainder != 57 {
		t.Errorf("expected remainder 57, got %d", m.stats.Remainder)
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(50, 7)

	m.UpdateMemStats(MemStatsMsg{
		Alloc:        1024 * 1024 * 50,
		HeapSys:      1024 * 1024 * 80,
		NumGC:        10,
		NumGoroutine: 8,
	})

	view := m.View()
	if !strings.Contains(view, "Heap") {
		t.Error("expected view to contain 'Heap' label")
	}
	if !strings.Contains(view, "GC") {
		t.Error("expected view to contain 'GC' label")
	}
	if !strings.Contains(view, "Throughput") {
		t.Error("expected view to contain 'Throughput' label")
	}
	if !strings.Contains(view, "Goroutines") {
		t.Error("expected view to contain 'Goroutines' label")
	}
}

func TestMetricsModel_View_WithResult(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(50, 9)
	m.UpdateResult(division.Result{
		DigitsRead:    20,
		DigitsWritten: 18,
		Remainder:     123,
	})
	m.UpdateRSS(1024 * 1024 * 30)

	view := m.View()
	for _, label := range []string{"Digits in", "Digits out", "Remainder", "RSS"} {
		if !strings.Contains(view, label) {
			t.Errorf("expected view to contain %q after a result", label)
		}
	}
	if !strings.Contains(view, "123") {
		t.Error("expected view to contain the remainder value")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    uint64
		contains string
	}{
		{"bytes", 512, "512 B"},
		{"kilobytes", 1024 * 5, "5.0 KB"},
		{"megabytes", 1024 * 1024 * 50, "50.0 MB"},
		{"gigabytes", 1024 * 1024 * 1024 * 2, "2.0 GB"},
		{"zero", 0, "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatBytes(tt.input)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("formatBytes(%d) = %q, want to contain %q", tt.input, got, tt.contains)
			}
		})
	}
}

func TestFormatBytes_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		input    uint64
		contains string
	}{
		{"exact_1KB", 1024, "1.0 KB"},
		{"exact_1MB", 1024 * 1024, "1.0 MB"},
		{"exact_1GB", 1024 * 1024 * 1024, "1.0 GB"},
		{"just_below_KB", 1023, "1023 B"},
		{"just_below_MB", 1024*1024 - 1, "KB"},
		{"just_below_GB", 1024*1024*1024 - 1, "MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatBytes(tt.input)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("formatBytes(%d) = %q, want to contain %q", tt.input, got, tt.contains)
			}
		})
	}
}

func TestMetricsModel_UpdateThroughput_RapidUpdates(t *testing.T) {
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-1 * time.Second)

	// 1000 rapid updates with an advancing byte position
	for i := 0; i < 1000; i++ {
		m.lastUpdate = time.Now().Add(-100 * time.Millisecond)
		m.UpdateThroughput(int64(i+1) * 4096)
	}

	if m.Throughput() <= 0 {
		t.Error("expected positive throughput after many updates")
	}
	if m.lastBytes == 0 {
		t.Error("expected non-zero lastBytes after many updates")
	}
}

func TestMetricsModel_SetSize(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(50, 20)

	if m.width != 50 {
		t.Errorf("expected width 50, got %d", m.width)
	}
	if m.height != 20 {
		t.Errorf("expected height 20, got %d", m.height)
	}
}

func TestFormatMetricCol(t *testing.T) {
	col := formatMetricCol("Throughput:", "50.0 MB/s", 30)
	if !strings.Contains(col, "Throughput") {
		t.Error("expected column to contain label")
	}
	if !strings.Contains(col, "50.0 MB/s") {
		t.Error("expected column to contain value")
	}
}
