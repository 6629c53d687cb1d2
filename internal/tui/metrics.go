package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/divcalc/internal/division"
	"github.com/agbru/divcalc/internal/format"
)

// MetricsModel displays runtime memory and throughput metrics.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	processRSS   uint64

	throughput float64 // input bytes per second, smoothed
	lastBytes  int64
	lastUpdate time.Time

	stats     division.Result
	hasResult bool

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		lastUpdate: time.Now(),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates the runtime memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateRSS records the resident set size of the process.
func (m *MetricsModel) UpdateRSS(rss uint64) {
	m.processRSS = rss
}

// UpdateThroughput updates the smoothed input rate from the byte position
// of the furthest engine. Updates closer than 50ms apart are ignored so a
// burst of progress messages cannot distort the rate.
func (m *MetricsModel) UpdateThroughput(bytes int64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	db := bytes - m.lastBytes
	if db > 0 {
		instant := float64(db) / dt
		if m.throughput > 0 {
			m.throughput = 0.7*m.throughput + 0.3*instant
		} else {
			m.throughput = instant
		}
	}
	m.lastBytes = bytes
	m.lastUpdate = now
}

// Throughput returns the smoothed input rate in bytes per second.
func (m *MetricsModel) Throughput() float64 {
	return m.throughput
}

// UpdateResult stores the final pass counters.
func (m *MetricsModel) UpdateResult(stats division.Result) {
	m.stats = stats
	m.hasResult = true
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	// Compact top line: Heap: X / Y | GC: N (Xms)
	heapStr := metricValueStyle.Render(formatBytes(m.alloc) + " / " + formatBytes(m.heapSys))
	gcPauseStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	pipe := metricLabelStyle.Render(" | ")
	topLine := fmt.Sprintf("  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), heapStr,
		pipe,
		metricLabelStyle.Render("GC:"), gcPauseStr)
	rows.WriteString(topLine)

	colWidth := (m.width - 6) / 2

	leftCol := []string{
		formatMetricCol("Throughput:", formatBytes(uint64(m.throughput))+"/s", colWidth),
	}
	rightCol := []string{
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
	}

	if m.hasResult {
		leftCol = append(leftCol,
			formatMetricCol("Digits in:", format.FormatNumberString(fmt.Sprintf("%d", m.stats.DigitsRead)), colWidth),
			formatMetricCol("Remainder:", format.FormatNumberString(fmt.Sprintf("%d", m.stats.Remainder)), colWidth),
		)
		rightCol = append(rightCol,
			formatMetricCol("Digits out:", format.FormatNumberString(fmt.Sprintf("%d", m.stats.DigitsWritten)), colWidth),
			formatMetricCol("RSS:", formatBytes(m.processRSS), colWidth),
		)
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
