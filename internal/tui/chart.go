package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/divcalc/internal/format"
)

// sparklineLabelWidth is the fixed prefix reserved for the label and value
// on each sparkline row. The remaining panel width holds the samples.
const sparklineLabelWidth = 17

// ChartModel displays system activity: CPU and memory sparklines, an input
// throughput history, and the aggregated progress of the running division.
type ChartModel struct {
	cpu *RingBuffer
	mem *RingBuffer
	io  *RingBuffer // input bytes per second

	progress float64 // average progress 0..1, negative while unknown
	eta      time.Duration

	done  bool
	final time.Duration

	width  int
	height int
}

// NewChartModel creates a new activity panel.
func NewChartModel() ChartModel {
	return ChartModel{
		cpu:      NewRingBuffer(60),
		mem:      NewRingBuffer(60),
		io:       NewRingBuffer(120),
		progress: -1,
	}
}

// SetSize updates dimensions and resizes the sample buffers to match the
// renderable width. Braille cells pack two samples per column, so the I/O
// buffer keeps twice as many.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	sw := w - sparklineLabelWidth
	if sw < 8 {
		sw = 8
	}
	c.cpu.Resize(sw)
	c.mem.Resize(sw)
	c.io.Resize(2 * sw)
}

// UpdateSysStats records a CPU and memory usage sample (percentages).
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpu.Push(cpuPercent)
	c.mem.Push(memPercent)
}

// AddThroughput records an input rate sample in bytes per second.
func (c *ChartModel) AddThroughput(bytesPerSec float64) {
	c.io.Push(bytesPerSec)
}

// SetProgress updates the aggregated progress and remaining time estimate.
func (c *ChartModel) SetProgress(avg float64, eta time.Duration) {
	c.progress = avg
	c.eta = eta
}

// SetDone freezes the panel with the final run duration.
func (c *ChartModel) SetDone(d time.Duration) {
	c.done = true
	c.final = d
}

// Reset clears all samples for a fresh run.
func (c *ChartModel) Reset() {
	c.cpu.Reset()
	c.mem.Reset()
	c.io.Reset()
	c.progress = -1
	c.eta = 0
	c.done = false
	c.final = 0
}

// View renders the activity panel.
func (c ChartModel) View() string {
	contentH := c.height - 2
	lines := make([]string, 0, contentH)

	lines = append(lines, titleStyle.Render(" Activity"))
	lines = append(lines, c.renderSparkRow("CPU", c.cpu, cpuSparklineStyle))
	lines = append(lines, c.renderSparkRow("MEM", c.mem, memSparklineStyle))

	// The I/O history needs at least a label row plus two braille rows to
	// be readable. Smaller panels drop it and keep the progress line.
	ioRows := contentH - len(lines) - 1
	if ioRows >= 3 {
		lines = append(lines, c.renderIOSection(ioRows)...)
	}

	lines = append(lines, c.renderProgressLine())

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(strings.Join(lines, "\n"))
}

func (c ChartModel) renderSparkRow(label string, buf *RingBuffer, style lipgloss.Style) string {
	return fmt.Sprintf(" %s %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-4s", label)),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", buf.Last())),
		style.Render(RenderSparkline(buf.Slice())))
}

// renderIOSection renders the throughput label plus a braille history chart.
// Samples are normalized against the observed peak since braille rows plot
// values on a 0..100 scale.
func (c ChartModel) renderIOSection(rows int) []string {
	samples := c.io.Slice()
	var peak float64
	for _, v := range samples {
		if v > peak {
			peak = v
		}
	}

	label := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render("I/O "),
		metricValueStyle.Render(formatBytes(uint64(c.io.Last()))+"/s"))
	if peak > 0 {
		label += metricLabelStyle.Render("  peak " + formatBytes(uint64(peak)) + "/s")
	}

	out := []string{label}

	scaled := ScaleToPercent(samples)
	chartW := c.width - 4
	if chartW < 8 {
		chartW = 8
	}
	for _, row := range RenderBrailleChart(scaled, chartW, rows-1) {
		out = append(out, " "+ioSparklineStyle.Render(row))
	}
	// Pad when there are no samples yet so the layout does not jump.
	for len(out) < rows {
		out = append(out, "")
	}
	return out
}

func (c ChartModel) renderProgressLine() string {
	if c.done {
		return " " + statusDoneStyle.Render("Done in "+format.FormatExecutionDuration(c.final))
	}
	if c.progress < 0 {
		return " " + metricLabelStyle.Render("streaming, input size unknown")
	}

	p := c.progress
	if p > 1 {
		p = 1
	}
	tail := fmt.Sprintf(" %5.1f%%  ETA %s", p*100, format.FormatETA(c.eta))
	barLen := c.width - 4 - lipgloss.Width(tail)
	if barLen < 8 {
		return " " + strings.TrimSpace(tail)
	}
	filled := int(p * float64(barLen))
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barLen-filled))
	return " " + bar + tail
}
