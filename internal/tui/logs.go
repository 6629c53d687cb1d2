package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/divcalc/internal/config"
	"github.com/agbru/divcalc/internal/format"
	"github.com/agbru/divcalc/internal/orchestration"
)

// progressLogStep is the minimum fraction advance between two journal
// entries for the same engine. Keeps the journal readable on fast runs.
const progressLogStep = 0.05

// progressLogBytes is the byte advance between journal entries when the
// input size is unknown and no fraction is available.
const progressLogBytes = 8 << 20

// maxLogEntries bounds the journal; the oldest entries are dropped.
const maxLogEntries = 500

// logEntry is one journal line, stored unstyled so the journal can be
// re-rendered at any width.
type logEntry struct {
	stamp time.Time
	tag   string
	text  string
	style lipgloss.Style
}

// LogsModel is the scrolling run journal on the left of the dashboard.
type LogsModel struct {
	vp          viewport.Model
	entries     []logEntry
	engineNames []string
	lastLogged  []float64
	lastBytes   []int64
	outputPath  string
	width       int
	height      int
	follow      bool
}

// NewLogsModel creates the journal for the given engines.
func NewLogsModel(engineNames []string) LogsModel {
	l := LogsModel{
		vp:          viewport.New(0, 0),
		engineNames: engineNames,
		follow:      true,
	}
	l.armThrottles()
	return l
}

func (l *LogsModel) armThrottles() {
	l.lastLogged = make([]float64, len(l.engineNames))
	l.lastBytes = make([]int64, len(l.engineNames))
	for i := range l.lastLogged {
		l.lastLogged[i] = -1
	}
}

// AddExecutionConfig records the run parameters at the top of the journal.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.outputPath = cfg.OutputFile
	l.add("config", fmt.Sprintf("dividing %s by %d", cfg.InputFile, cfg.Divisor), logProgressStyle)

	buffer := "auto"
	if cfg.BufferSize > 0 {
		buffer = format.FormatBytes(uint64(cfg.BufferSize))
	}
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	l.add("config", fmt.Sprintf("output %s, buffer %s, timeout %s, strict=%t, verify=%t",
		cfg.OutputFile, buffer, timeout, cfg.Strict, cfg.Verify), logProgressStyle)
}

// AddProgressEntry records a throttled progress line for the reporting
// engine. Determinate updates log every progressLogStep of advance;
// unknown-size streams log every progressLogBytes instead.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	idx := msg.EngineIndex
	if idx < 0 || idx >= len(l.engineNames) {
		return
	}

	if msg.Value < 0 {
		if msg.Bytes-l.lastBytes[idx] < progressLogBytes {
			return
		}
		l.lastBytes[idx] = msg.Bytes
		l.add(l.engineNames[idx], fmt.Sprintf("%s read", formatBytes(uint64(msg.Bytes))), logProgressStyle)
		return
	}

	if msg.Value-l.lastLogged[idx] < progressLogStep && msg.Value < 1.0 {
		return
	}
	if msg.Value >= 1.0 && l.lastLogged[idx] >= 1.0 {
		return
	}
	l.lastLogged[idx] = msg.Value
	l.add(l.engineNames[idx], fmt.Sprintf("%.1f%% (%s)", msg.Value*100, formatBytes(uint64(msg.Bytes))), logProgressStyle)
}

// AddResults records the per-engine outcomes of a verify run plus the
// agreement verdict.
func (l *LogsModel) AddResults(results []orchestration.DivisionResult) {
	var reference string
	haveReference := false
	consistent := true

	for _, r := range results {
		if r.Err != nil {
			l.add(r.Name, fmt.Sprintf("FAILED: %v", r.Err), logErrorStyle)
			continue
		}
		l.add(r.Name, fmt.Sprintf("%s  OK", format.FormatExecutionDuration(r.Duration)), logSuccessStyle)
		if !haveReference {
			reference = r.Quotient
			haveReference = true
		} else if r.Quotient != reference {
			consistent = false
		}
	}

	if !haveReference {
		l.add("verify", "no engine completed the division", logErrorStyle)
		return
	}
	if len(results) > 1 {
		if consistent {
			l.add("verify", "all engine quotients agree", logSuccessStyle)
		} else {
			l.add("verify", "QUOTIENT MISMATCH between engines", logErrorStyle)
		}
	}
}

// AddFinalResult records the outcome of a successful run.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	res := msg.Result
	if res.Quotient != "" {
		digits := len(res.Quotient)
		l.add("result", fmt.Sprintf("N / %d = %s (%s digits)",
			msg.Opts.Divisor, abbreviate(res.Quotient, 48),
			format.FormatNumberString(fmt.Sprintf("%d", digits))), logSuccessStyle)
	} else {
		l.add("result", fmt.Sprintf("read %s digits, wrote %s digits, remainder %s",
			format.FormatNumberString(fmt.Sprintf("%d", res.Stats.DigitsRead)),
			format.FormatNumberString(fmt.Sprintf("%d", res.Stats.DigitsWritten)),
			format.FormatNumberString(fmt.Sprintf("%d", res.Stats.Remainder))), logSuccessStyle)
		l.add("result", fmt.Sprintf("quotient streamed to %s", l.outputPath), logSuccessStyle)
	}
	l.add("result", fmt.Sprintf("completed in %s", format.FormatExecutionDuration(res.Duration)), logSuccessStyle)
}

// AddError records a run failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add("error", fmt.Sprintf("%v after %s", msg.Err, format.FormatExecutionDuration(msg.Duration)), logErrorStyle)
}

// Reset clears the journal for a restarted run.
func (l *LogsModel) Reset() {
	l.entries = l.entries[:0]
	l.armThrottles()
	l.follow = true
	l.add("config", "run restarted", logProgressStyle)
}

// Update handles the scroll keys forwarded by the root model.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		l.scrollBy(-1)
	case "down", "j":
		l.scrollBy(1)
	case "pgup":
		l.scrollBy(-l.vp.Height)
	case "pgdown":
		l.scrollBy(l.vp.Height)
	}
}

func (l *LogsModel) scrollBy(delta int) {
	l.vp.SetYOffset(l.vp.YOffset + delta)
	// Stick to the tail only while the user is at the bottom.
	l.follow = l.vp.AtBottom()
}

// SetSize updates the outer panel dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.vp.Width = w - 2
	l.vp.Height = h - 3
	if l.vp.Height < 1 {
		l.vp.Height = 1
	}
	l.refresh()
}

// add appends a journal entry, dropping the oldest past maxLogEntries.
func (l *LogsModel) add(tag, text string, style lipgloss.Style) {
	l.entries = append(l.entries, logEntry{stamp: time.Now(), tag: tag, text: text, style: style})
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
	l.refresh()
}

// refresh re-renders the journal content at the current width.
func (l *LogsModel) refresh() {
	avail := l.vp.Width - 21
	if avail < 10 {
		avail = 10
	}
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = fmt.Sprintf(" %s %s %s",
			logTimeStyle.Render(e.stamp.Format("15:04:05")),
			logEngineStyle.Render(fmt.Sprintf("%-9s", e.tag)),
			e.style.Render(truncateString(e.text, avail)),
		)
	}
	l.vp.SetContent(strings.Join(lines, "\n"))
	if l.follow {
		l.vp.GotoBottom()
	}
}

// renderToHeight renders the journal panel at exactly the given outer
// height, so the left column lines up with the right column.
func (l LogsModel) renderToHeight(h int) string {
	vp := l.vp
	vp.Height = h - 3
	if vp.Height < 1 {
		vp.Height = 1
	}
	if l.follow {
		vp.GotoBottom()
	}
	body := titleStyle.Render(" Run Journal") + "\n" + vp.View()
	return panelStyle.Width(l.width - 2).Height(h - 2).Render(body)
}

// truncateString truncates a string to maxLen characters, adding "..."
// when truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// abbreviate keeps the head and tail of a long value with an ellipsis in
// the middle, so both ends of a large quotient stay visible.
func abbreviate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	half := (maxLen - 3) / 2
	return s[:half] + "..." + s[len(s)-half:]
}
