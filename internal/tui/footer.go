package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel displays the run status and key bindings on a single line.
type FooterModel struct {
	width  int
	keymap KeyMap
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a new footer.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{keymap: km}
}

// SetWidth updates the footer width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetPaused updates the paused indicator.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetDone marks the run as finished.
func (f *FooterModel) SetDone() {
	f.done = true
}

// SetFailed marks the run as finished with a nonzero exit code.
func (f *FooterModel) SetFailed() {
	f.done = true
	f.failed = true
}

// Reset returns the footer to the running state.
func (f *FooterModel) Reset() {
	f.paused = false
	f.done = false
	f.failed = false
}

// View renders the footer line: status on the left, key hints on the right.
func (f FooterModel) View() string {
	var status string
	switch {
	case f.failed:
		status = statusErrorStyle.Render("● FAILED")
	case f.done:
		status = statusDoneStyle.Render("● DONE")
	case f.paused:
		status = statusPausedStyle.Render("● PAUSED")
	default:
		status = statusRunningStyle.Render("● RUNNING")
	}

	sep := footerDescStyle.Render(" • ")
	hints := []string{
		renderHint(f.keymap.Quit),
		renderHint(f.keymap.Pause),
		renderHint(f.keymap.Reset),
		renderHint(f.keymap.Help),
		footerKeyStyle.Render("↑/↓") + " " + footerDescStyle.Render("scroll"),
	}
	right := strings.Join(hints, sep)

	gap := f.width - lipgloss.Width(status) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Too narrow for hints, keep the status visible.
		return " " + status
	}
	return " " + status + strings.Repeat(" ", gap) + right + " "
}

func renderHint(b key.Binding) string {
	h := b.Help()
	return footerKeyStyle.Render(h.Key) + " " + footerDescStyle.Render(h.Desc)
}
