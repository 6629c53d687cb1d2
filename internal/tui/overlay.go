package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/divcalc/internal/ui"
)

// renderHelpOverlay renders a centered help box over a blank backdrop.
// The box shrinks with the terminal so it never clips.
func renderHelpOverlay(width, height int, km KeyMap) string {
	boxWidth := min(70, width-4)
	boxHeight := min(25, height-4)

	t := ui.GetCurrentTUITheme()
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2).
		Width(boxWidth - 2).
		MaxHeight(boxHeight).
		Render(buildHelpContent(km))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func buildHelpContent(km KeyMap) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DivCalc Monitor Help"))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, binding := range []key.Binding{
		km.Quit, km.Pause, km.Reset, km.Help,
		km.Up, km.Down, km.PageUp, km.PageDown,
	} {
		h := binding.Help()
		b.WriteString(formatHelpLine(h.Key, h.Desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Panels"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("Run Journal", "configuration, progress and results of the division"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("Metrics", "heap, GC, throughput and digit counters"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("Activity", "CPU, memory and I/O history with overall progress"))
	b.WriteString("\n\n")

	b.WriteString(footerDescStyle.Render("Pausing stops the display refresh, not the division."))
	b.WriteString("\n")
	b.WriteString(footerDescStyle.Render("Press ? or esc to close this help."))

	return b.String()
}

func formatHelpLine(keyText, desc string) string {
	return "  " + footerKeyStyle.Width(15).Render(keyText) + footerDescStyle.Render(desc)
}
