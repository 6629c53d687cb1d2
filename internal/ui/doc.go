// Package ui provides theme and color support for the presentation layers.
// It defines ANSI color schemes for the CLI reporter and presenter as well as
// the lipgloss palette the dashboard renders with.
//
// The package is a shared dependency for everything that colors output, so
// the division pipeline itself never touches escape codes. NO_COLOR and the
// -no-color flag funnel through InitTheme.
package ui
