package ui

// Color accessor functions for the currently active theme.
//
// The accessors keep the classic ANSI color names callers expect while the
// actual escape sequences come from the theme palette, so switching to the
// light, mono, or no-color theme re-tints every call site at once. All
// accessors are safe for concurrent use.

// ColorReset returns the sequence that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the info color of the active theme.
func ColorBlue() string { return GetCurrentTheme().Info }

// ColorCyan returns the primary accent color of the active theme.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the secondary color of the active theme.
func ColorMagenta() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold sequence of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline sequence of the active theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }
