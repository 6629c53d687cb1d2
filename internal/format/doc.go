// Package format provides pure formatting helpers shared by the CLI, the
// REPL, and the TUI: durations, byte quantities, digit-grouped numbers, and
// progress bars with ETA estimation. Functions here perform no I/O.
package format
