// Package progress defines the progress reporting types shared by the
// division engines, the orchestration layer, and the user interfaces.
// Engines publish ProgressUpdate values; observers fan them out to
// channels, logs, or nothing at all.
package progress
