// Package orchestration coordinates division engine execution and aggregates
// results for verification. It decouples business logic from presentation via
// ProgressReporter and ResultPresenter interfaces, and owns the progress
// channel lifecycle shared by the CLI and the dashboard.
package orchestration
