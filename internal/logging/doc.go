// Package logging assembles structured slog loggers and formatting helpers used
// across Splice components.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context-aware helpers so load tasks and recovery ticks tag their log
// lines with task identifiers. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
