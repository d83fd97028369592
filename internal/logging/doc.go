// Package logging assembles structured slog loggers and formatting helpers used
// across photojson.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run ID. The package also provides a no-op logger for tests
// and library callers that do not want diagnostics.
//
// Logs default to stderr: stdout is reserved for the catalog document.
package logging
