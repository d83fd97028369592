// Package main hosts the photojson CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, applies flag overrides,
// builds a run-scoped logger, and hands the actual work to the internal
// catalog and document packages. Standard output carries only the JSON
// document; diagnostics, progress and summaries go to standard error.
package main
