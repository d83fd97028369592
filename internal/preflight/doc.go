// Package preflight provides readiness checks for the filesystem paths a
// catalog run touches.
//
// The CLI "photojson check" command prints every result as a table, and
// "photojson generate" runs the same checks and logs failures before it
// starts walking. Checks never modify the filesystem.
package preflight
