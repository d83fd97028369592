package preflight

import (
	"photojson/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for cataloging root with the given config.
// The log file check only runs when a log file is configured.
func RunAll(cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckRoot("Catalog root", root),
		CheckDestination("Destination", cfg.Output.Destination),
	}
	if cfg.Logging.File != "" {
		results = append(results, CheckLogFile("Log file", cfg.Logging.File))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
