// Package config loads, normalizes, and validates photojson configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PHOTOJSON_LOG_LEVEL. The Config type centralizes every knob the catalog
// pipeline and CLI need so palette, output, and logging settings are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical method names, and clear validation errors.
package config
