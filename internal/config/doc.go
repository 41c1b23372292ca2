// Package config loads, normalizes, and validates cuesplit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// planner, scanner, journal, and CLI need so the locator's extension rules and
// the encoding detector's confidence floor are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lowercase dotted extensions, canonical log formats, and
// clear validation errors.
package config
