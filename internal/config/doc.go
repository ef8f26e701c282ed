// Package config loads, normalizes, and validates Splice configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SPLICE_DATA_DIR. The Config type centralizes every knob the lifecycle
// controller and CLI need, so the recovery slot, recent-files database, and
// log directory are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
