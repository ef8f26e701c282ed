// Package preflight provides readiness checks for the filesystem paths that
// Splice depends on.
//
// The CLI runs RunAll before starting an interactive session and from
// "splice recovery status". A failing data directory check means the
// autorecovery slot cannot be written, so the session runs with recovery
// disabled rather than failing every tick.
package preflight
