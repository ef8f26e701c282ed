// Package main hosts the Splice CLI entrypoint and command graph.
//
// The Cobra-based command tree drives a single lifecycle controller: an
// interactive session that maps typed actions onto controller methods, an
// unattended batch export, and maintenance commands for the recent projects
// list, the autorecovery slot and the configuration file. Configuration and
// logging are resolved once in the command context so subcommands only wire
// collaborators.
package main
