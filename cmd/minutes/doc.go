// Package main hosts the minutes CLI entrypoint and command graph.
//
// The Cobra-based command tree covers transcript processing, stored
// transcript and action-item management, CSV export, stats, connectivity
// checks, notification testing, and configuration scaffolding. It
// centralizes configuration resolution and store access so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
