// Package config loads, normalizes, and validates the TOML configuration
// shared by the minutes CLI and daemon.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/minutes/config.toml, then ./minutes.toml, falling back to
// built-in defaults when no file exists. All path fields are expanded to
// absolute paths during normalization so downstream packages never see "~".
package config
