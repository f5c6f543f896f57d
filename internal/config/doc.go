// Package config loads, normalizes, and validates the TOML configuration.
//
// Load resolves the config path (explicit flag, then the user config dir,
// then a project-local crosslist.toml), decodes on top of Default(), expands
// every path field, and validates cross-field consistency before anything
// else runs. Components receive the typed Config; nothing re-reads the file.
package config
