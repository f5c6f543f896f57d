// Package logging builds the slog loggers used across the repository.
//
// Console output is for interactive runs; json is for log shippers. The
// helpers keep attribute construction uniform so run events stay greppable.
package logging
