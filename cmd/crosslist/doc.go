// Package main hosts the crosslist CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into reconciliation
// runs, dry-run plans, ledger maintenance, and configuration scaffolding. It
// centralizes configuration resolution, ledger backend selection, and logger
// setup so subcommands stay declarative; all reconciliation logic lives in
// the internal packages.
package main
