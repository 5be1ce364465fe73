// Package cli implements the command-line interface for acbtrack.
//
// The cli package provides the Cobra-based CLI with subcommands for each
// pipeline stage (fetch, resolve, join), a full run, and the dashboard
// server. It builds the run configuration from defaults, environment, and
// flags, and reports join results in text or JSON.
package cli
