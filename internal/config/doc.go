// Package config holds the per-run configuration for the pipeline and
// dashboard.
//
// A Config is built once per run from defaults, ACBTRACK_* environment
// variables, and CLI flags, then passed explicitly into each stage. No
// package keeps process-wide mutable settings.
package config
