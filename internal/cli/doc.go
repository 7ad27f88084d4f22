// Package cli implements the command-line interface for mma-odds.
//
// The cli package provides the Cobra-based CLI for running one extraction:
// it loads configuration, starts the browser-backed fetcher, runs the
// pipeline, and writes the CSV and JSON outputs. The exit code reports
// whether the run produced any fighter records.
package cli
