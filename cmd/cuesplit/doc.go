// Package main hosts the cuesplit CLI entrypoint and command graph.
//
// The Cobra-based command tree plans single CUE sheets ("plan", "embedded"),
// scans whole libraries ("scan"), inspects the plan journal, scaffolds
// configuration, and runs environment checks. It centralizes configuration
// resolution, output format selection and structured logging setup so
// subcommands can focus on their own flags.
//
// Keep this package lean: planning logic lives in internal/splitplan and its
// helpers; commands only wire them together and render results.
package main
