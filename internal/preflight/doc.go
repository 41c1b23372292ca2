// Package preflight provides readiness checks for the external tools and
// filesystem paths cuesplit depends on.
//
// The "cuesplit check" command prints every result, and "cuesplit scan" runs
// the same checks before taking the run lock so a missing ffprobe or an
// unwritable state directory is reported before any album is touched.
//
// Each check is gated by its config toggle; disabled features are skipped or
// reported as optional.
package preflight
