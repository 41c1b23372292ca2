package preflight

import (
	"path/filepath"
	"strings"

	"cuesplit/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes the checks that apply to cfg. libraryRoot is checked for
// read access when non-empty.
func RunAll(cfg *config.Config, libraryRoot string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir, true))
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, true))
	}
	if cfg.Journal.Enabled {
		results = append(results, CheckDirectoryAccess("Journal directory", filepath.Dir(cfg.Journal.Path), true))
	}
	if strings.TrimSpace(libraryRoot) != "" {
		results = append(results, CheckDirectoryAccess("Library", libraryRoot, false))
	}
	results = append(results, CheckBinary(
		"FFprobe",
		cfg.FFprobeBinary(),
		"required to read embedded cue sheets",
		!cfg.Scan.ProbeEmbedded,
	))
	return results
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
