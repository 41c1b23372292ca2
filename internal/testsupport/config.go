package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cuesplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Journal.Path = filepath.Join(base, "state", "journal.db")
	cfgVal.Scan.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithJournalDisabled turns the plan journal off.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithoutEmbeddedProbe disables embedded sheet probing during scans.
func WithoutEmbeddedProbe() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.ProbeEmbedded = false
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffprobe is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffprobe"}
		}
		binDir := StubBinaries(b.t, b.baseDir, "#!/bin/sh\nexit 0\n", names...)
		b.cfg.FFprobe.Binary = filepath.Join(binDir, "ffprobe")
	}
}

// WithFFprobeOutput installs an ffprobe stub that prints output for every file.
func WithFFprobeOutput(output string) ConfigOption {
	return func(b *configBuilder) {
		script := "#!/bin/sh\ncat <<'JSON'\n" + output + "\nJSON\n"
		binDir := StubBinaries(b.t, b.baseDir, script, "ffprobe")
		b.cfg.FFprobe.Binary = filepath.Join(binDir, "ffprobe")
	}
}

// StubBinaries writes executables sharing one script into base/bin and
// prepends that directory to PATH for the duration of the test.
func StubBinaries(t testing.TB, base, script string, names ...string) string {
	t.Helper()

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for _, name := range names {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
	return binDir
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
