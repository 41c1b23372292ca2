package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"cuesplit/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, true)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), false)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, false)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckBinary(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	if result := CheckBinary("Present", present, "test", false); !result.Passed {
		t.Fatalf("expected present binary to pass, got %+v", result)
	}
	missing := CheckBinary("Missing", "clearly-not-present-binary", "test", false)
	if missing.Passed || missing.Detail == "" {
		t.Fatalf("expected missing binary to fail with detail, got %+v", missing)
	}
	if empty := CheckBinary("Empty", " ", "test", false); empty.Passed {
		t.Fatal("expected empty command to fail")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(cfg, t.TempDir())
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %+v", len(results), results)
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
}

func TestRunAllOptionalFFprobe(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe(), testsupport.WithJournalDisabled())
	cfg.FFprobe.Binary = "clearly-not-present-ffprobe"
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(cfg, "")
	if Failed(results) {
		t.Fatalf("missing ffprobe should be optional when probing is off: %+v", results)
	}

	cfg.Scan.ProbeEmbedded = true
	if !Failed(RunAll(cfg, "")) {
		t.Fatal("missing ffprobe should fail when probing is on")
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if RunAll(nil, "") != nil {
		t.Fatal("expected nil results for nil config")
	}
}
