package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cuesplit/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "cuesplit")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Journal.Path != filepath.Join(wantState, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.Journal.Path)
	}
	if cfg.Locator.AudioExtension != ".flac" {
		t.Fatalf("unexpected audio extension: %q", cfg.Locator.AudioExtension)
	}
	if !slices.Equal(cfg.Locator.ExcludedExtensions, []string{".cue", ".log", ".txt"}) {
		t.Fatalf("unexpected excluded extensions: %v", cfg.Locator.ExcludedExtensions)
	}
	if cfg.Encoding.MinConfidence != config.Default().Encoding.MinConfidence {
		t.Fatalf("unexpected min confidence: %d", cfg.Encoding.MinConfidence)
	}
	if cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected ffprobe binary: %q", cfg.FFprobeBinary())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPathNormalizesExtensions(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "cuesplit.toml")

	type payload struct {
		Locator struct {
			AudioExtension     string   `toml:"audio_extension"`
			ExcludedExtensions []string `toml:"excluded_extensions"`
		} `toml:"locator"`
		Scan struct {
			Workers int `toml:"workers"`
		} `toml:"scan"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Locator.AudioExtension = "WAV"
	custom.Locator.ExcludedExtensions = []string{"CUE", ".log", "log", " .m3u "}
	custom.Scan.Workers = 8
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Locator.AudioExtension != ".wav" {
		t.Fatalf("expected .wav, got %q", cfg.Locator.AudioExtension)
	}
	if !slices.Equal(cfg.Locator.ExcludedExtensions, []string{".cue", ".log", ".m3u"}) {
		t.Fatalf("unexpected excluded extensions: %v", cfg.Locator.ExcludedExtensions)
	}
	if cfg.Scan.Workers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.Scan.Workers)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.StateDir, "cuesplit") {
		t.Fatalf("expected state dir to contain cuesplit, got %q", cfg.Paths.StateDir)
	}
	if cfg.Locator.AudioExtension != ".flac" {
		t.Fatalf("expected sample audio extension .flac, got %q", cfg.Locator.AudioExtension)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Encoding.MinConfidence = 101
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for confidence above 100")
	}

	cfg = config.Default()
	cfg.Scan.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero workers")
	}

	cfg = config.Default()
	cfg.Locator.ExcludedExtensions = append(cfg.Locator.ExcludedExtensions, ".flac")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when target extension is excluded")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log level")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
