package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Locator controls how a missing audio file is searched for next to its CUE sheet.
type Locator struct {
	// AudioExtension is the lossless target extension that matches any file
	// regardless of its characteristic token.
	AudioExtension string `toml:"audio_extension"`
	// ExcludedExtensions are never considered audio candidates.
	ExcludedExtensions []string `toml:"excluded_extensions"`
}

// Encoding contains charset detection settings.
type Encoding struct {
	// MinConfidence is the detector confidence (0-100) below which a result is
	// ignored and the text is decoded as UTF-8.
	MinConfidence int `toml:"min_confidence"`
}

// Scan contains library scanning settings.
type Scan struct {
	Workers         int      `toml:"workers"`
	ProbeEmbedded   bool     `toml:"probe_embedded"`
	AudioExtensions []string `toml:"audio_extensions"`
	// AlbumDepth is how many directory levels below the library root an
	// album sits (2 for Artist/Album).
	AlbumDepth      int      `toml:"album_depth"`
}

// Journal contains configuration for the SQLite plan journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// FFprobe contains the ffprobe executable used to read embedded sheets.
type FFprobe struct {
	Binary string `toml:"binary"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cuesplit.
//
// Configuration sections by subsystem:
//   - Paths: state and log directories
//   - Locator: audio file fallback matching
//   - Encoding: CUE text charset detection
//   - Scan: library walking and batch planning
//   - Journal: persisted album outcomes
//   - FFprobe: embedded CUE sheet extraction
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Locator  Locator  `toml:"locator"`
	Encoding Encoding `toml:"encoding"`
	Scan     Scan     `toml:"scan"`
	Journal  Journal  `toml:"journal"`
	FFprobe  FFprobe  `toml:"ffprobe"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cuesplit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Journal.Path), 0o755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable name used for embedded sheet extraction.
func (c *Config) FFprobeBinary() string {
	if c == nil || strings.TrimSpace(c.FFprobe.Binary) == "" {
		return defaultFFprobeBinary
	}
	return c.FFprobe.Binary
}

// LockPath returns the path of the exclusive scan lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "cuesplit.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
