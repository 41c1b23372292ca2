package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLocator(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLocator() error {
	ext := c.Locator.AudioExtension
	if ext == "" {
		return errors.New("locator.audio_extension must be set")
	}
	if slices.Contains(c.Locator.ExcludedExtensions, ext) {
		return fmt.Errorf("locator.audio_extension %q is also listed in locator.excluded_extensions", ext)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.MinConfidence < 0 || c.Encoding.MinConfidence > maxDetectorConfidence {
		return fmt.Errorf("encoding.min_confidence must be between 0 and %d", maxDetectorConfidence)
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers <= 0 || c.Scan.Workers > maxScanWorkers {
		return fmt.Errorf("scan.workers must be between 1 and %d", maxScanWorkers)
	}
	if c.Scan.AlbumDepth > maxAlbumDepth {
		return fmt.Errorf("scan.album_depth must be between 1 and %d", maxAlbumDepth)
	}
	if len(c.Scan.AudioExtensions) == 0 {
		return errors.New("scan.audio_extensions must not be empty")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn, or error)", strings.TrimSpace(c.Logging.Level))
	}
}
