package config

const (
	defaultConfigPath          = "~/.config/cuesplit/config.toml"
	defaultStateDir            = "~/.local/share/cuesplit"
	defaultLogDir              = "~/.local/share/cuesplit/logs"
	defaultJournalPath         = "~/.local/share/cuesplit/journal.db"
	defaultAudioExtension      = ".flac"
	defaultMinConfidence       = 10
	defaultScanWorkers         = 4
	defaultFFprobeBinary       = "ffprobe"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	maxDetectorConfidence      = 100
	maxScanWorkers             = 64
	defaultAlbumDepth          = 2
	maxAlbumDepth              = 8
	defaultProbeEmbeddedSheets = true
)

var (
	defaultExcludedExtensions = []string{".cue", ".log", ".txt"}
	defaultScanAudioExtension = []string{".flac", ".wav", ".mp3"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Locator: Locator{
			AudioExtension:     defaultAudioExtension,
			ExcludedExtensions: append([]string(nil), defaultExcludedExtensions...),
		},
		Encoding: Encoding{
			MinConfidence: defaultMinConfidence,
		},
		Scan: Scan{
			Workers:         defaultScanWorkers,
			ProbeEmbedded:   defaultProbeEmbeddedSheets,
			AudioExtensions: append([]string(nil), defaultScanAudioExtension...),
			AlbumDepth:      defaultAlbumDepth,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		FFprobe: FFprobe{
			Binary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
