package locator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ryo-kagawa/go-utils/arrays"
	"golang.org/x/text/unicode/norm"

	"cuesplit/internal/logging"
)

// DefaultAudioExtension matches any candidate regardless of its token.
const DefaultAudioExtension = ".flac"

// DefaultExcludedExtensions are never considered audio.
var DefaultExcludedExtensions = []string{".cue", ".log", ".txt"}

// characteristicPattern strips an optional "Artist - " prefix and the extension.
var characteristicPattern = regexp.MustCompile(`(?i)(?:.+ - )?(.+)\..+`)

// Characteristic returns the token a file name is compared by, or "" when the
// name has no extension.
func Characteristic(name string) string {
	match := characteristicPattern.FindStringSubmatch(filepath.Base(name))
	if match == nil {
		return ""
	}
	return norm.NFC.String(match[1])
}

// Locator ranks audio file candidates inside a directory.
type Locator struct {
	audioExtension string
	excluded       map[string]struct{}
	logger         *slog.Logger
}

// New builds a Locator. Empty arguments select the defaults.
func New(audioExtension string, excluded []string, logger *slog.Logger) *Locator {
	if strings.TrimSpace(audioExtension) == "" {
		audioExtension = DefaultAudioExtension
	}
	if excluded == nil {
		excluded = DefaultExcludedExtensions
	}
	set := make(map[string]struct{}, len(excluded))
	for _, ext := range excluded {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return &Locator{
		audioExtension: strings.ToLower(audioExtension),
		excluded:       set,
		logger:         logging.NewComponentLogger(logger, "locator"),
	}
}

type candidate struct {
	path string
	size int64
}

// Locate lists candidate audio files in dir for the sheet named cueRef whose
// declared data file is dataFileRef. The result is ordered by size, largest
// first, and is empty (not nil) when nothing matches.
func (l *Locator) Locate(dir, cueRef, dataFileRef string) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return []string{}, fmt.Errorf("resolve directory: %w", err)
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return []string{}, fmt.Errorf("read directory: %w", err)
	}

	cueToken := Characteristic(cueRef)
	dataToken := Characteristic(dataFileRef)

	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, skip := l.excluded[ext]; skip {
			continue
		}
		token := Characteristic(name)
		if token != cueToken && token != dataToken && ext != l.audioExtension {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			l.logger.Debug("skip unreadable candidate", logging.String("name", name), logging.Error(err))
			continue
		}
		found = append(found, candidate{path: filepath.Join(absDir, name), size: info.Size()})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].size > found[j].size
	})

	paths := arrays.Map(found, func(c candidate) string { return c.path })
	if paths == nil {
		paths = []string{}
	}
	l.logger.Debug("located audio candidates",
		logging.String("dir", absDir),
		logging.String("cue_token", cueToken),
		logging.String("data_token", dataToken),
		logging.Int("count", len(paths)),
	)
	return paths, nil
}
