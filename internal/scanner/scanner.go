package scanner

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"cuesplit/internal/config"
	"cuesplit/internal/logging"
)

// highAudioCount is the audio file count above which confidence decays.
const highAudioCount = 7

const cueExtension = ".cue"

// Flag reasons, recorded for the first evidence found in an album.
const (
	ReasonCueFile     = "cue file found"
	ReasonEmbeddedCue = "audio file with embedded cue sheet found"
)

// EmbeddedSheet is an audio file together with the sheet read from its tags.
type EmbeddedSheet struct {
	Path  string
	Sheet string
}

// Album summarizes one album directory.
type Album struct {
	Root       string
	CueFiles   []string
	Embedded   []EmbeddedSheet
	AudioCount int
	Reason     string
	Confidence float64
}

// Flagged reports whether the album has something to split.
func (a Album) Flagged() bool {
	return (len(a.CueFiles) > 0 || len(a.Embedded) > 0) && a.AudioCount > 0
}

// Confidence scores how likely an album is an unsplit image rip, from 0 to 1.
func Confidence(cues, embedded, audio int) float64 {
	if cues == embedded && cues == audio {
		return 1
	}
	if cues == embedded {
		return 0.9
	}
	if audio == 0 {
		return 0
	}
	score := min(float64(cues)/float64(audio), 1)
	if audio > highAudioCount {
		score *= float64(highAudioCount) / float64(audio)
	}
	return score
}

// Scanner finds albums below a library root.
type Scanner struct {
	depth         int
	workers       int
	audioExts     map[string]struct{}
	probeEmbedded bool
	prober        Prober
	logger        *slog.Logger
}

// New builds a Scanner from cfg. A nil prober disables embedded sheet probing.
func New(cfg *config.Config, prober Prober, logger *slog.Logger) *Scanner {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	exts := make(map[string]struct{}, len(cfg.Scan.AudioExtensions))
	for _, ext := range cfg.Scan.AudioExtensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{
		depth:         max(cfg.Scan.AlbumDepth, 1),
		workers:       max(cfg.Scan.Workers, 1),
		audioExts:     exts,
		probeEmbedded: cfg.Scan.ProbeEmbedded && prober != nil,
		prober:        prober,
		logger:        logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan returns the flagged albums below libraryRoot, highest confidence first.
func (s *Scanner) Scan(ctx context.Context, libraryRoot string) ([]Album, error) {
	dirs, err := s.albumDirs(libraryRoot)
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("scanning library",
		logging.String("root", libraryRoot),
		logging.Int("albums", len(dirs)),
	)

	albums := make([]Album, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, dir := range dirs {
		g.Go(func() error {
			album, err := s.scanAlbum(gctx, dir)
			if err != nil {
				return err
			}
			albums[i] = album
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flagged := make([]Album, 0, len(albums))
	for _, album := range albums {
		if !album.Flagged() {
			continue
		}
		album.Confidence = Confidence(len(album.CueFiles), len(album.Embedded), album.AudioCount)
		logger.Debug("album flagged",
			logging.String("album", album.Root),
			logging.String("reason", album.Reason),
			logging.Any("confidence", album.Confidence),
		)
		flagged = append(flagged, album)
	}
	slices.SortStableFunc(flagged, func(a, b Album) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return flagged, nil
}

// albumDirs lists directories exactly s.depth levels below root, in lexical order.
func (s *Scanner) albumDirs(root string) ([]string, error) {
	root = filepath.Clean(root)
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("skip unreadable directory", logging.String("path", path), logging.Error(err))
			return fs.SkipDir
		}
		if !d.IsDir() || path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if depth := strings.Count(rel, string(filepath.Separator)) + 1; depth >= s.depth {
			dirs = append(dirs, path)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk library: %w", err)
	}
	return dirs, nil
}

func (s *Scanner) scanAlbum(ctx context.Context, dir string) (Album, error) {
	album := Album{Root: dir}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skip unreadable entry", logging.String("path", path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == cueExtension {
			album.CueFiles = append(album.CueFiles, path)
			if album.Reason == "" {
				album.Reason = ReasonCueFile
			}
			return nil
		}
		if _, ok := s.audioExts[ext]; !ok {
			return nil
		}
		album.AudioCount++
		if !s.probeEmbedded {
			return nil
		}
		sheet, ok, err := s.prober.CueSheet(ctx, path)
		if err != nil {
			s.logger.Debug("embedded sheet probe failed",
				logging.String(logging.FieldAudioPath, path),
				logging.Error(err),
			)
			return nil
		}
		if ok {
			album.Embedded = append(album.Embedded, EmbeddedSheet{Path: path, Sheet: sheet})
			if album.Reason == "" {
				album.Reason = ReasonEmbeddedCue
			}
		}
		return nil
	})
	if err != nil {
		return Album{}, fmt.Errorf("scan album %s: %w", dir, err)
	}
	return album, nil
}
