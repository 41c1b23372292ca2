package splitplan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cuesplit/internal/config"
	"cuesplit/internal/cuesheet"
	"cuesplit/internal/locator"
	"cuesplit/internal/logging"
	"cuesplit/internal/textenc"
	"cuesplit/internal/textutil"
)

// EmbeddedCuePath is the CueFilePath of plans built from an embedded sheet.
const EmbeddedCuePath = "<EMBEDDED>"

// TrackProcess is the plan for one output track.
type TrackProcess struct {
	TrackName   string
	TrackNumber string
	// Performer is the track's own performer and may be empty.
	Performer string
	Start     time.Duration
	Duration  time.Duration
	ToEnd     bool
}

// AlbumProcess is the split plan for one audio stream.
type AlbumProcess struct {
	AlbumName                      string
	Performer                      string
	AudioFilePath                  string
	AudioFilePathGuessed           string
	AudioFilePathGuessedCandidates []string
	CueFilePath                    string
	Root                           string
	Tracks                         []TrackProcess
	// Invalid is set when the declared audio file is missing and no
	// candidate replaces it.
	Invalid bool
}

// SourcePath returns the audio file a splitter should read: the declared path
// when it exists, otherwise the best guess.
func (a AlbumProcess) SourcePath() string {
	if a.AudioFilePathGuessed != "" {
		return a.AudioFilePathGuessed
	}
	return a.AudioFilePath
}

// TextReader decodes a CUE file into text.
type TextReader interface {
	ReadFile(path string) (textenc.Result, error)
}

// Finder lists replacement candidates for a missing audio file.
type Finder interface {
	Locate(dir, cueRef, dataFileRef string) ([]string, error)
}

// Option customizes a Planner.
type Option func(*Planner)

// WithParser replaces the default line parser.
func WithParser(p cuesheet.Parser) Option {
	return func(pl *Planner) {
		if p != nil {
			pl.parser = p
		}
	}
}

// WithTextReader replaces the charset-detecting reader.
func WithTextReader(r TextReader) Option {
	return func(pl *Planner) {
		if r != nil {
			pl.reader = r
		}
	}
}

// WithFinder replaces the audio file locator.
func WithFinder(f Finder) Option {
	return func(pl *Planner) {
		if f != nil {
			pl.finder = f
		}
	}
}

// Planner assembles AlbumProcess values. It holds no per-album state and is
// safe for concurrent use.
type Planner struct {
	parser cuesheet.Parser
	reader TextReader
	finder Finder
	logger *slog.Logger
}

// NewPlanner wires the default parser, reader and locator from cfg.
func NewPlanner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Planner {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	p := &Planner{
		parser: cuesheet.LineParser{},
		reader: textenc.New(cfg.Encoding.MinConfidence, logger),
		finder: locator.New(cfg.Locator.AudioExtension, cfg.Locator.ExcludedExtensions, logger),
		logger: logging.NewComponentLogger(logger, "splitplan"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromStandaloneCue plans the album described by the .cue file at cuePath.
// root is the directory the sheet's FILE reference is resolved against.
func (p *Planner) FromStandaloneCue(root, cuePath string) (AlbumProcess, error) {
	logger := p.logger.With(logging.String(logging.FieldCuePath, cuePath))

	decoded, err := p.reader.ReadFile(cuePath)
	if err != nil {
		return AlbumProcess{}, err
	}
	logger.Debug("cue sheet decoded",
		logging.String("charset", decoded.Charset),
		logging.Int("confidence", decoded.Confidence),
		logging.Bool("detected", decoded.Detected),
	)

	sheet, err := p.parse(decoded.Text)
	if err != nil {
		return AlbumProcess{}, err
	}

	dataFile := sheet.DataFile()
	audioPath := filepath.Join(root, dataFile)
	album := AlbumProcess{
		AlbumName:                      sheet.Title,
		Performer:                      sheet.Performer,
		AudioFilePath:                  audioPath,
		AudioFilePathGuessedCandidates: []string{},
		CueFilePath:                    cuePath,
		Root:                           root,
	}

	if dataFile == "" || !fileExists(audioPath) {
		candidates, err := p.finder.Locate(root, filepath.Base(cuePath), dataFile)
		if err != nil {
			logger.Warn("audio candidate search failed",
				logging.String("dir", root),
				logging.Error(err),
			)
			candidates = nil
		}
		if len(candidates) == 0 {
			album.Invalid = true
			logger.Warn("audio file missing and no candidate found",
				logging.String(logging.FieldAudioPath, audioPath),
				logging.Alert("missing_audio"),
			)
		} else {
			album.AudioFilePathGuessedCandidates = candidates
			album.AudioFilePathGuessed = candidates[0]
			if len(candidates) > 1 {
				logger.Info("audio file missing; several candidates, picked the largest",
					logging.String("guessed", candidates[0]),
					logging.Int("candidates", len(candidates)),
				)
			} else {
				logger.Info("audio file missing; using located candidate",
					logging.String("guessed", candidates[0]),
				)
			}
		}
	}

	tracks, err := buildTracks(sheet)
	if err != nil {
		return AlbumProcess{}, err
	}
	album.Tracks = tracks
	return album, nil
}

// FromEmbeddedCue plans the album whose sheet was read from audioPath's tags.
// The audio path is trusted as-is.
func (p *Planner) FromEmbeddedCue(audioPath, cueText string) (AlbumProcess, error) {
	sheet, err := p.parse(cueText)
	if err != nil {
		p.logger.Debug("embedded cue sheet rejected",
			logging.String(logging.FieldAudioPath, audioPath),
			logging.Error(err),
		)
		return AlbumProcess{}, err
	}
	tracks, err := buildTracks(sheet)
	if err != nil {
		return AlbumProcess{}, err
	}
	return AlbumProcess{
		AlbumName:                      sheet.Title,
		Performer:                      sheet.Performer,
		AudioFilePath:                  audioPath,
		AudioFilePathGuessedCandidates: []string{},
		CueFilePath:                    EmbeddedCuePath,
		Root:                           filepath.Dir(audioPath),
		Tracks:                         tracks,
	}, nil
}

func (p *Planner) parse(text string) (*cuesheet.Sheet, error) {
	sheet, err := p.parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCueParse, err)
	}
	if sheet == nil || len(sheet.Tracks) == 0 {
		return nil, ErrNoTracks
	}
	return sheet, nil
}

func buildTracks(sheet *cuesheet.Sheet) ([]TrackProcess, error) {
	for _, track := range sheet.Tracks {
		if len(track.Indices) == 0 {
			return nil, fmt.Errorf("track %d: %w", track.Number, ErrNoIndex)
		}
	}

	tracks := make([]TrackProcess, 0, len(sheet.Tracks))
	for i, track := range sheet.Tracks {
		var next []cuesheet.IndexMark
		if i+1 < len(sheet.Tracks) {
			next = sheet.Tracks[i+1].Indices
		}
		boundary, err := ResolveBoundary(track.Indices, next)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", track.Number, err)
		}
		tracks = append(tracks, TrackProcess{
			TrackName:   textutil.TrackFileName(track.Number, track.Title, track.Performer, sheet.Performer),
			TrackNumber: strconv.Itoa(track.Number),
			Performer:   track.Performer,
			Start:       boundary.Start,
			Duration:    boundary.Duration,
			ToEnd:       boundary.ToEnd,
		})
	}
	return tracks, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
