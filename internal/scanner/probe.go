package scanner

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"cuesplit/internal/logging"
	"cuesplit/internal/media/ffprobe"
	"cuesplit/internal/media/tags"
)

// Prober extracts an embedded CUE sheet from an audio file.
type Prober interface {
	CueSheet(ctx context.Context, path string) (string, bool, error)
}

// EmbeddedProber reads ID3 frames for MP3 files and falls back to ffprobe
// container tags for everything else.
type EmbeddedProber struct {
	binary string
	logger *slog.Logger
}

// NewEmbeddedProber returns a prober running the given ffprobe binary.
func NewEmbeddedProber(binary string, logger *slog.Logger) *EmbeddedProber {
	return &EmbeddedProber{binary: binary, logger: logging.NewComponentLogger(logger, "probe")}
}

// CueSheet implements Prober.
func (p *EmbeddedProber) CueSheet(ctx context.Context, path string) (string, bool, error) {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		sheet, ok, err := tags.ReadID3CueSheet(path)
		switch {
		case err != nil:
			p.logger.Debug("id3 read failed; trying ffprobe",
				logging.String(logging.FieldAudioPath, path),
				logging.Error(err),
			)
		case ok:
			return sheet, true, nil
		}
	}

	result, err := ffprobe.Inspect(ctx, p.binary, path)
	if err != nil {
		return "", false, err
	}
	sheet, ok := result.CueSheet()
	return sheet, ok, nil
}
