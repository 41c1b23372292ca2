package splitplan

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the serialized form of an AlbumProcess consumed by splitters.
type Record struct {
	Root                           string        `json:"root" yaml:"root"`
	AlbumName                      string        `json:"albumName" yaml:"albumName"`
	Performer                      string        `json:"performer" yaml:"performer"`
	AudioFilePath                  string        `json:"audioFilePath" yaml:"audioFilePath"`
	AudioFilePathGuessed           string        `json:"audioFilePathGuessed" yaml:"audioFilePathGuessed"`
	AudioFilePathGuessedCandidates []string      `json:"audioFilePathGuessedCandidates" yaml:"audioFilePathGuessedCandidates"`
	CueFilePath                    string        `json:"cueFilePath" yaml:"cueFilePath"`
	Invalid                        bool          `json:"invalid" yaml:"invalid"`
	Tracks                         []TrackRecord `json:"tracks" yaml:"tracks"`
}

// TrackRecord is the serialized form of a TrackProcess. Begin and Duration
// use HH:MM:SS; Duration is empty for the last track.
type TrackRecord struct {
	TrackName   string `json:"trackName" yaml:"trackName"`
	TrackNumber string `json:"trackNumber" yaml:"trackNumber"`
	Performer   string `json:"performer" yaml:"performer"`
	Begin       string `json:"begin" yaml:"begin"`
	Duration    string `json:"duration" yaml:"duration"`
}

// Record converts the plan into its wire shape.
func (a AlbumProcess) Record() Record {
	candidates := a.AudioFilePathGuessedCandidates
	if candidates == nil {
		candidates = []string{}
	}
	tracks := make([]TrackRecord, 0, len(a.Tracks))
	for _, t := range a.Tracks {
		tr := TrackRecord{
			TrackName:   t.TrackName,
			TrackNumber: t.TrackNumber,
			Performer:   t.Performer,
			Begin:       FormatClock(t.Start),
		}
		if !t.ToEnd {
			tr.Duration = FormatClock(t.Duration)
		}
		tracks = append(tracks, tr)
	}
	return Record{
		Root:                           a.Root,
		AlbumName:                      a.AlbumName,
		Performer:                      a.Performer,
		AudioFilePath:                  a.AudioFilePath,
		AudioFilePathGuessed:           a.AudioFilePathGuessed,
		AudioFilePathGuessedCandidates: candidates,
		CueFilePath:                    a.CueFilePath,
		Invalid:                        a.Invalid,
		Tracks:                         tracks,
	}
}

// MarshalJSON encodes the plan as its Record.
func (a AlbumProcess) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Record())
}

// MarshalYAML encodes the plan as its Record.
func (a AlbumProcess) MarshalYAML() (any, error) {
	return a.Record(), nil
}

// FormatClock renders d as HH:MM:SS, truncated to whole seconds. Hours are
// not capped at 24.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
