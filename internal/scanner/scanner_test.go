package scanner

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"cuesplit/internal/splitplan"
	"cuesplit/internal/testsupport"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name                  string
		cues, embedded, audio int
		want                  float64
	}{
		{"one image rip", 1, 1, 1, 1},
		{"cue count matches embedded", 2, 2, 5, 0.9},
		{"no audio", 1, 0, 0, 0},
		{"half the audio has sheets", 1, 0, 2, 0.5},
		{"more sheets than audio", 3, 0, 2, 1},
		{"many split tracks", 1, 0, 14, 1.0 / 14 * 0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Confidence(tc.cues, tc.embedded, tc.audio)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Confidence(%d, %d, %d) = %v, want %v", tc.cues, tc.embedded, tc.audio, got, tc.want)
			}
		})
	}
}

type stubProber map[string]string

func (s stubProber) CueSheet(_ context.Context, path string) (string, bool, error) {
	sheet, ok := s[filepath.Base(path)]
	return sheet, ok, nil
}

func TestScanFlagsAndSortsAlbums(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	library := t.TempDir()

	// Artist A / image rip with a cue: cues=1 embedded=0 audio=1 -> 1.0
	image := filepath.Join(library, "Artist A", "Image Rip")
	testsupport.WriteFile(t, filepath.Join(image, "CDImage.flac"), 16)
	testsupport.WriteText(t, filepath.Join(image, "CDImage.cue"), testsupport.ThreeTrackSheet("CDImage.flac"))

	// Artist A / already split: cues=1 audio=2 -> 0.5
	split := filepath.Join(library, "Artist A", "Split")
	testsupport.WriteFile(t, filepath.Join(split, "01.flac"), 8)
	testsupport.WriteFile(t, filepath.Join(split, "02.flac"), 8)
	testsupport.WriteText(t, filepath.Join(split, "album.cue"), testsupport.ThreeTrackSheet("album.wav"))

	// Artist B / embedded sheet only: cues=0 embedded=1 audio=1 -> min(0/1,1)=0
	embedded := filepath.Join(library, "Artist B", "Embedded")
	testsupport.WriteFile(t, filepath.Join(embedded, "album.flac"), 8)

	// Artist B / nothing to split
	plain := filepath.Join(library, "Artist B", "Plain")
	testsupport.WriteFile(t, filepath.Join(plain, "01.mp3"), 8)

	prober := stubProber{"album.flac": testsupport.ThreeTrackSheet("x.wav")}
	albums, err := New(cfg, prober, nil).Scan(context.Background(), library)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(albums) != 3 {
		t.Fatalf("expected 3 flagged albums, got %d: %+v", len(albums), albums)
	}
	if albums[0].Root != image || albums[0].Confidence != 1 {
		t.Fatalf("expected image rip first, got %+v", albums[0])
	}
	if albums[1].Root != split || albums[1].Confidence != 0.5 {
		t.Fatalf("expected split album second, got %+v", albums[1])
	}
	if albums[2].Root != embedded || albums[2].Reason != ReasonEmbeddedCue || len(albums[2].Embedded) != 1 {
		t.Fatalf("expected embedded album last, got %+v", albums[2])
	}
	if albums[0].Reason != ReasonCueFile {
		t.Fatalf("unexpected reason %q", albums[0].Reason)
	}
}

func TestScanCountsNestedDiscs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	cfg.Scan.AlbumDepth = 1
	library := t.TempDir()
	album := filepath.Join(library, "Box Set")
	for _, disc := range []string{"Disc 1", "Disc 2"} {
		testsupport.WriteFile(t, filepath.Join(album, disc, "image.WAV"), 8)
		testsupport.WriteText(t, filepath.Join(album, disc, "image.cue"), testsupport.ThreeTrackSheet("image.WAV"))
	}

	albums, err := New(cfg, stubProber{}, nil).Scan(context.Background(), library)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(albums) != 1 {
		t.Fatalf("expected one album, got %d", len(albums))
	}
	if albums[0].AudioCount != 2 || len(albums[0].CueFiles) != 2 {
		t.Fatalf("unexpected counts %+v", albums[0])
	}
	if len(albums[0].Embedded) != 0 {
		t.Fatal("embedded probing should be disabled")
	}
}

func TestScanMissingLibrary(t *testing.T) {
	if _, err := New(nil, nil, nil).Scan(context.Background(), filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Fatal("expected error for missing library root")
	}
}

func TestJobsPrefersCueFiles(t *testing.T) {
	albums := []Album{
		{
			Root:     "/lib/A/B",
			CueFiles: []string{"/lib/A/B/Disc 1/a.cue"},
			Embedded: []EmbeddedSheet{
				{Path: "/lib/A/B/Disc 1/a.flac", Sheet: "s1"},
				{Path: "/lib/A/B/Disc 2/b.flac", Sheet: "s2"},
			},
		},
	}
	jobs := Jobs(albums)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %+v", jobs)
	}
	if jobs[0].Kind != splitplan.JobStandalone || jobs[0].Root != "/lib/A/B/Disc 1" {
		t.Fatalf("unexpected standalone job %+v", jobs[0])
	}
	if jobs[1].Kind != splitplan.JobEmbedded || !strings.HasSuffix(jobs[1].AudioPath, "b.flac") || jobs[1].CueText != "s2" {
		t.Fatalf("unexpected embedded job %+v", jobs[1])
	}
}
