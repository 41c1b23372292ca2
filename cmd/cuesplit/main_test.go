package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cuesplit/internal/config"
	"cuesplit/internal/splitplan"
	"cuesplit/internal/testsupport"
)

func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\nfull output:\n%s", needle, haystack)
	}
}

func TestCLIPlanPrintsJSONRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	album := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(album, "album.wav"), 32)
	cuePath := filepath.Join(album, "album.cue")
	testsupport.WriteText(t, cuePath, testsupport.ThreeTrackSheet("album.wav"))

	out, _, err := runCLI(t, configPath, "plan", cuePath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	var rec splitplan.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode plan output: %v\n%s", err, out)
	}
	if rec.AlbumName != "Album" || rec.Performer != "Artist" {
		t.Fatalf("unexpected album metadata %+v", rec)
	}
	if rec.AudioFilePath != filepath.Join(album, "album.wav") || rec.Invalid {
		t.Fatalf("unexpected audio resolution %+v", rec)
	}
	if len(rec.Tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(rec.Tracks))
	}
	if rec.Tracks[1].Begin != "00:03:45" || rec.Tracks[1].Duration != "00:04:27" {
		t.Fatalf("unexpected second track %+v", rec.Tracks[1])
	}
	if rec.Tracks[2].Duration != "" {
		t.Fatalf("last track should run to end, got %q", rec.Tracks[2].Duration)
	}
}

func TestCLIPlanTableOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	album := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(album, "album.wav"), 32)
	cuePath := filepath.Join(album, "album.cue")
	testsupport.WriteText(t, cuePath, testsupport.ThreeTrackSheet("album.wav"))

	out, _, err := runCLI(t, configPath, "--format", "table", "plan", cuePath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "(01) [Artist] First.flac")
	requireContains(t, out, "(to end)")
}

func TestCLIPlanRejectsUnknownFormat(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	_, _, err := runCLI(t, configPath, "--format", "xml", "plan", "missing.cue")
	if err == nil || !strings.Contains(err.Error(), "unsupported --format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestCLIEmbeddedWithCueFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	album := t.TempDir()
	audio := filepath.Join(album, "image.flac")
	testsupport.WriteFile(t, audio, 32)
	sheet := filepath.Join(album, "sheet.txt")
	testsupport.WriteText(t, sheet, testsupport.ThreeTrackSheet("ignored.wav"))

	out, _, err := runCLI(t, configPath, "--format", "yaml", "embedded", audio, "--cue-file", sheet)
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	var rec splitplan.Record
	if err := yaml.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode yaml output: %v\n%s", err, out)
	}
	if rec.CueFilePath != splitplan.EmbeddedCuePath || rec.AudioFilePath != audio {
		t.Fatalf("unexpected embedded plan %+v", rec)
	}
	if len(rec.Tracks) != 3 || rec.Tracks[2].TrackName != "(03) [Artist] Third.flac" {
		t.Fatalf("unexpected tracks %+v", rec.Tracks)
	}
}

func TestCLIEmbeddedReadsFFprobeTags(t *testing.T) {
	sheet := strings.ReplaceAll(testsupport.ThreeTrackSheet("image.flac"), "\"", "\\\"")
	sheet = strings.ReplaceAll(sheet, "\n", "\\n")
	output := `{"streams":[{"index":0,"codec_type":"audio"}],"format":{"tags":{"CUESHEET":"` + sheet + `"}}}`
	cfg := testsupport.NewConfig(t, testsupport.WithFFprobeOutput(output))
	configPath := writeConfig(t, cfg)

	audio := filepath.Join(t.TempDir(), "image.flac")
	testsupport.WriteFile(t, audio, 32)

	out, _, err := runCLI(t, configPath, "embedded", audio)
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	var rec splitplan.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if rec.CueFilePath != splitplan.EmbeddedCuePath || len(rec.Tracks) != 3 {
		t.Fatalf("unexpected embedded plan %+v", rec)
	}
}

func TestCLIScanRecordsJournalAndSkipsPlanned(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	library := t.TempDir()
	good := filepath.Join(library, "Artist", "Image")
	testsupport.WriteFile(t, filepath.Join(good, "CDImage.flac"), 32)
	testsupport.WriteText(t, filepath.Join(good, "CDImage.cue"), testsupport.ThreeTrackSheet("CDImage.flac"))
	broken := filepath.Join(library, "Artist", "Broken")
	testsupport.WriteFile(t, filepath.Join(broken, "image.flac"), 32)
	testsupport.WriteText(t, filepath.Join(broken, "image.cue"), "REM nothing here\n")

	out, _, err := runCLI(t, configPath, "scan", library)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var report scanReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Albums != 2 || len(report.Results) != 2 || report.Skipped != 0 {
		t.Fatalf("unexpected first report %+v", report)
	}
	statuses := map[string]string{}
	for _, r := range report.Results {
		statuses[filepath.Base(filepath.Dir(r.Source))] = string(r.Status)
	}
	if statuses["Image"] != "planned" || statuses["Broken"] != "failed" {
		t.Fatalf("unexpected statuses %v", statuses)
	}

	out, _, err = runCLI(t, configPath, "scan", library)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	report = scanReport{}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode second report: %v", err)
	}
	if report.Skipped != 1 || len(report.Results) != 1 {
		t.Fatalf("expected planned album skipped, got %+v", report)
	}

	out, _, err = runCLI(t, configPath, "journal", "list", "--status", "planned")
	if err != nil {
		t.Fatalf("journal list: %v", err)
	}
	var rows []journalRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode journal rows: %v\n%s", err, out)
	}
	if len(rows) != 1 || rows[0].TrackCount != 3 || rows[0].AlbumName != "Album" {
		t.Fatalf("unexpected journal rows %+v", rows)
	}
}

func TestCLIJournalListRejectsUnknownStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	_, _, err := runCLI(t, configPath, "journal", "list", "--status", "done")
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestCLIScanFailsPreflightForMissingLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	_, _, err := runCLI(t, configPath, "scan", filepath.Join(t.TempDir(), "absent"))
	if err == nil || !strings.Contains(err.Error(), "preflight failed") {
		t.Fatalf("expected preflight error, got %v", err)
	}
}

func TestCLICheckReportsResults(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	configPath := writeConfig(t, cfg)

	out, _, err := runCLI(t, configPath, "--format", "table", "check", t.TempDir())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "State directory")
	requireContains(t, out, "FFprobe")
	requireContains(t, out, "Library")
}

func TestCLIConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "cuesplit", "config.toml")

	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestCLIConfigShowAndValidate(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutEmbeddedProbe())
	configPath := writeConfig(t, cfg)

	out, _, err := runCLI(t, configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	out, _, err = runCLI(t, configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "album_depth")
	requireContains(t, out, cfg.Paths.StateDir)
}
