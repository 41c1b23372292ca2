package journal_test

import (
	"context"
	"errors"
	"testing"

	"cuesplit/internal/config"
	"cuesplit/internal/journal"
	"cuesplit/internal/splitplan"
	"cuesplit/internal/testsupport"
)

func mustOpen(t *testing.T, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func plannedOutcome(source string, invalid bool) splitplan.Outcome {
	return splitplan.Outcome{
		Job: splitplan.Job{Kind: splitplan.JobStandalone, Root: "/music", CuePath: source},
		Plan: splitplan.AlbumProcess{
			AlbumName:   "Album",
			CueFilePath: source,
			Invalid:     invalid,
			Tracks: []splitplan.TrackProcess{
				{TrackName: "(01) [A] One.flac", TrackNumber: "1"},
				{TrackName: "(02) [A] Two.flac", TrackNumber: "2", ToEnd: true},
			},
		},
	}
}

func TestRecordAndFetch(t *testing.T) {
	store := mustOpen(t, testsupport.NewConfig(t))
	ctx := context.Background()

	entry, err := store.Record(ctx, "run-1", plannedOutcome("/music/a.cue", false))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.ID == "" || entry.Status != journal.StatusPlanned || entry.TrackCount != 2 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}

	rec, err := entry.Plan()
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if rec.AlbumName != "Album" || len(rec.Tracks) != 2 || rec.Tracks[1].Duration != "" {
		t.Fatalf("unexpected stored plan %+v", rec)
	}
}

func TestRecordReplacesEarlierOutcome(t *testing.T) {
	store := mustOpen(t, testsupport.NewConfig(t))
	ctx := context.Background()

	failed := splitplan.Outcome{
		Job: splitplan.Job{Kind: splitplan.JobStandalone, CuePath: "/music/b.cue"},
		Err: errors.New("parse cue sheet: boom"),
	}
	first, err := store.Record(ctx, "run-1", failed)
	if err != nil {
		t.Fatalf("Record failed outcome: %v", err)
	}
	if first.Status != journal.StatusFailed || first.ErrorMessage == "" || first.PlanJSON != "" {
		t.Fatalf("unexpected failed entry %+v", first)
	}

	second, err := store.Record(ctx, "run-2", plannedOutcome("/music/b.cue", false))
	if err != nil {
		t.Fatalf("Record planned outcome: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected stable id, got %s then %s", first.ID, second.ID)
	}
	if second.Status != journal.StatusPlanned || second.RunID != "run-2" || second.ErrorMessage != "" {
		t.Fatalf("unexpected replaced entry %+v", second)
	}
}

func TestPlannedSourcesAndList(t *testing.T) {
	store := mustOpen(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for _, outcome := range []splitplan.Outcome{
		plannedOutcome("/music/ok.cue", false),
		plannedOutcome("/music/invalid.cue", true),
		{Job: splitplan.Job{Kind: splitplan.JobEmbedded, AudioPath: "/music/x.flac"}, Err: errors.New("bad")},
	} {
		if _, err := store.Record(ctx, "run", outcome); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	planned, err := store.PlannedSources(ctx)
	if err != nil {
		t.Fatalf("PlannedSources: %v", err)
	}
	if len(planned) != 1 {
		t.Fatalf("expected one planned source, got %v", planned)
	}
	if _, ok := planned["/music/ok.cue"]; !ok {
		t.Fatalf("expected ok.cue planned, got %v", planned)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	problems, err := store.List(ctx, journal.StatusInvalid, journal.StatusFailed)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("expected 2 problem entries, got %d", len(problems))
	}
	for _, entry := range problems {
		if entry.Status == journal.StatusPlanned {
			t.Fatalf("unexpected planned entry in filtered list: %+v", entry)
		}
	}
}

func TestGetBySourceMissing(t *testing.T) {
	store := mustOpen(t, testsupport.NewConfig(t))
	entry, err := store.GetBySource(context.Background(), "/nowhere.cue")
	if err != nil {
		t.Fatalf("GetBySource: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry, got %+v", entry)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(context.Background(), "run", plannedOutcome("/music/keep.cue", false)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := mustOpen(t, cfg)
	entry, err := reopened.GetBySource(context.Background(), "/music/keep.cue")
	if err != nil || entry == nil {
		t.Fatalf("expected entry after reopen, got %v, %v", entry, err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Journal.Path = ""
	if _, err := journal.Open(cfg); err == nil {
		t.Fatal("expected error without journal path")
	}
}
