package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"cuesplit/internal/config"
	"cuesplit/internal/splitplan"
)

// timestampLayout keeps a fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

const entryColumns = "id, run_id, source_path, kind, status, album_name, track_count, plan_json, error_message, created_at, updated_at"

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil || strings.TrimSpace(cfg.Journal.Path) == "" {
		return nil, errors.New("journal path is not configured")
	}
	dbPath := cfg.Journal.Path
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record stores the outcome of one planning job under runID, replacing any
// earlier entry for the same source. The entry keeps its original ID.
func (s *Store) Record(ctx context.Context, runID string, outcome splitplan.Outcome) (*Entry, error) {
	source := outcome.Job.Source()
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("journal record: empty source path")
	}

	var planJSON, errorMessage sql.NullString
	trackCount := 0
	albumName := ""
	if outcome.Err != nil {
		errorMessage = sql.NullString{String: outcome.Err.Error(), Valid: true}
	} else {
		data, err := json.Marshal(outcome.Plan)
		if err != nil {
			return nil, fmt.Errorf("encode plan: %w", err)
		}
		planJSON = sql.NullString{String: string(data), Valid: true}
		trackCount = len(outcome.Plan.Tracks)
		albumName = outcome.Plan.AlbumName
	}

	now := time.Now().UTC().Format(timestampLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO plan_entries (
            id, run_id, source_path, kind, status, album_name, track_count,
            plan_json, error_message, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(source_path) DO UPDATE SET
            run_id = excluded.run_id,
            kind = excluded.kind,
            status = excluded.status,
            album_name = excluded.album_name,
            track_count = excluded.track_count,
            plan_json = excluded.plan_json,
            error_message = excluded.error_message,
            updated_at = excluded.updated_at`,
		uuid.NewString(),
		runID,
		source,
		string(outcome.Job.Kind),
		string(StatusFor(outcome)),
		nullableString(albumName),
		trackCount,
		planJSON,
		errorMessage,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	return s.GetBySource(ctx, source)
}

// GetBySource returns the entry for a source path, or nil when none exists.
func (s *Store) GetBySource(ctx context.Context, source string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM plan_entries WHERE source_path = ?", source)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return entry, nil
}

// PlannedSources returns the set of sources whose latest status is planned.
func (s *Store) PlannedSources(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT source_path FROM plan_entries WHERE status = ?", string(StatusPlanned))
	if err != nil {
		return nil, fmt.Errorf("query planned sources: %w", err)
	}
	defer rows.Close()

	sources := make(map[string]struct{})
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("scan planned source: %w", err)
		}
		sources[source] = struct{}{}
	}
	return sources, rows.Err()
}

// List returns entries ordered by most recent update, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Entry, error) {
	query := "SELECT " + entryColumns + " FROM plan_entries"
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query += " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY updated_at DESC, source_path ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Plan decodes the stored plan record of an entry.
func (e *Entry) Plan() (splitplan.Record, error) {
	var rec splitplan.Record
	if e == nil || e.PlanJSON == "" {
		return rec, errors.New("entry has no plan")
	}
	if err := json.Unmarshal([]byte(e.PlanJSON), &rec); err != nil {
		return rec, fmt.Errorf("decode plan: %w", err)
	}
	return rec, nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id           string
		runID        string
		sourcePath   string
		kind         string
		status       string
		albumName    sql.NullString
		trackCount   sql.NullInt64
		planJSON     sql.NullString
		errorMessage sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&runID,
		&sourcePath,
		&kind,
		&status,
		&albumName,
		&trackCount,
		&planJSON,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	return &Entry{
		ID:           id,
		RunID:        runID,
		SourcePath:   sourcePath,
		Kind:         splitplan.JobKind(kind),
		Status:       Status(status),
		AlbumName:    albumName.String,
		TrackCount:   int(trackCount.Int64),
		PlanJSON:     planJSON.String,
		ErrorMessage: errorMessage.String,
		CreatedAt:    parseTime(createdRaw),
		UpdatedAt:    parseTime(updatedRaw),
	}, nil
}

func parseTime(raw sql.NullString) time.Time {
	if !raw.Valid || raw.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, raw.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
