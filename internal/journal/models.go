package journal

import (
	"time"

	"cuesplit/internal/splitplan"
)

// Status is the outcome recorded for a source.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusInvalid Status = "invalid"
	StatusFailed  Status = "failed"
)

// StatusFor maps a planning outcome to its journal status.
func StatusFor(outcome splitplan.Outcome) Status {
	switch {
	case outcome.Err != nil:
		return StatusFailed
	case outcome.Plan.Invalid:
		return StatusInvalid
	default:
		return StatusPlanned
	}
}

// Entry is one journal row.
type Entry struct {
	ID           string
	RunID        string
	SourcePath   string
	Kind         splitplan.JobKind
	Status       Status
	AlbumName    string
	TrackCount   int
	PlanJSON     string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
