package person

import (
	"time"

	"github.com/google/uuid"
)

const (
	ImportStatusNotStarted = "Import has not started yet."
	ImportStatusInProgress = "Import is in progress."
	ImportStatusCompleted  = "Import completed."
)

// ImportStatus describes the latest CSV import run.
type ImportStatus struct {
	RunID         uuid.UUID
	InProgress    bool
	Completed     bool
	StartTime     *time.Time
	EndTime       *time.Time
	ProcessedRows int64
	Error         string
}

func (s ImportStatus) Description() string {
	switch {
	case s.Completed:
		return ImportStatusCompleted
	case s.InProgress:
		return ImportStatusInProgress
	default:
		return ImportStatusNotStarted
	}
}
