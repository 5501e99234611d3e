package models

import "time"

// Job represents one download attempt and its outcome.
// A Job is created when a run starts and finalized exactly once when the
// subprocess exits or fails to start.
type Job struct {
	ID    uint64 `boltholdKey:"ID"`
	RunID string `boltholdIndex:"RunID"` // correlation id used in logs

	URL     string
	Quality QualitySelector

	// Outcome
	Status        JobStatus `boltholdIndex:"Status"`
	StatusMessage string    // last published status line
	Progress      float64   // percentage at finalization
	FailureReason string    // last fatal stderr line, if any

	// Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}
