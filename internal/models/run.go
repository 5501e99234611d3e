package models

import "sync"

// RunSnapshot is a point-in-time copy of the run state, safe to hand to the
// presentation layer.
type RunSnapshot struct {
	Status     string  `json:"status"`
	Progress   float64 `json:"progress"`
	InProgress bool    `json:"in_progress"`
}

// RunState holds the status of the download currently in flight. It is
// mutated by the supervisor and its stream-drain goroutines and read by the
// API layer, so every access goes through the mutex.
type RunState struct {
	mu         sync.Mutex
	status     string
	progress   float64
	inProgress bool
}

// NewRunState creates a run state in the idle position
func NewRunState() *RunState {
	return &RunState{status: "Ready"}
}

// Begin resets the state for a new run and raises the in-progress flag
func (r *RunState) Begin(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.progress = 0
	r.inProgress = true
}

// SetStatus overwrites the status message without touching progress
func (r *RunState) SetStatus(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

// SetProgress overwrites the progress percentage
func (r *RunState) SetProgress(pct float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = pct
}

// Progress returns the last published percentage
func (r *RunState) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// Finish publishes a terminal status and clears the in-progress flag
func (r *RunState) Finish(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.inProgress = false
}

// FinishComplete publishes a terminal status with progress forced to 100,
// so the presentation layer never shows a stale in-between value after a
// successful run.
func (r *RunState) FinishComplete(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.progress = 100
	r.inProgress = false
}

// InProgress reports whether a run is currently in flight
func (r *RunState) InProgress() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inProgress
}

// Snapshot returns a copy of the current state
func (r *RunState) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSnapshot{
		Status:     r.status,
		Progress:   r.progress,
		InProgress: r.inProgress,
	}
}
