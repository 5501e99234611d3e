package models

import (
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Job operations

// CreateJob creates a new job record
func (db *Database) CreateJob(job *Job) error {
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()
	return db.store.Insert(bolthold.NextSequence(), job)
}

// UpdateJob updates an existing job record
func (db *Database) UpdateJob(job *Job) error {
	job.UpdatedAt = time.Now()
	return db.store.Update(job.ID, job)
}

// GetJobByID retrieves a job by ID
func (db *Database) GetJobByID(id uint64) (*Job, error) {
	var job Job
	err := db.store.Get(id, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobByRunID retrieves a job by its run correlation id
func (db *Database) GetJobByRunID(runID string) (*Job, error) {
	var job Job
	err := db.store.FindOne(&job, bolthold.Where("RunID").Eq(runID))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetAllJobs retrieves all job records, newest first
func (db *Database) GetAllJobs() ([]*Job, error) {
	var jobs []*Job
	err := db.store.Find(&jobs, nil)
	if err != nil {
		return nil, err
	}
	// bolthold returns insertion order; newest last
	for i, j := 0, len(jobs)-1; i < j; i, j = i+1, j-1 {
		jobs[i], jobs[j] = jobs[j], jobs[i]
	}
	return jobs, nil
}

// GetJobsByStatus retrieves all jobs with a specific status
func (db *Database) GetJobsByStatus(status JobStatus) ([]*Job, error) {
	var jobs []*Job
	err := db.store.Find(&jobs, bolthold.Where("Status").Eq(status))
	return jobs, err
}

// DeleteJob deletes a job record by ID
func (db *Database) DeleteJob(id uint64) error {
	return db.store.Delete(id, &Job{})
}

// DeleteJobsBefore deletes finished jobs created before the cutoff.
// Running jobs are never pruned.
func (db *Database) DeleteJobsBefore(cutoff time.Time) (int, error) {
	var jobs []*Job
	err := db.store.Find(&jobs, bolthold.Where("CreatedAt").Lt(cutoff))
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, job := range jobs {
		if job.Status == JobStatusRunning {
			continue
		}
		if err := db.store.Delete(job.ID, &Job{}); err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}
