package models

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "grabarr.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestJobCRUD(t *testing.T) {
	db := newTestDatabase(t)

	job := &Job{
		RunID:   "run-1",
		URL:     "https://example.com/v",
		Quality: Quality720p,
		Status:  JobStatusRunning,
	}
	if err := db.CreateJob(job); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("expected a sequence ID to be assigned")
	}

	job.Status = JobStatusCompleted
	job.Progress = 100
	if err := db.UpdateJob(job); err != nil {
		t.Fatalf("failed to update job: %v", err)
	}

	loaded, err := db.GetJobByID(job.ID)
	if err != nil {
		t.Fatalf("failed to load job: %v", err)
	}
	if loaded.Status != JobStatusCompleted || loaded.Progress != 100 {
		t.Errorf("unexpected job after update: %+v", loaded)
	}

	byRun, err := db.GetJobByRunID("run-1")
	if err != nil {
		t.Fatalf("failed to load job by run id: %v", err)
	}
	if byRun.ID != job.ID {
		t.Errorf("expected job %d, got %d", job.ID, byRun.ID)
	}

	completed, err := db.GetJobsByStatus(JobStatusCompleted)
	if err != nil {
		t.Fatalf("failed to filter jobs: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("expected 1 completed job, got %d", len(completed))
	}

	if err := db.DeleteJob(job.ID); err != nil {
		t.Fatalf("failed to delete job: %v", err)
	}
	if _, err := db.GetJobByID(job.ID); err == nil {
		t.Error("expected lookup of deleted job to fail")
	}
}

func TestGetAllJobsNewestFirst(t *testing.T) {
	db := newTestDatabase(t)

	for _, url := range []string{"https://a", "https://b", "https://c"} {
		if err := db.CreateJob(&Job{URL: url, Status: JobStatusCompleted}); err != nil {
			t.Fatalf("failed to create job: %v", err)
		}
	}

	jobs, err := db.GetAllJobs()
	if err != nil {
		t.Fatalf("failed to list jobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	if jobs[0].URL != "https://c" || jobs[2].URL != "https://a" {
		t.Errorf("expected newest first, got %s .. %s", jobs[0].URL, jobs[2].URL)
	}
}

func TestDeleteJobsBeforeKeepsRunningJobs(t *testing.T) {
	db := newTestDatabase(t)

	old := &Job{URL: "https://old", Status: JobStatusCompleted}
	if err := db.CreateJob(old); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	stuck := &Job{URL: "https://stuck", Status: JobStatusRunning}
	if err := db.CreateJob(stuck); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}

	// Both records are newer than the cutoff below, so nothing is pruned
	deleted, err := db.DeleteJobsBefore(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected no deletions, got %d", deleted)
	}

	// With a future cutoff the finished job is pruned, the running one kept
	deleted, err = db.DeleteJobsBefore(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deletion, got %d", deleted)
	}

	if _, err := db.GetJobByID(stuck.ID); err != nil {
		t.Errorf("running job should survive pruning: %v", err)
	}
	if _, err := db.GetJobByID(old.ID); err == nil {
		t.Error("finished job should have been pruned")
	}
}
