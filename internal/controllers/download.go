package controllers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/amaumene/grabarr/internal/models"
	"github.com/amaumene/grabarr/internal/services/ytdlp"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyURL is returned when a download is requested without a URL
	ErrEmptyURL = errors.New("no URL provided")
	// ErrRunInProgress is returned when a download is requested while
	// another one is still running
	ErrRunInProgress = errors.New("a download is already in progress")
)

// fatalMarker is the substring yt-dlp prints on stderr for fatal failures
const fatalMarker = "ERROR"

// DownloadController supervises one yt-dlp subprocess at a time: it spawns
// the process, drains both output streams concurrently, publishes progress
// into the shared run state and finalizes the job record on exit.
type DownloadController struct {
	db     *models.Database
	runner ytdlp.Runner
	state  *models.RunState
	logger *logrus.Logger

	mu     sync.Mutex
	active bool
}

// NewDownloadController creates a new download controller
func NewDownloadController(db *models.Database, runner ytdlp.Runner, state *models.RunState, logger *logrus.Logger) *DownloadController {
	return &DownloadController{
		db:     db,
		runner: runner,
		state:  state,
		logger: logger,
	}
}

// Start validates the request and launches the supervising goroutine.
// Concurrent runs are rejected; a second request while one is in flight
// returns ErrRunInProgress.
func (c *DownloadController) Start(req models.DownloadRequest) (*models.Job, error) {
	if strings.TrimSpace(req.URL) == "" {
		// Do not clobber the status of a run already in flight
		if !c.state.InProgress() {
			c.state.SetStatus("Please enter a URL")
		}
		return nil, ErrEmptyURL
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return nil, ErrRunInProgress
	}
	c.active = true
	c.mu.Unlock()

	c.state.Begin("Starting download...")

	job := &models.Job{
		RunID:         uuid.New().String(),
		URL:           req.URL,
		Quality:       req.Quality,
		Status:        models.JobStatusRunning,
		StatusMessage: "Starting download...",
	}
	if err := c.db.CreateJob(job); err != nil {
		c.state.Finish(fmt.Sprintf("Failed to record job: %v", err))
		c.release()
		return nil, fmt.Errorf("failed to create job record: %w", err)
	}

	go c.supervise(job)

	return job, nil
}

// supervise runs the whole subprocess lifecycle for one job. It must be the
// only writer that ever clears the in-progress flag, and it does so exactly
// once per terminal branch.
func (c *DownloadController) supervise(job *models.Job) {
	log := c.logger.WithFields(logrus.Fields{
		"run_id":  job.RunID,
		"url":     job.URL,
		"quality": job.Quality,
	})
	log.Info("Starting download")

	proc, err := c.runner.Start(context.Background(), job.URL, job.Quality.FormatExpr())
	if err != nil {
		log.WithError(err).Error("Failed to start yt-dlp")
		c.finalize(job, models.JobStatusFailed, fmt.Sprintf("Failed to start yt-dlp: %v", err), false)
		return
	}

	c.state.SetStatus("Downloading...")

	// Both streams are drained concurrently; the child can deadlock on a
	// full pipe buffer if either reader falls away.
	var lastFatal string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.drainStdout(proc.Stdout())
	}()
	go func() {
		defer wg.Done()
		lastFatal = drainStderr(proc.Stderr())
	}()
	wg.Wait()

	err = proc.Wait()

	var exitErr *ytdlp.ExitError
	switch {
	case err == nil:
		log.Info("Download completed")
		c.finalize(job, models.JobStatusCompleted, "Download complete!", true)
	case errors.As(err, &exitErr):
		if lastFatal != "" {
			log.WithField("reason", lastFatal).Error("Download failed")
			job.FailureReason = lastFatal
			c.finalize(job, models.JobStatusFailed, "Download failed: "+lastFatal, false)
		} else {
			// yt-dlp post-processing steps can exit non-zero without
			// printing an ERROR line; treated as a soft success
			log.WithField("exit_code", exitErr.Code).Warn("Download exited non-zero without a fatal error line")
			c.finalize(job, models.JobStatusWarning, "Download completed with warnings", true)
		}
	default:
		log.WithError(err).Error("Failed to wait for yt-dlp")
		c.finalize(job, models.JobStatusFailed, fmt.Sprintf("Process error: %v", err), false)
	}
}

// drainStdout feeds every stdout line to the progress parser and the phase
// matcher, publishing hits into the run state.
func (c *DownloadController) drainStdout(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if pct, ok := ytdlp.ParseProgress(line); ok {
			c.state.SetProgress(pct)
		}
		if status, ok := ytdlp.PhaseStatus(line); ok {
			c.state.SetStatus(status)
		}
	}
}

// drainStderr consumes stderr to completion and returns the last line
// carrying the fatal marker, if any.
func drainStderr(r io.Reader) string {
	var lastFatal string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, fatalMarker) {
			lastFatal = line
		}
	}
	return lastFatal
}

// finalize publishes the terminal status, persists the job outcome and
// releases the single-run slot. forceFull pins progress to 100 so the
// presentation layer cannot show a stale in-between value.
func (c *DownloadController) finalize(job *models.Job, status models.JobStatus, message string, forceFull bool) {
	progress := c.state.Progress()
	if forceFull {
		progress = 100
	}

	job.Status = status
	job.StatusMessage = message
	job.Progress = progress
	now := time.Now()
	job.CompletedAt = &now

	// Persist the outcome before clearing the in-progress flag so an
	// observer that sees the flag drop always finds a finalized record.
	if err := c.db.UpdateJob(job); err != nil {
		c.logger.WithError(err).Error("Failed to update job record")
	}

	if forceFull {
		c.state.FinishComplete(message)
	} else {
		c.state.Finish(message)
	}

	c.release()
}

func (c *DownloadController) release() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}
