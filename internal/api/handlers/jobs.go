package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/grabarr/internal/models"
	"github.com/sirupsen/logrus"
)

// JobsHandler serves the download history
type JobsHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(db *models.Database, logger *logrus.Logger) *JobsHandler {
	return &JobsHandler{
		db:     db,
		logger: logger,
	}
}

// ServeHTTP handles the job history endpoint. An optional ?status= query
// filters by job status.
func (h *JobsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		jobs []*models.Job
		err  error
	)

	if status := r.URL.Query().Get("status"); status != "" {
		jobs, err = h.db.GetJobsByStatus(models.JobStatus(status))
	} else {
		jobs, err = h.db.GetAllJobs()
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get jobs")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if jobs == nil {
		jobs = []*models.Job{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}
