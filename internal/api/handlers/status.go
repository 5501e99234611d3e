package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/grabarr/internal/models"
	"github.com/sirupsen/logrus"
)

// StatusHandler reports the current run state and history counters
type StatusHandler struct {
	db     *models.Database
	state  *models.RunState
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, state *models.RunState, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		state:  state,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	Run       models.RunSnapshot `json:"run"`
	TotalJobs int                `json:"total_jobs"`
	Running   int                `json:"running"`
	Completed int                `json:"completed"`
	Warning   int                `json:"warning"`
	Failed    int                `json:"failed"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs, err := h.db.GetAllJobs()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get jobs")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		Run:       h.state.Snapshot(),
		TotalJobs: len(jobs),
	}

	for _, job := range jobs {
		switch job.Status {
		case models.JobStatusRunning:
			response.Running++
		case models.JobStatusCompleted:
			response.Completed++
		case models.JobStatusWarning:
			response.Warning++
		case models.JobStatusFailed:
			response.Failed++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
