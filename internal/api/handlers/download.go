package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amaumene/grabarr/internal/controllers"
	"github.com/amaumene/grabarr/internal/models"
	"github.com/sirupsen/logrus"
)

// DownloadHandler triggers download runs
type DownloadHandler struct {
	downloadCtrl *controllers.DownloadController
	logger       *logrus.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloadCtrl *controllers.DownloadController, logger *logrus.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloadCtrl: downloadCtrl,
		logger:       logger,
	}
}

// DownloadRequest is the trigger payload
type DownloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// DownloadResponse acknowledges an accepted run
type DownloadResponse struct {
	JobID  uint64 `json:"job_id"`
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// ServeHTTP handles the download trigger endpoint
func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WithError(err).Error("Failed to decode download payload")
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	quality, err := models.ParseQuality(payload.Quality)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job, err := h.downloadCtrl.Start(models.DownloadRequest{
		URL:     payload.URL,
		Quality: quality,
	})
	switch {
	case errors.Is(err, controllers.ErrEmptyURL):
		http.Error(w, "Please enter a URL", http.StatusBadRequest)
		return
	case errors.Is(err, controllers.ErrRunInProgress):
		http.Error(w, "A download is already in progress", http.StatusConflict)
		return
	case err != nil:
		h.logger.WithError(err).Error("Failed to start download")
		http.Error(w, "Failed to start download", http.StatusInternalServerError)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"job_id":  job.ID,
		"run_id":  job.RunID,
		"url":     job.URL,
		"quality": job.Quality,
	}).Info("Download accepted")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(DownloadResponse{
		JobID:  job.ID,
		RunID:  job.RunID,
		Status: string(job.Status),
	})
}
