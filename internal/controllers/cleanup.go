package controllers

import (
	"fmt"
	"time"

	"github.com/amaumene/grabarr/internal/models"
	"github.com/sirupsen/logrus"
)

// CleanupController prunes finished jobs from the history store
type CleanupController struct {
	db            *models.Database
	retentionDays int
	logger        *logrus.Logger
}

// NewCleanupController creates a new cleanup controller
func NewCleanupController(db *models.Database, retentionDays int, logger *logrus.Logger) *CleanupController {
	return &CleanupController{
		db:            db,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldJobs deletes finished jobs older than the retention window
func (c *CleanupController) CleanupOldJobs() error {
	cutoff := time.Now().AddDate(0, 0, -c.retentionDays)

	deleted, err := c.db.DeleteJobsBefore(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune job history: %w", err)
	}

	if deleted > 0 {
		c.logger.WithFields(logrus.Fields{
			"deleted": deleted,
			"cutoff":  cutoff.Format(time.RFC3339),
		}).Info("Pruned old jobs from history")
	}

	return nil
}
