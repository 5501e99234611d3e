package scheduler

import (
	"fmt"

	"github.com/amaumene/grabarr/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages scheduled maintenance tasks
type Scheduler struct {
	cron        *cron.Cron
	cleanupCtrl *controllers.CleanupController
	logger      *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(cleanupCtrl *controllers.CleanupController, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		cleanupCtrl: cleanupCtrl,
		logger:      logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every hour: prune old jobs from the history store
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to add cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Run initial cleanup immediately
	go s.runCleanup()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runCleanup executes the history pruning job
func (s *Scheduler) runCleanup() {
	s.logger.Debug("Running scheduled job history cleanup")

	if err := s.cleanupCtrl.CleanupOldJobs(); err != nil {
		s.logger.WithError(err).Error("Cleanup job failed")
	}
}
