package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/grabarr/internal/api/handlers"
	"github.com/amaumene/grabarr/internal/api/middleware"
	"github.com/amaumene/grabarr/internal/config"
	"github.com/amaumene/grabarr/internal/controllers"
	"github.com/amaumene/grabarr/internal/models"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server the front-end polls
type Server struct {
	server       *http.Server
	db           *models.Database
	state        *models.RunState
	downloadCtrl *controllers.DownloadController
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, state *models.RunState, downloadCtrl *controllers.DownloadController, logger *logrus.Logger) *Server {
	s := &Server{
		db:           db,
		state:        state,
		downloadCtrl: downloadCtrl,
		logger:       logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// Health check
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	// Run state + history counters, polled by the front-end
	statusHandler := handlers.NewStatusHandler(s.db, s.state, s.logger)
	mux.HandleFunc("/status", statusHandler.ServeHTTP)

	// Download trigger
	downloadHandler := handlers.NewDownloadHandler(s.downloadCtrl, s.logger)
	mux.HandleFunc("/api/download", downloadHandler.ServeHTTP)

	// Job history
	jobsHandler := handlers.NewJobsHandler(s.db, s.logger)
	mux.HandleFunc("/api/jobs", jobsHandler.ServeHTTP)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
