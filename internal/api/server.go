package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/api/handlers"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/api/middleware"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/config"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	app    *fiber.App
	addr   string
	logger *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	db *models.Database,
	cache handlers.CacheSizer,
	searcher handlers.Searcher,
	downloader handlers.Downloader,
	gatherer prometheus.Gatherer,
	logger *logrus.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "opensubtitles-com",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           60 * time.Second,
	})
	app.Use(middleware.Logging(logger))

	s := &Server{
		app:    app,
		addr:   ":" + cfg.ServerPort,
		logger: logger,
	}

	// Health check
	app.Get("/health", handlers.NewHealthHandler(logger).Handle)

	// Status endpoint
	app.Get("/status", handlers.NewStatusHandler(db, cache, logger).Handle)

	// Subtitles
	search := handlers.NewSearchHandler(searcher, logger)
	app.Get("/api/search", search.Search)
	app.Get("/api/resolve", search.Resolve)
	app.Get("/api/download/:id", handlers.NewDownloadHandler(downloader, logger).Handle)

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return s
}

// Start starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(s.addr); err != nil {
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
	return s.app.ShutdownWithContext(shutdownCtx)
}
