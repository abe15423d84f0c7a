package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/sirupsen/logrus"
)

// CacheSizer reports how many library results are cached
type CacheSizer interface {
	CacheSize() int
}

// StatusHandler handles status requests
type StatusHandler struct {
	db     *models.Database
	cache  CacheSizer
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, cache CacheSizer, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	LibraryCacheEntries int   `json:"library_cache_entries"`
	StoredDownloads     int64 `json:"stored_downloads"`
}

// Handle handles the status endpoint
func (h *StatusHandler) Handle(c *fiber.Ctx) error {
	count, err := h.db.CountDownloads()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count downloads")
		return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(StatusResponse{
		LibraryCacheEntries: h.cache.CacheSize(),
		StoredDownloads:     count,
	})
}
