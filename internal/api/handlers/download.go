package handlers

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/sirupsen/logrus"
)

// Downloader fetches subtitle files by provider file id
type Downloader interface {
	Download(ctx context.Context, fileID int64) (*models.DownloadRecord, error)
	LoggedIn() bool
}

// DownloadHandler serves subtitle files
type DownloadHandler struct {
	downloader Downloader
	logger     *logrus.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloader Downloader, logger *logrus.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloader: downloader,
		logger:     logger,
	}
}

// Handle handles GET /api/download/:id
func (h *DownloadHandler) Handle(c *fiber.Ctx) error {
	fileID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || fileID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid subtitle id"})
	}

	record, err := h.downloader.Download(c.UserContext(), fileID)
	if err != nil {
		h.logger.WithError(err).WithField("file_id", fileID).Error("Subtitle download failed")
		return providerError(c, err, h.downloader.LoggedIn())
	}

	name := record.FileName
	if name == "" {
		name = filepath.Base(record.Path)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "application/octet-stream")
	return c.Send(record.Content)
}
