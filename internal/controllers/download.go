package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/services/opensubtitles"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SubtitleDownloader fetches subtitle files from the provider
type SubtitleDownloader interface {
	Download(ctx context.Context, fileID int64, format string) (*opensubtitles.DownloadResult, error)
	HasCredentials() bool
}

// DownloadController manages subtitle downloads and the local copies
type DownloadController struct {
	db       *models.Database
	provider SubtitleDownloader
	tempDir  string
	format   string
	logger   *logrus.Logger
}

// NewDownloadController creates a new download controller
func NewDownloadController(db *models.Database, provider SubtitleDownloader, tempDir, format string, logger *logrus.Logger) *DownloadController {
	if format == "" {
		format = "srt"
	}
	return &DownloadController{
		db:       db,
		provider: provider,
		tempDir:  tempDir,
		format:   format,
		logger:   logger,
	}
}

// LoggedIn reports whether downloads run under a user account
func (c *DownloadController) LoggedIn() bool {
	return c.provider.HasCredentials()
}

// Download returns the subtitle for a provider file id. Stored copies are
// served without contacting the provider.
func (c *DownloadController) Download(ctx context.Context, fileID int64) (*models.DownloadRecord, error) {
	ctx, span := tracer.Start(ctx, "controllers.Download", trace.WithAttributes(
		attribute.Int64("subtitle.file_id", fileID),
	))
	defer span.End()

	record, err := c.db.GetDownloadByFileID(fileID)
	switch {
	case err == nil:
		c.logger.WithField("file_id", fileID).Debug("Serving stored subtitle")
		if err := c.ensureFile(record); err != nil {
			c.logger.WithError(err).WithField("path", record.Path).Warn("Failed to restore subtitle file")
		}
		return record, nil
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("failed to look up download: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"file_id": fileID,
		"format":  c.format,
	}).Info("Downloading subtitle")

	result, err := c.provider.Download(ctx, fileID, c.format)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to download subtitle %d: %w", fileID, err)
	}

	record = &models.DownloadRecord{
		FileID:   fileID,
		FileName: result.FileName,
		Format:   c.format,
		Path:     filepath.Join(c.tempDir, fmt.Sprintf("%s.%s", uuid.NewString(), c.format)),
		Content:  result.Content,
		Size:     len(result.Content),
	}
	if err := c.ensureFile(record); err != nil {
		return nil, err
	}
	if err := c.db.SaveDownload(record); err != nil {
		c.logger.WithError(err).Error("Failed to save download record")
	}

	c.logger.WithFields(logrus.Fields{
		"file_id":   fileID,
		"path":      record.Path,
		"size":      record.Size,
		"remaining": result.Remaining,
	}).Info("Subtitle downloaded")

	return record, nil
}

// ensureFile writes the record's content to its path if it is missing
func (c *DownloadController) ensureFile(record *models.DownloadRecord) error {
	if _, err := os.Stat(record.Path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(record.Path), 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	if err := os.WriteFile(record.Path, record.Content, 0644); err != nil {
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return nil
}
