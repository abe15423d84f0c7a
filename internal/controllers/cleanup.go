package controllers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/models"
	"github.com/sirupsen/logrus"
)

// CleanupController prunes stored downloads and their temp files
type CleanupController struct {
	db        *models.Database
	retention time.Duration
	now       func() time.Time
	logger    *logrus.Logger
}

// NewCleanupController creates a new cleanup controller
func NewCleanupController(db *models.Database, retentionHours int, logger *logrus.Logger) *CleanupController {
	return &CleanupController{
		db:        db,
		retention: time.Duration(retentionHours) * time.Hour,
		now:       time.Now,
		logger:    logger,
	}
}

// PruneDownloads removes downloads older than the retention window
func (c *CleanupController) PruneDownloads(ctx context.Context) (int, error) {
	cutoff := c.now().Add(-c.retention)

	records, err := c.db.GetDownloadsOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list old downloads: %w", err)
	}

	pruned := 0
	for _, record := range records {
		if ctx.Err() != nil {
			return pruned, ctx.Err()
		}

		if err := os.Remove(record.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.WithError(err).WithField("path", record.Path).Warn("Failed to remove subtitle file")
		}
		if err := c.db.DeleteDownload(record.ID); err != nil {
			c.logger.WithError(err).WithField("file_id", record.FileID).Error("Failed to delete download record")
			continue
		}
		pruned++
	}

	c.logger.WithFields(logrus.Fields{
		"pruned": pruned,
		"cutoff": cutoff.Format(time.RFC3339),
	}).Info("Download cleanup completed")
	return pruned, nil
}

// ResetTempDir empties the temp directory, creating it if needed
func ResetTempDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear temp directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	return nil
}
