package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// Database wraps the gorm store
type Database struct {
	store *gorm.DB
}

// NewDatabase opens (or creates) the SQLite database at path.
// ":memory:" gives a throwaway store.
func NewDatabase(path string) (*Database, error) {
	store, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.AutoMigrate(&DownloadRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	sqlDB, err := db.store.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveDownload inserts or replaces the record for a file id
func (db *Database) SaveDownload(record *DownloadRecord) error {
	var existing DownloadRecord
	err := db.store.Where("file_id = ?", record.FileID).First(&existing).Error
	switch {
	case err == nil:
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return db.store.Save(record).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.store.Create(record).Error
	default:
		return err
	}
}

// GetDownloadByFileID retrieves a stored download by provider file id
func (db *Database) GetDownloadByFileID(fileID int64) (*DownloadRecord, error) {
	var record DownloadRecord
	err := db.store.Where("file_id = ?", fileID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetDownloadsOlderThan lists records created before cutoff
func (db *Database) GetDownloadsOlderThan(cutoff time.Time) ([]*DownloadRecord, error) {
	var records []*DownloadRecord
	err := db.store.Where("created_at < ?", cutoff).Find(&records).Error
	return records, err
}

// DeleteDownload deletes a record by primary key
func (db *Database) DeleteDownload(id uint) error {
	return db.store.Delete(&DownloadRecord{}, id).Error
}

// CountDownloads returns the number of stored downloads
func (db *Database) CountDownloads() (int64, error) {
	var count int64
	err := db.store.Model(&DownloadRecord{}).Count(&count).Error
	return count, err
}
