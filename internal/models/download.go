package models

import "time"

// DownloadRecord stores a downloaded subtitle payload keyed by provider file id
type DownloadRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FileID    int64     `gorm:"uniqueIndex;not null" json:"file_id"`
	FileName  string    `json:"file_name"`
	Format    string    `json:"format"`
	Path      string    `json:"path"`
	Content   []byte    `json:"-"`
	Size      int       `json:"size"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
