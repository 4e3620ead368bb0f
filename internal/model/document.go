package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document stores metadata for an uploaded file; the bytes live on disk
// under the configured upload directory.
type Document struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	FileName    string     `gorm:"type:varchar(255);not null" json:"file_name"`
	StoredPath  string     `gorm:"type:varchar(512);not null" json:"-"`
	ContentType string     `gorm:"type:varchar(100)" json:"content_type"`
	SizeBytes   int64      `gorm:"type:bigint" json:"size_bytes"`
	UploadedBy  *uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (d *Document) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
