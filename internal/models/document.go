package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentPurpose string

const (
	PurposeUpload DocumentPurpose = "upload"
	PurposeExport DocumentPurpose = "export"
)

// Document records a file written to the storage backend, either an uploaded
// resume or an exported artifact.
type Document struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SessionID        *uuid.UUID      `gorm:"type:uuid;index" json:"sessionId,omitempty"`
	Purpose          DocumentPurpose `gorm:"type:text;not null" json:"purpose"`
	OriginalFileName string          `gorm:"type:text" json:"originalFileName"`
	MimeType         string          `gorm:"type:text" json:"mimeType"`
	StorageKey       string          `gorm:"type:text" json:"storageKey"`
	SizeBytes        int64           `json:"sizeBytes"`
	CreatedAt        time.Time       `gorm:"type:timestamp;default:now()" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"type:timestamp;default:now()" json:"updatedAt"`
}

func (d *Document) TableName() string {
	return "documents"
}

type DocumentListResponse struct {
	Documents []Document `json:"documents"`
}
