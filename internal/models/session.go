package models

import (
	"time"

	"github.com/google/uuid"
)

// Session holds the working draft of one user session. It expires after the
// configured TTL and is purged by the session janitor.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Resume    *Resume    `gorm:"type:jsonb;serializer:json" json:"resume"`
	AtsResult *AtsResult `gorm:"type:jsonb;serializer:json" json:"atsResult"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
