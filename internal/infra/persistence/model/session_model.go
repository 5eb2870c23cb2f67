package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'user_sessions' table. The token is the lookup
// key; created_at carries the age used by the lazy expiry check.
type SessionModel struct {
	Token     string    `gorm:"type:varchar(64);primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "user_sessions"
}
