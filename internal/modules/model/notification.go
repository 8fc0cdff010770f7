package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is written as a side effect of certain mutations (project
// updated by a non-owner, supervisor added, task assigned). There is no
// read/unread lifecycle.
type Notification struct {
	ID       uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Title    string            `gorm:"type:varchar(255);not null" json:"title"`
	Content  string            `gorm:"type:text;not null" json:"content"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
