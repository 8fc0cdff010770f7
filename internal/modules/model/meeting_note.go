package model

import (
	"time"

	"github.com/google/uuid"
)

type MeetingNote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Date      time.Time `gorm:"not null" json:"date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MeetingNote) TableName() string { return "meeting_notes" }
