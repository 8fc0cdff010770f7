package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is a reference to an externally hosted file. The service stores
// no blobs itself.
type Document struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	URL       string     `gorm:"type:text;not null" json:"url"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	TaskID    *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Document) TableName() string { return "documents" }
