package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment attaches to either a project or a task, never both.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	ProjectID *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	TaskID    *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Comment <-> User
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }
