package model

import (
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	DueDate   time.Time `gorm:"not null" json:"due_date"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Milestone) TableName() string { return "milestones" }
