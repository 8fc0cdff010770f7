package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(16);not null;default:'PENDANT'" json:"status"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	Priority    int        `gorm:"not null;default:1" json:"priority"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`

	// Task <-> TaskAssignment
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"assignments,omitempty"`

	// Task <-> Comment
	Comments []Comment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"comments,omitempty"`

	// Task <-> Document
	Documents []Document `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"documents,omitempty"`
}

func (Task) TableName() string { return "tasks" }

type TaskAssignment struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// TaskAssignment <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"user,omitempty"`
}

func (TaskAssignment) TableName() string { return "task_assignments" }
