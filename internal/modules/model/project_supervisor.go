package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectSupervisor links an ENCADRANT to a project. Pair uniqueness is only
// guarded by a pre-insert existence check, not a database constraint;
// concurrent duplicate adds can both pass the check.
type ProjectSupervisor struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID    uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	SupervisorID uuid.UUID `gorm:"type:uuid;not null;index" json:"supervisor_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// ProjectSupervisor <-> User
	Supervisor *User `gorm:"foreignKey:SupervisorID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"supervisor,omitempty"`
}

func (ProjectSupervisor) TableName() string { return "project_supervisors" }
