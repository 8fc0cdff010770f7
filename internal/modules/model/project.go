package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(16);not null;default:'EN_COURS'" json:"status"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> User (owner, immutable after creation)
	Owner *User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"owner,omitempty"`

	// Project <-> ProjectSupervisor
	Supervisors []ProjectSupervisor `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"supervisors,omitempty"`

	// Project <-> Task
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"tasks,omitempty"`

	// Project <-> Comment
	Comments []Comment `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"comments,omitempty"`

	// Project <-> Document
	Documents []Document `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"documents,omitempty"`

	// Project <-> MeetingNote
	MeetingNotes []MeetingNote `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"meeting_notes,omitempty"`

	// Project <-> Milestone
	Milestones []Milestone `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"milestones,omitempty"`
}

func (Project) TableName() string { return "projects" }

// IsSupervisor reports whether userID appears in the loaded supervisor set.
// Supervisors must be preloaded by the caller.
func (p *Project) IsSupervisor(userID uuid.UUID) bool {
	for _, s := range p.Supervisors {
		if s.SupervisorID == userID {
			return true
		}
	}
	return false
}

// CanAccess implements the read/update rule: ADMIN, owner, or a listed
// supervisor.
func (p *Project) CanAccess(u CurrentUser) bool {
	return u.Role == RoleAdmin || p.OwnerID == u.ID || p.IsSupervisor(u.ID)
}

// CanDelete is stricter: supervisors cannot delete.
func (p *Project) CanDelete(u CurrentUser) bool {
	return u.Role == RoleAdmin || p.OwnerID == u.ID
}
