package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeProjectStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback ProjectStatus
		expected ProjectStatus
	}{
		{"valid status preserved", "TERMINE", ProjectEnCours, ProjectTermine},
		{"valid annule preserved", "ANNULE", ProjectEnCours, ProjectAnnule},
		{"invalid status replaced", "BOGUS", ProjectEnCours, ProjectEnCours},
		{"empty status replaced", "", ProjectEnCours, ProjectEnCours},
		{"invalid status keeps existing fallback", "BOGUS", ProjectAnnule, ProjectAnnule},
		{"lowercase is not valid", "termine", ProjectEnCours, ProjectEnCours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeProjectStatus(tt.input, tt.fallback))
		})
	}
}

func TestNormalizeTaskStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback TaskStatus
		expected TaskStatus
	}{
		{"valid status preserved", "EN_RETARD", TaskPendant, TaskEnRetard},
		{"invalid status replaced", "DONE", TaskPendant, TaskPendant},
		{"empty status replaced", "", TaskPendant, TaskPendant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTaskStatus(tt.input, tt.fallback))
		})
	}
}

func TestValidTaskStatus(t *testing.T) {
	assert.True(t, ValidTaskStatus("PENDANT"))
	assert.True(t, ValidTaskStatus("EN_COURS"))
	assert.False(t, ValidTaskStatus(""))
	assert.False(t, ValidTaskStatus("WHATEVER"))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("ADMIN"))
	assert.Equal(t, RoleEncadrant, ParseRole("ENCADRANT"))
	assert.Equal(t, RoleEtudiant, ParseRole(""))
	assert.Equal(t, RoleEtudiant, ParseRole("superuser"))
}

func TestProjectAccess(t *testing.T) {
	owner := CurrentUser{ID: uuid.New(), Role: RoleEtudiant}
	supervisor := CurrentUser{ID: uuid.New(), Role: RoleEncadrant}
	admin := CurrentUser{ID: uuid.New(), Role: RoleAdmin}
	stranger := CurrentUser{ID: uuid.New(), Role: RoleEtudiant}

	p := Project{
		ID:      uuid.New(),
		OwnerID: owner.ID,
		Supervisors: []ProjectSupervisor{
			{SupervisorID: supervisor.ID},
		},
	}

	assert.True(t, p.CanAccess(owner))
	assert.True(t, p.CanAccess(supervisor))
	assert.True(t, p.CanAccess(admin))
	assert.False(t, p.CanAccess(stranger))

	assert.True(t, p.CanDelete(owner))
	assert.True(t, p.CanDelete(admin))
	assert.False(t, p.CanDelete(supervisor))
	assert.False(t, p.CanDelete(stranger))
}
