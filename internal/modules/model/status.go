package model

// Role is the account role carried by every user. The authorization guard
// compares roles by strict equality: ADMIN does not implicitly satisfy a
// check for ENCADRANT.
type Role string

const (
	RoleEtudiant  Role = "ETUDIANT"
	RoleEncadrant Role = "ENCADRANT"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole maps a raw string onto a known role. Unknown input yields
// ETUDIANT, mirroring the registration default.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleEtudiant, RoleEncadrant, RoleAdmin:
		return Role(s)
	}
	return RoleEtudiant
}

type ProjectStatus string

const (
	ProjectEnCours ProjectStatus = "EN_COURS"
	ProjectTermine ProjectStatus = "TERMINE"
	ProjectAnnule  ProjectStatus = "ANNULE"
)

type TaskStatus string

const (
	TaskPendant TaskStatus = "PENDANT"
	TaskEnCours TaskStatus = "EN_COURS"
	TaskTermine TaskStatus = "TERMINE"
	TaskEnRetard TaskStatus = "EN_RETARD"
)

// NormalizeProjectStatus returns input when it names a valid project status
// and fallback otherwise. Invalid client-supplied statuses are deliberately
// replaced, never rejected.
func NormalizeProjectStatus(input string, fallback ProjectStatus) ProjectStatus {
	switch ProjectStatus(input) {
	case ProjectEnCours, ProjectTermine, ProjectAnnule:
		return ProjectStatus(input)
	}
	return fallback
}

// NormalizeTaskStatus is the task-side counterpart of NormalizeProjectStatus.
func NormalizeTaskStatus(input string, fallback TaskStatus) TaskStatus {
	switch TaskStatus(input) {
	case TaskPendant, TaskEnCours, TaskTermine, TaskEnRetard:
		return TaskStatus(input)
	}
	return fallback
}

// ValidTaskStatus reports whether input names a task status. Used by list
// filters, which silently drop invalid filters instead of normalizing them.
func ValidTaskStatus(input string) bool {
	return NormalizeTaskStatus(input, "") != ""
}

// ValidProjectStatus reports whether input names a project status.
func ValidProjectStatus(input string) bool {
	return NormalizeProjectStatus(input, "") != ""
}
