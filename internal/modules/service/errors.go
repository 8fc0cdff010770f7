package service

import "errors"

// Sentinel errors mapped onto HTTP statuses at the handler boundary.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidSupervisor   = errors.New("invalid supervisor")
	ErrDuplicateSupervisor = errors.New("supervisor already assigned")
	ErrInvalidDueDate      = errors.New("invalid due date")
)
