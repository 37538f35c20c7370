package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrInvalidParticipant   = errors.New("invalid participant")
	ErrAlreadyAssigned      = errors.New("participant already assigned to a squad")
)
