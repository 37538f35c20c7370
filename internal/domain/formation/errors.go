package formation

import (
	"errors"

	"github.com/okian/squads/internal/domain/skills"
)

// Sentinel error kinds returned by the engine.
var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrNoEligibleParticipants = errors.New("no eligible participants")
	ErrProcessingFailure      = errors.New("processing failure")
	ErrResourceLimitExceeded  = errors.New("resource limit exceeded")

	// ErrTaxonomyUnavailable aliases the skills error so callers can match either.
	ErrTaxonomyUnavailable = skills.ErrTaxonomyUnavailable
)
