package api

import (
	"errors"
	"fmt"
	"net/http"

	repository "github.com/okian/squads/internal/adapters/repository"
	service "github.com/okian/squads/internal/app"
	"github.com/okian/squads/internal/domain/formation"
)

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("http serve failed")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)

// kindError tags an operation error with a sentinel kind.
type kindError struct {
	op   string
	kind error
	err  error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.err)
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// WrapKind wraps err for op and tags it with kind. Both remain reachable via errors.Is.
func WrapKind(op string, kind, err error) error {
	return &kindError{op: op, kind: kind, err: err}
}

// Wrap prefixes err with op. Store conflicts are tagged with ErrConflict.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicateParticipant) || errors.Is(err, repository.ErrAlreadyAssigned) {
		return WrapKind(op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// statusFor maps domain and API errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, formation.ErrInvalidRequest),
		errors.Is(err, repository.ErrInvalidParticipant):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, formation.ErrNoEligibleParticipants):
		return http.StatusConflict, "no_eligible_participants"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, formation.ErrResourceLimitExceeded):
		return http.StatusRequestEntityTooLarge, "resource_limit_exceeded"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
