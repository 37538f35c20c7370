// Package repository stores participants and the squads formed from them.
package repository

import (
	"context"
	"time"

	"github.com/okian/squads/internal/domain/model"
)

// ParticipantRecord is a participant plus the bookkeeping the store keeps for it.
type ParticipantRecord struct {
	model.Participant
	Status       model.AttendanceStatus
	SquadID      string // empty until assigned
	RegisteredAt time.Time
}

// Eligible reports whether the participant can be placed in a new squad.
func (r ParticipantRecord) Eligible() bool {
	return r.Status == model.StatusPresent && r.SquadID == ""
}

// Store provides read/write access to participants and squads.
type Store interface {
	// AddParticipant registers p. An empty id is replaced by a generated one.
	// Returns ErrDuplicateParticipant if the id is taken.
	AddParticipant(ctx context.Context, p model.Participant, status model.AttendanceStatus) (ParticipantRecord, error)

	// GetParticipant returns ErrNotFound if the id is unknown.
	GetParticipant(ctx context.Context, id string) (ParticipantRecord, error)

	// ListParticipants returns every participant in registration order.
	ListParticipants(ctx context.Context) ([]ParticipantRecord, error)

	// SetStatus updates attendance. Returns ErrNotFound if the id is unknown.
	SetStatus(ctx context.Context, id string, status model.AttendanceStatus) (ParticipantRecord, error)

	// Eligible returns present participants not yet in a squad, in registration order.
	Eligible(ctx context.Context) ([]model.Participant, error)

	// SaveSquads persists a partition as new squads named "Squad N", continuing
	// the existing numbering. All members must be known and unassigned; on any
	// violation nothing is saved.
	SaveSquads(ctx context.Context, partition model.Partition, formationType model.FormationType) ([]model.Squad, error)

	// Squads returns squads in creation order.
	Squads(ctx context.Context) ([]model.Squad, error)

	// Squad returns ErrNotFound if the id is unknown.
	Squad(ctx context.Context, id string) (model.Squad, error)

	// ResetSquads deletes all squads and frees their members. Returns how many were removed.
	ResetSquads(ctx context.Context) (int, error)

	// Count returns the number of registered participants.
	Count(ctx context.Context) int

	// SquadCount returns the number of persisted squads.
	SquadCount(ctx context.Context) int
}
