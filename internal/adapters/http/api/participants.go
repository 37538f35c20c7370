package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/squads/internal/adapters/repository"
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/pkg/logger"
)

type createParticipantRequest struct {
	ID     string  `json:"id" validate:"omitempty,max=128"`
	Name   string  `json:"name" validate:"required,max=256"`
	Skills *string `json:"skills" validate:"omitempty,max=4096"`
	Status string  `json:"status"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type participantResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Skills       *string   `json:"skills"`
	Status       string    `json:"status"`
	SquadID      string    `json:"squadId,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func toParticipantResponse(rec repository.ParticipantRecord) participantResponse {
	return participantResponse{
		ID:           rec.ID,
		Name:         rec.Name,
		Skills:       rec.SkillsRaw,
		Status:       string(rec.Status),
		SquadID:      rec.SquadID,
		RegisteredAt: rec.RegisteredAt,
	}
}

// ParticipantsHandler serves participant registration and attendance.
type ParticipantsHandler struct {
	deps     Dependencies
	validate *validator.Validate
	logger   logger.Logger
}

// NewParticipantsHandler creates a participants handler.
func NewParticipantsHandler(deps Dependencies, validate *validator.Validate, l logger.Logger) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps, validate: validate, logger: logger.OrNop(l)}
}

// HandleCreate handles POST /participants.
func (h *ParticipantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createParticipantRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(r.Context(), w, WrapKind("decode participant", ErrBadRequest, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(r.Context(), w, WrapKind("validate participant", ErrBadRequest, validationError(err)))
		return
	}
	status, err := model.ParseAttendanceStatus(req.Status)
	if err != nil {
		h.fail(r.Context(), w, WrapKind("parse status", ErrBadRequest, err))
		return
	}

	rec, err := h.deps.RegisterParticipant(r.Context(), model.Participant{
		ID:        req.ID,
		Name:      req.Name,
		SkillsRaw: req.Skills,
	}, status)
	if err != nil {
		h.fail(r.Context(), w, Wrap("register participant", err))
		return
	}
	writeJSON(w, http.StatusCreated, toParticipantResponse(rec))
}

// HandleList handles GET /participants.
func (h *ParticipantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.deps.Participants(r.Context())
	if err != nil {
		h.fail(r.Context(), w, Wrap("list participants", err))
		return
	}
	out := make([]participantResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toParticipantResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"participants": out, "total": len(out)})
}

// HandleSetStatus handles PUT /participants/{id}/status.
func (h *ParticipantsHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(r.Context(), w, WrapKind("decode status", ErrBadRequest, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(r.Context(), w, WrapKind("validate status", ErrBadRequest, validationError(err)))
		return
	}
	status, err := model.ParseAttendanceStatus(req.Status)
	if err != nil {
		h.fail(r.Context(), w, WrapKind("parse status", ErrBadRequest, err))
		return
	}

	rec, err := h.deps.SetAttendance(r.Context(), r.PathValue("id"), status)
	if err != nil {
		h.fail(r.Context(), w, Wrap("set attendance", err))
		return
	}
	writeJSON(w, http.StatusOK, toParticipantResponse(rec))
}

func (h *ParticipantsHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(ctx, "participants request failed", logger.Error(err))
	}
	writeError(w, status, code, err)
}
