package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/pkg/logger"
)

// formRequest leaves squadSize nil to use the server default.
type formRequest struct {
	SquadSize     *int   `json:"squadSize" validate:"omitempty,gt=0"`
	FormationType string `json:"formationType" validate:"required"`
}

type formResponse struct {
	FormationType model.FormationType `json:"formationType"`
	SquadSize     int                 `json:"squadSize,omitempty"`
	model.FormationOutcome
}

// SquadsHandler serves formation requests and squad listings.
type SquadsHandler struct {
	deps     Dependencies
	validate *validator.Validate
	logger   logger.Logger
	maxList  int
}

// NewSquadsHandler creates a squads handler. maxList caps GET /squads.
func NewSquadsHandler(deps Dependencies, validate *validator.Validate, l logger.Logger, maxList int) *SquadsHandler {
	return &SquadsHandler{deps: deps, validate: validate, logger: logger.OrNop(l), maxList: maxList}
}

// HandleForm handles POST /squads/form.
func (h *SquadsHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(r.Context(), w, WrapKind("decode formation request", ErrBadRequest, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(r.Context(), w, WrapKind("validate formation request", ErrBadRequest, validationError(err)))
		return
	}
	ft, err := model.ParseFormationType(req.FormationType)
	if err != nil {
		h.fail(r.Context(), w, WrapKind("parse formation type", ErrBadRequest, err))
		return
	}

	freq := model.FormationRequest{FormationType: ft}
	if req.SquadSize != nil {
		freq.SquadSize = *req.SquadSize
	}
	out, err := h.deps.FormSquads(r.Context(), freq)
	if err != nil {
		h.fail(r.Context(), w, Wrap("form squads", err))
		return
	}
	writeJSON(w, http.StatusCreated, formResponse{
		FormationType:    ft,
		SquadSize:        freq.SquadSize,
		FormationOutcome: out,
	})
}

// HandleList handles GET /squads.
func (h *SquadsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	squads, err := h.deps.Squads(r.Context())
	if err != nil {
		h.fail(r.Context(), w, Wrap("list squads", err))
		return
	}
	total := len(squads)
	if h.maxList > 0 && total > h.maxList {
		squads = squads[:h.maxList]
	}
	if squads == nil {
		squads = []model.Squad{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"squads": squads, "total": total})
}

// HandleGet handles GET /squads/{id}.
func (h *SquadsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	squad, err := h.deps.Squad(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(r.Context(), w, Wrap("get squad", err))
		return
	}
	writeJSON(w, http.StatusOK, squad)
}

// HandleReset handles DELETE /squads.
func (h *SquadsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.ResetSquads(r.Context())
	if err != nil {
		h.fail(r.Context(), w, Wrap("reset squads", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func (h *SquadsHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(ctx, "squads request failed", logger.Error(err))
	}
	writeError(w, status, code, err)
}
