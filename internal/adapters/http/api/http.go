// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	repository "github.com/okian/squads/internal/adapters/repository"
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/pkg/logger"
)

const defaultMaxSquadsListed = 1000

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RegisterParticipant(ctx context.Context, p model.Participant, status model.AttendanceStatus) (repository.ParticipantRecord, error)
	SetAttendance(ctx context.Context, id string, status model.AttendanceStatus) (repository.ParticipantRecord, error)
	Participants(ctx context.Context) ([]repository.ParticipantRecord, error)

	// FormSquads partitions all eligible participants and persists the squads.
	FormSquads(ctx context.Context, req model.FormationRequest) (model.FormationOutcome, error)
	Squads(ctx context.Context) ([]model.Squad, error)
	Squad(ctx context.Context, id string) (model.Squad, error)
	ResetSquads(ctx context.Context) (int, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	participantsHandler *ParticipantsHandler
	squadsHandler       *SquadsHandler

	maxSquadsListed int
	logger          logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxSquadsListed caps how many squads GET /squads returns.
func WithMaxSquadsListed(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSquadsListed = n
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxSquadsListed: defaultMaxSquadsListed,
		logger:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	validate := newValidator()
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.participantsHandler = NewParticipantsHandler(deps, validate, s.logger)
	s.squadsHandler = NewSquadsHandler(deps, validate, s.logger, s.maxSquadsListed)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /participants", MetricsMiddleware(s.participantsHandler.HandleCreate, "participants"))
	mux.HandleFunc("GET /participants", MetricsMiddleware(s.participantsHandler.HandleList, "participants"))
	mux.HandleFunc("PUT /participants/{id}/status", MetricsMiddleware(s.participantsHandler.HandleSetStatus, "participant_status"))

	mux.HandleFunc("POST /squads/form", MetricsMiddleware(s.squadsHandler.HandleForm, "squads_form"))
	mux.HandleFunc("GET /squads", MetricsMiddleware(s.squadsHandler.HandleList, "squads"))
	mux.HandleFunc("DELETE /squads", MetricsMiddleware(s.squadsHandler.HandleReset, "squads"))
	mux.HandleFunc("GET /squads/{id}", MetricsMiddleware(s.squadsHandler.HandleGet, "squad"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON decodes a single JSON object and rejects unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
