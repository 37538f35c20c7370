// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	repository "github.com/okian/squads/internal/adapters/repository"
	"github.com/okian/squads/internal/domain/formation"
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
	"github.com/okian/squads/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxParticipants = 5000
	defaultSquadSize       = 4
	defaultNormalizerCache = 4096
)

// Service implements the API dependencies for squad formation.
type Service struct {
	mu sync.RWMutex

	// formMu serializes formations so two runs never see the same eligible pool.
	formMu sync.Mutex

	// Core components
	store     repository.Store
	ownsStore bool
	engine    *formation.Engine

	// Configuration
	maxParticipants  int
	seed             int64
	taxonomy         *taxonomy.Taxonomy
	cacheSize        int
	defaultSquadSize int

	// State
	started    bool
	formations atomic.Int64
	fallbacks  atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxParticipants:  defaultMaxParticipants,
		cacheSize:        defaultNormalizerCache,
		defaultSquadSize: defaultSquadSize,
		logger:           nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store and the formation engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting squads service...")

	if s.taxonomy == nil {
		s.taxonomy = taxonomy.Default()
	}
	if s.engine == nil {
		engine, err := formation.NewEngine(
			formation.WithTaxonomy(s.taxonomy),
			formation.WithMaxParticipants(s.maxParticipants),
			formation.WithSeed(s.seed),
			formation.WithNormalizerCacheSize(s.cacheSize),
			formation.WithLogger(s.logger.Named("formation")),
		)
		if err != nil {
			return fmt.Errorf("create formation engine: %w", err)
		}
		s.engine = engine
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx)
		s.ownsStore = true
	}

	s.started = true
	s.logger.Info(ctx, "squads service started",
		logger.Int("maxParticipants", s.maxParticipants),
		logger.Int("defaultSquadSize", s.defaultSquadSize),
		logger.Int("categories", s.engine.Taxonomy().Len()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping squads service...")

	if s.ownsStore {
		if closer, ok := s.store.(interface{ Close() }); ok {
			closer.Close()
		}
		s.store = nil
		s.ownsStore = false
	}

	s.started = false
	s.logger.Info(context.Background(), "squads service stopped")
}

func (s *Service) components() (repository.Store, *formation.Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.engine, nil
}

// RegisterParticipant adds a participant to the store.
func (s *Service) RegisterParticipant(ctx context.Context, p model.Participant, status model.AttendanceStatus) (repository.ParticipantRecord, error) {
	store, _, err := s.components()
	if err != nil {
		return repository.ParticipantRecord{}, err
	}
	rec, err := store.AddParticipant(ctx, p, status)
	if err != nil {
		return repository.ParticipantRecord{}, err
	}
	s.logger.Debug(ctx, "participant registered",
		logger.String("id", rec.ID),
		logger.String("status", string(rec.Status)))
	return rec, nil
}

// SetAttendance updates a participant's attendance status.
func (s *Service) SetAttendance(ctx context.Context, id string, status model.AttendanceStatus) (repository.ParticipantRecord, error) {
	store, _, err := s.components()
	if err != nil {
		return repository.ParticipantRecord{}, err
	}
	return store.SetStatus(ctx, id, status)
}

// Participants lists participants in registration order.
func (s *Service) Participants(ctx context.Context) ([]repository.ParticipantRecord, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.ListParticipants(ctx)
}

// FormSquads partitions every eligible participant and persists the squads.
// A zero SquadSize uses the configured default.
func (s *Service) FormSquads(ctx context.Context, req model.FormationRequest) (model.FormationOutcome, error) {
	store, engine, err := s.components()
	if err != nil {
		return model.FormationOutcome{}, err
	}
	if req.SquadSize == 0 {
		req.SquadSize = s.defaultSquadSize
	}

	s.formMu.Lock()
	defer s.formMu.Unlock()

	eligible, err := store.Eligible(ctx)
	if err != nil {
		return model.FormationOutcome{}, fmt.Errorf("load eligible participants: %w", err)
	}

	res, err := engine.Form(ctx, eligible, req)
	if err != nil {
		return model.FormationOutcome{}, err
	}

	squads, err := store.SaveSquads(ctx, res.Squads, req.FormationType)
	if err != nil {
		return model.FormationOutcome{}, fmt.Errorf("save squads: %w", err)
	}

	s.formations.Add(1)
	if res.FellBack {
		s.fallbacks.Add(1)
	}
	s.logger.Info(ctx, "squads formed",
		logger.String("type", req.FormationType.String()),
		logger.Int("squadSize", req.SquadSize),
		logger.Int("participants", len(eligible)),
		logger.Int("squads", len(squads)),
		logger.Bool("fallback", res.FellBack),
	)
	return model.FormationOutcome{
		Squads:     squads,
		FellBack:   res.FellBack,
		Reassigned: res.Reassigned,
		Coverage:   res.Coverage,
	}, nil
}

// Squads lists persisted squads in creation order.
func (s *Service) Squads(ctx context.Context) ([]model.Squad, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.Squads(ctx)
}

// Squad returns one squad by id.
func (s *Service) Squad(ctx context.Context, id string) (model.Squad, error) {
	store, _, err := s.components()
	if err != nil {
		return model.Squad{}, err
	}
	return store.Squad(ctx, id)
}

// ResetSquads removes all squads and frees their members.
func (s *Service) ResetSquads(ctx context.Context) (int, error) {
	store, _, err := s.components()
	if err != nil {
		return 0, err
	}

	s.formMu.Lock()
	defer s.formMu.Unlock()

	n, err := store.ResetSquads(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "squads reset", logger.Int("removed", n))
	return n, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"maxParticipants":  s.maxParticipants,
		"defaultSquadSize": s.defaultSquadSize,
		"formations":       s.formations.Load(),
		"fallbacks":        s.fallbacks.Load(),
	}

	if s.started {
		participants := s.store.Count(ctx)
		squads := s.store.SquadCount(ctx)
		stats["participants"] = participants
		stats["squads"] = squads
		stats["categories"] = s.engine.Taxonomy().Len()

		metrics.UpdateTotalParticipants(participants)
		metrics.UpdateTotalSquads(squads)

		eligible, err := s.store.Eligible(ctx)
		if err != nil {
			s.logger.Warn(ctx, "failed to count eligible participants", logger.Error(err))
		} else {
			stats["eligible"] = len(eligible)
			metrics.UpdateEligibleParticipants(len(eligible))
		}
	}

	return stats
}
