package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

// MemoryStore is an in-memory Store guarded by a single RWMutex.
type MemoryStore struct {
	mu           sync.RWMutex
	participants map[string]*ParticipantRecord
	order        []string // participant ids in registration order
	squads       []model.Squad
	squadIndex   map[string]int

	metricsUpdateInterval time.Duration
	now                   func() time.Time
	newID                 func() string

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs a store and starts its metrics updater, which runs
// until ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		participants:          make(map[string]*ParticipantRecord),
		squadIndex:            make(map[string]int),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		now:                   time.Now,
		newID:                 uuid.NewString,
		stopChan:              make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background metrics updater and waits for it to exit.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

// updateMetrics publishes pool gauges.
func (s *MemoryStore) updateMetrics() {
	s.mu.RLock()
	total := len(s.participants)
	squads := len(s.squads)
	eligible := 0
	for _, r := range s.participants {
		if r.Eligible() {
			eligible++
		}
	}
	s.mu.RUnlock()

	metrics.UpdateTotalParticipants(total)
	metrics.UpdateEligibleParticipants(eligible)
	metrics.UpdateTotalSquads(squads)
}

// AddParticipant implements Store.
func (s *MemoryStore) AddParticipant(_ context.Context, p model.Participant, status model.AttendanceStatus) (ParticipantRecord, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = s.newID()
	}
	if status == "" {
		status = model.StatusRegistered
	}
	if _, err := model.ParseAttendanceStatus(string(status)); err != nil {
		return ParticipantRecord{}, fmt.Errorf("%w: %w", ErrInvalidParticipant, err)
	}
	if p.SkillsRaw != nil {
		skills := *p.SkillsRaw
		p.SkillsRaw = &skills
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.participants[p.ID]; exists {
		return ParticipantRecord{}, fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
	}
	rec := &ParticipantRecord{Participant: p, Status: status, RegisteredAt: s.now()}
	s.participants[p.ID] = rec
	s.order = append(s.order, p.ID)
	return *rec, nil
}

// GetParticipant implements Store.
func (s *MemoryStore) GetParticipant(_ context.Context, id string) (ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.participants[id]
	if !ok {
		return ParticipantRecord{}, fmt.Errorf("%w: participant %s", ErrNotFound, id)
	}
	return *rec, nil
}

// ListParticipants implements Store.
func (s *MemoryStore) ListParticipants(_ context.Context) ([]ParticipantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ParticipantRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.participants[id])
	}
	return out, nil
}

// SetStatus implements Store.
func (s *MemoryStore) SetStatus(_ context.Context, id string, status model.AttendanceStatus) (ParticipantRecord, error) {
	parsed, err := model.ParseAttendanceStatus(string(status))
	if err != nil {
		return ParticipantRecord{}, fmt.Errorf("%w: %w", ErrInvalidParticipant, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.participants[id]
	if !ok {
		return ParticipantRecord{}, fmt.Errorf("%w: participant %s", ErrNotFound, id)
	}
	rec.Status = parsed
	return *rec, nil
}

// Eligible implements Store.
func (s *MemoryStore) Eligible(_ context.Context) ([]model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryLatency("eligible", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Participant
	for _, id := range s.order {
		if rec := s.participants[id]; rec.Eligible() {
			out = append(out, rec.Participant)
		}
	}
	return out, nil
}

// SaveSquads implements Store.
func (s *MemoryStore) SaveSquads(ctx context.Context, partition model.Partition, formationType model.FormationType) ([]model.Squad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryLatency("save_squads", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, partition.Size())
	for _, members := range partition {
		if len(members) == 0 {
			return nil, fmt.Errorf("%w: empty squad", ErrInvalidParticipant)
		}
		for _, id := range members {
			rec, ok := s.participants[id]
			if !ok {
				return nil, fmt.Errorf("%w: participant %s", ErrNotFound, id)
			}
			if _, dup := seen[id]; dup || rec.SquadID != "" {
				return nil, fmt.Errorf("%w: %s", ErrAlreadyAssigned, id)
			}
			seen[id] = struct{}{}
		}
	}

	created := make([]model.Squad, 0, len(partition))
	now := s.now()
	for _, members := range partition {
		squad := model.Squad{
			ID:            s.newID(),
			Name:          fmt.Sprintf("Squad %d", len(s.squads)+1),
			Members:       append([]string(nil), members...),
			FormationType: formationType,
			CreatedAt:     now,
		}
		for _, id := range members {
			s.participants[id].SquadID = squad.ID
		}
		s.squadIndex[squad.ID] = len(s.squads)
		s.squads = append(s.squads, squad)
		created = append(created, cloneSquad(squad))
	}

	metrics.RecordSquadsCreated(len(created))
	return created, nil
}

// Squads implements Store.
func (s *MemoryStore) Squads(_ context.Context) ([]model.Squad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Squad, len(s.squads))
	for i, sq := range s.squads {
		out[i] = cloneSquad(sq)
	}
	return out, nil
}

// Squad implements Store.
func (s *MemoryStore) Squad(_ context.Context, id string) (model.Squad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.squadIndex[id]
	if !ok {
		return model.Squad{}, fmt.Errorf("%w: squad %s", ErrNotFound, id)
	}
	return cloneSquad(s.squads[i]), nil
}

// ResetSquads implements Store.
func (s *MemoryStore) ResetSquads(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.squads)
	for _, rec := range s.participants {
		rec.SquadID = ""
	}
	s.squads = nil
	s.squadIndex = make(map[string]int)
	return n, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

// SquadCount implements Store.
func (s *MemoryStore) SquadCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.squads)
}

func cloneSquad(sq model.Squad) model.Squad {
	sq.Members = append([]string(nil), sq.Members...)
	return sq
}
