package formation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/internal/domain/scoring"
	"github.com/okian/squads/internal/domain/skills"
	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
	"github.com/okian/squads/pkg/metrics"
)

// Default engine configuration constants.
const (
	defaultMaxParticipants = 5000
	defaultCacheSize       = 4096
)

// Formation outcomes recorded in metrics.
const (
	outcomeSuccess  = "success"
	outcomeFallback = "fallback"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Result is the outcome of one formation run.
type Result struct {
	Squads     model.Partition
	Strategy   model.FormationType
	FellBack   bool
	Reassigned int
	// Coverage holds the distinct category count of each squad, aligned with
	// Squads. It is nil when profiling failed.
	Coverage []int
	States   []State
}

// Engine drives profiling, strategy dispatch, repair and fallback.
// It holds no per-run state and is safe for concurrent use.
type Engine struct {
	taxonomy        *taxonomy.Taxonomy
	profiler        skills.Profiler
	cacheSize       int
	strategies      map[model.FormationType]Strategy
	overrides       []Strategy
	maxParticipants int
	seed            int64
	randSource      func() rand.Source
	validate        *validator.Validate
	logger          logger.Logger
}

// NewEngine creates an Engine. Without WithTaxonomy the embedded default taxonomy is used.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		cacheSize:       defaultCacheSize,
		maxParticipants: defaultMaxParticipants,
		logger:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.taxonomy == nil {
		e.taxonomy = taxonomy.Default()
	}
	if e.profiler == nil {
		p, err := skills.NewProfiler(e.taxonomy, skills.WithCacheSize(e.cacheSize))
		if err != nil {
			return nil, fmt.Errorf("create profiler: %w", err)
		}
		e.profiler = p
	}

	e.strategies = map[model.FormationType]Strategy{
		model.FormationSimilar: NewSimilarStrategy(e.taxonomy.CategoryNames()),
		model.FormationDiverse: NewDiverseStrategy(),
	}
	for _, s := range e.overrides {
		e.strategies[s.Name()] = s
	}

	e.validate = validator.New()
	e.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return e, nil
}

// Taxonomy returns the taxonomy the engine was built with.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy { return e.taxonomy }

// Form partitions participants according to req. On success every participant
// appears in exactly one squad. Failures after validation fall back to a random
// partition instead of being returned.
func (e *Engine) Form(ctx context.Context, participants []model.Participant, req model.FormationRequest) (Result, error) {
	start := time.Now()
	res := Result{Strategy: req.FormationType, States: []State{StateValidating}}

	ids, err := e.check(participants, req)
	if err != nil {
		metrics.RecordFormation(req.FormationType.String(), outcomeRejected)
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// An oversized request yields a single squad of everyone.
	size := min(req.SquadSize, len(ids))

	rng := e.newRand()
	squads, profiles, report, err := e.run(&res, participants, ids, req.FormationType, size, rng)
	if err != nil {
		reason := res.States[len(res.States)-1]
		e.logger.Warn(ctx, "formation failed, falling back to random partition",
			logger.String("type", req.FormationType.String()),
			logger.String("state", reason.String()),
			logger.Error(err))
		metrics.RecordFormationFallback(reason.String())

		res.States = append(res.States, StateFallbackRandom)
		squads, err = RandomPartition(ids, size, rng)
		if err != nil {
			metrics.RecordFormation(req.FormationType.String(), outcomeFailed)
			return Result{}, err
		}
		res.FellBack = true
	} else if report.Changed() {
		e.logger.Debug(ctx, "partition repaired",
			logger.Int("dropped", report.Dropped),
			logger.Int("duplicates", report.Duplicates),
			logger.Int("reassigned", report.Reassigned))
		metrics.RecordRepairReassigned(report.Reassigned)
	}

	res.Squads = squads
	res.Reassigned = report.Reassigned
	res.Coverage = coverage(squads, profiles)
	res.States = append(res.States, StateDone)

	outcome := outcomeSuccess
	if res.FellBack {
		outcome = outcomeFallback
	}
	elapsed := time.Since(start)
	metrics.RecordFormation(req.FormationType.String(), outcome)
	metrics.RecordFormationLatency(req.FormationType.String(), float64(elapsed.Microseconds())/1000)
	e.logger.Debug(ctx, "formation complete",
		logger.String("type", req.FormationType.String()),
		logger.Int("participants", len(ids)),
		logger.Int("squads", len(squads)),
		logger.Bool("fallback", res.FellBack),
		logger.Any("coverage", res.Coverage),
		logger.Any("duration", elapsed))
	return res, nil
}

// check validates the request and participant list and returns the ids in input order.
func (e *Engine) check(participants []model.Participant, req model.FormationRequest) ([]string, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, describe(err))
	}
	if _, ok := e.strategies[req.FormationType]; !ok {
		return nil, fmt.Errorf("%w: unsupported formationType %q", ErrInvalidRequest, req.FormationType)
	}
	if len(participants) == 0 {
		return nil, ErrNoEligibleParticipants
	}
	if e.maxParticipants > 0 && len(participants) > e.maxParticipants {
		return nil, fmt.Errorf("%w: %d participants, limit is %d",
			ErrResourceLimitExceeded, len(participants), e.maxParticipants)
	}

	ids := make([]string, len(participants))
	seen := make(map[string]struct{}, len(participants))
	for i, p := range participants {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: participant %d has no id", ErrInvalidRequest, i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate participant %q", ErrInvalidRequest, p.ID)
		}
		seen[p.ID] = struct{}{}
		ids[i] = p.ID
	}
	return ids, nil
}

// run executes profiling, strategy and repair. Panics become ErrProcessingFailure.
// The last entry of res.States is the state that failed, if any. Profiles are
// returned whenever profiling completed, even if a later stage failed.
func (e *Engine) run(res *Result, participants []model.Participant, ids []string, ft model.FormationType, size int, rng *rand.Rand) (squads model.Partition, profiles []model.SkillProfile, report RepairReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			squads, report = nil, RepairReport{}
			err = fmt.Errorf("%w: panic: %v", ErrProcessingFailure, r)
		}
	}()

	res.States = append(res.States, StateProfiling)
	profiles, err = skills.ProfileAll(e.profiler, participants)
	if err != nil {
		return nil, nil, report, fmt.Errorf("%w: profiling: %w", ErrProcessingFailure, err)
	}

	res.States = append(res.States, StateStrategizing)
	raw, err := e.strategies[ft].Partition(profiles, size)
	if err != nil {
		return nil, profiles, report, fmt.Errorf("%w: %s strategy: %w", ErrProcessingFailure, ft, err)
	}

	res.States = append(res.States, StateRepairing)
	squads, report, err = Repair(raw, ids, size, rng)
	if err != nil {
		return nil, profiles, report, fmt.Errorf("%w: repair: %w", ErrProcessingFailure, err)
	}
	return squads, profiles, report, nil
}

// coverage counts the distinct categories in each squad. It returns nil when
// profiles are missing, which happens when profiling itself failed.
func coverage(squads model.Partition, profiles []model.SkillProfile) []int {
	if len(profiles) == 0 {
		return nil
	}
	byID := make(map[string]model.SkillProfile, len(profiles))
	for _, p := range profiles {
		byID[p.ParticipantID] = p
	}
	members := make([][]model.SkillProfile, len(squads))
	for i, squad := range squads {
		members[i] = make([]model.SkillProfile, 0, len(squad))
		for _, id := range squad {
			members[i] = append(members[i], byID[id])
		}
	}
	return scoring.CategoryCoverage(members)
}

func (e *Engine) newRand() *rand.Rand {
	if e.randSource != nil {
		return rand.New(e.randSource()) //nolint:gosec // formation shuffles are not security sensitive
	}
	seed := e.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // formation shuffles are not security sensitive
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
