package service

import (
	repository "github.com/okian/squads/internal/adapters/repository"
	"github.com/okian/squads/internal/domain/formation"
	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore supplies the participant and squad store. The service does not
// close a store it did not create.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine supplies a preconfigured formation engine. Engine-level options
// of the service are then ignored.
func WithEngine(engine *formation.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithMaxParticipants caps how many participants a single formation accepts.
func WithMaxParticipants(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxParticipants = n
		}
	}
}

// WithSeed fixes the formation random seed. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithTaxonomy sets the skill taxonomy.
func WithTaxonomy(tx *taxonomy.Taxonomy) Option {
	return func(s *Service) {
		if tx != nil {
			s.taxonomy = tx
		}
	}
}

// WithNormalizerCacheSize sets the skill normalizer cache size; 0 disables it.
func WithNormalizerCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithDefaultSquadSize sets the squad size used when a request omits it.
func WithDefaultSquadSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.defaultSquadSize = size
		}
	}
}
