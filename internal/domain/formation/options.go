package formation

import (
	"math/rand"

	"github.com/okian/squads/internal/domain/skills"
	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTaxonomy sets the taxonomy used to build the default profiler and the
// similar strategy's category order.
func WithTaxonomy(tx *taxonomy.Taxonomy) Option {
	return func(e *Engine) {
		if tx != nil {
			e.taxonomy = tx
		}
	}
}

// WithProfiler replaces the taxonomy-backed profiler.
func WithProfiler(p skills.Profiler) Option {
	return func(e *Engine) {
		if p != nil {
			e.profiler = p
		}
	}
}

// WithNormalizerCacheSize sets the cache size of the default profiler.
func WithNormalizerCacheSize(size int) Option {
	return func(e *Engine) {
		e.cacheSize = size
	}
}

// WithMaxParticipants caps how many participants a single run accepts.
// Zero or a negative value removes the cap.
func WithMaxParticipants(n int) Option {
	return func(e *Engine) {
		e.maxParticipants = n
	}
}

// WithSeed fixes the seed of the per-run random source. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithRandSource sets a factory for the per-run random source. It takes
// precedence over WithSeed.
func WithRandSource(fn func() rand.Source) Option {
	return func(e *Engine) {
		if fn != nil {
			e.randSource = fn
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrategies registers strategies, replacing any default with the same name.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Engine) {
		for _, s := range strategies {
			if s != nil {
				e.overrides = append(e.overrides, s)
			}
		}
	}
}
