// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// MaxParticipants caps how many participants one formation run accepts.
	MaxParticipants int `koanf:"max_participants" validate:"gt=0"`

	// DefaultSquadSize is used when a formation request omits squadSize.
	DefaultSquadSize int `koanf:"default_squad_size" validate:"gt=0"`

	// FormationSeed seeds remainder and fallback shuffles; 0 seeds from the clock.
	FormationSeed int64 `koanf:"formation_seed"`

	// TaxonomyPath points to a YAML taxonomy; empty uses the embedded default.
	TaxonomyPath string `koanf:"taxonomy_path"`

	// NormalizerCacheSize bounds the skill normalizer LRU; 0 disables it.
	NormalizerCacheSize int `koanf:"normalizer_cache_size" validate:"gte=0"`

	// MaxSquadsListed caps GET /squads.
	MaxSquadsListed int `koanf:"max_squads_listed" validate:"gt=0"`
}

// New returns a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		MaxParticipants:     5000,
		DefaultSquadSize:    4,
		FormationSeed:       0,
		TaxonomyPath:        "",
		NormalizerCacheSize: 4096,
		MaxSquadsListed:     1000,
	}
}
