package skills

import (
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/internal/domain/taxonomy"
)

// Profiler builds SkillProfiles from participants.
type Profiler interface {
	Profile(p model.Participant) (model.SkillProfile, error)
}

// TaxonomyProfiler is the default Profiler backed by a Normalizer and a Categorizer.
type TaxonomyProfiler struct {
	normalizer  *Normalizer
	categorizer *Categorizer
}

// NewProfiler creates a TaxonomyProfiler for tx.
func NewProfiler(tx *taxonomy.Taxonomy, opts ...Option) (*TaxonomyProfiler, error) {
	n, err := NewNormalizer(tx, opts...)
	if err != nil {
		return nil, err
	}
	c, err := NewCategorizer(tx)
	if err != nil {
		return nil, err
	}
	return &TaxonomyProfiler{normalizer: n, categorizer: c}, nil
}

// Profile normalizes and categorizes p's skills. Malformed or missing text
// yields an empty profile, never an error.
func (tp *TaxonomyProfiler) Profile(p model.Participant) (model.SkillProfile, error) {
	if tp == nil || tp.normalizer == nil || tp.categorizer == nil {
		return model.SkillProfile{}, ErrTaxonomyUnavailable
	}
	tokens := tp.normalizer.Normalize(p.Skills())
	return model.SkillProfile{
		ParticipantID: p.ID,
		Tokens:        tokens,
		Categories:    tp.categorizer.Categorize(tokens),
	}, nil
}

// Normalizer exposes the underlying normalizer.
func (tp *TaxonomyProfiler) Normalizer() *Normalizer { return tp.normalizer }

// ProfileAll profiles every participant, preserving input order.
func ProfileAll(pr Profiler, participants []model.Participant) ([]model.SkillProfile, error) {
	if pr == nil {
		return nil, ErrTaxonomyUnavailable
	}
	out := make([]model.SkillProfile, len(participants))
	for i, p := range participants {
		prof, err := pr.Profile(p)
		if err != nil {
			return nil, err
		}
		out[i] = prof
	}
	return out, nil
}
