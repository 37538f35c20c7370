package formation

import (
	"fmt"
	"sort"

	"github.com/okian/squads/internal/domain/model"
)

// SimilarStrategy groups participants that share a skill category.
type SimilarStrategy struct {
	order []string
}

// NewSimilarStrategy creates a SimilarStrategy. categoryOrder fixes the base
// processing order; categories it does not list follow in lexical order.
func NewSimilarStrategy(categoryOrder []string) *SimilarStrategy {
	return &SimilarStrategy{order: append([]string(nil), categoryOrder...)}
}

// Name implements Strategy.
func (s *SimilarStrategy) Name() model.FormationType { return model.FormationSimilar }

// Partition implements Strategy. Categories are processed largest first; each
// yields as many full squads as it can, and its leftovers fill spare capacity.
// A participant is consumed by the first category that reaches it.
func (s *SimilarStrategy) Partition(profiles []model.SkillProfile, squadSize int) (model.Partition, error) {
	if squadSize <= 0 {
		return nil, fmt.Errorf("%w: squad size %d", ErrInvalidRequest, squadSize)
	}

	index := make(map[string][]string)
	for _, p := range profiles {
		for c := range p.Categories {
			index[c] = append(index[c], p.ParticipantID)
		}
	}
	categories := s.categories(index)
	sort.SliceStable(categories, func(i, j int) bool {
		return len(index[categories[i]]) > len(index[categories[j]])
	})

	b := newSquadBuilder(squadSize, len(profiles))
	for _, c := range categories {
		unused := make([]string, 0, len(index[c]))
		for _, id := range index[c] {
			if !b.isUsed(id) {
				unused = append(unused, id)
			}
		}
		for len(unused) >= squadSize {
			b.addSquad(unused[:squadSize])
			unused = unused[squadSize:]
		}
		for _, id := range unused {
			b.place(id)
		}
	}

	for _, p := range profiles {
		if !b.isUsed(p.ParticipantID) {
			b.place(p.ParticipantID)
		}
	}
	return b.squads, nil
}

func (s *SimilarStrategy) categories(index map[string][]string) []string {
	out := make([]string, 0, len(index))
	known := make(map[string]struct{}, len(s.order))
	for _, c := range s.order {
		known[c] = struct{}{}
		if _, ok := index[c]; ok {
			out = append(out, c)
		}
	}
	var extra []string
	for c := range index {
		if _, ok := known[c]; !ok {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
