package formation

import (
	"fmt"
	"sort"

	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/internal/domain/scoring"
)

// DiverseStrategy spreads skill categories across squads.
type DiverseStrategy struct{}

// NewDiverseStrategy creates a DiverseStrategy.
func NewDiverseStrategy() *DiverseStrategy { return &DiverseStrategy{} }

// Name implements Strategy.
func (s *DiverseStrategy) Name() model.FormationType { return model.FormationDiverse }

type diverseSquad struct {
	members []int
	covered model.TokenSet
}

func (d *diverseSquad) gains(p model.SkillProfile) bool {
	for c := range p.Categories {
		if !d.covered.Has(c) {
			return true
		}
	}
	return false
}

func (d *diverseSquad) add(i int, p model.SkillProfile) {
	d.members = append(d.members, i)
	for c := range p.Categories {
		d.covered.Add(c)
	}
}

// Partition implements Strategy. Participants are ranked by diversity score and
// walked in windows of squadSize; within a window a participant joins only if
// the squad is empty or it brings a new category. Everyone else is deferred and
// placed afterwards, preferring squads that gain coverage.
func (s *DiverseStrategy) Partition(profiles []model.SkillProfile, squadSize int) (model.Partition, error) {
	if squadSize <= 0 {
		return nil, fmt.Errorf("%w: squad size %d", ErrInvalidRequest, squadSize)
	}

	scores := scoring.DiversityScores(profiles)
	order := make([]int, len(profiles))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	var (
		squads   []*diverseSquad
		deferred []int
	)
	for start := 0; start < len(order); start += squadSize {
		squad := &diverseSquad{covered: model.NewTokenSet()}
		for _, i := range order[start:min(start+squadSize, len(order))] {
			if len(squad.members) == 0 || squad.gains(profiles[i]) {
				squad.add(i, profiles[i])
				continue
			}
			deferred = append(deferred, i)
		}
		squads = append(squads, squad)
	}

	for _, i := range deferred {
		target := pickDiverseSquad(squads, profiles[i], squadSize)
		if target == nil {
			target = &diverseSquad{covered: model.NewTokenSet()}
			squads = append(squads, target)
		}
		target.add(i, profiles[i])
	}

	out := make(model.Partition, 0, len(squads))
	for _, squad := range squads {
		ids := make([]string, len(squad.members))
		for k, i := range squad.members {
			ids[k] = profiles[i].ParticipantID
		}
		out = append(out, ids)
	}
	return out, nil
}

// pickDiverseSquad returns the first squad with spare capacity that gains a
// category from p, else the first with spare capacity, else nil.
func pickDiverseSquad(squads []*diverseSquad, p model.SkillProfile, size int) *diverseSquad {
	var spare *diverseSquad
	for _, squad := range squads {
		if len(squad.members) >= size {
			continue
		}
		if squad.gains(p) {
			return squad
		}
		if spare == nil {
			spare = squad
		}
	}
	return spare
}
