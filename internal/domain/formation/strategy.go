// Package formation partitions participants into squads by skill similarity or diversity.
package formation

import (
	"github.com/okian/squads/internal/domain/model"
)

// Strategy builds a candidate partition from the profiles of one run.
// Implementations must be deterministic for a fixed input order and must not
// keep state between calls.
type Strategy interface {
	Name() model.FormationType
	Partition(profiles []model.SkillProfile, squadSize int) (model.Partition, error)
}

// squadBuilder accumulates squads and tracks which ids have been placed.
// It lives for a single Partition call.
type squadBuilder struct {
	size   int
	squads model.Partition
	used   map[string]struct{}
}

func newSquadBuilder(size, capacity int) *squadBuilder {
	return &squadBuilder{
		size: size,
		used: make(map[string]struct{}, capacity),
	}
}

func (b *squadBuilder) isUsed(id string) bool {
	_, ok := b.used[id]
	return ok
}

// addSquad appends a new squad holding a copy of ids.
func (b *squadBuilder) addSquad(ids []string) {
	squad := append([]string(nil), ids...)
	for _, id := range ids {
		b.used[id] = struct{}{}
	}
	b.squads = append(b.squads, squad)
}

// place puts id into the first squad with spare capacity, or opens a new one.
func (b *squadBuilder) place(id string) {
	for i, squad := range b.squads {
		if len(squad) < b.size {
			b.squads[i] = append(squad, id)
			b.used[id] = struct{}{}
			return
		}
	}
	b.addSquad([]string{id})
}

// chunk splits ids into consecutive groups of size; the last may be smaller.
// A size larger than ids yields a single group.
func chunk(ids []string, size int) model.Partition {
	if len(ids) == 0 {
		return nil
	}
	size = min(size, len(ids))
	out := make(model.Partition, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, append([]string(nil), ids[start:end]...))
	}
	return out
}
