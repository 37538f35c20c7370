package formation

import (
	"fmt"
	"math/rand"

	"github.com/okian/squads/internal/domain/model"
)

// RepairReport summarizes what Repair changed.
type RepairReport struct {
	Dropped    int // ids not in the authoritative list
	Duplicates int // repeated ids removed after their first occurrence
	Reassigned int // ids placed into new squads from the remainder
}

// Changed reports whether the input partition was modified.
func (r RepairReport) Changed() bool {
	return r.Dropped+r.Duplicates+r.Reassigned > 0
}

// Repair turns raw into a valid partition of ids. The first occurrence of an id
// wins; unknown ids and empty squads are dropped; members past squadSize are
// moved out. Every id left unassigned is shuffled with rng and chunked into new
// squads. rng is only consulted when that remainder is non-empty, so a valid
// partition comes back unchanged. A nil rng keeps the remainder in ids order.
func Repair(raw model.Partition, ids []string, squadSize int, rng *rand.Rand) (model.Partition, RepairReport, error) {
	var report RepairReport
	if squadSize <= 0 {
		return nil, report, fmt.Errorf("%w: squad size %d", ErrInvalidRequest, squadSize)
	}

	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	claimed := make(map[string]struct{}, len(ids))

	out := make(model.Partition, 0, len(raw))
	for _, squad := range raw {
		kept := make([]string, 0, min(len(squad), squadSize))
		for _, id := range squad {
			if _, ok := known[id]; !ok {
				report.Dropped++
				continue
			}
			if _, ok := claimed[id]; ok {
				report.Duplicates++
				continue
			}
			if len(kept) == squadSize {
				continue
			}
			claimed[id] = struct{}{}
			kept = append(kept, id)
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}

	var remainder []string
	for _, id := range ids {
		if _, ok := claimed[id]; ok {
			continue
		}
		claimed[id] = struct{}{}
		remainder = append(remainder, id)
	}
	if len(remainder) == 0 {
		return out, report, nil
	}

	report.Reassigned = len(remainder)
	if rng != nil {
		rng.Shuffle(len(remainder), func(i, j int) {
			remainder[i], remainder[j] = remainder[j], remainder[i]
		})
	}
	return append(out, chunk(remainder, squadSize)...), report, nil
}

// Validate reports whether p is a valid partition of ids with squads no larger
// than squadSize.
func Validate(p model.Partition, ids []string, squadSize int) error {
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(ids))
	for i, squad := range p {
		if len(squad) == 0 || len(squad) > squadSize {
			return fmt.Errorf("squad %d has %d members, want 1..%d", i, len(squad), squadSize)
		}
		for _, id := range squad {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("squad %d: unknown participant %q", i, id)
			}
			if _, ok := seen[id]; ok {
				return fmt.Errorf("squad %d: participant %q assigned twice", i, id)
			}
			seen[id] = struct{}{}
		}
	}
	if len(seen) != len(known) {
		return fmt.Errorf("partition covers %d of %d participants", len(seen), len(known))
	}
	return nil
}
