package formation

import (
	"fmt"
	"math/rand"

	"github.com/okian/squads/internal/domain/model"
)

// RandomPartition shuffles ids with rng and chunks them into squads of squadSize.
// It succeeds for any non-empty input.
func RandomPartition(ids []string, squadSize int, rng *rand.Rand) (model.Partition, error) {
	if len(ids) == 0 {
		return nil, ErrNoEligibleParticipants
	}
	if squadSize <= 0 {
		return nil, fmt.Errorf("%w: squad size %d", ErrInvalidRequest, squadSize)
	}
	shuffled := append([]string(nil), ids...)
	if rng != nil {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	}
	return chunk(shuffled, squadSize), nil
}
