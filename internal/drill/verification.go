package drill

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/squads/pkg/logger"
)

// Verification errors.
var (
	ErrMissingMember    = errors.New("present participant not placed")
	ErrDuplicateMember  = errors.New("participant placed more than once")
	ErrUnexpectedMember = errors.New("absent participant placed")
	ErrOversizedSquad   = errors.New("squad exceeds requested size")
	ErrEmptySquad       = errors.New("empty squad")
)

// verifyFormation checks that every present generated participant landed in
// exactly one of the formed squads, no absent one did, and no squad is empty
// or larger than squadSize. Members that were not generated by this run are
// ignored. squadSize <= 0 skips the size check.
func verifyFormation(ctx context.Context, participants []Participant, squads []Squad, squadSize int) error {
	logger.Get().Info(ctx, "verifying formation", logger.Int("squads", len(squads)))

	status := make(map[string]string, len(participants))
	for _, p := range participants {
		status[p.ID] = p.Status
	}

	seen := make(map[string]string)
	var errs []error
	for _, s := range squads {
		if len(s.Members) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrEmptySquad, s.Name))
		}
		if squadSize > 0 && len(s.Members) > squadSize {
			errs = append(errs, fmt.Errorf("%w: %s has %d members", ErrOversizedSquad, s.Name, len(s.Members)))
		}
		for _, id := range s.Members {
			st, ours := status[id]
			if !ours {
				continue
			}
			if st != statusPresent {
				errs = append(errs, fmt.Errorf("%w: %s", ErrUnexpectedMember, id))
			}
			if prev, dup := seen[id]; dup {
				errs = append(errs, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateMember, id, prev, s.Name))
				continue
			}
			seen[id] = s.Name
		}
	}
	for _, p := range participants {
		if p.Status != statusPresent {
			continue
		}
		if _, ok := seen[p.ID]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingMember, p.ID))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Get().Info(ctx, "formation verified", logger.Int("placed", len(seen)))
	return nil
}
