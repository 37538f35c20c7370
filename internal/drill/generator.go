package drill

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/logger"
)

// separators mimic the ways people type skill lists.
var separators = []string{", ", " / ", "; ", " "} //nolint:gochecknoglobals // fixed lookup table

// generateParticipants builds participants whose skills are drawn from the
// taxonomy keywords. The same seed always yields the same skills and statuses.
func generateParticipants(ctx context.Context, config *Config, tx *taxonomy.Taxonomy, stats *Stats) ([]Participant, error) {
	if config.Participants <= 0 {
		return nil, fmt.Errorf("participant count must be positive, got %d", config.Participants)
	}
	logger.Get().Info(ctx, "generating participants", logger.Int("participants", config.Participants))

	var vocabulary []string
	for _, name := range tx.CategoryNames() {
		vocabulary = append(vocabulary, tx.Keywords(name)...)
	}
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("taxonomy has no keywords")
	}

	rng := rand.New(rand.NewSource(config.Seed)) //nolint:gosec // synthetic data
	out := make([]Participant, config.Participants)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		p := Participant{
			ID:     uuid.NewString(),
			Name:   fmt.Sprintf("Participant %d", i+1),
			Status: statusAbsent,
		}
		if rng.Float64() < config.PresentRatio {
			p.Status = statusPresent
			stats.Present++
		}
		if rng.Float64() >= config.BlankRatio {
			skills := randomSkills(rng, vocabulary)
			p.Skills = &skills
		}
		out[i] = p
	}

	stats.Generated = len(out)
	logger.Get().Info(ctx, "participants generated",
		logger.Int("generated", stats.Generated),
		logger.Int("present", stats.Present))
	return out, nil
}

// randomSkills joins a few distinct keywords with a random separator.
func randomSkills(rng *rand.Rand, vocabulary []string) string {
	n := minSkillsPerParticipant + rng.Intn(maxSkillsPerParticipant-minSkillsPerParticipant+1)
	picked := make([]string, 0, n)
	seen := make(map[int]struct{}, n)
	for len(picked) < min(n, len(vocabulary)) {
		i := rng.Intn(len(vocabulary))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		picked = append(picked, vocabulary[i])
	}
	return strings.Join(picked, separators[rng.Intn(len(separators))])
}
