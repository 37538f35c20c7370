// Package scoring computes similarity and diversity scores from skill profiles.
package scoring

import "github.com/okian/squads/internal/domain/model"

// Default scoring configuration constants.
const (
	// BreadthBonus is added to a diversity score per category covered.
	BreadthBonus = 0.5
)

// Similarity returns the Jaccard index of the two profiles' tokens, in [0,1].
// Two empty profiles score 0.
func Similarity(a, b model.SkillProfile) float64 {
	return Jaccard(a.Tokens, b.Tokens)
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b model.TokenSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for tok := range small {
		if large.Has(tok) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// TokenFrequency counts, for each token, how many profiles contain it.
func TokenFrequency(profiles []model.SkillProfile) map[string]int {
	freq := make(map[string]int)
	for _, p := range profiles {
		for tok := range p.Tokens {
			freq[tok]++
		}
	}
	return freq
}

// Diversity scores one profile against a precomputed token frequency table:
// the sum of 1/frequency over its tokens plus BreadthBonus per category.
func Diversity(p model.SkillProfile, freq map[string]int) float64 {
	score := 0.0
	for tok := range p.Tokens {
		if f := freq[tok]; f > 0 {
			score += 1 / float64(f)
		}
	}
	return score + BreadthBonus*float64(p.Categories.Len())
}

// DiversityScores scores every profile of a run. Scores are index-aligned
// with profiles and are meant to be recomputed for each run.
func DiversityScores(profiles []model.SkillProfile) []float64 {
	freq := TokenFrequency(profiles)
	out := make([]float64, len(profiles))
	for i, p := range profiles {
		out[i] = Diversity(p, freq)
	}
	return out
}

// CategoryCoverage returns the number of distinct categories covered by each squad.
func CategoryCoverage(squads [][]model.SkillProfile) []int {
	out := make([]int, len(squads))
	for i, squad := range squads {
		seen := model.NewTokenSet()
		for _, p := range squad {
			for c := range p.Categories {
				seen.Add(c)
			}
		}
		out[i] = seen.Len()
	}
	return out
}
