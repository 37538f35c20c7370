package skills

import (
	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/internal/domain/taxonomy"
)

// Categorizer maps normalized tokens onto taxonomy categories.
type Categorizer struct {
	taxonomy *taxonomy.Taxonomy
}

// NewCategorizer creates a categorizer bound to tx.
func NewCategorizer(tx *taxonomy.Taxonomy) (*Categorizer, error) {
	if tx == nil {
		return nil, ErrTaxonomyUnavailable
	}
	return &Categorizer{taxonomy: tx}, nil
}

// Categorize returns every category with at least one exactly matching keyword.
// Tokens may hit several categories or none.
func (c *Categorizer) Categorize(tokens model.TokenSet) model.TokenSet {
	out := model.NewTokenSet()
	for tok := range tokens {
		for _, cat := range c.taxonomy.CategoriesOf(tok) {
			out.Add(cat)
		}
	}
	return out
}
