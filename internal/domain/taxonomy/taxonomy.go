// Package taxonomy holds the read-only skill taxonomy used to interpret
// free-text skills: an ordered list of categories with their canonical
// keywords, plus a synonym table mapping aliases onto canonical tokens.
//
// A Taxonomy is immutable once built and safe for concurrent use.
package taxonomy

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed default.yaml
var defaultYAML []byte

// Category is a named group of canonical skill keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy maps normalized tokens onto categories.
type Taxonomy struct {
	categories []Category
	// keyword -> category names, in category declaration order
	index    map[string][]string
	synonyms map[string]string
	// multi-word keyword or alias -> canonical token
	phrases map[string]string
}

// New validates and builds a Taxonomy. Names, keywords, aliases and canonical
// forms are trimmed and lower-cased. Category order is preserved.
func New(categories []Category, synonyms map[string]string) (*Taxonomy, error) {
	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string][]string),
		synonyms:   make(map[string]string, len(synonyms)),
		phrases:    make(map[string]string),
	}

	seen := make(map[string]struct{}, len(categories))
	for i, c := range categories {
		name := normalize(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", ErrInvalidTaxonomy, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTaxonomy, name)
		}
		seen[name] = struct{}{}

		keywords := make([]string, 0, len(c.Keywords))
		kwSeen := make(map[string]struct{}, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = normalize(kw)
			if kw == "" {
				continue
			}
			if _, dup := kwSeen[kw]; dup {
				continue
			}
			kwSeen[kw] = struct{}{}
			keywords = append(keywords, kw)
			t.index[kw] = append(t.index[kw], name)
			if strings.Contains(kw, " ") {
				t.phrases[kw] = kw
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: category %q has no keywords", ErrInvalidTaxonomy, name)
		}
		t.categories = append(t.categories, Category{Name: name, Keywords: keywords})
	}

	for alias, canonical := range synonyms {
		alias, canonical = normalize(alias), normalize(canonical)
		if alias == "" || canonical == "" {
			return nil, fmt.Errorf("%w: synonym %q -> %q is empty", ErrInvalidTaxonomy, alias, canonical)
		}
		t.synonyms[alias] = canonical
		if strings.Contains(alias, " ") {
			t.phrases[alias] = canonical
		}
	}

	return t, nil
}

// normalize lower-cases s and collapses internal whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Default returns the embedded default taxonomy.
func Default() *Taxonomy {
	t, err := Parse(defaultYAML)
	if err != nil {
		// default.yaml ships with the binary and is covered by tests.
		panic(fmt.Sprintf("taxonomy: embedded default is invalid: %v", err))
	}
	return t
}

// Categories returns a copy of the categories in declaration order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// CategoryNames returns category names in declaration order.
func (t *Taxonomy) CategoryNames() []string {
	out := make([]string, len(t.categories))
	for i, c := range t.categories {
		out[i] = c.Name
	}
	return out
}

// Keywords returns the keywords of the named category, or nil.
func (t *Taxonomy) Keywords(category string) []string {
	for _, c := range t.categories {
		if c.Name == category {
			return append([]string(nil), c.Keywords...)
		}
	}
	return nil
}

// Canonical maps token through the synonym table. Unmapped tokens are returned as-is.
func (t *Taxonomy) Canonical(token string) string {
	if c, ok := t.synonyms[token]; ok {
		return c
	}
	return token
}

// Phrase reports whether the space-joined phrase is a multi-word keyword or
// alias and returns its canonical form.
func (t *Taxonomy) Phrase(phrase string) (string, bool) {
	c, ok := t.phrases[phrase]
	return c, ok
}

// CategoriesOf returns the categories listing token as a keyword.
func (t *Taxonomy) CategoriesOf(token string) []string {
	return t.index[token]
}

// Len returns the number of categories.
func (t *Taxonomy) Len() int { return len(t.categories) }

// SynonymCount returns the number of aliases.
func (t *Taxonomy) SynonymCount() int { return len(t.synonyms) }
