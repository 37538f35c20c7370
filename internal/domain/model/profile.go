package model

import "sort"

// TokenSet is an unordered set of normalized strings.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from the given values.
func NewTokenSet(values ...string) TokenSet {
	s := make(TokenSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v.
func (s TokenSet) Add(v string) { s[v] = struct{}{} }

// Has reports whether v is in the set.
func (s TokenSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of elements.
func (s TokenSet) Len() int { return len(s) }

// Sorted returns the elements in ascending order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s TokenSet) Clone() TokenSet {
	c := make(TokenSet, len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// SkillProfile is the normalized, categorized view of one participant's skills.
// Profiles live for a single formation run and are never persisted.
type SkillProfile struct {
	ParticipantID string
	Tokens        TokenSet
	Categories    TokenSet
}
