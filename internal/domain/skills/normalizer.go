// Package skills turns free-text skills into comparable profiles: the
// Normalizer tokenizes and canonicalizes raw text, the Categorizer maps
// tokens onto taxonomy categories, and the Profiler combines both.
package skills

import (
	"regexp"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/okian/squads/internal/domain/model"
	"github.com/okian/squads/internal/domain/taxonomy"
	"github.com/okian/squads/pkg/metrics"
)

// Default normalizer configuration constants.
const (
	defaultCacheSize = 4096
	minTokenLength   = 2
)

var reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// symbolic rewrites skill names whose punctuation would be lost to reNonWord.
// The replacements are taxonomy aliases, so they canonicalize like typed text.
var symbolic = strings.NewReplacer(
	"c++", " cpp ",
	"c#", " csharp ",
)

// Normalizer converts raw skills text into a set of canonical tokens.
// It is safe for concurrent use.
type Normalizer struct {
	taxonomy  *taxonomy.Taxonomy
	cacheSize int
	cache     *lru.Cache[string, model.TokenSet]
}

// NewNormalizer creates a normalizer bound to tx.
func NewNormalizer(tx *taxonomy.Taxonomy, opts ...Option) (*Normalizer, error) {
	if tx == nil {
		return nil, ErrTaxonomyUnavailable
	}
	n := &Normalizer{
		taxonomy:  tx,
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.cacheSize > 0 {
		cache, err := lru.New[string, model.TokenSet](n.cacheSize)
		if err != nil {
			return nil, err
		}
		n.cache = cache
	}
	return n, nil
}

// Normalize returns the canonical token set for raw. Empty input yields an
// empty set. The returned set is owned by the caller.
func (n *Normalizer) Normalize(raw string) model.TokenSet {
	if n.cache == nil {
		return n.normalize(raw)
	}
	if cached, ok := n.cache.Get(raw); ok {
		metrics.RecordNormalizerCacheHit()
		return cached.Clone()
	}
	metrics.RecordNormalizerCacheMiss()
	tokens := n.normalize(raw)
	n.cache.Add(raw, tokens.Clone())
	return tokens
}

func (n *Normalizer) normalize(raw string) model.TokenSet {
	out := model.NewTokenSet()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}

	words := reNonWord.Split(symbolic.Replace(strings.ToLower(raw)), -1)
	prev := ""
	for _, w := range words {
		if w == "" {
			continue
		}
		if utf8.RuneCountInString(w) >= minTokenLength {
			out.Add(n.taxonomy.Canonical(w))
		}
		if prev != "" {
			if canonical, ok := n.taxonomy.Phrase(prev + " " + w); ok {
				out.Add(canonical)
			}
		}
		prev = w
	}
	return out
}

// CacheLen reports how many raw strings are memoized.
func (n *Normalizer) CacheLen() int {
	if n.cache == nil {
		return 0
	}
	return n.cache.Len()
}
