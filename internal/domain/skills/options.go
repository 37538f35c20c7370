package skills

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithCacheSize sets how many distinct raw strings are memoized.
// Zero or a negative size disables the cache.
func WithCacheSize(size int) Option {
	return func(n *Normalizer) {
		n.cacheSize = size
	}
}
