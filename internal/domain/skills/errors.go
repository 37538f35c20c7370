package skills

import "errors"

// Sentinel error kinds for this package.
var (
	ErrTaxonomyUnavailable = errors.New("taxonomy unavailable")
)
