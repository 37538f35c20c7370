package taxonomy

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")
	ErrLoadTaxonomy    = errors.New("load taxonomy failed")
)
