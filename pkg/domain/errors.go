package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyGroup reports aggregation over a country with no usable rows.
var ErrEmptyGroup = errors.New("empty aggregation group")

// MalformedHeaderError aborts a reshape when a year column header is not
// integer-parseable.
type MalformedHeaderError struct {
	Column string
	Err    error
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed year header %q: %v", e.Column, e.Err)
}

func (e *MalformedHeaderError) Unwrap() error { return e.Err }

// DuplicateKeyError aborts a merge when a (country, year) key occurs more
// than once in one source stream. The join must not silently resolve the
// ambiguity.
type DuplicateKeyError struct {
	Variable Variable
	Country  string
	Year     int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s key (%s, %d)", e.Variable, e.Country, e.Year)
}

// InsufficientDataError reports too few countries for the requested fold
// granularity.
type InsufficientDataError struct {
	Countries   int
	MinFoldSize int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d countries, need at least %d per fold", e.Countries, e.MinFoldSize)
}

// DegenerateFoldError reports a holdout fold too small to compute a
// variance over.
type DegenerateFoldError struct {
	Fold int
	Size int
}

func (e *DegenerateFoldError) Error() string {
	return fmt.Sprintf("degenerate fold %d: %d countries, need at least 2", e.Fold, e.Size)
}
