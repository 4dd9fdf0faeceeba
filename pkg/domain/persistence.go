package domain

import "context"

// DatasetStore is a minimal abstraction over durable backends holding the
// cleaned panel dataset. ReplaceDataset swaps the full dataset atomically;
// there is no partial update because the pipeline always recomputes the
// whole set.
type DatasetStore interface {
	// ReplaceDataset atomically replaces the stored dataset. Records must
	// be fully cleaned: implementations reject records with null values.
	ReplaceDataset(ctx context.Context, records []CountryYearRecord) error
	// Dataset returns the stored dataset ordered by (country, year).
	Dataset(ctx context.Context) ([]CountryYearRecord, error)
	// Close releases backend resources.
	Close() error
}
