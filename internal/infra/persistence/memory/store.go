// Package memory provides an in-memory dataset store used for tests and
// ephemeral runs, and as the state backing the durable stores.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"lifepanel/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.DatasetStore = (*Store)(nil)

// Store holds the cleaned dataset in process memory.
type Store struct {
	mu      sync.RWMutex
	records []domain.CountryYearRecord
}

// NewStore returns an empty in-memory store.
func NewStore() *Store { return &Store{} }

// ReplaceDataset swaps the stored dataset for a copy of records, sorted by
// (country, year). Records with a null value are rejected: the store only
// ever holds the cleaned dataset.
func (s *Store) ReplaceDataset(_ context.Context, records []domain.CountryYearRecord) error {
	cleaned := make([]domain.CountryYearRecord, len(records))
	for i, rec := range records {
		if rec.LifeExpectancy.IsNull() || rec.GDPPerCapita.IsNull() {
			return fmt.Errorf("record (%s, %d) has a null value", rec.Country, rec.Year)
		}
		cleaned[i] = rec
	}
	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].Country != cleaned[j].Country {
			return cleaned[i].Country < cleaned[j].Country
		}
		return cleaned[i].Year < cleaned[j].Year
	})
	s.mu.Lock()
	s.records = cleaned
	s.mu.Unlock()
	return nil
}

// Dataset returns a copy of the stored dataset.
func (s *Store) Dataset(_ context.Context) ([]domain.CountryYearRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CountryYearRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
