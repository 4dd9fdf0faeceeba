// Package sqlite provides a SQLite-backed dataset store. It mirrors the
// in-memory semantics and snapshots the full dataset into a single
// relational table after every successful replace.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lifepanel/internal/infra/persistence/memory"
	"lifepanel/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ domain.DatasetStore = (*Store)(nil)

// Store persists the cleaned dataset to a SQLite file.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the SQLite file at path and hydrates the
// in-memory state from any existing snapshot. An empty path defaults to
// lifepanel.db in the working directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "lifepanel.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS country_year (
		country TEXT NOT NULL,
		year INTEGER NOT NULL,
		life_expectancy REAL NOT NULL,
		gdp_per_capita REAL NOT NULL,
		PRIMARY KEY (country, year)
	)`); err != nil {
		return nil, fmt.Errorf("create country_year table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT country, year, life_expectancy, gdp_per_capita FROM country_year ORDER BY country, year`)
	if err != nil {
		return fmt.Errorf("select country_year: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var records []domain.CountryYearRecord
	for rows.Next() {
		var country string
		var year int
		var life, gdp float64
		if err := rows.Scan(&country, &year, &life, &gdp); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		records = append(records, domain.CountryYearRecord{
			Country:        country,
			Year:           year,
			LifeExpectancy: domain.Some(life),
			GDPPerCapita:   domain.Some(gdp),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate country_year: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	return s.Store.ReplaceDataset(context.Background(), records)
}

// ReplaceDataset replaces the in-memory dataset, then snapshots it to the
// SQLite file within one transaction.
func (s *Store) ReplaceDataset(ctx context.Context, records []domain.CountryYearRecord) error {
	if err := s.Store.ReplaceDataset(ctx, records); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, err := s.Store.Dataset(ctx)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM country_year`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear country_year: %w", err)
	}
	for _, rec := range snapshot {
		life, _ := rec.LifeExpectancy.Float()
		gdp, _ := rec.GDPPerCapita.Float()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO country_year (country, year, life_expectancy, gdp_per_capita) VALUES (?, ?, ?, ?)`,
			rec.Country, rec.Year, life, gdp); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert (%s, %d): %w", rec.Country, rec.Year, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
