// Package postgres provides a Postgres-backed dataset store that mirrors
// the in-memory semantics and snapshots the dataset on every replace.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"lifepanel/internal/infra/persistence/memory"
	"lifepanel/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion.
var _ domain.DatasetStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/lifepanel?sslmode=disable"
)

// Store persists the cleaned dataset to Postgres.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN), ensures the country_year table exists, and hydrates the
// in-memory state from any existing snapshot.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS country_year (
		country TEXT NOT NULL,
		year BIGINT NOT NULL,
		life_expectancy DOUBLE PRECISION NOT NULL,
		gdp_per_capita DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (country, year)
	)`); err != nil {
		return nil, fmt.Errorf("create country_year table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT country, year, life_expectancy, gdp_per_capita FROM country_year ORDER BY country, year`)
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
	return s.Store.ReplaceDataset(ctx, records)
}

// ReplaceDataset replaces the in-memory dataset, then snapshots it to
// Postgres within one transaction.
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
			`INSERT INTO country_year (country, year, life_expectancy, gdp_per_capita) VALUES ($1, $2, $3, $4)`,
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

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
