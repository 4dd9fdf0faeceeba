package core

import (
	"fmt"
	"os"

	"lifepanel/internal/infra/persistence/memory"
	"lifepanel/internal/infra/persistence/postgres"
	"lifepanel/internal/infra/persistence/sqlite"
	"lifepanel/pkg/domain"
)

// StorageDriver identifies a concrete dataset store implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenDatasetStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	LIFEPANEL_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	LIFEPANEL_SQLITE_PATH: path to sqlite file (default ./lifepanel.db)
//	LIFEPANEL_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenDatasetStore() (domain.DatasetStore, error) {
	driver := os.Getenv("LIFEPANEL_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("LIFEPANEL_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(os.Getenv("LIFEPANEL_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
