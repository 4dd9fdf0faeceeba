package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"lifepanel/pkg/domain"
)

func TestStore_SnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "panel.db")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	records := []domain.CountryYearRecord{
		{Country: "Albania", Year: 1800, LifeExpectancy: domain.Some(35.4), GDPPerCapita: domain.Some(1100)},
		{Country: "Chad", Year: 1800, LifeExpectancy: domain.Some(40), GDPPerCapita: domain.Some(500)},
	}
	if err := store.ReplaceDataset(ctx, records); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	got, err := reopened.Dataset(ctx)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected hydrated dataset, got %#v", got)
	}
	life, _ := got[0].LifeExpectancy.Float()
	if got[0].Country != "Albania" || life != 35.4 {
		t.Fatalf("unexpected first record %#v", got[0])
	}
}

func TestStore_ReplaceOverwritesSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "panel.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	first := []domain.CountryYearRecord{
		{Country: "Chad", Year: 1800, LifeExpectancy: domain.Some(40), GDPPerCapita: domain.Some(500)},
		{Country: "Chad", Year: 1801, LifeExpectancy: domain.Some(41), GDPPerCapita: domain.Some(510)},
	}
	if err := store.ReplaceDataset(ctx, first); err != nil {
		t.Fatalf("replace: %v", err)
	}
	second := first[:1]
	if err := store.ReplaceDataset(ctx, second); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := store.Dataset(ctx)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("snapshot must be replaced, not appended: %#v", got)
	}
}
