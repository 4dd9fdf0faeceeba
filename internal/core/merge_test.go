package core

import (
	"errors"
	"testing"

	"lifepanel/pkg/domain"
)

func obs(country string, year int, value domain.Value) domain.Observation {
	return domain.Observation{Country: country, Year: year, Value: value}
}

func TestMerge_InnerJoinOnKeyPresence(t *testing.T) {
	life := []domain.Observation{
		obs("Afghanistan", 1800, domain.Some(28.2)),
		obs("Afghanistan", 1801, domain.Some(28.2)),
		obs("Albania", 1800, domain.Some(35.4)),
	}
	gdp := []domain.Observation{
		obs("Afghanistan", 1800, domain.Some(2000)),
		obs("Albania", 1900, domain.Some(1100)), // year only in gdp stream
	}
	records, err := Merge(life, gdp)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 joined record, got %d", len(records))
	}
	rec := records[0]
	if rec.Country != "Afghanistan" || rec.Year != 1800 {
		t.Fatalf("unexpected join result %#v", rec)
	}
	if v, _ := rec.GDPPerCapita.Float(); v != 2000 {
		t.Fatalf("gdp not carried through join: %#v", rec)
	}
}

func TestMerge_NullValuesDoNotExcludeKeys(t *testing.T) {
	life := []domain.Observation{obs("Chad", 1800, domain.Null())}
	gdp := []domain.Observation{obs("Chad", 1800, domain.Some(500))}
	records, err := Merge(life, gdp)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("null value must not drop the key: %#v", records)
	}
	if !records[0].LifeExpectancy.IsNull() {
		t.Fatalf("null must survive the merge for the filter to handle")
	}
}

func TestMerge_DuplicateKeyFailsFast(t *testing.T) {
	dup := []domain.Observation{
		obs("Chad", 1800, domain.Some(40)),
		obs("Chad", 1800, domain.Some(41)),
	}
	single := []domain.Observation{obs("Chad", 1800, domain.Some(500))}

	var dupErr *domain.DuplicateKeyError
	if _, err := Merge(dup, single); !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateKeyError for life stream, got %v", err)
	}
	if dupErr.Variable != domain.VariableLifeExpectancy {
		t.Fatalf("wrong variable in error: %#v", dupErr)
	}
	if _, err := Merge(single, dup); !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateKeyError for gdp stream, got %v", err)
	}
	if dupErr.Variable != domain.VariableGDPPerCapita {
		t.Fatalf("wrong variable in error: %#v", dupErr)
	}
}

func TestMerge_OutputOrderedByCountryYear(t *testing.T) {
	life := []domain.Observation{
		obs("Chad", 1801, domain.Some(41)),
		obs("Albania", 1800, domain.Some(35)),
		obs("Chad", 1800, domain.Some(40)),
	}
	gdp := []domain.Observation{
		obs("Chad", 1800, domain.Some(500)),
		obs("Chad", 1801, domain.Some(510)),
		obs("Albania", 1800, domain.Some(1100)),
	}
	records, err := Merge(life, gdp)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []struct {
		country string
		year    int
	}{{"Albania", 1800}, {"Chad", 1800}, {"Chad", 1801}} {
		if records[i].Country != want.country || records[i].Year != want.year {
			t.Fatalf("position %d: got (%s, %d)", i, records[i].Country, records[i].Year)
		}
	}
}
