package core

import (
	"errors"
	"reflect"
	"testing"

	"lifepanel/pkg/domain"
)

func TestReshape_EveryCellProducesObservation(t *testing.T) {
	table := domain.WideTable{
		Variable:    domain.VariableLifeExpectancy,
		YearHeaders: []string{"1800", "1801"},
		Rows: []domain.WideRow{
			{Country: "Afghanistan", Cells: []string{"28.2", ""}},
			{Country: "Albania", Cells: []string{"35.4", "35.4"}},
		},
	}
	obs, err := Reshape(table)
	if err != nil {
		t.Fatalf("reshape: %v", err)
	}
	if len(obs) != 4 {
		t.Fatalf("expected 4 observations, got %d", len(obs))
	}
	want := domain.Observation{Country: "Afghanistan", Year: 1801, Raw: ""}
	if obs[1] != want {
		t.Fatalf("missing cell not preserved: %#v", obs[1])
	}
	if obs[2].Country != "Albania" || obs[2].Year != 1800 || obs[2].Raw != "35.4" {
		t.Fatalf("unexpected observation %#v", obs[2])
	}
}

func TestReshape_ShortRowPadsMissingCells(t *testing.T) {
	table := domain.WideTable{
		Variable:    domain.VariableGDPPerCapita,
		YearHeaders: []string{"1900", "1901", "1902"},
		Rows:        []domain.WideRow{{Country: "Chad", Cells: []string{"600"}}},
	}
	obs, err := Reshape(table)
	if err != nil {
		t.Fatalf("reshape: %v", err)
	}
	if len(obs) != 3 || obs[1].Raw != "" || obs[2].Raw != "" {
		t.Fatalf("short row should pad with empty tokens: %#v", obs)
	}
}

func TestReshape_MalformedHeader(t *testing.T) {
	table := domain.WideTable{
		Variable:    domain.VariableLifeExpectancy,
		YearHeaders: []string{"1800", "not-a-year"},
		Rows:        []domain.WideRow{{Country: "Chad", Cells: []string{"40", "41"}}},
	}
	_, err := Reshape(table)
	var headerErr *domain.MalformedHeaderError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected MalformedHeaderError, got %v", err)
	}
	if headerErr.Column != "not-a-year" {
		t.Fatalf("wrong column in error: %q", headerErr.Column)
	}
}

func TestReshapePivot_RoundTrip(t *testing.T) {
	table := domain.WideTable{
		Variable:    domain.VariableGDPPerCapita,
		YearHeaders: []string{"1800", "1850", "1900"},
		Rows: []domain.WideRow{
			{Country: "Afghanistan", Cells: []string{"2k", "", "700"}},
			{Country: "Albania", Cells: []string{"", "1.1k", "garbage"}},
			{Country: "Chad", Cells: []string{"500", "550", ""}},
		},
	}
	obs, err := Reshape(table)
	if err != nil {
		t.Fatalf("reshape: %v", err)
	}
	back, err := Pivot(table.Variable, obs)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if !reflect.DeepEqual(back, table) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, table)
	}
}

func TestPivot_DuplicateCell(t *testing.T) {
	obs := []domain.Observation{
		{Country: "Chad", Year: 1800, Raw: "40"},
		{Country: "Chad", Year: 1800, Raw: "41"},
	}
	_, err := Pivot(domain.VariableLifeExpectancy, obs)
	var dupErr *domain.DuplicateKeyError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if dupErr.Country != "Chad" || dupErr.Year != 1800 {
		t.Fatalf("wrong key in error: %#v", dupErr)
	}
}
