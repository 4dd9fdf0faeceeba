// Package core implements the lifepanel pipeline: wide-to-long reshaping,
// token normalization, the (country, year) inner join, quality filtering,
// per-country aggregation and seeded k-fold cross-validation, plus the
// Service that runs the stages in order.
package core

import (
	"strconv"
	"strings"

	"lifepanel/pkg/domain"
)

// Reshape converts a wide country-by-year table into a long stream of
// observations, one per cell. Every cell produces an observation, missing
// ones included; nothing is dropped here. The raw token is carried along so
// the long stream pivots back to the original table exactly.
func Reshape(table domain.WideTable) ([]domain.Observation, error) {
	years := make([]int, len(table.YearHeaders))
	for i, header := range table.YearHeaders {
		year, err := strconv.Atoi(strings.TrimSpace(header))
		if err != nil {
			return nil, &domain.MalformedHeaderError{Column: header, Err: err}
		}
		years[i] = year
	}
	observations := make([]domain.Observation, 0, len(table.Rows)*len(years))
	for _, row := range table.Rows {
		for i, year := range years {
			raw := ""
			if i < len(row.Cells) {
				raw = row.Cells[i]
			}
			observations = append(observations, domain.Observation{Country: row.Country, Year: year, Raw: raw})
		}
	}
	return observations, nil
}

// Pivot reconstructs a wide table from a long observation stream, the
// inverse of Reshape. Year and country order follow first appearance, so a
// stream produced by Reshape pivots back to the original table. Duplicate
// (country, year) cells fail with DuplicateKeyError.
func Pivot(variable domain.Variable, observations []domain.Observation) (domain.WideTable, error) {
	var yearOrder []int
	yearIndex := make(map[int]int)
	var countryOrder []string
	cells := make(map[string]map[int]string)
	for _, obs := range observations {
		if _, ok := yearIndex[obs.Year]; !ok {
			yearIndex[obs.Year] = len(yearOrder)
			yearOrder = append(yearOrder, obs.Year)
		}
		row, ok := cells[obs.Country]
		if !ok {
			row = make(map[int]string)
			cells[obs.Country] = row
			countryOrder = append(countryOrder, obs.Country)
		}
		if _, dup := row[obs.Year]; dup {
			return domain.WideTable{}, &domain.DuplicateKeyError{Variable: variable, Country: obs.Country, Year: obs.Year}
		}
		row[obs.Year] = obs.Raw
	}
	table := domain.WideTable{Variable: variable, YearHeaders: make([]string, len(yearOrder))}
	for i, year := range yearOrder {
		table.YearHeaders[i] = strconv.Itoa(year)
	}
	for _, country := range countryOrder {
		row := domain.WideRow{Country: country, Cells: make([]string, len(yearOrder))}
		for i, year := range yearOrder {
			row.Cells[i] = cells[country][year]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
