package core

import (
	"sort"

	"lifepanel/pkg/domain"
)

type mergeKey struct {
	country string
	year    int
}

// Merge inner-joins the life-expectancy and GDP observation streams on
// (country, year). Presence of the key in both streams is the join
// predicate; a null value does not exclude a key, that is the quality
// filter's concern. A key occurring twice in either stream fails with
// DuplicateKeyError. Output is ordered by (country, year).
func Merge(life, gdp []domain.Observation) ([]domain.CountryYearRecord, error) {
	gdpByKey := make(map[mergeKey]domain.Observation, len(gdp))
	for _, obs := range gdp {
		key := mergeKey{obs.Country, obs.Year}
		if _, dup := gdpByKey[key]; dup {
			return nil, &domain.DuplicateKeyError{Variable: domain.VariableGDPPerCapita, Country: obs.Country, Year: obs.Year}
		}
		gdpByKey[key] = obs
	}
	seen := make(map[mergeKey]struct{}, len(life))
	records := make([]domain.CountryYearRecord, 0, len(life))
	for _, obs := range life {
		key := mergeKey{obs.Country, obs.Year}
		if _, dup := seen[key]; dup {
			return nil, &domain.DuplicateKeyError{Variable: domain.VariableLifeExpectancy, Country: obs.Country, Year: obs.Year}
		}
		seen[key] = struct{}{}
		counterpart, ok := gdpByKey[key]
		if !ok {
			continue
		}
		records = append(records, domain.CountryYearRecord{
			Country:        obs.Country,
			Year:           obs.Year,
			LifeExpectancy: obs.Value,
			GDPPerCapita:   counterpart.Value,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Country != records[j].Country {
			return records[i].Country < records[j].Country
		}
		return records[i].Year < records[j].Year
	})
	return records, nil
}
