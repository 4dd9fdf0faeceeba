package core

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"lifepanel/pkg/domain"
)

// Aggregate collapses the cleaned panel to one row per country, computing
// the arithmetic mean of each variable over all retained years plus the
// derived log10 GDP. Output is ordered by country. A country absent from
// the input simply contributes no aggregate.
func Aggregate(records []domain.CountryYearRecord) ([]domain.CountryAggregate, error) {
	grouped := make(map[string][]domain.CountryYearRecord)
	var order []string
	for _, rec := range records {
		if _, ok := grouped[rec.Country]; !ok {
			order = append(order, rec.Country)
		}
		grouped[rec.Country] = append(grouped[rec.Country], rec)
	}
	sort.Strings(order)
	aggregates := make([]domain.CountryAggregate, 0, len(order))
	for _, country := range order {
		agg, err := aggregateCountry(country, grouped[country])
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

func aggregateCountry(country string, rows []domain.CountryYearRecord) (domain.CountryAggregate, error) {
	life := make([]float64, 0, len(rows))
	gdp := make([]float64, 0, len(rows))
	for _, rec := range rows {
		l, lifeOK := rec.LifeExpectancy.Float()
		g, gdpOK := rec.GDPPerCapita.Float()
		if !lifeOK || !gdpOK {
			// Cleaned input has no nulls; a null here means the caller
			// skipped the quality filter.
			continue
		}
		life = append(life, l)
		gdp = append(gdp, g)
	}
	if len(life) == 0 {
		return domain.CountryAggregate{}, fmt.Errorf("country %s: %w", country, domain.ErrEmptyGroup)
	}
	meanGDP := stat.Mean(gdp, nil)
	return domain.CountryAggregate{
		Country:            country,
		MeanLifeExpectancy: stat.Mean(life, nil),
		MeanGDPPerCapita:   meanGDP,
		Log10GDP:           math.Log10(meanGDP),
		Years:              len(life),
	}, nil
}
