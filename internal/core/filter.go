package core

import "lifepanel/pkg/domain"

// FilterConfig bounds the quality filter. Zero-value bounds are unusable;
// start from DefaultFilterConfig.
type FilterConfig struct {
	LifeExpectancyMin float64
	LifeExpectancyMax float64
	// HistoricalOnly drops projected rows, those with year beyond CutoffYear.
	HistoricalOnly bool
	CutoffYear     int
}

// DefaultFilterConfig returns the standard bounds: biologically plausible
// life expectancy in [0, 120] and historical rows up to 2024.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		LifeExpectancyMin: 0,
		LifeExpectancyMax: 120,
		HistoricalOnly:    true,
		CutoffYear:        2024,
	}
}

// FilterDiagnostics counts how many rows each predicate removed. The
// predicates commute, so the counts depend on evaluation order (null, then
// plausibility, then cutoff) but the surviving set does not.
type FilterDiagnostics struct {
	Input              int `json:"input"`
	DroppedNull        int `json:"dropped_null"`
	DroppedImplausible int `json:"dropped_implausible"`
	DroppedProjected   int `json:"dropped_projected"`
	Kept               int `json:"kept"`
}

// Filter drops records with a null value in either variable, records whose
// life expectancy falls outside the plausibility bounds, and, in
// historical-only mode, records beyond the cutoff year. Filter is a fixed
// point: applying it to its own output changes nothing.
func Filter(records []domain.CountryYearRecord, cfg FilterConfig) ([]domain.CountryYearRecord, FilterDiagnostics) {
	diag := FilterDiagnostics{Input: len(records)}
	out := make([]domain.CountryYearRecord, 0, len(records))
	for _, rec := range records {
		life, lifeOK := rec.LifeExpectancy.Float()
		_, gdpOK := rec.GDPPerCapita.Float()
		switch {
		case !lifeOK || !gdpOK:
			diag.DroppedNull++
		case life < cfg.LifeExpectancyMin || life > cfg.LifeExpectancyMax:
			diag.DroppedImplausible++
		case cfg.HistoricalOnly && rec.Year > cfg.CutoffYear:
			diag.DroppedProjected++
		default:
			out = append(out, rec)
			diag.Kept++
		}
	}
	return out, diag
}
