// Package domain defines the immutable value objects that flow through the
// lifepanel pipeline: wide source tables, long observations, merged
// country-year records, per-country aggregates and fold assignments.
// Stages never mutate their inputs; each returns new values.
package domain

import "encoding/json"

// Variable identifies one of the two source panel variables.
type Variable string

const (
	VariableLifeExpectancy Variable = "life_expectancy"
	VariableGDPPerCapita   Variable = "gdp_per_capita"
)

// Value is a tagged nullable decimal. Missing or unparseable source cells
// become the null Value instead of a sentinel float, so nulls cannot leak
// into arithmetic unnoticed.
type Value struct {
	val     float64
	present bool
}

// Some returns a present Value holding v.
func Some(v float64) Value { return Value{val: v, present: true} }

// Null returns the missing Value.
func Null() Value { return Value{} }

// Float returns the held decimal and whether one is present.
func (v Value) Float() (float64, bool) { return v.val, v.present }

// IsNull reports whether the Value is missing.
func (v Value) IsNull() bool { return !v.present }

// MarshalJSON encodes a present Value as a number and a missing one as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.val)
}

// UnmarshalJSON decodes null as the missing Value and a number as present.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// WideRow is one country's row in a wide source table. Cells align
// positionally with the table's YearHeaders and hold raw, untyped tokens.
type WideRow struct {
	Country string
	Cells   []string
}

// WideTable is a country-by-year wide source table as read from disk.
// YearHeaders keeps the raw column labels; parsing them into years is the
// reshaper's job so a malformed header is reported there, not at ingest.
type WideTable struct {
	Variable    Variable
	YearHeaders []string
	Rows        []WideRow
}

// Observation is one (country, year) cell of a reshaped long table. Raw is
// the original token; Value is populated by the normalizer and stays null
// for missing or unparseable cells.
type Observation struct {
	Country string
	Year    int
	Raw     string
	Value   Value
}

// CountryYearRecord is one merged (country, year) row holding both
// variables. Values may be null until the quality filter runs; after it,
// both are present and the life expectancy lies within the configured
// plausibility bounds.
type CountryYearRecord struct {
	Country        string `json:"country"`
	Year           int    `json:"year"`
	LifeExpectancy Value  `json:"life_expectancy"`
	GDPPerCapita   Value  `json:"gdp_per_capita"`
}

// CountryAggregate collapses one country's cleaned records to the means
// used as the regression sample. Log10GDP is derived from the GDP mean.
type CountryAggregate struct {
	Country            string  `json:"country"`
	MeanLifeExpectancy float64 `json:"mean_life_expectancy"`
	MeanGDPPerCapita   float64 `json:"mean_gdp_per_capita"`
	Log10GDP           float64 `json:"log10_gdp"`
	Years              int     `json:"years"`
}

// FoldAssignment maps every country of the regression sample to a fold id
// in [1, Folds].
type FoldAssignment struct {
	Folds     int
	ByCountry map[string]int
}

// Fold returns the fold id assigned to country.
func (a FoldAssignment) Fold(country string) (int, bool) {
	id, ok := a.ByCountry[country]
	return id, ok
}
