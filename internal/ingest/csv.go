// Package ingest loads wide-format CSV panels and encodes the cleaned
// dataset artifact. Reading goes through a gota dataframe with type
// detection off, so cells stay raw tokens; interpreting them is the
// pipeline's job.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"lifepanel/pkg/domain"
)

// DatasetColumns is the stable artifact header, part of the contract with
// downstream consumers.
var DatasetColumns = []string{"country", "year", "life_expectancy", "gdp_per_capita"}

// ReadWideCSV parses a wide country-by-year table for the given variable.
// The first column must be the country identifier; remaining column labels
// are kept raw for the reshaper to parse as years.
func ReadWideCSV(r io.Reader, variable domain.Variable) (domain.WideTable, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return domain.WideTable{}, fmt.Errorf("read %s csv: %w", variable, df.Err)
	}
	records := df.Records()
	if len(records) == 0 || len(records[0]) == 0 {
		return domain.WideTable{}, fmt.Errorf("read %s csv: empty table", variable)
	}
	header := records[0]
	if !strings.EqualFold(strings.TrimSpace(header[0]), "country") {
		return domain.WideTable{}, fmt.Errorf("read %s csv: first column must be country, got %q", variable, header[0])
	}
	table := domain.WideTable{Variable: variable, YearHeaders: header[1:]}
	for _, rec := range records[1:] {
		row := domain.WideRow{Country: rec[0]}
		if len(rec) > 1 {
			row.Cells = rec[1:]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ReadWideCSVFile opens path and parses it with ReadWideCSV.
func ReadWideCSVFile(path string, variable domain.Variable) (domain.WideTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.WideTable{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()
	return ReadWideCSV(file, variable)
}

// EncodeDatasetCSV renders the cleaned dataset as the output artifact:
// DatasetColumns header, one row per record in input order. Records with a
// null value are an error; only the filtered dataset is publishable.
func EncodeDatasetCSV(records []domain.CountryYearRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(DatasetColumns); err != nil {
		return nil, err
	}
	for _, rec := range records {
		life, lifeOK := rec.LifeExpectancy.Float()
		gdp, gdpOK := rec.GDPPerCapita.Float()
		if !lifeOK || !gdpOK {
			return nil, fmt.Errorf("record (%s, %d) has a null value", rec.Country, rec.Year)
		}
		row := []string{
			rec.Country,
			strconv.Itoa(rec.Year),
			strconv.FormatFloat(life, 'g', -1, 64),
			strconv.FormatFloat(gdp, 'g', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
