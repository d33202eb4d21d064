package dataset

import (
	"fmt"
	"strings"

	"github.com/epistat/covidlens/reader"
)

// Loader reads the two dataset tables from parquet files into typed records.
// Both methods accept a single path or a glob pattern covering sharded
// exports; shards are concatenated in glob order.
//
// The zero value is a strict loader.
type Loader struct {
	Mode Mode
}

// Cases loads the case/death table. In Strict mode the first malformed row
// aborts with a *SchemaError or *CoercionError; in Lenient mode malformed
// measurements are nilled and rows without a usable identity key are
// dropped, with one Warning recorded per degradation.
func (l *Loader) Cases(pattern string) ([]CaseRecord, []Warning, error) {
	rows, err := reader.ReadTable(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read cases table: %w", err)
	}

	records := make([]CaseRecord, 0, len(rows))
	var warnings []Warning

	for i, row := range rows {
		rowNum := i + 1

		location, date, ok, err := l.identity(row, TableCases, rowNum, &warnings)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}

		rec := CaseRecord{
			Location:  location,
			Date:      date,
			Continent: optionalString(row, "continent"),
		}

		if rec.Population, err = l.measure(row, TableCases, "population", rowNum, &warnings); err != nil {
			return nil, nil, err
		}
		if rec.TotalCases, err = l.measure(row, TableCases, "total_cases", rowNum, &warnings); err != nil {
			return nil, nil, err
		}
		if rec.NewCases, err = l.measure(row, TableCases, "new_cases", rowNum, &warnings); err != nil {
			return nil, nil, err
		}
		if rec.TotalDeaths, err = l.measure(row, TableCases, "total_deaths", rowNum, &warnings); err != nil {
			return nil, nil, err
		}
		if rec.NewDeaths, err = l.measure(row, TableCases, "new_deaths", rowNum, &warnings); err != nil {
			return nil, nil, err
		}

		records = append(records, rec)
	}

	return records, warnings, nil
}

// Vaccinations loads the vaccination table with the same strictness
// semantics as Cases.
func (l *Loader) Vaccinations(pattern string) ([]VaccinationRecord, []Warning, error) {
	rows, err := reader.ReadTable(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read vaccinations table: %w", err)
	}

	records := make([]VaccinationRecord, 0, len(rows))
	var warnings []Warning

	for i, row := range rows {
		rowNum := i + 1

		location, date, ok, err := l.identity(row, TableVaccinations, rowNum, &warnings)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}

		rec := VaccinationRecord{Location: location, Date: date}
		if rec.NewVaccinations, err = l.measure(row, TableVaccinations, "new_vaccinations", rowNum, &warnings); err != nil {
			return nil, nil, err
		}

		records = append(records, rec)
	}

	return records, warnings, nil
}

// identity extracts and normalizes the (location, date) key of a row.
// Returns ok=false when the row was dropped in lenient mode.
func (l *Loader) identity(row map[string]interface{}, table string, rowNum int, warnings *[]Warning) (location, date string, ok bool, err error) {
	location, found := cellString(row, "location")
	if !found {
		if l.Mode == Strict {
			return "", "", false, &SchemaError{Table: table, Column: "location", Row: rowNum}
		}
		*warnings = append(*warnings, Warning{
			Table: table, Column: "location", Row: rowNum,
			Reason: "row dropped: location missing or empty",
		})
		return "", "", false, nil
	}

	raw, exists := row["date"]
	if !exists || raw == nil {
		if l.Mode == Strict {
			return "", "", false, &SchemaError{Table: table, Column: "date", Row: rowNum}
		}
		*warnings = append(*warnings, Warning{
			Table: table, Column: "date", Row: rowNum,
			Reason: "row dropped: date missing",
		})
		return "", "", false, nil
	}

	date, derr := NormalizeDate(raw)
	if derr != nil {
		if l.Mode == Strict {
			return "", "", false, &CoercionError{Table: table, Column: "date", Row: rowNum, Value: renderCell(raw)}
		}
		*warnings = append(*warnings, Warning{
			Table: table, Column: "date", Row: rowNum, Value: renderCell(raw),
			Reason: "row dropped: unparseable date",
		})
		return "", "", false, nil
	}

	return location, date, true, nil
}

// measure coerces one measurement column, honoring the loader mode.
func (l *Loader) measure(row map[string]interface{}, table, column string, rowNum int, warnings *[]Warning) (*float64, error) {
	v, exists := row[column]
	if !exists || v == nil {
		return nil, nil
	}

	n, err := Number(v)
	if err != nil {
		if l.Mode == Strict {
			return nil, &CoercionError{Table: table, Column: column, Row: rowNum, Value: renderCell(v)}
		}
		*warnings = append(*warnings, Warning{
			Table: table, Column: column, Row: rowNum, Value: renderCell(v),
			Reason: "not numeric, treated as no measurement",
		})
		return nil, nil
	}
	return n, nil
}

// cellString reads a column as trimmed text; a missing column, nil value,
// or empty text all report not-found.
func cellString(row map[string]interface{}, column string) (string, bool) {
	v, exists := row[column]
	if !exists || v == nil {
		return "", false
	}
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// optionalString reads a nullable text column, mapping empty text to nil so
// the aggregate rows of the source (empty continent) are recognised as such.
func optionalString(row map[string]interface{}, column string) *string {
	s, ok := cellString(row, column)
	if !ok {
		return nil
	}
	return &s
}

// renderCell formats a raw cell value for an error or warning message.
func renderCell(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
