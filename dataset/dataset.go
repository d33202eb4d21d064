// Package dataset defines the two COVID-19 input tables and loads them from
// parquet exports into typed records.
//
// The source data ships numeric measurements in mixed shapes: some columns
// are real numbers, others are text that merely looks numeric (total_deaths,
// new_deaths, new_vaccinations). Loading coerces every measurement to
// *float64 up front so downstream arithmetic never touches raw text. A nil
// pointer means "no measurement", which is distinct from zero.
//
// Coercion strictness is a configuration choice:
//
//	loader := &dataset.Loader{Mode: dataset.Strict}
//	cases, warnings, err := loader.Cases("data/cases.parquet")
//
// Strict mode aborts on the first malformed value with a *CoercionError;
// Lenient mode nils the field, records a Warning, and keeps going.
package dataset

import "fmt"

// Table names used in errors and warnings.
const (
	TableCases        = "cases"
	TableVaccinations = "vaccinations"
)

// CaseRecord is one per-location, per-day row of the case/death table.
// The identity key is (Location, Date). Continent is nil on the source's
// world/continent aggregate rows. Dates are normalized ISO strings
// (YYYY-MM-DD) so lexicographic order is chronological order.
type CaseRecord struct {
	Location    string
	Continent   *string
	Date        string
	Population  *float64
	TotalCases  *float64
	NewCases    *float64
	TotalDeaths *float64
	NewDeaths   *float64
}

// VaccinationRecord is one per-location, per-day row of the vaccination
// table. The identity key is (Location, Date).
type VaccinationRecord struct {
	Location        string
	Date            string
	NewVaccinations *float64
}

// Mode selects how the loader treats malformed numeric text.
type Mode int

const (
	// Strict aborts the whole load on the first malformed value.
	Strict Mode = iota
	// Lenient nils the malformed field, records a Warning, and continues.
	Lenient
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Warning records a row that was degraded during a lenient-mode load.
type Warning struct {
	Table  string
	Column string
	Row    int
	Value  string
	Reason string
}

// String renders the warning for log output.
func (w Warning) String() string {
	return fmt.Sprintf("%s row %d: column %q value %q: %s", w.Table, w.Row, w.Column, w.Value, w.Reason)
}
