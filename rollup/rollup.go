// Package rollup implements the windowed join/aggregation engine behind the
// COVID analyses: an inner join of the two dataset tables on the composite
// key (location, date), location-partitioned date-ordered running sums, and
// null-safe ratio metrics.
//
// The pipeline is pure and synchronous: every function is a deterministic
// transformation of its inputs with no shared state, so re-running it on
// the same records produces identical output.
//
// Example usage:
//
//	joined, err := rollup.Join(cases, vaccinations, rollup.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	running := rollup.RunningSum(joined,
//	    func(r rollup.JoinedRow) string { return r.Location },
//	    func(r rollup.JoinedRow) string { return r.Date },
//	    func(r rollup.JoinedRow) *float64 { return r.NewVaccinations })
package rollup

import (
	"github.com/epistat/covidlens/dataset"
)

// JoinedRow is the natural-key join of a CaseRecord and a VaccinationRecord
// sharing (location, date). NewVaccinations is nil when the vaccination
// side has no measurement for that day (or, under LeftJoin, no row at all).
type JoinedRow struct {
	Continent       *string
	Location        string
	Date            string
	Population      *float64
	TotalCases      *float64
	NewCases        *float64
	TotalDeaths     *float64
	NewDeaths       *float64
	NewVaccinations *float64
}

// Options configures a join.
type Options struct {
	// Filter is applied to the case side before joining. nil means
	// PerCountry, which drops the source's world/continent aggregate rows.
	Filter func(dataset.CaseRecord) bool

	// StrictKeys makes a duplicate (location, date) pair within either
	// input a *dataset.KeyCollisionError instead of undefined behavior.
	StrictKeys bool
}

// PerCountry keeps only per-country rows. The source encodes world and
// continent aggregates as rows with no continent.
func PerCountry(c dataset.CaseRecord) bool {
	return c.Continent != nil
}

// Aggregates keeps only the source's world/continent aggregate rows, the
// complement of PerCountry.
func Aggregates(c dataset.CaseRecord) bool {
	return c.Continent == nil
}

// key is the composite join key. Dates are normalized ISO strings, so
// struct equality is exact key equality.
type key struct {
	location string
	date     string
}

// Join inner-joins the two tables on (location, date). Case rows failing
// the filter and rows without a partner on the other side are dropped.
// Output order is unspecified; RunningSum imposes the order downstream.
//
// Rows with an empty location or date fail with a *dataset.SchemaError:
// a row without its identity key cannot participate in a key join.
func Join(cases []dataset.CaseRecord, vaccinations []dataset.VaccinationRecord, opts Options) ([]JoinedRow, error) {
	index, err := indexVaccinations(vaccinations, opts.StrictKeys)
	if err != nil {
		return nil, err
	}

	filter := opts.Filter
	if filter == nil {
		filter = PerCountry
	}

	var joined []JoinedRow
	seen := make(map[key]struct{})

	for i, c := range cases {
		if c.Location == "" {
			return nil, &dataset.SchemaError{Table: dataset.TableCases, Column: "location", Row: i + 1}
		}
		if c.Date == "" {
			return nil, &dataset.SchemaError{Table: dataset.TableCases, Column: "date", Row: i + 1}
		}

		k := key{c.Location, c.Date}
		if opts.StrictKeys {
			if _, dup := seen[k]; dup {
				return nil, &dataset.KeyCollisionError{Table: dataset.TableCases, Location: c.Location, Date: c.Date}
			}
			seen[k] = struct{}{}
		}

		if !filter(c) {
			continue
		}

		v, ok := index[k]
		if !ok {
			continue
		}
		joined = append(joined, merge(c, v.NewVaccinations))
	}

	return joined, nil
}

// LeftJoin is the completeness variant of Join: case rows passing the
// filter are kept even without a vaccination partner, with nil
// NewVaccinations. None of the shipped reports need it, but callers
// comparing coverage across the two tables do.
func LeftJoin(cases []dataset.CaseRecord, vaccinations []dataset.VaccinationRecord, opts Options) ([]JoinedRow, error) {
	index, err := indexVaccinations(vaccinations, opts.StrictKeys)
	if err != nil {
		return nil, err
	}

	filter := opts.Filter
	if filter == nil {
		filter = PerCountry
	}

	var joined []JoinedRow
	seen := make(map[key]struct{})

	for i, c := range cases {
		if c.Location == "" {
			return nil, &dataset.SchemaError{Table: dataset.TableCases, Column: "location", Row: i + 1}
		}
		if c.Date == "" {
			return nil, &dataset.SchemaError{Table: dataset.TableCases, Column: "date", Row: i + 1}
		}

		k := key{c.Location, c.Date}
		if opts.StrictKeys {
			if _, dup := seen[k]; dup {
				return nil, &dataset.KeyCollisionError{Table: dataset.TableCases, Location: c.Location, Date: c.Date}
			}
			seen[k] = struct{}{}
		}

		if !filter(c) {
			continue
		}

		var newVaccinations *float64
		if v, ok := index[k]; ok {
			newVaccinations = v.NewVaccinations
		}
		joined = append(joined, merge(c, newVaccinations))
	}

	return joined, nil
}

// indexVaccinations builds the hash side of the join, optionally rejecting
// duplicate keys.
func indexVaccinations(vaccinations []dataset.VaccinationRecord, strictKeys bool) (map[key]dataset.VaccinationRecord, error) {
	index := make(map[key]dataset.VaccinationRecord, len(vaccinations))
	for i, v := range vaccinations {
		if v.Location == "" {
			return nil, &dataset.SchemaError{Table: dataset.TableVaccinations, Column: "location", Row: i + 1}
		}
		if v.Date == "" {
			return nil, &dataset.SchemaError{Table: dataset.TableVaccinations, Column: "date", Row: i + 1}
		}

		k := key{v.Location, v.Date}
		if _, dup := index[k]; dup && strictKeys {
			return nil, &dataset.KeyCollisionError{Table: dataset.TableVaccinations, Location: v.Location, Date: v.Date}
		}
		index[k] = v
	}
	return index, nil
}

// merge builds the joined row. All measurement fields come from the case
// side except NewVaccinations.
func merge(c dataset.CaseRecord, newVaccinations *float64) JoinedRow {
	return JoinedRow{
		Continent:       c.Continent,
		Location:        c.Location,
		Date:            c.Date,
		Population:      c.Population,
		TotalCases:      c.TotalCases,
		NewCases:        c.NewCases,
		TotalDeaths:     c.TotalDeaths,
		NewDeaths:       c.NewDeaths,
		NewVaccinations: newVaccinations,
	}
}
