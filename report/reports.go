package report

import (
	"sort"

	"github.com/epistat/covidlens/dataset"
	"github.com/epistat/covidlens/rollup"
)

// RollingVaccinations joins the two tables and computes the per-location
// rolling vaccination total with the share of the population it represents.
// Rows are ordered by (location, date).
func RollingVaccinations(cases []dataset.CaseRecord, vaccinations []dataset.VaccinationRecord) (*Result, error) {
	joined, err := rollup.Join(cases, vaccinations, rollup.Options{})
	if err != nil {
		return nil, err
	}

	running := rollup.RunningSum(joined,
		func(r rollup.JoinedRow) string { return r.Location },
		func(r rollup.JoinedRow) string { return r.Date },
		func(r rollup.JoinedRow) *float64 { return r.NewVaccinations })

	rows := make([]map[string]interface{}, 0, len(running))
	for _, r := range running {
		rolling := r.Total
		rows = append(rows, map[string]interface{}{
			"continent":                 nullableString(r.Row.Continent),
			"location":                  r.Row.Location,
			"date":                      r.Row.Date,
			"population":                nullableFloat(r.Row.Population),
			"new_vaccinations":          nullableFloat(r.Row.NewVaccinations),
			"rolling_people_vaccinated": rolling,
			"percent_vaccinated":        nullableFloat(rollup.PercentOf(&rolling, r.Row.Population)),
		})
	}

	return &Result{
		Name: "rolling_vaccinations",
		Columns: []string{
			"continent", "location", "date", "population",
			"new_vaccinations", "rolling_people_vaccinated", "percent_vaccinated",
		},
		Rows: rows,
	}, nil
}

// HighestInfectionRates summarizes, per country, the peak total case count
// and the largest share of the population ever infected. Rows are ordered
// by that share descending, countries without one last.
func HighestInfectionRates(cases []dataset.CaseRecord) *Result {
	countries := keep(cases, rollup.PerCountry)

	peakCases := rollup.GroupMax(countries,
		func(c dataset.CaseRecord) string { return c.Location },
		func(c dataset.CaseRecord) *float64 { return c.TotalCases })
	peakShare := rollup.GroupMax(countries,
		func(c dataset.CaseRecord) string { return c.Location },
		func(c dataset.CaseRecord) *float64 { return rollup.PercentOf(c.TotalCases, c.Population) })
	populations := populationByLocation(countries)

	type entry struct {
		location   string
		population *float64
		cases      *float64
		share      *float64
	}

	entries := make([]entry, 0, len(peakCases))
	for location := range peakCases {
		entries = append(entries, entry{
			location:   location,
			population: populations[location],
			cases:      peakCases[location],
			share:      peakShare[location],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if c := compareDesc(entries[i].share, entries[j].share); c != 0 {
			return c < 0
		}
		return entries[i].location < entries[j].location
	})

	rows := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]interface{}{
			"location":                    e.location,
			"population":                  nullableFloat(e.population),
			"highest_infection_count":     nullableFloat(e.cases),
			"percent_population_infected": nullableFloat(e.share),
		})
	}

	return &Result{
		Name: "highest_infection_rates",
		Columns: []string{
			"location", "population", "highest_infection_count", "percent_population_infected",
		},
		Rows: rows,
	}
}

// DeathCounts summarizes the peak cumulative death count per country,
// highest first, countries without one last.
func DeathCounts(cases []dataset.CaseRecord) *Result {
	return deathCounts("death_counts", "location", keep(cases, rollup.PerCountry))
}

// ContinentDeathCounts is DeathCounts over the source's aggregate rows
// (world and continents), which carry no continent of their own and are
// keyed by their location name.
func ContinentDeathCounts(cases []dataset.CaseRecord) *Result {
	return deathCounts("continent_death_counts", "continent", keep(cases, rollup.Aggregates))
}

func deathCounts(name, keyColumn string, cases []dataset.CaseRecord) *Result {
	peaks := rollup.GroupMax(cases,
		func(c dataset.CaseRecord) string { return c.Location },
		func(c dataset.CaseRecord) *float64 { return c.TotalDeaths })

	type entry struct {
		location string
		deaths   *float64
	}

	entries := make([]entry, 0, len(peaks))
	for location, deaths := range peaks {
		entries = append(entries, entry{location, deaths})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if c := compareDesc(entries[i].deaths, entries[j].deaths); c != 0 {
			return c < 0
		}
		return entries[i].location < entries[j].location
	})

	rows := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]interface{}{
			keyColumn:           e.location,
			"total_death_count": nullableFloat(e.deaths),
		})
	}

	return &Result{
		Name:    name,
		Columns: []string{keyColumn, "total_death_count"},
		Rows:    rows,
	}
}

// GlobalSummary reduces the per-country rows to a single worldwide line:
// total new cases, total new deaths, and deaths as a percentage of cases.
func GlobalSummary(cases []dataset.CaseRecord) *Result {
	countries := keep(cases, rollup.PerCountry)

	totalCases := rollup.Sum(countries, func(c dataset.CaseRecord) *float64 { return c.NewCases })
	totalDeaths := rollup.Sum(countries, func(c dataset.CaseRecord) *float64 { return c.NewDeaths })

	return &Result{
		Name:    "global_summary",
		Columns: []string{"total_cases", "total_deaths", "death_percentage"},
		Rows: []map[string]interface{}{{
			"total_cases":      nullableFloat(totalCases),
			"total_deaths":     nullableFloat(totalDeaths),
			"death_percentage": nullableFloat(rollup.PercentOf(totalDeaths, totalCases)),
		}},
	}
}

func keep(cases []dataset.CaseRecord, filter func(dataset.CaseRecord) bool) []dataset.CaseRecord {
	var out []dataset.CaseRecord
	for _, c := range cases {
		if filter(c) {
			out = append(out, c)
		}
	}
	return out
}

// populationByLocation picks each location's first non-nil population in
// input order. The source repeats the figure on every row; first wins so
// the choice stays deterministic even if the source ever disagrees.
func populationByLocation(cases []dataset.CaseRecord) map[string]*float64 {
	populations := make(map[string]*float64)
	for _, c := range cases {
		if c.Population == nil {
			continue
		}
		if _, ok := populations[c.Location]; !ok {
			populations[c.Location] = c.Population
		}
	}
	return populations
}

// compareDesc orders larger values first and nils last.
func compareDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	}
	return 0
}

// nullableFloat unwraps a measurement for a row map. A nil pointer must
// become a nil interface value, not a typed nil.
func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
