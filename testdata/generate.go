package main

import (
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type CaseRow struct {
	Continent   *string  `parquet:"continent,optional"`
	Location    string   `parquet:"location"`
	Date        string   `parquet:"date"`
	Population  *float64 `parquet:"population,optional"`
	TotalCases  *float64 `parquet:"total_cases,optional"`
	NewCases    *float64 `parquet:"new_cases,optional"`
	TotalDeaths *string  `parquet:"total_deaths,optional"`
	NewDeaths   *float64 `parquet:"new_deaths,optional"`
}

type VaccinationRow struct {
	Location        string   `parquet:"location"`
	Date            string   `parquet:"date"`
	NewVaccinations *float64 `parquet:"new_vaccinations,optional"`
}

func strPtr(s string) *string { return &s }

func numPtr(f float64) *float64 { return &f }

func main() {
	// total_deaths is deliberately a text column, like the public CSV
	// export this mimics; the loader has to coerce it.
	cases := []CaseRow{
		{Continent: strPtr("Europe"), Location: "Albania", Date: "2021-01-01", Population: numPtr(2877797), TotalCases: numPtr(58316), NewCases: numPtr(501), TotalDeaths: strPtr("1181"), NewDeaths: numPtr(4)},
		{Continent: strPtr("Europe"), Location: "Albania", Date: "2021-01-02", Population: numPtr(2877797), TotalCases: numPtr(58991), NewCases: numPtr(675), TotalDeaths: strPtr("1190"), NewDeaths: numPtr(9)},
		{Continent: strPtr("Europe"), Location: "Albania", Date: "2021-01-03", Population: numPtr(2877797), TotalCases: numPtr(59438), NewCases: numPtr(447), TotalDeaths: strPtr("1193"), NewDeaths: numPtr(3)},
		{Continent: strPtr("Asia"), Location: "Vietnam", Date: "2021-01-01", Population: numPtr(98168829), TotalCases: numPtr(1474), NewCases: numPtr(9), TotalDeaths: strPtr("35"), NewDeaths: nil},
		{Continent: strPtr("Asia"), Location: "Vietnam", Date: "2021-01-02", Population: numPtr(98168829), TotalCases: numPtr(1482), NewCases: numPtr(8), TotalDeaths: strPtr("N/A"), NewDeaths: nil},
		{Continent: nil, Location: "Europe", Date: "2021-01-01", Population: numPtr(748962983), TotalCases: numPtr(24642423), NewCases: numPtr(230316), TotalDeaths: strPtr("559163"), NewDeaths: numPtr(5209)},
		{Continent: nil, Location: "World", Date: "2021-01-01", Population: numPtr(7794798739), TotalCases: numPtr(83832334), NewCases: numPtr(571331), TotalDeaths: strPtr("1824590"), NewDeaths: numPtr(9367)},
	}

	vaccinations := []VaccinationRow{
		{Location: "Albania", Date: "2021-01-01", NewVaccinations: numPtr(60)},
		{Location: "Albania", Date: "2021-01-02", NewVaccinations: nil},
		{Location: "Albania", Date: "2021-01-03", NewVaccinations: numPtr(120)},
		{Location: "Vietnam", Date: "2021-01-01", NewVaccinations: numPtr(500)},
		{Location: "Vietnam", Date: "2021-01-02", NewVaccinations: numPtr(700)},
	}

	writeFile("cases.parquet", cases)
	writeFile("vaccinations.parquet", vaccinations)
}

func writeFile[T any](name string, rows []T) {
	file, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	defer writer.Close()

	if _, err := writer.Write(rows); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated %s with %d rows", name, len(rows))
}
