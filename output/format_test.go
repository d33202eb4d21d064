package output

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/epistat/covidlens/dataset"
	"github.com/epistat/covidlens/report"
)

func sampleResult() *report.Result {
	return &report.Result{
		Name:    "death_counts",
		Columns: []string{"location", "total_death_count"},
		Rows: []map[string]interface{}{
			{"location": "Belgium", "total_death_count": 100.0},
			{"location": "Albania", "total_death_count": nil},
		},
	}
}

func TestCSVFormatterWritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)

	if err := f.Format(sampleResult()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "location,total_death_count" {
		t.Errorf("Expected header in declared column order, got %q", lines[0])
	}
	if lines[1] != "Belgium,100" {
		t.Errorf("Expected first row 'Belgium,100', got %q", lines[1])
	}
	if lines[2] != "Albania," {
		t.Errorf("Expected null metric as empty cell, got %q", lines[2])
	}
}

func TestCSVFormatterGuardsFormulaInjection(t *testing.T) {
	res := &report.Result{
		Columns: []string{"location"},
		Rows:    []map[string]interface{}{{"location": "=SUM(A1:A9)"}},
	}

	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)
	if err := f.Format(res); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[1] != "'=SUM(A1:A9)" {
		t.Errorf("Expected formula to be neutralized with quote prefix, got %q", lines[1])
	}
}

func TestJSONFormatterEmitsOneObjectPerRow(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	if err := f.Format(sampleResult()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 JSON lines, got %d: %q", len(lines), buf.String())
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("failed to parse first line: %v", err)
	}
	if first["location"] != "Belgium" {
		t.Errorf("Expected location Belgium, got %v", first["location"])
	}
	if first["total_death_count"] != 100.0 {
		t.Errorf("Expected total_death_count 100, got %v", first["total_death_count"])
	}

	var second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("failed to parse second line: %v", err)
	}
	v, ok := second["total_death_count"]
	if !ok {
		t.Error("Expected null metric to be present as JSON null, key missing")
	}
	if v != nil {
		t.Errorf("Expected null metric, got %v", v)
	}
}

func TestTableFormatterKeepsHeaderVerbatim(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)

	if err := f.Format(sampleResult()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "total_death_count") {
		t.Errorf("Expected verbatim column name in table output, got %q", out)
	}
	if strings.Contains(out, "TOTAL DEATH COUNT") {
		t.Errorf("Expected headers not to be auto-uppercased, got %q", out)
	}
	if !strings.Contains(out, "Belgium") {
		t.Errorf("Expected row values in table output, got %q", out)
	}
}

func TestSetOutputRedirects(t *testing.T) {
	f := NewCSVFormatter(io.Discard)

	var buf bytes.Buffer
	f.SetOutput(&buf)
	if err := f.Format(sampleResult()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected output on the new writer after SetOutput")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil renders empty", nil, ""},
		{"plain string", "Albania", "Albania"},
		{"string with inner quote", "Cote d'Ivoire", "Cote d'Ivoire"},
		{"float drops trailing zeros", 100.0, "100"},
		{"float keeps fraction", 3.5, "3.5"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"leading equals is neutralized", "=cmd()", "'=cmd()"},
		{"leading plus is neutralized", "+41", "'+41"},
		{"leading minus is neutralized", "-x", "'-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCSVFormatterOutputIsDeterministic(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	europe := "Europe"

	cases := []dataset.CaseRecord{
		{Location: "Albania", Continent: &europe, Date: "2021-01-01", Population: v(100)},
		{Location: "Albania", Continent: &europe, Date: "2021-01-02", Population: v(100)},
		{Location: "Belgium", Continent: &europe, Date: "2021-01-01", Population: v(200)},
		{Location: "Belgium", Continent: &europe, Date: "2021-01-02", Population: v(200)},
	}
	vaccinations := []dataset.VaccinationRecord{
		{Location: "Albania", Date: "2021-01-01", NewVaccinations: v(10)},
		{Location: "Albania", Date: "2021-01-02", NewVaccinations: v(5)},
		{Location: "Belgium", Date: "2021-01-01", NewVaccinations: v(7)},
		{Location: "Belgium", Date: "2021-01-02"},
	}

	var first []byte
	for trial := 0; trial < 5; trial++ {
		rand.Shuffle(len(cases), func(i, j int) {
			cases[i], cases[j] = cases[j], cases[i]
		})
		rand.Shuffle(len(vaccinations), func(i, j int) {
			vaccinations[i], vaccinations[j] = vaccinations[j], vaccinations[i]
		})

		res, err := report.RollingVaccinations(cases, vaccinations)
		if err != nil {
			t.Fatalf("Failed to build report on trial %d: %v", trial, err)
		}

		var buf bytes.Buffer
		if err := NewCSVFormatter(&buf).Format(res); err != nil {
			t.Fatalf("Failed to format report on trial %d: %v", trial, err)
		}

		if trial == 0 {
			first = buf.Bytes()
			continue
		}
		if !bytes.Equal(buf.Bytes(), first) {
			t.Errorf("Expected identical CSV bytes on every run, trial %d differs:\n%s\n---\n%s", trial, buf.Bytes(), first)
		}
	}
}
