package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/epistat/covidlens/dataset"
	"github.com/epistat/covidlens/logging"
	"github.com/epistat/covidlens/output"
	"github.com/epistat/covidlens/reader"
	"github.com/epistat/covidlens/report"
	"github.com/epistat/covidlens/view"
)

var (
	casesFlag        = flag.String("cases", "", "Cases parquet file or glob (env COVIDLENS_CASES)")
	vaccinationsFlag = flag.String("vaccinations", "", "Vaccinations parquet file or glob (env COVIDLENS_VACCINATIONS)")
	reportFlag       = flag.String("report", "rolling", "Report to run: rolling, infection, deaths, continent-deaths, global")
	formatFlag       = flag.String("f", "jsonl", "Output format: json, jsonl, csv, table")
	limitFlag        = flag.Int("limit", 0, "Limit number of rows (0 = unlimited)")
	strictFlag       = flag.Bool("strict", false, "Fail on malformed cells instead of treating them as missing (env COVIDLENS_STRICT)")
	viewFlag         = flag.String("view", "", "SQLite database to materialize the report into (env COVIDLENS_VIEW_DB)")
	viewNameFlag     = flag.String("view-name", "", "Table name for -view (defaults to the report name)")
	schemaFlag       = flag.Bool("schema", false, "Show schema information instead of data")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A tool to run COVID-19 case and vaccination analyses over parquet files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -cases deaths.parquet -vaccinations vax.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -cases deaths.parquet -report infection -f table\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -cases 'data/deaths-*.parquet' -report global -f csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -cases deaths.parquet -vaccinations vax.parquet -view covid.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --schema -cases deaths.parquet\n", os.Args[0])
	}

	flag.Parse()

	// Validate flag values
	if *limitFlag < 0 {
		fmt.Fprintf(os.Stderr, "Error: -limit must be non-negative, got %d\n", *limitFlag)
		os.Exit(1)
	}
	if *schemaFlag && *viewFlag != "" {
		fmt.Fprintf(os.Stderr, "Error: --schema and -view cannot be used together\n")
		os.Exit(1)
	}

	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()
	applyEnvFallbacks()

	logger := logging.NewLogger().With("run_id", uuid.NewString())
	defer logger.Sync()

	formatter, err := newFormatter(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Supported formats: json, jsonl, csv, table\n")
		os.Exit(1)
	}

	if *schemaFlag {
		handleSchemaMode(formatter)
		os.Exit(0)
	}

	if *casesFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: missing -cases file argument (or COVIDLENS_CASES)\n\n")
		flag.Usage()
		os.Exit(1)
	}
	if *reportFlag == "rolling" && *vaccinationsFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: the rolling report needs -vaccinations (or COVIDLENS_VACCINATIONS)\n")
		os.Exit(1)
	}

	mode := dataset.Lenient
	if *strictFlag {
		mode = dataset.Strict
	}

	start := time.Now()
	res, err := buildReport(*reportFlag, dataset.Loader{Mode: mode}, logger)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Please check the file path and try again.\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	logger.Infow("report built",
		"report", res.Name,
		"rows", humanize.Comma(int64(len(res.Rows))),
		"elapsed", time.Since(start).String())

	res.Truncate(*limitFlag)

	if *viewFlag != "" {
		store, err := view.Open(*viewFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.Materialize(*viewNameFlag, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		name := *viewNameFlag
		if name == "" {
			name = res.Name
		}
		logger.Infow("materialized view", "database", *viewFlag, "table", name)
	}

	if err := formatter.Format(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// applyEnvFallbacks fills flags the user did not set from the environment.
// Explicit flags always win.
func applyEnvFallbacks() {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["cases"] {
		if v := os.Getenv("COVIDLENS_CASES"); v != "" {
			*casesFlag = v
		}
	}
	if !set["vaccinations"] {
		if v := os.Getenv("COVIDLENS_VACCINATIONS"); v != "" {
			*vaccinationsFlag = v
		}
	}
	if !set["view"] {
		if v := os.Getenv("COVIDLENS_VIEW_DB"); v != "" {
			*viewFlag = v
		}
	}
	if !set["strict"] && os.Getenv("COVIDLENS_STRICT") == "true" {
		*strictFlag = true
	}
}

// buildReport loads whichever tables the chosen report needs and runs it.
func buildReport(name string, loader dataset.Loader, logger *zap.SugaredLogger) (*report.Result, error) {
	cases, warnings, err := loader.Cases(*casesFlag)
	if err != nil {
		return nil, err
	}
	logLoad(logger, dataset.TableCases, len(cases), warnings)

	switch name {
	case "rolling":
		vaccinations, warnings, err := loader.Vaccinations(*vaccinationsFlag)
		if err != nil {
			return nil, err
		}
		logLoad(logger, dataset.TableVaccinations, len(vaccinations), warnings)
		return report.RollingVaccinations(cases, vaccinations)
	case "infection":
		return report.HighestInfectionRates(cases), nil
	case "deaths":
		return report.DeathCounts(cases), nil
	case "continent-deaths":
		return report.ContinentDeathCounts(cases), nil
	case "global":
		return report.GlobalSummary(cases), nil
	default:
		return nil, fmt.Errorf("unsupported report %q (rolling, infection, deaths, continent-deaths, global)", name)
	}
}

func logLoad(logger *zap.SugaredLogger, table string, rows int, warnings []dataset.Warning) {
	logger.Infow("loaded table",
		"table", table,
		"rows", humanize.Comma(int64(rows)),
		"warnings", len(warnings))
	for _, w := range warnings {
		logger.Debugw("coercion warning",
			"table", w.Table,
			"column", w.Column,
			"row", w.Row,
			"value", w.Value,
			"reason", w.Reason)
	}
}

func newFormatter(format string) (output.Formatter, error) {
	switch format {
	case "json", "jsonl":
		return output.NewJSONFormatter(os.Stdout), nil
	case "csv":
		return output.NewCSVFormatter(os.Stdout), nil
	case "table":
		return output.NewTableFormatter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// handleSchemaMode prints the column layout of the given table files
// instead of running a report.
func handleSchemaMode(formatter output.Formatter) {
	inputs := []struct {
		table   string
		pattern string
	}{
		{dataset.TableCases, *casesFlag},
		{dataset.TableVaccinations, *vaccinationsFlag},
	}

	res := &report.Result{
		Name:    "schema",
		Columns: []string{"table", "column", "type", "optional"},
	}

	seen := false
	for _, in := range inputs {
		if in.pattern == "" {
			continue
		}
		seen = true

		columns, err := reader.TableColumns(in.pattern)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", in.pattern)
				fmt.Fprintf(os.Stderr, "Please check the file path and try again.\n")
			} else {
				fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
			}
			os.Exit(1)
		}

		for _, col := range columns {
			res.Rows = append(res.Rows, map[string]interface{}{
				"table":    in.table,
				"column":   col.Name,
				"type":     col.Type,
				"optional": fmt.Sprintf("%t", col.Optional),
			})
		}
	}

	if !seen {
		fmt.Fprintf(os.Stderr, "Error: --schema needs -cases and/or -vaccinations\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := formatter.Format(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}
