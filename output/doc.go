// Package output provides formatters for rendering report results.
//
// This package defines the Formatter interface and provides implementations
// for common output formats. All formatters consume a *report.Result and
// honor its declared column order where the format is positional.
//
// # Supported Formats
//
//   - JSON Lines: One JSON object per row (suitable for streaming)
//   - CSV: Comma-separated values with header row
//   - Table: ASCII table for terminals
//
// # Basic Usage
//
// Using the JSON formatter:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(res); err != nil {
//	    log.Fatal(err)
//	}
//
// Using the CSV formatter:
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.Format(res); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
// Change output destination dynamically:
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//
//	file, err := os.Create("report.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	formatter.SetOutput(file)
//	if err := formatter.Format(res); err != nil {
//	    log.Fatal(err)
//	}
//
// # Using as String
//
// Write to a bytes buffer to get string output:
//
//	var buf bytes.Buffer
//	formatter := output.NewCSVFormatter(&buf)
//	if err := formatter.Format(res); err != nil {
//	    log.Fatal(err)
//	}
//	csvString := buf.String()
//
// # Type Handling
//
// Result rows hold nil, string or float64 values. Missing metrics render
// as empty cells in CSV and table output and as JSON null in JSON Lines.
package output
