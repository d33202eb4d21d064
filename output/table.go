package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/epistat/covidlens/report"
)

// TableFormatter renders a result as an ASCII table for terminals
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the result with one header row and one line per row.
// Column names are kept verbatim instead of auto-uppercased.
func (t *TableFormatter) Format(res *report.Result) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(res.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range res.Rows {
		record := make([]string, len(res.Columns))
		for i, col := range res.Columns {
			record[i] = formatValue(row[col])
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
