package output

import (
	"encoding/json"
	"io"

	"github.com/epistat/covidlens/report"
)

// JSONFormatter outputs a result as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the result as JSON Lines (one JSON object per row).
// Keys are emitted alphabetically by the encoder; the declared column
// order only matters for positional formats.
func (j *JSONFormatter) Format(res *report.Result) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range res.Rows {
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
