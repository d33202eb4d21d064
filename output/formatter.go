package output

import (
	"io"

	"github.com/epistat/covidlens/report"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render a result in the target format
// and SetOutput to change the output destination. Formatters emit columns
// in the result's declared order.
type Formatter interface {
	// Format writes the result in the formatter's specific format
	Format(res *report.Result) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
