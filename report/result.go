// Package report builds the shipped COVID analyses on top of the rollup
// engine. Each builder returns a Result: a named, column-ordered row set
// ready for an output formatter or for materialization as a view.
//
// Row maps hold only nil, string or float64 values, so every formatter and
// the view store can render them without type sniffing.
package report

// Result is one finished analysis.
type Result struct {
	// Name identifies the report; it doubles as the default view name.
	Name string

	// Columns fixes the output column order. Formatters must not reorder.
	Columns []string

	// Rows in final display order. Missing metrics are nil, not absent keys.
	Rows []map[string]interface{}
}

// Truncate caps the result at n rows. n <= 0 leaves it untouched.
func (r *Result) Truncate(n int) {
	if n > 0 && len(r.Rows) > n {
		r.Rows = r.Rows[:n]
	}
}
