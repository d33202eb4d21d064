package dataset

import "fmt"

// SchemaError reports a row that is missing a required identity field.
// Row is the 1-based position of the row within its table.
type SchemaError struct {
	Table  string
	Column string
	Row    int
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s row %d: required column %q missing or empty", e.Table, e.Row, e.Column)
}

// CoercionError reports a text field that could not be parsed as a number.
// Empty text is not an error (it coerces to nil); only non-empty,
// non-numeric text produces a CoercionError.
type CoercionError struct {
	Table  string
	Column string
	Row    int
	Value  string
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s row %d: column %q value %q is not numeric", e.Table, e.Row, e.Column, e.Value)
}

// KeyCollisionError reports a duplicate (location, date) pair within one
// input table. Duplicates are only detected when strict key checking is
// enabled; otherwise their relative order is preserved as-is.
type KeyCollisionError struct {
	Table    string
	Location string
	Date     string
}

// Error implements the error interface.
func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("%s: duplicate key (%s, %s)", e.Table, e.Location, e.Date)
}
