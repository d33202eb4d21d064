// Package reader provides access to the parquet exports of the COVID
// dataset tables.
//
// Rows come back as maps so the dataset loader can validate and coerce
// columns without committing to a parquet schema at compile time. Missing
// optional values surface as absent map keys; callers treat absent and nil
// alike as "no value".
//
// # Basic Usage
//
// Reading a single parquet file:
//
//	r, err := reader.NewReader("cases.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	rows, err := r.ReadAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, row := range rows {
//	    fmt.Printf("%v\n", row)
//	}
//
// # Sharded Tables
//
// A table exported as multiple files reads as one row set via a glob
// pattern, concatenated in glob order:
//
//	rows, err := reader.ReadTable("data/cases-*.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Schema Introspection
//
// Listing a table's columns with simplified type names:
//
//	columns, err := reader.TableColumns("cases.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, col := range columns {
//	    fmt.Printf("%s: %s\n", col.Name, col.Type)
//	}
//
// # Resource Management
//
// Always call Close() when done reading to release file handles:
//
//	r, err := reader.NewReader("cases.parquet")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// The package uses github.com/parquet-go/parquet-go for the underlying
// parquet file operations.
package reader
