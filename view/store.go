// Package view persists report results as tables in a SQLite database so
// other tools can query an analysis without rerunning the pipeline.
//
// Materialization is a drop-and-rebuild inside one transaction. The store
// uses the pure-Go SQLite driver, so a view database is a plain file with
// no C toolchain involved.
package view

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/epistat/covidlens/report"
)

// Store is a handle on one view database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open view database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open view database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Table and column names are spliced into DDL, so they are restricted to
// plain identifiers rather than quoted.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Materialize writes the result as the table called name, replacing any
// previous contents. An empty name falls back to the result's own name.
func (s *Store) Materialize(name string, res *report.Result) error {
	if name == "" {
		name = res.Name
	}
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid view name %q", name)
	}
	if len(res.Columns) == 0 {
		return fmt.Errorf("cannot materialize %q: result has no columns", name)
	}
	for _, col := range res.Columns {
		if !identPattern.MatchString(col) {
			return fmt.Errorf("invalid column name %q", col)
		}
	}

	defs := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		defs[i] = col + " " + columnType(res, col)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to materialize view %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + name); err != nil {
		return fmt.Errorf("failed to materialize view %q: %w", name, err)
	}
	if _, err := tx.Exec("CREATE TABLE " + name + " (" + strings.Join(defs, ", ") + ")"); err != nil {
		return fmt.Errorf("failed to materialize view %q: %w", name, err)
	}

	stmt, err := tx.Prepare("INSERT INTO " + name + " VALUES (?" + strings.Repeat(", ?", len(res.Columns)-1) + ")")
	if err != nil {
		return fmt.Errorf("failed to materialize view %q: %w", name, err)
	}
	defer stmt.Close()

	for _, row := range res.Rows {
		args := make([]interface{}, len(res.Columns))
		for i, col := range res.Columns {
			args[i] = row[col]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to materialize view %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to materialize view %q: %w", name, err)
	}
	return nil
}

// Refresh rebuilds an existing view from a fresh result. It is
// Materialize under a name that says what the caller means.
func (s *Store) Refresh(name string, res *report.Result) error {
	return s.Materialize(name, res)
}

// Rows reads a materialized view back as a result, in insertion order.
func (s *Store) Rows(name string) (*report.Result, error) {
	if !identPattern.MatchString(name) {
		return nil, fmt.Errorf("invalid view name %q", name)
	}

	rows, err := s.db.Query("SELECT * FROM " + name + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to read view %q: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read view %q: %w", name, err)
	}

	res := &report.Result{Name: name, Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to read view %q: %w", name, err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			case int64:
				row[col] = float64(v)
			default:
				row[col] = v
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read view %q: %w", name, err)
	}

	return res, nil
}

// columnType picks the SQLite affinity from the column's first non-nil
// value. All-null columns fall back to TEXT; SQLite does not mind.
func columnType(res *report.Result, col string) string {
	for _, row := range res.Rows {
		switch row[col].(type) {
		case nil:
		case float64:
			return "REAL"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}
