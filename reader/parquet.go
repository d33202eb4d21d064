package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// maxShards bounds how many files a single table glob may expand to.
const maxShards = 1000

// Reader reads one parquet file and returns rows as maps.
//
// It keeps both the OS file handle and the parquet handle so Close can
// release everything.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens and validates a parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads every row of the file into memory. The dataset tables are
// daily per-location series, small enough that whole-file reads are the
// working mode of this tool.
func (r *Reader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Schema returns the parquet schema of the file.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the underlying file handle. Safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadTable reads one logical table given a single path or a glob pattern
// over sharded exports (e.g. "data/cases-*.parquet"). Shards are
// concatenated in glob order; all shards must share the table's schema.
func ReadTable(pattern string) ([]map[string]interface{}, error) {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		r, err := NewReader(pattern)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll()
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxShards {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxShards)
	}

	var allRows []map[string]interface{}
	for _, path := range matches {
		r, err := NewReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		rows, readErr := r.ReadAll()
		closeErr := r.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", path, readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
		}

		allRows = append(allRows, rows...)
	}

	return allRows, nil
}
