package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ColumnInfo describes one column of a dataset table.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
}

// TableColumns lists the columns of a table's parquet file with simplified
// type names. Like ReadTable it accepts a single path or a glob pattern;
// with a glob the schema comes from the first shard, since all shards of a
// table share it. The dataset tables are flat, so only top-level leaf
// fields are reported.
func TableColumns(pattern string) ([]ColumnInfo, error) {
	path := pattern
	if strings.ContainsAny(pattern, "*?[]{}") {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", pattern)
		}
		path = matches[0]
	}

	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	var columns []ColumnInfo
	for _, field := range r.Schema().Fields() {
		columns = append(columns, ColumnInfo{
			Name:     field.Name(),
			Type:     columnType(field),
			Optional: field.Optional(),
		})
	}
	return columns, nil
}

// columnType maps a parquet field to a short type name, preferring the
// logical type over the physical one.
func columnType(field parquet.Field) string {
	if !field.Leaf() {
		return "GROUP"
	}

	if lt := field.Type().LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil:
			return "STRING"
		case lt.Date != nil:
			return "DATE"
		case lt.Timestamp != nil:
			return "TIMESTAMP"
		case lt.Decimal != nil:
			return "DECIMAL"
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
