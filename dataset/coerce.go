package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Number coerces a raw cell value to a float, or to nil when the cell holds
// no measurement. nil, empty text, and whitespace-only text coerce to nil.
// Non-empty text that fails to parse returns an error; callers decide
// whether that aborts the batch or degrades to nil with a warning.
func Number(v interface{}) (*float64, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &val, nil
	case float32:
		f := float64(val)
		return &f, nil
	case int:
		f := float64(val)
		return &f, nil
	case int8:
		f := float64(val)
		return &f, nil
	case int16:
		f := float64(val)
		return &f, nil
	case int32:
		f := float64(val)
		return &f, nil
	case int64:
		f := float64(val)
		return &f, nil
	case uint:
		f := float64(val)
		return &f, nil
	case uint8:
		f := float64(val)
		return &f, nil
	case uint16:
		f := float64(val)
		return &f, nil
	case uint32:
		f := float64(val)
		return &f, nil
	case uint64:
		f := float64(val)
		return &f, nil
	case string:
		return parseNumberText(val)
	case []byte:
		return parseNumberText(string(val))
	default:
		return nil, fmt.Errorf("cannot convert %T to number", v)
	}
}

// parseNumberText parses trimmed text into a float; empty text means no
// measurement, not zero.
func parseNumberText(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as number", s)
	}
	return &f, nil
}

// dateLayouts are the textual date shapes accepted by NormalizeDate, in
// the order they are tried.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// NormalizeDate coerces a raw date cell to the canonical YYYY-MM-DD form.
// Accepts ISO text (with or without a time component), time.Time values,
// parquet DATE columns surfaced as days since the Unix epoch, and
// TIMESTAMP columns surfaced as epoch milliseconds.
func NormalizeDate(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return parseDateText(val)
	case []byte:
		return parseDateText(string(val))
	case time.Time:
		return val.UTC().Format("2006-01-02"), nil
	case int32:
		// Parquet DATE: days since 1970-01-01.
		return time.Unix(int64(val)*86400, 0).UTC().Format("2006-01-02"), nil
	case int64:
		// Parquet TIMESTAMP: milliseconds since the epoch.
		return time.UnixMilli(val).UTC().Format("2006-01-02"), nil
	default:
		return "", fmt.Errorf("cannot convert %T to date", v)
	}
}

func parseDateText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("cannot parse date: %s", s)
}
