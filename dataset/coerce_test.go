package dataset

import (
	"testing"
	"time"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    float64
		wantNil bool
		wantErr bool
	}{
		{name: "float64", input: float64(12.5), want: 12.5},
		{name: "float32", input: float32(2), want: 2},
		{name: "int", input: int(7), want: 7},
		{name: "int32", input: int32(-3), want: -3},
		{name: "int64", input: int64(1181), want: 1181},
		{name: "uint32", input: uint32(9), want: 9},
		{name: "numeric text", input: "1181", want: 1181},
		{name: "float text", input: "3.25", want: 3.25},
		{name: "padded text", input: "  42 ", want: 42},
		{name: "byte slice", input: []byte("17"), want: 17},
		{name: "nil", input: nil, wantNil: true},
		{name: "empty text", input: "", wantNil: true},
		{name: "blank text", input: "   ", wantNil: true},
		{name: "garbage text", input: "N/A", wantErr: true},
		{name: "mixed text", input: "12abc", wantErr: true},
		{name: "bool", input: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Number(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %v, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Number(%v) failed: %v", tt.input, err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Expected nil for %v, got %v", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Expected %v, got nil", tt.want)
			}
			if *got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, *got)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    string
		wantErr bool
	}{
		{name: "iso date", input: "2021-01-03", want: "2021-01-03"},
		{name: "rfc3339", input: "2021-01-03T15:04:05Z", want: "2021-01-03"},
		{name: "datetime", input: "2021-01-03 15:04:05", want: "2021-01-03"},
		{name: "t separated", input: "2021-01-03T15:04:05", want: "2021-01-03"},
		{name: "padded", input: " 2021-01-03 ", want: "2021-01-03"},
		{name: "byte slice", input: []byte("2021-01-03"), want: "2021-01-03"},
		{name: "time value", input: time.Date(2021, 1, 3, 10, 0, 0, 0, time.UTC), want: "2021-01-03"},
		{name: "days since epoch", input: int32(18630), want: "2021-01-03"},
		{name: "millis since epoch", input: int64(1609632000000), want: "2021-01-03"},
		{name: "garbage", input: "tomorrow", wantErr: true},
		{name: "unsupported type", input: 3.14, wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %v, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%v) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizedDatesSortChronologically(t *testing.T) {
	// The engine orders dates lexicographically, which only works because
	// normalization pins them to one fixed-width layout.
	dates := []string{"2020-12-31", "2021-01-01", "2021-01-02", "2021-02-01", "2021-11-30"}
	for i := 1; i < len(dates); i++ {
		if !(dates[i-1] < dates[i]) {
			t.Errorf("%q should sort before %q", dates[i-1], dates[i])
		}
	}
}
