package main

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/mkoval/pivotgrid/pivot"
)

func TestParseValueSpecs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []pivot.ValueSpec
		wantErr bool
	}{
		{
			name:  "single spec",
			input: "amount:Sum",
			want:  []pivot.ValueSpec{{Field: "amount", Aggregation: pivot.AggSum}},
		},
		{
			name:  "multiple specs with spaces",
			input: "amount:Sum, qty : Mean",
			want: []pivot.ValueSpec{
				{Field: "amount", Aggregation: pivot.AggSum},
				{Field: "qty", Aggregation: pivot.AggMean},
			},
		},
		{
			name:  "trailing comma ignored",
			input: "amount:Count,",
			want:  []pivot.ValueSpec{{Field: "amount", Aggregation: pivot.AggCount}},
		},
		{
			name:    "missing kind",
			input:   "amount",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValueSpecs(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValueSpecs(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseValueSpecs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFilters(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		filters, err := parseFilters("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filters != nil {
			t.Errorf("expected nil filters, got %v", filters)
		}
	})

	t.Run("numbers stay json.Number", func(t *testing.T) {
		filters, err := parseFilters(`[{"column":"amount","operator":"GreaterThan","value":100}]`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(filters) != 1 {
			t.Fatalf("expected 1 filter, got %d", len(filters))
		}
		if _, ok := filters[0].Value.(json.Number); !ok {
			t.Errorf("expected json.Number value, got %T", filters[0].Value)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := parseFilters("{not json"); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"region", []string{"region"}},
		{"region, year", []string{"region", "year"}},
		{"a,,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		got := splitList(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
