package pivot

import "strings"

// Operator identifies a filter comparison operator.
type Operator string

const (
	OpEqual              Operator = "Equal"
	OpNotEqual           Operator = "NotEqual"
	OpGreaterThan        Operator = "GreaterThan"
	OpLessThan           Operator = "LessThan"
	OpGreaterThanOrEqual Operator = "GreaterThanOrEqual"
	OpLessThanOrEqual    Operator = "LessThanOrEqual"
	OpIn                 Operator = "In"
)

// AggregationKind identifies how a value field is aggregated per group.
// The set is closed: there is no extension point for user-defined
// aggregations.
type AggregationKind string

const (
	AggSum    AggregationKind = "Sum"
	AggMean   AggregationKind = "Mean"
	AggCount  AggregationKind = "Count"
	AggMin    AggregationKind = "Min"
	AggMax    AggregationKind = "Max"
	AggFirst  AggregationKind = "First"
	AggLast   AggregationKind = "Last"
	AggMedian AggregationKind = "Median"
	AggStd    AggregationKind = "Std"
	AggVar    AggregationKind = "Var"
)

// label returns the lowercase kind name used in output column names.
func (k AggregationKind) label() string {
	return strings.ToLower(string(k))
}

// columnName builds the deterministic output column name for an aggregation
// of field, e.g. "sum_amount".
func columnName(kind AggregationKind, field string) string {
	return kind.label() + "_" + field
}

// FilterCondition is one declarative filter over a source column.
//
// Value is a closed-set union: string, bool, a number (json.Number, float,
// or integer), or an array of those for the In operator. Any other value
// kind fails at compile time with a ProcessingError.
type FilterCondition struct {
	Column   string      `json:"column"`
	Operator Operator    `json:"operator"`
	Value    interface{} `json:"value"`
}

// ValueSpec names a field to aggregate and how.
type ValueSpec struct {
	Field       string          `json:"field"`
	Aggregation AggregationKind `json:"aggregation"`
}

// PivotRequest describes one pivot computation over a tabular file.
//
// Rows and Columns name the row and column dimensions; Values is the
// non-empty list of aggregated value fields. Dimension and field names are
// validated against the source schema when the request executes, not when
// it is constructed.
type PivotRequest struct {
	DataPath string            `json:"data_path"`
	Rows     []string          `json:"rows"`
	Columns  []string          `json:"columns"`
	Values   []ValueSpec       `json:"values"`
	Filters  []FilterCondition `json:"filters,omitempty"`
}

// PivotResult is the transport-safe result of a pivot computation.
//
// Data holds one mapping per output row from output column name to a
// coerced scalar. ColumnHeaders always has exactly one level. Warnings
// carries non-fatal divergences such as the first-value substitution for
// Std/Var in the pivoted path.
type PivotResult struct {
	Data          []map[string]interface{} `json:"data"`
	ColumnHeaders [][]string               `json:"column_headers"`
	RowHeaders    []string                 `json:"row_headers"`
	Warnings      []string                 `json:"warnings,omitempty"`
}

// table is the intermediate typed result passed between pipeline stages:
// an ordered column list plus rows keyed by column name. Keeping the column
// order explicit lets the serializer and formatters emit deterministic
// output from map-backed rows.
type table struct {
	columns []string
	rows    []map[string]interface{}
}
