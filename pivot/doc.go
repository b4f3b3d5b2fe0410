// Package pivot compiles and executes pivot-table requests over tabular
// files.
//
// A request names a data source, row and column dimensions, one or more
// aggregated value fields, and optional filter conditions. Execution runs a
// fixed pipeline: filter conditions compile into a single conjunctive
// predicate, rows are grouped by the row and column dimensions and
// aggregated, the long-format result is reshaped to wide form when column
// dimensions were requested, and the final table is serialized into a
// transport-safe row/column representation.
//
// Each stage's output is the next stage's sole input; nothing is cached
// between requests, so an Engine may serve concurrent calls without
// coordination.
//
// Example usage:
//
//	eng := pivot.New(nil)
//	result, err := eng.RunPivot(pivot.PivotRequest{
//	    DataPath: "sales.csv",
//	    Rows:     []string{"region"},
//	    Values:   []pivot.ValueSpec{{Field: "amount", Aggregation: pivot.AggSum}},
//	})
//
// Errors carry a Kind (ReadError, UnsupportedFormat, ProcessingError) that
// callers can branch on with KindOf.
package pivot
