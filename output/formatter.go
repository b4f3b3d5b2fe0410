// Package output provides formatters for rendering pivot results.
//
// Supported formats:
//   - JSON Lines: one JSON object per output row
//   - CSV: comma-separated values with a header row
//   - Table: aligned text table for terminal display
//
// Example usage:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/mkoval/pivotgrid/pivot"
)

// Formatter defines the interface for pivot result formatters.
//
// Implementers must provide Format to render a result in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the result in the formatter's specific format
	Format(result *pivot.PivotResult) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// resultColumns derives the ordered output column list of a result: the row
// header columns followed by the single header level.
func resultColumns(result *pivot.PivotResult) []string {
	seen := make(map[string]bool)
	columns := make([]string, 0, len(result.RowHeaders))
	for _, col := range result.RowHeaders {
		if seen[col] {
			continue
		}
		seen[col] = true
		columns = append(columns, col)
	}
	for _, level := range result.ColumnHeaders {
		for _, col := range level {
			if seen[col] {
				continue
			}
			seen[col] = true
			columns = append(columns, col)
		}
	}
	return columns
}
