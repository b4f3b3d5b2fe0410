package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/mkoval/pivotgrid/pivot"
)

// TableFormatter renders the result as an aligned text table for terminal
// display.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes the result as a text table with the output columns as the
// header row. Null cells render empty.
func (t *TableFormatter) Format(result *pivot.PivotResult) error {
	columns := resultColumns(result)

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)

	for _, row := range result.Data {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row[col])
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
