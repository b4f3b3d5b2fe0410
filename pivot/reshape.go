package pivot

import "fmt"

// reshaped is the output of the reshape stage: the final table plus the
// single header level and any non-fatal warnings produced along the way.
type reshaped struct {
	table       *table
	headerLevel []string
	warnings    []string
}

// reshape turns the long-format table into its final shape.
//
// With no column dimensions the long table passes through unchanged and the
// header level lists one "{kind}_{field}" name per value spec. With column
// dimensions the table is pivoted from long to wide using only the first
// value spec; the remaining specs are ignored in that path.
func reshape(long *table, req *PivotRequest) (*reshaped, error) {
	if len(req.Columns) == 0 {
		headerLevel := make([]string, len(req.Values))
		for i, spec := range req.Values {
			headerLevel[i] = columnName(spec.Aggregation, spec.Field)
		}
		return &reshaped{table: long, headerLevel: headerLevel}, nil
	}
	return reshapeWide(long, req)
}

// reshapeWide pivots the long table: one output row per distinct row
// dimension combination, one output column per distinct column dimension
// combination observed in the data. Cells with no matching long row stay
// missing and serialize as null.
func reshapeWide(long *table, req *PivotRequest) (*reshaped, error) {
	// Only the first value spec participates in the pivoted path.
	spec := req.Values[0]
	valueCol := columnName(spec.Aggregation, spec.Field)

	var warnings []string
	if spec.Aggregation == AggStd || spec.Aggregation == AggVar {
		warnings = append(warnings, fmt.Sprintf(
			"%s cells take the first value per row/column combination when column dimensions are present; the statistic is not preserved through the pivot",
			spec.Aggregation.label()))
	}

	rowCols := dedupColumns(req.Rows)

	type wideRow struct {
		dims  map[string]interface{}
		cells map[string]interface{}
	}

	rowIndex := make(map[string]*wideRow)
	rowOrder := make([]string, 0)
	colSeen := make(map[string]bool)
	colOrder := make([]string, 0)

	for _, row := range long.rows {
		rowKey, dims, err := groupKey(row, req.Rows)
		if err != nil {
			return nil, err
		}

		label, err := pivotLabel(row, req.Columns)
		if err != nil {
			return nil, err
		}
		wideCol := columnName(spec.Aggregation, label)

		if !colSeen[wideCol] {
			colSeen[wideCol] = true
			colOrder = append(colOrder, wideCol)
		}

		wr, exists := rowIndex[rowKey]
		if !exists {
			wr = &wideRow{dims: dims, cells: make(map[string]interface{})}
			rowIndex[rowKey] = wr
			rowOrder = append(rowOrder, rowKey)
		}

		if _, dup := wr.cells[wideCol]; dup {
			return nil, processingErrf("duplicate entries for pivot column %q", wideCol)
		}
		wr.cells[wideCol] = row[valueCol]
	}

	columns := append(append([]string{}, rowCols...), colOrder...)
	outRows := make([]map[string]interface{}, 0, len(rowOrder))
	for _, key := range rowOrder {
		wr := rowIndex[key]
		outRow := make(map[string]interface{}, len(columns))
		for col, v := range wr.dims {
			outRow[col] = v
		}
		for col, v := range wr.cells {
			outRow[col] = v
		}
		outRows = append(outRows, outRow)
	}

	return &reshaped{
		table:       &table{columns: columns, rows: outRows},
		headerLevel: colOrder,
		warnings:    warnings,
	}, nil
}

// pivotLabel builds the wide-column label from a long row's column
// dimension values. Multiple column dimensions join with "_".
func pivotLabel(row map[string]interface{}, colDims []string) (string, error) {
	label := ""
	for i, col := range colDims {
		value, exists := row[col]
		if !exists {
			return "", processingErrf("column %q not found", col)
		}
		if i > 0 {
			label += "_"
		}
		label += formatDimValue(value)
	}
	return label, nil
}

// formatDimValue stringifies a dimension value for use in a column label.
func formatDimValue(v interface{}) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
