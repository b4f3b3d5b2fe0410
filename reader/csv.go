package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// schemaSampleRows bounds how many data rows Schema inspects when inferring
// column types for a CSV source.
const schemaSampleRows = 256

// CSVSource reads delimited text files with a header row.
//
// Column types are inferred from a bounded sample of data rows: a column
// whose sampled cells all parse as integers is Int64, integers mixed with
// floats promote to Float64, all-boolean columns are Boolean, and anything
// else falls back to String.
type CSVSource struct {
	file   *os.File
	schema Schema
}

// OpenCSV opens a CSV file as a Source. The file is opened but no rows are
// read until Schema or ReadAll is called.
func OpenCSV(path string) (*CSVSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &CSVSource{file: file}, nil
}

// Schema reads the header row and a sample of data rows to discover column
// names and types. The result is cached for the lifetime of the source.
func (c *CSVSource) Schema() (Schema, error) {
	if c.schema != nil {
		return c.schema, nil
	}

	r, err := c.resetReader()
	if err != nil {
		return nil, err
	}

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	// Sample data rows for type inference. Malformed rows are skipped the
	// same way ReadAll skips them.
	samples := make([][]string, 0, schemaSampleRows)
	for len(samples) < schemaSampleRows {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		samples = append(samples, record)
	}

	schema := make(Schema, len(header))
	for i, name := range header {
		schema[i] = Column{Name: name, Type: inferColumnType(samples, i)}
	}

	c.schema = schema
	return schema, nil
}

// ReadAll reads every data row, parsing each cell according to the inferred
// column type. Empty cells and cells that fail to parse as their column's
// type are nil.
func (c *CSVSource) ReadAll() ([]map[string]interface{}, error) {
	schema, err := c.Schema()
	if err != nil {
		return nil, err
	}

	r, err := c.resetReader()
	if err != nil {
		return nil, err
	}

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	rows := make([]map[string]interface{}, 0)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		row := make(map[string]interface{}, len(schema))
		for i, col := range schema {
			if i >= len(record) {
				row[col.Name] = nil
				continue
			}
			row[col.Name] = parseCell(record[i], col.Type)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Close closes the underlying file.
func (c *CSVSource) Close() error {
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}

// resetReader rewinds the file and returns a fresh CSV reader positioned at
// the header row.
func (c *CSVSource) resetReader() (*csv.Reader, error) {
	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}
	r := csv.NewReader(c.file)
	r.FieldsPerRecord = -1
	return r, nil
}

// inferColumnType classifies column col from the sampled rows.
func inferColumnType(samples [][]string, col int) Type {
	inferred := TypeOther // no non-empty cell seen yet
	for _, record := range samples {
		if col >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[col])
		if cell == "" {
			continue
		}
		inferred = promoteType(inferred, classifyCell(cell))
		if inferred == TypeString {
			break
		}
	}
	if inferred == TypeOther {
		return TypeString
	}
	return inferred
}

// classifyCell returns the narrowest type a single cell parses as.
func classifyCell(cell string) Type {
	if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return TypeInt64
	}
	if _, err := strconv.ParseFloat(cell, 64); err == nil {
		return TypeFloat64
	}
	switch strings.ToLower(cell) {
	case "true", "false":
		return TypeBoolean
	}
	return TypeString
}

// promoteType widens an inferred column type to also cover a newly observed
// cell type. Int64 and Float64 merge to Float64; any other disagreement
// degrades to String.
func promoteType(current, observed Type) Type {
	if current == TypeOther {
		return observed
	}
	if current == observed {
		return current
	}
	if (current == TypeInt64 && observed == TypeFloat64) ||
		(current == TypeFloat64 && observed == TypeInt64) {
		return TypeFloat64
	}
	return TypeString
}

// parseCell converts a raw CSV cell into the typed value for its column.
func parseCell(cell string, t Type) interface{} {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	switch t {
	case TypeInt64:
		if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return v
		}
	case TypeFloat64:
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v
		}
	case TypeBoolean:
		switch strings.ToLower(cell) {
		case "true":
			return true
		case "false":
			return false
		}
	case TypeString:
		return cell
	}

	return nil
}
