package output

import (
	"encoding/json"
	"io"

	"github.com/mkoval/pivotgrid/pivot"
)

// JSONFormatter outputs result rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the result rows as JSON Lines (one JSON object per line)
func (j *JSONFormatter) Format(result *pivot.PivotResult) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range result.Data {
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
