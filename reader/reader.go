package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Open when the file extension does not
// map to a supported source format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Source provides schema-first access to a tabular file.
//
// Schema reads only as much of the file as needed to discover column names
// and types; it never materializes data rows. ReadAll loads the entire file
// into memory, so it may not be suitable for very large sources.
//
// A Source is bound to a single open file handle and is not safe for
// concurrent use; callers wanting parallelism should Open one Source per
// goroutine.
type Source interface {
	// Schema returns the ordered column schema of the source.
	Schema() (Schema, error)

	// ReadAll reads all data rows. Each row is a map from column name to
	// value; missing or unparseable cells are nil.
	ReadAll() ([]map[string]interface{}, error)

	// Close releases the underlying file handle. It is safe to call Close
	// multiple times.
	Close() error
}

// Open opens path as a tabular source, determining the format from the file
// extension. The extension match is case-insensitive; unrecognized
// extensions (including a missing one) fail with ErrUnsupportedFormat before
// any read is attempted.
//
// Supported formats:
//   - .csv      delimited text with a header row
//   - .parquet  columnar binary, schema read on demand
func Open(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return OpenCSV(path)
	case ".parquet":
		return OpenParquet(path)
	case "":
		return nil, fmt.Errorf("%w: file has no extension", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.TrimPrefix(ext, "."))
	}
}
