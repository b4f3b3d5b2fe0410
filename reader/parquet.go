package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ParquetSource reads Apache Parquet files.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup. The parquet footer is parsed when the source is
// opened, so Schema never touches the data pages.
type ParquetSource struct {
	file   *os.File
	pqFile *parquet.File
}

// OpenParquet opens a parquet file as a Source.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func OpenParquet(path string) (*ParquetSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &ParquetSource{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// Schema returns the column schema from the parquet file metadata.
//
// Only top-level fields are reported; nested groups map to TypeOther.
func (p *ParquetSource) Schema() (Schema, error) {
	fields := p.pqFile.Schema().Fields()
	schema := make(Schema, 0, len(fields))
	for _, field := range fields {
		schema = append(schema, Column{
			Name: field.Name(),
			Type: parquetFieldType(field),
		})
	}
	return schema, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Each row is returned as a map where keys are column names and values are
// the column values.
func (p *ParquetSource) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	r := parquet.NewReader(p.pqFile)
	defer func() { _ = r.Close() }()

	for {
		row := make(map[string]interface{})
		err := r.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Close closes the parquet source and releases associated resources.
func (p *ParquetSource) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// parquetFieldType maps a parquet field to the reader's scalar type tags.
func parquetFieldType(field parquet.Field) Type {
	// Nested groups have child fields and no scalar type.
	if len(field.Fields()) > 0 || field.Type() == nil {
		return TypeOther
	}

	// Check logical type first for more specific typing.
	if lt := field.Type().LogicalType(); lt != nil {
		switch lt.String() {
		case "STRING", "UTF8":
			return TypeString
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return TypeBoolean
	case parquet.Int32:
		return TypeInt32
	case parquet.Int64:
		return TypeInt64
	case parquet.Float, parquet.Double:
		return TypeFloat64
	case parquet.ByteArray:
		return TypeString
	default:
		return TypeOther
	}
}
