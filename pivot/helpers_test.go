package pivot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

// saleRow mirrors a typical sales fact table with the scalar types the
// serializer has to handle.
type saleRow struct {
	Region string  `parquet:"region"`
	Year   int64   `parquet:"year"`
	Amount float64 `parquet:"amount"`
	Units  int32   `parquet:"units"`
	Online bool    `parquet:"online"`
}

// writeCSVFile writes content to a fresh temp file and returns its path.
func writeCSVFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// writeParquetFile writes rows to a fresh temp parquet file and returns its
// path.
func writeParquetFile(t *testing.T, rows []saleRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.parquet")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[saleRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	return path
}
