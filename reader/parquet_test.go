package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type measurement struct {
	Station string  `parquet:"station"`
	Reading float64 `parquet:"reading"`
	Count   int64   `parquet:"count"`
	Sensor  int32   `parquet:"sensor"`
	Valid   bool    `parquet:"valid"`
}

func writeParquet(t *testing.T, rows []measurement) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "measurements.parquet")

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := parquet.NewGenericWriter[measurement](f)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return path
}

func TestParquetSource_Schema(t *testing.T) {
	path := writeParquet(t, []measurement{
		{Station: "alpha", Reading: 1.5, Count: 10, Sensor: 3, Valid: true},
	})

	src, err := OpenParquet(path)
	require.NoError(t, err)
	defer src.Close()

	schema, err := src.Schema()
	require.NoError(t, err)

	want := Schema{
		{Name: "station", Type: TypeString},
		{Name: "reading", Type: TypeFloat64},
		{Name: "count", Type: TypeInt64},
		{Name: "sensor", Type: TypeInt32},
		{Name: "valid", Type: TypeBoolean},
	}
	require.Equal(t, want, schema)
}

func TestParquetSource_ReadAll(t *testing.T) {
	path := writeParquet(t, []measurement{
		{Station: "alpha", Reading: 1.5, Count: 10, Sensor: 3, Valid: true},
		{Station: "beta", Reading: -0.25, Count: 0, Sensor: 7, Valid: false},
	})

	src, err := OpenParquet(path)
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "alpha", rows[0]["station"])
	assert.Equal(t, 1.5, rows[0]["reading"])
	assert.Equal(t, true, rows[0]["valid"])
	assert.Equal(t, "beta", rows[1]["station"])
}

func TestParquetSource_Empty(t *testing.T) {
	path := writeParquet(t, nil)

	src, err := OpenParquet(path)
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpenParquet_NotParquet(t *testing.T) {
	path := writeFile(t, "bogus.parquet", "this is not a parquet file")
	_, err := OpenParquet(path)
	require.Error(t, err)
}

func TestOpenParquet_MissingFile(t *testing.T) {
	_, err := OpenParquet("/tmp/definitely-not-here.parquet")
	require.Error(t, err)
}
