// Package reader provides schema-first access to tabular data files.
//
// Two source formats are supported, selected by file extension
// (case-insensitive):
//
//   - .csv: delimited text with a header row. Column types are inferred
//     from a bounded sample of data rows.
//   - .parquet: Apache Parquet, read through the parquet-go library. The
//     schema comes from the file footer.
//
// Opening a source is cheap: the schema can be discovered without
// materializing any data rows. Rows are returned as maps for flexible
// downstream access.
//
// Example usage:
//
//	src, err := reader.Open("sales.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	schema, err := src.Schema()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(schema.Names())
package reader
