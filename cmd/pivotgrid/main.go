package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/mkoval/pivotgrid/output"
	"github.com/mkoval/pivotgrid/pivot"
)

var (
	columnsFlag = flag.Bool("columns", false, "List column names and exit")
	rowsFlag    = flag.String("rows", "", "Comma-separated row dimensions")
	colsFlag    = flag.String("cols", "", "Comma-separated column dimensions")
	valuesFlag  = flag.String("values", "", "Comma-separated value specs as field:Kind (e.g. \"amount:Sum,qty:Mean\")")
	filtersFlag = flag.String("filters", "", "Filter conditions as a JSON array")
	formatFlag  = flag.String("f", "table", "Output format: table, json, csv")
	verboseFlag = flag.Bool("v", false, "Enable debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.csv|file.parquet>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A tool to build pivot tables from tabular files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -columns sales.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rows region -values amount:Sum sales.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rows region -cols year -values amount:Sum -f csv sales.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rows region -values amount:Sum -filters '[{\"column\":\"status\",\"operator\":\"Equal\",\"value\":\"active\"}]' sales.csv\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing data file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	eng := pivot.New(newLogger(*verboseFlag))

	if *columnsFlag {
		names, err := eng.ListColumns(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	req, err := buildRequest(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	result, err := eng.RunPivot(*req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	var formatter output.Formatter
	switch *formatFlag {
	case "table":
		formatter = output.NewTableFormatter(os.Stdout)
	case "json", "jsonl":
		formatter = output.NewJSONFormatter(os.Stdout)
	case "csv":
		formatter = output.NewCSVFormatter(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", *formatFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: table, json, csv\n")
		os.Exit(1)
	}

	if err := formatter.Format(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// buildRequest assembles a PivotRequest from the command line flags.
func buildRequest(filename string) (*pivot.PivotRequest, error) {
	if *valuesFlag == "" {
		return nil, fmt.Errorf("at least one -values spec is required")
	}

	values, err := parseValueSpecs(*valuesFlag)
	if err != nil {
		return nil, err
	}

	filters, err := parseFilters(*filtersFlag)
	if err != nil {
		return nil, err
	}

	return &pivot.PivotRequest{
		DataPath: filename,
		Rows:     splitList(*rowsFlag),
		Columns:  splitList(*colsFlag),
		Values:   values,
		Filters:  filters,
	}, nil
}

// parseValueSpecs parses "field:Kind" pairs from a comma-separated list.
func parseValueSpecs(s string) ([]pivot.ValueSpec, error) {
	specs := make([]pivot.ValueSpec, 0)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		field, kind, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("invalid value spec %q, expected field:Kind", item)
		}
		specs = append(specs, pivot.ValueSpec{
			Field:       strings.TrimSpace(field),
			Aggregation: pivot.AggregationKind(strings.TrimSpace(kind)),
		})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one -values spec is required")
	}
	return specs, nil
}

// parseFilters decodes the -filters JSON array. Numbers are kept as
// json.Number so integer operands survive intact.
func parseFilters(s string) ([]pivot.FilterCondition, error) {
	if s == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var filters []pivot.FilterCondition
	if err := dec.Decode(&filters); err != nil {
		return nil, fmt.Errorf("invalid -filters JSON: %w", err)
	}
	return filters, nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// newLogger builds the diagnostic logger. Verbose mode enables debug-level
// stage tracing.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}
