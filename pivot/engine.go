package pivot

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkoval/pivotgrid/reader"
)

// Engine executes column discovery and pivot requests against tabular
// files.
//
// An Engine holds no per-request state: every call opens its own source
// handle and builds all intermediate values fresh, so a single Engine is
// safe for concurrent use from multiple goroutines.
type Engine struct {
	log *slog.Logger
}

// New returns an Engine that logs diagnostics to log. A nil logger
// discards them.
func New(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{log: log}
}

// ListColumns returns the column names of the source in file order.
//
// The source is opened in schema-discovery mode; no data rows are read.
func (e *Engine) ListColumns(path string) ([]string, error) {
	src, err := e.openSource(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	schema, err := src.Schema()
	if err != nil {
		return nil, newErr(KindRead, err, "failed to read schema of %s", path)
	}
	return schema.Names(), nil
}

// RunPivot executes one pivot request: filter, group-by/aggregate, reshape,
// serialize. The stages share no state beyond each stage's output feeding
// the next.
func (e *Engine) RunPivot(req PivotRequest) (*PivotResult, error) {
	if len(req.Values) == 0 {
		return nil, processingErrf("at least one value field is required")
	}

	log := e.log.With("request_id", uuid.NewString(), "source", req.DataPath)

	src, err := e.openSource(req.DataPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	schema, err := src.Schema()
	if err != nil {
		return nil, newErr(KindRead, err, "failed to read schema of %s", req.DataPath)
	}
	if err := validateRequest(&req, schema); err != nil {
		return nil, err
	}

	pred, err := compileFilters(req.Filters)
	if err != nil {
		return nil, err
	}

	rows, err := src.ReadAll()
	if err != nil {
		return nil, newErr(KindRead, err, "failed to read %s", req.DataPath)
	}

	rows, err = applyFilter(rows, pred)
	if err != nil {
		return nil, err
	}
	log.Debug("filters applied", "rows", len(rows))

	groupBy := make([]string, 0, len(req.Rows)+len(req.Columns))
	groupBy = append(groupBy, req.Rows...)
	groupBy = append(groupBy, req.Columns...)

	long, err := groupAndAggregate(rows, groupBy, req.Values)
	if err != nil {
		return nil, err
	}
	log.Debug("aggregation complete", "groups", len(long.rows))

	res, err := reshape(long, &req)
	if err != nil {
		return nil, err
	}
	log.Debug("reshape complete", "columns", res.headerLevel)

	return &PivotResult{
		Data:          serializeTable(res.table),
		ColumnHeaders: [][]string{res.headerLevel},
		RowHeaders:    req.Rows,
		Warnings:      res.warnings,
	}, nil
}

// openSource opens the data source and maps open failures onto the error
// taxonomy.
func (e *Engine) openSource(path string) (reader.Source, error) {
	src, err := reader.Open(path)
	if err != nil {
		if errors.Is(err, reader.ErrUnsupportedFormat) {
			return nil, newErr(KindUnsupportedFormat, err, "cannot open %s", path)
		}
		return nil, newErr(KindRead, err, "failed to open %s", path)
	}
	return src, nil
}

// validateRequest checks dimension and value field names against the source
// schema. Filter columns are resolved lazily by the compiled predicate.
func validateRequest(req *PivotRequest, schema reader.Schema) error {
	for _, name := range req.Rows {
		if !schema.Has(name) {
			return processingErrf("row dimension %q not found in schema", name)
		}
	}
	for _, name := range req.Columns {
		if !schema.Has(name) {
			return processingErrf("column dimension %q not found in schema", name)
		}
	}
	for _, spec := range req.Values {
		if !schema.Has(spec.Field) {
			return processingErrf("value field %q not found in schema", spec.Field)
		}
	}
	return nil
}
