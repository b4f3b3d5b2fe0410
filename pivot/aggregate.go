package pivot

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// aggregator computes one aggregate value over the rows of a group.
type aggregator func(rows []map[string]interface{}, field string) (interface{}, error)

// aggregators is the closed dispatch table from aggregation kind to
// computation. No user-defined aggregations exist.
var aggregators = map[AggregationKind]aggregator{
	AggSum:    aggSum,
	AggMean:   aggMean,
	AggCount:  aggCount,
	AggMin:    aggMin,
	AggMax:    aggMax,
	AggFirst:  aggFirst,
	AggLast:   aggLast,
	AggMedian: aggMedian,
	AggStd:    aggStd,
	AggVar:    aggVar,
}

// group is one bucket of rows sharing the same dimension values.
type group struct {
	values map[string]interface{}
	rows   []map[string]interface{}
}

// groupAndAggregate buckets rows by the group columns and computes one named
// aggregate per value spec, producing the long-format table.
//
// Groups keep their first-seen order and rows keep source order within a
// group, so First/Last are deterministic whenever the source order is.
// Duplicate group column names are accepted: they repeat inside the group
// key but appear once in the output columns.
func groupAndAggregate(rows []map[string]interface{}, groupBy []string, values []ValueSpec) (*table, error) {
	aggCols := make([]string, len(values))
	aggFns := make([]aggregator, len(values))
	for i, spec := range values {
		fn, ok := aggregators[spec.Aggregation]
		if !ok {
			return nil, processingErrf("unknown aggregation kind: %s", spec.Aggregation)
		}
		aggCols[i] = columnName(spec.Aggregation, spec.Field)
		aggFns[i] = fn
	}

	columns := append(dedupColumns(groupBy), aggCols...)

	// Hash-based grouping with insertion order preserved.
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, row := range rows {
		key, groupValues, err := groupKey(row, groupBy)
		if err != nil {
			return nil, err
		}
		g, exists := groups[key]
		if !exists {
			g = &group{values: groupValues}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, row)
	}

	outRows := make([]map[string]interface{}, 0, len(order))
	for _, key := range order {
		g := groups[key]
		outRow := make(map[string]interface{}, len(columns))
		for col, v := range g.values {
			outRow[col] = v
		}
		for i := range values {
			v, err := aggFns[i](g.rows, values[i].Field)
			if err != nil {
				return nil, newErr(KindProcessing, err, "aggregation %s over column %q", values[i].Aggregation, values[i].Field)
			}
			outRow[aggCols[i]] = v
		}
		outRows = append(outRows, outRow)
	}

	return &table{columns: columns, rows: outRows}, nil
}

// groupKey computes a hash key for a row over the group columns, plus the
// dimension values to echo into the output row.
func groupKey(row map[string]interface{}, groupBy []string) (string, map[string]interface{}, error) {
	var keyBuilder strings.Builder
	groupValues := make(map[string]interface{}, len(groupBy))

	for i, col := range groupBy {
		value, exists := row[col]
		if !exists {
			return "", nil, processingErrf("column %q not found", col)
		}

		if i > 0 {
			keyBuilder.WriteString("\x00||\x00") // unlikely separator to avoid collisions
		}
		// Include column name in key to prevent cross-column collisions.
		keyBuilder.WriteString(col)
		keyBuilder.WriteString("\x00:\x00")
		keyBuilder.WriteString(fmt.Sprintf("%#v", value))
		groupValues[col] = value
	}

	return keyBuilder.String(), groupValues, nil
}

// dedupColumns removes repeated names while preserving first-seen order.
func dedupColumns(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// collectNumbers gathers the non-null values of field across rows as
// float64s. A non-numeric value is a type mismatch.
func collectNumbers(rows []map[string]interface{}, field string) ([]float64, error) {
	nums := make([]float64, 0, len(rows))
	for _, row := range rows {
		v, exists := row[field]
		if !exists || v == nil {
			continue
		}
		n, ok := toFloat64(v)
		if !ok {
			return nil, fmt.Errorf("cannot aggregate non-numeric value of type %T", v)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// aggSum sums the non-null values. NULL if the group has no values.
func aggSum(rows []map[string]interface{}, field string) (interface{}, error) {
	nums, err := collectNumbers(rows, field)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, nil
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum, nil
}

// aggMean averages the non-null values. NULL if the group has no values.
func aggMean(rows []map[string]interface{}, field string) (interface{}, error) {
	nums, err := collectNumbers(rows, field)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, nil
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums)), nil
}

// aggCount counts the non-null values of any type.
func aggCount(rows []map[string]interface{}, field string) (interface{}, error) {
	count := int64(0)
	for _, row := range rows {
		if v, exists := row[field]; exists && v != nil {
			count++
		}
	}
	return count, nil
}

// aggMin returns the smallest non-null value. NULL for an all-null group.
func aggMin(rows []map[string]interface{}, field string) (interface{}, error) {
	nums, err := collectNumbers(rows, field)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, nil
	}
	min := nums[0]
	for _, n := range nums[1:] {
		if n < min {
			min = n
		}
	}
	return min, nil
}

// aggMax returns the largest non-null value. NULL for an all-null group.
func aggMax(rows []map[string]interface{}, field string) (interface{}, error) {
	nums, err := collectNumbers(rows, field)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, nil
	}
	max := nums[0]
	for _, n := range nums[1:] {
		if n > max {
			max = n
		}
	}
	return max, nil
}

// aggFirst returns the field value of the first row in group order.
func aggFirst(rows []map[string]interface{}, field string) (interface{}, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0][field], nil
}

// aggLast returns the field value of the last row in group order.
func aggLast(rows []map[string]interface{}, field string) (interface{}, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[len(rows)-1][field], nil
}

// aggMedian returns the 50th percentile with linear interpolation between
// ranks.
func aggMedian(rows []map[string]interface{}, field string) (interface{}, error) {
	nums, err := collectNumbers(rows, field)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, nil
	}
	sort.Float64s(nums)

	rank := 0.5 * float64(len(nums)-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if frac == 0 {
		return nums[lo], nil
	}
	return nums[lo] + frac*(nums[lo+1]-nums[lo]), nil
}

// aggVar returns the sample variance (n-1 denominator). NULL when the group
// holds fewer than two values.
func aggVar(rows []map[string]interface{}, field string) (interface{}, error) {
	nums, err := collectNumbers(rows, field)
	if err != nil {
		return nil, err
	}
	if len(nums) < 2 {
		return nil, nil
	}
	mean := 0.0
	for _, n := range nums {
		mean += n
	}
	mean /= float64(len(nums))

	ss := 0.0
	for _, n := range nums {
		d := n - mean
		ss += d * d
	}
	return ss / float64(len(nums)-1), nil
}

// aggStd returns the sample standard deviation (n-1 denominator). NULL when
// the group holds fewer than two values.
func aggStd(rows []map[string]interface{}, field string) (interface{}, error) {
	v, err := aggVar(rows, field)
	if err != nil || v == nil {
		return nil, err
	}
	return math.Sqrt(v.(float64)), nil
}
