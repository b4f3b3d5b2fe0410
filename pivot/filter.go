package pivot

import (
	"encoding/json"
	"fmt"
	"math"
)

// predicate is a compiled boolean filter over a single row.
type predicate func(row map[string]interface{}) (bool, error)

// compileFilters turns the ordered filter conditions into one predicate
// equivalent to their logical AND. Compilation only builds the expression;
// no data is touched until the predicate runs.
func compileFilters(conditions []FilterCondition) (predicate, error) {
	preds := make([]predicate, 0, len(conditions))
	for _, cond := range conditions {
		p, err := compileCondition(cond)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}

	return func(row map[string]interface{}) (bool, error) {
		for _, p := range preds {
			match, err := p(row)
			if err != nil {
				return false, err
			}
			if !match {
				return false, nil
			}
		}
		return true, nil
	}, nil
}

// compileCondition builds the predicate for a single condition, enforcing
// the operator/operand-kind compatibility matrix.
func compileCondition(cond FilterCondition) (predicate, error) {
	switch cond.Operator {
	case OpEqual, OpNotEqual:
		operand, err := scalarOperand(cond.Value)
		if err != nil {
			return nil, err
		}
		return comparison(cond.Column, cond.Operator, operand), nil

	case OpGreaterThan, OpLessThan, OpGreaterThanOrEqual, OpLessThanOrEqual:
		operand, err := numberOperand(cond.Value)
		if err != nil {
			return nil, err
		}
		return comparison(cond.Column, cond.Operator, operand), nil

	case OpIn:
		return compileIn(cond)

	default:
		return nil, processingErrf("unsupported filter operator: %s", cond.Operator)
	}
}

// compileIn builds the OR-of-equalities predicate for an In condition.
// Non-primitive array elements are silently skipped.
func compileIn(cond FilterCondition) (predicate, error) {
	arr, ok := cond.Value.([]interface{})
	if !ok {
		return nil, processingErrf("Value must be an array")
	}
	if len(arr) == 0 {
		return nil, processingErrf("Empty array in IN filter")
	}

	operands := make([]interface{}, 0, len(arr))
	for _, elem := range arr {
		switch elem.(type) {
		case string, bool:
			operands = append(operands, elem)
		case json.Number, float64, float32, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
			n, err := normalizeNumber(elem)
			if err != nil {
				return nil, err
			}
			operands = append(operands, n)
		default:
			// Skip non-primitive values.
		}
	}
	if len(operands) == 0 {
		return nil, processingErrf("No valid values in IN filter")
	}

	return func(row map[string]interface{}) (bool, error) {
		value, exists := row[cond.Column]
		if !exists {
			return false, processingErrf("column %q not found", cond.Column)
		}
		for _, operand := range operands {
			match, err := compare(value, OpEqual, operand)
			if err != nil {
				return false, newErr(KindProcessing, err, "filter on column %q", cond.Column)
			}
			if match {
				return true, nil
			}
		}
		return false, nil
	}, nil
}

// comparison builds a column-vs-operand predicate. Columns are resolved
// lazily: an unknown column surfaces when the predicate runs.
func comparison(column string, op Operator, operand interface{}) predicate {
	return func(row map[string]interface{}) (bool, error) {
		value, exists := row[column]
		if !exists {
			return false, processingErrf("column %q not found", column)
		}
		match, err := compare(value, op, operand)
		if err != nil {
			return false, newErr(KindProcessing, err, "filter on column %q", column)
		}
		return match, nil
	}
}

// scalarOperand validates an Equal/NotEqual operand: string, bool, or
// number. Anything else is an unsupported value type.
func scalarOperand(v interface{}) (interface{}, error) {
	switch v.(type) {
	case string, bool:
		return v, nil
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return normalizeNumber(v)
	default:
		return nil, processingErrf("Unsupported value type")
	}
}

// numberOperand validates an ordering-operator operand, which must be a
// number.
func numberOperand(v interface{}) (interface{}, error) {
	switch v.(type) {
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return normalizeNumber(v)
	default:
		return nil, processingErrf("Value must be a number")
	}
}

// normalizeNumber reduces any accepted numeric operand to int64 or float64.
// Integer conversion is attempted first, falling back to floating point.
func normalizeNumber(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		if f, err := val.Float64(); err == nil {
			return f, nil
		}
		return nil, processingErrf("Invalid number")
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case uint:
		return int64(val), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return float64(val), nil
		}
		return int64(val), nil
	default:
		return nil, processingErrf("Invalid number")
	}
}

// applyFilter keeps the rows matched by the predicate.
func applyFilter(rows []map[string]interface{}, pred predicate) ([]map[string]interface{}, error) {
	if pred == nil {
		return rows, nil
	}

	filtered := make([]map[string]interface{}, 0)
	for _, row := range rows {
		match, err := pred(row)
		if err != nil {
			return nil, err
		}
		if match {
			filtered = append(filtered, row)
		}
	}

	return filtered, nil
}

// compare compares a row value with an operand using the given operator.
func compare(left interface{}, op Operator, right interface{}) (bool, error) {
	// Handle nil row values: only equality operators are meaningful.
	if left == nil || right == nil {
		if op == OpEqual {
			return left == right, nil
		}
		if op == OpNotEqual {
			return left != right, nil
		}
		return false, nil
	}

	// Try numeric comparison.
	leftNum, leftIsNum := toFloat64(left)
	rightNum, rightIsNum := toFloat64(right)
	if leftIsNum && rightIsNum {
		return compareNumbers(leftNum, op, rightNum), nil
	}

	// Try string comparison.
	leftStr, leftIsStr := toString(left)
	rightStr, rightIsStr := toString(right)
	if leftIsStr && rightIsStr {
		return compareStrings(leftStr, op, rightStr), nil
	}

	// Try boolean comparison.
	leftBool, leftIsBool := toBool(left)
	rightBool, rightIsBool := toBool(right)
	if leftIsBool && rightIsBool {
		return compareBools(leftBool, op, rightBool), nil
	}

	// Type mismatch.
	return false, fmt.Errorf("cannot compare %T with %T", left, right)
}

// toFloat64 converts a value to float64 if possible.
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toString converts a value to string if possible.
func toString(v interface{}) (string, bool) {
	if str, ok := v.(string); ok {
		return str, true
	}
	return "", false
}

// toBool converts a value to bool if possible.
func toBool(v interface{}) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	return false, false
}

// compareNumbers compares two numbers. Equality uses a relative epsilon to
// keep int/float cross-type comparisons stable.
func compareNumbers(left float64, op Operator, right float64) bool {
	const epsilon = 1e-9
	switch op {
	case OpEqual:
		diff := math.Abs(left - right)
		threshold := epsilon * math.Max(1.0, math.Max(math.Abs(left), math.Abs(right)))
		return diff < threshold
	case OpNotEqual:
		diff := math.Abs(left - right)
		threshold := epsilon * math.Max(1.0, math.Max(math.Abs(left), math.Abs(right)))
		return diff >= threshold
	case OpLessThan:
		return left < right
	case OpGreaterThan:
		return left > right
	case OpLessThanOrEqual:
		return left <= right
	case OpGreaterThanOrEqual:
		return left >= right
	default:
		return false
	}
}

// compareStrings compares two strings (case-sensitive).
func compareStrings(left string, op Operator, right string) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpLessThan:
		return left < right
	case OpGreaterThan:
		return left > right
	case OpLessThanOrEqual:
		return left <= right
	case OpGreaterThanOrEqual:
		return left >= right
	default:
		return false
	}
}

// compareBools compares two booleans. Ordering operators do not apply.
func compareBools(left bool, op Operator, right bool) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	default:
		return false
	}
}
