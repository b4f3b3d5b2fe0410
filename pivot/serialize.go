package pivot

import (
	"fmt"
	"math"
	"strconv"
)

// maxSafeInteger is the largest integer magnitude a double-backed
// interchange format represents exactly (2^53).
const maxSafeInteger = int64(1) << 53

// serializeTable converts every cell of the final table into a
// transport-safe scalar, keyed by output column name. Row order follows the
// table's row order; cells absent from a row serialize as null.
func serializeTable(t *table) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(t.rows))
	for _, row := range t.rows {
		m := make(map[string]interface{}, len(t.columns))
		for _, col := range t.columns {
			m[col] = serializeValue(row[col])
		}
		out = append(out, m)
	}
	return out
}

// serializeValue coerces one typed cell to its interchange representation.
//
// Integers wider than 2^53 become decimal strings to avoid silent precision
// loss in consumers that store numbers as doubles. Non-finite floats become
// strings ("NaN", "+Inf", "-Inf") since the interchange format has no native
// representation for them.
func serializeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case int:
		return safeInt(int64(val))
	case int64:
		return safeInt(val)
	case uint64:
		if val > uint64(maxSafeInteger) {
			return strconv.FormatUint(val, 10)
		}
		return int64(val)
	case float32:
		return safeFloat(float64(val))
	case float64:
		return safeFloat(val)
	case string:
		return val
	case bool:
		return val
	default:
		// Best-effort debug representation for unknown types.
		return fmt.Sprintf("%v", val)
	}
}

// safeInt keeps integers within the exactly-representable range as numbers
// and widens the rest to decimal strings.
func safeInt(v int64) interface{} {
	if v > maxSafeInteger || v < -maxSafeInteger {
		return strconv.FormatInt(v, 10)
	}
	return v
}

// safeFloat passes finite floats through and renders NaN and the infinities
// as strings.
func safeFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}
