package reader

// Type identifies the scalar type of a column.
type Type int

const (
	TypeInt32 Type = iota
	TypeInt64
	TypeFloat64
	TypeString
	TypeBoolean
	TypeOther
)

// String returns a user-friendly type name.
func (t Type) String() string {
	switch t {
	case TypeInt32:
		return "INT32"
	case TypeInt64:
		return "INT64"
	case TypeFloat64:
		return "FLOAT64"
	case TypeString:
		return "STRING"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "OTHER"
	}
}

// Column describes a single column of a tabular source.
type Column struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Schema is the ordered list of columns discovered for a source.
//
// A schema is built once when the source is opened and never mutated
// afterwards.
type Schema []Column

// Names returns the column names in source order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// Has reports whether the schema contains a column with the given name.
func (s Schema) Has(name string) bool {
	for _, col := range s {
		if col.Name == name {
			return true
		}
	}
	return false
}
