// Package expr provides the symbolic value model and primitive operator
// layer for staged kernel tracing.
package expr

// DataType represents the element type of a symbolic value.
type DataType int

// Supported element types.
const (
	Int32 DataType = iota
	Int64
	Float32
	Float64
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsInteger reports whether the data type is a signed integer type.
func (dt DataType) IsInteger() bool {
	return dt == Int32 || dt == Int64
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// promoteDataTypes returns the common type of two operand types under the
// usual numeric tower: any float operand makes the result float, and the
// wider of the two widths wins.
func promoteDataTypes(a, b DataType) (DataType, bool) {
	if a == b {
		return a, true
	}
	if a == Bool || b == Bool {
		return 0, false
	}
	if a.IsFloat() || b.IsFloat() {
		if a == Float64 || b == Float64 {
			return Float64, true
		}
		return Float32, true
	}
	if a == Int64 || b == Int64 {
		return Int64, true
	}
	return Int32, true
}
