package expr

import "fmt"

// Value is an immutable handle to a scalar or tensor quantity used while
// building an expression graph. A Value is either a compile-time constant
// (a plain scalar known at graph-construction time) or symbolic (backed by
// a graph node whose data only exists once a backend evaluates the graph).
//
// Every operation returns a new Value; nothing mutates one in place.
type Value struct {
	node  *Node // non-nil for symbolic values
	dtype DataType
	i     int64
	f     float64
	b     bool
}

// Int returns an int32 compile-time constant.
func Int(v int) Value {
	return Value{dtype: Int32, i: int64(v)}
}

// Int64Value returns an int64 compile-time constant.
func Int64Value(v int64) Value {
	return Value{dtype: Int64, i: v}
}

// Float returns a float32 compile-time constant.
func Float(v float64) Value {
	return Value{dtype: Float32, f: v}
}

// Float64Value returns a float64 compile-time constant.
func Float64Value(v float64) Value {
	return Value{dtype: Float64, f: v}
}

// BoolValue returns a boolean compile-time constant.
func BoolValue(v bool) Value {
	return Value{dtype: Bool, b: v}
}

// symbolic wraps a graph node as a Value.
func symbolic(n *Node) Value {
	return Value{node: n, dtype: n.dtype}
}

// IsConst reports whether the value is a compile-time constant.
func (v Value) IsConst() bool {
	return v.node == nil
}

// Node returns the graph node backing a symbolic value, or nil for a
// constant.
func (v Value) Node() *Node {
	return v.node
}

// DType returns the element type of the value.
func (v Value) DType() DataType {
	return v.dtype
}

// Shape returns the shape of the value. Constants are scalars.
func (v Value) Shape() Shape {
	if v.node != nil {
		return v.node.shape
	}
	return Shape{}
}

// NumElements returns the total number of elements of the value.
func (v Value) NumElements() int {
	return v.Shape().NumElements()
}

// AsInt returns the constant integer payload. The second result is false
// for symbolic or non-integer values.
func (v Value) AsInt() (int64, bool) {
	if v.node != nil || !v.dtype.IsInteger() {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the constant value as a float64, converting integer
// constants. The second result is false for symbolic or boolean values.
func (v Value) AsFloat() (float64, bool) {
	if v.node != nil {
		return 0, false
	}
	switch {
	case v.dtype.IsFloat():
		return v.f, true
	case v.dtype.IsInteger():
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsBool returns the constant boolean payload. The second result is false
// for symbolic or non-boolean values.
func (v Value) AsBool() (bool, bool) {
	if v.node != nil || v.dtype != Bool {
		return false, false
	}
	return v.b, true
}

// String formats the value for graph dumps.
func (v Value) String() string {
	if v.node != nil {
		return fmt.Sprintf("%%%d", v.node.id)
	}
	switch {
	case v.dtype == Bool:
		return fmt.Sprintf("%v", v.b)
	case v.dtype.IsFloat():
		return fmt.Sprintf("%g", v.f)
	default:
		return fmt.Sprintf("%d", v.i)
	}
}

// withDType returns a copy of a constant with a different element type,
// converting the payload. Converting a float constant to an integer type
// is rejected to avoid silently losing precision.
func (v Value) withDType(dt DataType) (Value, error) {
	if v.node != nil {
		return Value{}, fmt.Errorf("cannot coerce symbolic value to %s", dt)
	}
	if v.dtype == dt {
		return v, nil
	}
	switch {
	case dt.IsFloat() && v.dtype.IsFloat():
		return Value{dtype: dt, f: v.f}, nil
	case dt.IsFloat() && v.dtype.IsInteger():
		return Value{dtype: dt, f: float64(v.i)}, nil
	case dt.IsInteger() && v.dtype.IsInteger():
		return Value{dtype: dt, i: v.i}, nil
	default:
		return Value{}, fmt.Errorf("cannot coerce %s constant to %s: %w", v.dtype, dt, ErrInvalidArgument)
	}
}
