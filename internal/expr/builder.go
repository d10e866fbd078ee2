package expr

import (
	"fmt"
	"math"
)

// Builder constructs an expression graph. It is the explicit trace-builder
// capability composition functions receive: each primitive either folds
// (when every operand is a compile-time constant) or appends a node to the
// graph and returns a symbolic value.
//
// A Builder is not safe for concurrent use; tracing is single-threaded by
// design.
type Builder struct {
	graph *Graph
}

// NewBuilder returns a Builder with an empty graph.
func NewBuilder() *Builder {
	return &Builder{graph: &Graph{}}
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Placeholder introduces a named symbolic input of the given shape and
// element type.
func (b *Builder) Placeholder(name string, shape Shape, dtype DataType) (Value, error) {
	if err := shape.Validate(); err != nil {
		return Value{}, fmt.Errorf("placeholder %q: %w", name, err)
	}
	n := b.graph.append(&Node{
		kind:  OpPlaceholder,
		shape: shape.Clone(),
		dtype: dtype,
		name:  name,
	})
	return symbolic(n), nil
}

// emit appends a node and returns the symbolic value for it.
func (b *Builder) emit(kind OpKind, dtype DataType, shape Shape, inputs ...Value) Value {
	n := b.graph.append(&Node{
		kind:   kind,
		inputs: inputs,
		shape:  shape.Clone(),
		dtype:  dtype,
	})
	return symbolic(n)
}

// coerce2 reconciles the element types of two operands. Constants adopt a
// symbolic operand's type; two constants promote through the numeric
// tower; two symbolic operands must already agree (the layer inserts no
// implicit casts between graph values).
func coerce2(x, y Value) (Value, Value, DataType, error) {
	switch {
	case !x.IsConst() && !y.IsConst():
		if x.dtype != y.dtype {
			return Value{}, Value{}, 0, fmt.Errorf("operand dtype mismatch: %s vs %s: %w", x.dtype, y.dtype, ErrInvalidArgument)
		}
		return x, y, x.dtype, nil
	case x.IsConst() && !y.IsConst():
		cx, err := x.withDType(y.dtype)
		if err != nil {
			return Value{}, Value{}, 0, err
		}
		return cx, y, y.dtype, nil
	case !x.IsConst() && y.IsConst():
		cy, err := y.withDType(x.dtype)
		if err != nil {
			return Value{}, Value{}, 0, err
		}
		return x, cy, x.dtype, nil
	default:
		dt, ok := promoteDataTypes(x.dtype, y.dtype)
		if !ok {
			return Value{}, Value{}, 0, fmt.Errorf("no common dtype for %s and %s: %w", x.dtype, y.dtype, ErrInvalidArgument)
		}
		cx, err := x.withDType(dt)
		if err != nil {
			return Value{}, Value{}, 0, err
		}
		cy, err := y.withDType(dt)
		if err != nil {
			return Value{}, Value{}, 0, err
		}
		return cx, cy, dt, nil
	}
}

// arith builds an elementwise binary arithmetic node, folding when both
// operands are constants.
func (b *Builder) arith(kind OpKind, x, y Value) (Value, error) {
	cx, cy, dt, err := coerce2(x, y)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", kind, err)
	}
	if dt == Bool {
		return Value{}, fmt.Errorf("%s: unsupported operand type bool: %w", kind, ErrInvalidArgument)
	}
	shape, err := BroadcastShapes(cx.Shape(), cy.Shape())
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", kind, err)
	}
	if cx.IsConst() && cy.IsConst() {
		return foldArith(kind, dt, cx, cy)
	}
	return b.emit(kind, dt, shape, cx, cy), nil
}

// foldArith evaluates a binary arithmetic operator over scalar constants.
func foldArith(kind OpKind, dt DataType, x, y Value) (Value, error) {
	if dt.IsInteger() {
		a, bb := x.i, y.i
		switch kind {
		case OpAdd:
			return Value{dtype: dt, i: a + bb}, nil
		case OpSub:
			return Value{dtype: dt, i: a - bb}, nil
		case OpMul:
			return Value{dtype: dt, i: a * bb}, nil
		case OpFloorDiv:
			if bb == 0 {
				return Value{}, fmt.Errorf("integer division by zero")
			}
			return Value{dtype: dt, i: floorDivInt(a, bb)}, nil
		case OpMod:
			if bb == 0 {
				return Value{}, fmt.Errorf("integer modulo by zero")
			}
			return Value{dtype: dt, i: floorModInt(a, bb)}, nil
		}
	}
	if dt.IsFloat() {
		a, bb := x.f, y.f
		switch kind {
		case OpAdd:
			return Value{dtype: dt, f: a + bb}, nil
		case OpSub:
			return Value{dtype: dt, f: a - bb}, nil
		case OpMul:
			return Value{dtype: dt, f: a * bb}, nil
		}
	}
	return Value{}, fmt.Errorf("%s: unsupported constant operands of type %s", kind, dt)
}

// floorDivInt implements floored integer division (round toward negative
// infinity), matching the semantics constant folding must reproduce.
func floorDivInt(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorModInt implements the modulo paired with floorDivInt: the result
// takes the sign of the divisor.
func floorModInt(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Add returns the elementwise sum of x and y with broadcasting.
func (b *Builder) Add(x, y Value) (Value, error) {
	return b.arith(OpAdd, x, y)
}

// Sub returns the elementwise difference of x and y with broadcasting.
func (b *Builder) Sub(x, y Value) (Value, error) {
	return b.arith(OpSub, x, y)
}

// Mul returns the elementwise product of x and y with broadcasting.
func (b *Builder) Mul(x, y Value) (Value, error) {
	return b.arith(OpMul, x, y)
}

// FloorDiv returns the elementwise floored integer quotient of x by y.
// Both operands must have integer element types. Division by zero is only
// detected when both operands are constants; for symbolic operands it is
// deferred to backend evaluation.
func (b *Builder) FloorDiv(x, y Value) (Value, error) {
	if err := requireInteger(OpFloorDiv, x, y); err != nil {
		return Value{}, err
	}
	return b.arith(OpFloorDiv, x, y)
}

// Mod returns the elementwise floored remainder of x by y. Both operands
// must have integer element types.
func (b *Builder) Mod(x, y Value) (Value, error) {
	if err := requireInteger(OpMod, x, y); err != nil {
		return Value{}, err
	}
	return b.arith(OpMod, x, y)
}

func requireInteger(kind OpKind, vals ...Value) error {
	for _, v := range vals {
		if !v.dtype.IsInteger() {
			return fmt.Errorf("%s requires integer operands, got %s: %w", kind, v.dtype, ErrInvalidArgument)
		}
	}
	return nil
}

// Div returns the elementwise true quotient of x by y using the backend's
// default (fast) division.
func (b *Builder) Div(x, y Value) (Value, error) {
	return b.FDiv(x, y, RoundFast)
}

// FDiv returns the elementwise floating-point quotient of x by y. The
// rounding mode selects strict-IEEE vs fast division in the backend; it is
// recorded on the node, never branched on at runtime. Integer operands are
// promoted to float32 first.
func (b *Builder) FDiv(x, y Value, rounding Rounding) (Value, error) {
	fx, err := b.toFloat(x)
	if err != nil {
		return Value{}, fmt.Errorf("fdiv: %w", err)
	}
	fy, err := b.toFloat(y)
	if err != nil {
		return Value{}, fmt.Errorf("fdiv: %w", err)
	}
	cx, cy, dt, err := coerce2(fx, fy)
	if err != nil {
		return Value{}, fmt.Errorf("fdiv: %w", err)
	}
	shape, err := BroadcastShapes(cx.Shape(), cy.Shape())
	if err != nil {
		return Value{}, fmt.Errorf("fdiv: %w", err)
	}
	if cx.IsConst() && cy.IsConst() {
		if cy.f == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return Value{dtype: dt, f: cx.f / cy.f}, nil
	}
	n := b.graph.append(&Node{
		kind:     OpFDiv,
		inputs:   []Value{cx, cy},
		shape:    shape.Clone(),
		dtype:    dt,
		rounding: rounding,
	})
	return symbolic(n), nil
}

// toFloat promotes an integer value to float32, inserting a cast node for
// symbolic operands. Float values pass through unchanged.
func (b *Builder) toFloat(x Value) (Value, error) {
	switch {
	case x.dtype.IsFloat():
		return x, nil
	case x.dtype.IsInteger():
		return b.Cast(x, Float32)
	default:
		return Value{}, fmt.Errorf("expected numeric operand, got %s: %w", x.dtype, ErrInvalidArgument)
	}
}

// Neg returns the elementwise negation of x.
func (b *Builder) Neg(x Value) (Value, error) {
	switch {
	case x.dtype == Bool:
		return Value{}, fmt.Errorf("neg: unsupported operand type bool: %w", ErrInvalidArgument)
	case !x.IsConst():
		return b.emit(OpNeg, x.dtype, x.Shape(), x), nil
	case x.dtype.IsFloat():
		return Value{dtype: x.dtype, f: -x.f}, nil
	default:
		return Value{dtype: x.dtype, i: -x.i}, nil
	}
}

// Exp returns the elementwise exponential of x. Integer operands are
// promoted to float32.
func (b *Builder) Exp(x Value) (Value, error) {
	fx, err := b.toFloat(x)
	if err != nil {
		return Value{}, fmt.Errorf("exp: %w", err)
	}
	if fx.IsConst() {
		return Value{dtype: fx.dtype, f: math.Exp(fx.f)}, nil
	}
	return b.emit(OpExp, fx.dtype, fx.Shape(), fx), nil
}

// compare builds an elementwise comparison node with a bool result.
func (b *Builder) compare(kind OpKind, x, y Value) (Value, error) {
	cx, cy, dt, err := coerce2(x, y)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", kind, err)
	}
	if dt == Bool {
		return Value{}, fmt.Errorf("%s: unsupported operand type bool: %w", kind, ErrInvalidArgument)
	}
	shape, err := BroadcastShapes(cx.Shape(), cy.Shape())
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", kind, err)
	}
	if cx.IsConst() && cy.IsConst() {
		var res bool
		if dt.IsInteger() {
			res = compareInt(kind, cx.i, cy.i)
		} else {
			res = compareFloat(kind, cx.f, cy.f)
		}
		return BoolValue(res), nil
	}
	return b.emit(kind, Bool, shape, cx, cy), nil
}

func compareInt(kind OpKind, a, b int64) bool {
	switch kind {
	case OpLess:
		return a < b
	case OpGreater:
		return a > b
	default:
		return a >= b
	}
}

func compareFloat(kind OpKind, a, b float64) bool {
	switch kind {
	case OpLess:
		return a < b
	case OpGreater:
		return a > b
	default:
		return a >= b
	}
}

// CmpLT returns the elementwise comparison x < y.
func (b *Builder) CmpLT(x, y Value) (Value, error) {
	return b.compare(OpLess, x, y)
}

// CmpGT returns the elementwise comparison x > y.
func (b *Builder) CmpGT(x, y Value) (Value, error) {
	return b.compare(OpGreater, x, y)
}

// CmpGE returns the elementwise comparison x >= y.
func (b *Builder) CmpGE(x, y Value) (Value, error) {
	return b.compare(OpGreaterEqual, x, y)
}

// Where returns the elementwise select: x where cond holds, y elsewhere.
// A constant condition folds to the selected branch.
func (b *Builder) Where(cond, x, y Value) (Value, error) {
	if cond.dtype != Bool {
		return Value{}, fmt.Errorf("where: condition must be bool, got %s: %w", cond.dtype, ErrInvalidArgument)
	}
	cx, cy, dt, err := coerce2(x, y)
	if err != nil {
		return Value{}, fmt.Errorf("where: %w", err)
	}
	shape, err := BroadcastShapes(cx.Shape(), cy.Shape())
	if err != nil {
		return Value{}, fmt.Errorf("where: %w", err)
	}
	shape, err = BroadcastShapes(cond.Shape(), shape)
	if err != nil {
		return Value{}, fmt.Errorf("where: %w", err)
	}
	if c, ok := cond.AsBool(); ok {
		if c {
			return cx, nil
		}
		return cy, nil
	}
	return b.emit(OpWhere, dt, shape, cond, cx, cy), nil
}

// reduce builds an axis reduction node. Reducing a scalar is the identity.
func (b *Builder) reduce(kind OpKind, x Value, axis int) (Value, error) {
	shape := x.Shape()
	if shape.IsScalar() {
		return x, nil
	}
	if axis < 0 || axis >= len(shape) {
		return Value{}, fmt.Errorf("%s: axis %d out of range for shape %v: %w", kind, axis, shape, ErrInvalidArgument)
	}
	out := make(Shape, 0, len(shape)-1)
	out = append(out, shape[:axis]...)
	out = append(out, shape[axis+1:]...)
	n := b.graph.append(&Node{
		kind:   kind,
		inputs: []Value{x},
		shape:  out,
		dtype:  x.dtype,
		axis:   axis,
	})
	return symbolic(n), nil
}

// ReduceMax returns the maximum of x along the given axis. The reduced
// axis is removed from the result shape.
func (b *Builder) ReduceMax(x Value, axis int) (Value, error) {
	return b.reduce(OpReduceMax, x, axis)
}

// ReduceSum returns the sum of x along the given axis. The reduced axis is
// removed from the result shape.
func (b *Builder) ReduceSum(x Value, axis int) (Value, error) {
	return b.reduce(OpReduceSum, x, axis)
}

// Reshape returns a view of x with the given shape. The new shape must
// describe the same number of elements; no data movement is implied.
func (b *Builder) Reshape(x Value, shape Shape) (Value, error) {
	if err := shape.Validate(); err != nil {
		return Value{}, fmt.Errorf("reshape: %w", err)
	}
	if shape.NumElements() != x.NumElements() {
		return Value{}, fmt.Errorf("reshape: shape %v requires %d elements, value has %d: %w",
			shape, shape.NumElements(), x.NumElements(), ErrInvalidArgument)
	}
	return b.emit(OpReshape, x.dtype, shape, x), nil
}

// Zeros returns a zero-filled value of the given shape and element type.
func (b *Builder) Zeros(shape Shape, dtype DataType) (Value, error) {
	if err := shape.Validate(); err != nil {
		return Value{}, fmt.Errorf("zeros: %w", err)
	}
	return b.emit(OpZeros, dtype, shape), nil
}

// Cast converts x to the given element type. Constants convert in place;
// symbolic values get a cast node.
func (b *Builder) Cast(x Value, dtype DataType) (Value, error) {
	if x.dtype == dtype {
		return x, nil
	}
	if x.IsConst() {
		v, err := x.withDType(dtype)
		if err != nil {
			return Value{}, fmt.Errorf("cast: %w", err)
		}
		return v, nil
	}
	return b.emit(OpCast, dtype, x.Shape(), x), nil
}
