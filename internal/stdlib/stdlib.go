// Package stdlib provides the standard library of composition functions
// for staged kernels. Every function is a pure formula over the primitive
// operators of a Builder: invoking one appends nodes to the builder's
// expression graph (or folds, when all operands are compile-time
// constants) and never evaluates anything numerically.
package stdlib

import (
	"github.com/khaotik/triton/internal/expr"
)

// Abs returns x where x >= 0 elementwise and -x elsewhere.
func Abs(b *expr.Builder, x expr.Value) (expr.Value, error) {
	cond, err := b.CmpGE(x, expr.Int(0))
	if err != nil {
		return expr.Value{}, err
	}
	neg, err := b.Neg(x)
	if err != nil {
		return expr.Value{}, err
	}
	return b.Where(cond, x, neg)
}

// Cdiv computes the ceiling division of x by div as (x + div - 1) // div.
// The caller must ensure div is nonzero; division by zero is reported by
// the primitive layer, not here.
func Cdiv(b *expr.Builder, x, div expr.Value) (expr.Value, error) {
	sum, err := b.Add(x, div)
	if err != nil {
		return expr.Value{}, err
	}
	sum, err = b.Sub(sum, expr.Int(1))
	if err != nil {
		return expr.Value{}, err
	}
	return b.FloorDiv(sum, div)
}

// Minimum computes the elementwise minimum of x and y via a strict
// comparison and select, so ties yield the operands' common value.
func Minimum(b *expr.Builder, x, y expr.Value) (expr.Value, error) {
	cond, err := b.CmpLT(x, y)
	if err != nil {
		return expr.Value{}, err
	}
	return b.Where(cond, x, y)
}

// Maximum computes the elementwise maximum of x and y.
func Maximum(b *expr.Builder, x, y expr.Value) (expr.Value, error) {
	cond, err := b.CmpGT(x, y)
	if err != nil {
		return expr.Value{}, err
	}
	return b.Where(cond, x, y)
}

// Sigmoid computes the logistic function 1 / (1 + exp(-x)). No numeric
// stabilization is performed at this layer.
func Sigmoid(b *expr.Builder, x expr.Value) (expr.Value, error) {
	neg, err := b.Neg(x)
	if err != nil {
		return expr.Value{}, err
	}
	e, err := b.Exp(neg)
	if err != nil {
		return expr.Value{}, err
	}
	den, err := b.Add(expr.Int(1), e)
	if err != nil {
		return expr.Value{}, err
	}
	return b.Div(expr.Int(1), den)
}

// Softmax computes exp(x - max(x, axis 0)) normalized by its sum along
// axis 0. The rounding mode is forwarded to the division primitive,
// selecting strict-IEEE vs fast division in the backend.
func Softmax(b *expr.Builder, x expr.Value, rounding expr.Rounding) (expr.Value, error) {
	m, err := b.ReduceMax(x, 0)
	if err != nil {
		return expr.Value{}, err
	}
	z, err := b.Sub(x, m)
	if err != nil {
		return expr.Value{}, err
	}
	num, err := b.Exp(z)
	if err != nil {
		return expr.Value{}, err
	}
	den, err := b.ReduceSum(num, 0)
	if err != nil {
		return expr.Value{}, err
	}
	return b.FDiv(num, den, rounding)
}

// Ravel returns a contiguous flattened view of x: a reshape to a single
// dimension of length NumElements. Shape-only; no data movement implied.
func Ravel(b *expr.Builder, x expr.Value) (expr.Value, error) {
	return b.Reshape(x, expr.Shape{x.NumElements()})
}

// ZerosLike returns a zero-filled value with the shape and element type
// of x.
func ZerosLike(b *expr.Builder, x expr.Value) (expr.Value, error) {
	return b.Zeros(x.Shape(), x.DType())
}
