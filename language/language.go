// Copyright 2025 The Triton Go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package language provides the public API for authoring tile-based
// kernels as staged expression graphs.
//
// Functions in this package never execute numerically: applied to
// symbolic values they record primitive operations on a Builder's graph,
// and applied to compile-time constants they fold to new constants. The
// resulting graph is handed to a backend compiler for lowering.
//
// Example:
//
//	b := language.NewBuilder()
//	x, _ := b.Placeholder("x", language.Shape{16}, language.Float32)
//	y, _ := language.Softmax(b, x, language.RoundFast)
//	fmt.Print(b.Graph())
package language

import (
	"github.com/khaotik/triton/internal/expr"
	"github.com/khaotik/triton/internal/stdlib"
)

// Type aliases for public API

// Value is an immutable handle to a constant or symbolic quantity.
type Value = expr.Value

// Shape represents the dimensions of a value. Empty means scalar.
type Shape = expr.Shape

// DataType represents the element type of a value.
type DataType = expr.DataType

// Data type constants.
const (
	Int32   DataType = expr.Int32
	Int64   DataType = expr.Int64
	Float32 DataType = expr.Float32
	Float64 DataType = expr.Float64
	Bool    DataType = expr.Bool
)

// Builder records primitive operations into an expression graph.
type Builder = expr.Builder

// Graph is an append-only expression graph.
type Graph = expr.Graph

// Node is one recorded operation.
type Node = expr.Node

// Rounding selects the backend division semantics for fdiv nodes.
type Rounding = expr.Rounding

// Rounding modes.
const (
	RoundFast Rounding = expr.RoundFast
	RoundIEEE Rounding = expr.RoundIEEE
)

// ErrInvalidArgument reports structurally invalid arguments detected at
// graph-construction time.
var ErrInvalidArgument = expr.ErrInvalidArgument

// NewBuilder creates a Builder with an empty graph.
func NewBuilder() *Builder {
	return expr.NewBuilder()
}

// Constant constructors

// Int returns an int32 compile-time constant.
func Int(v int) Value { return expr.Int(v) }

// Int64Value returns an int64 compile-time constant.
func Int64Value(v int64) Value { return expr.Int64Value(v) }

// Float returns a float32 compile-time constant.
func Float(v float64) Value { return expr.Float(v) }

// Float64Value returns a float64 compile-time constant.
func Float64Value(v float64) Value { return expr.Float64Value(v) }

// BoolValue returns a boolean compile-time constant.
func BoolValue(v bool) Value { return expr.BoolValue(v) }

// Standard library

// Abs returns x where x >= 0 elementwise and -x elsewhere.
func Abs(b *Builder, x Value) (Value, error) { return stdlib.Abs(b, x) }

// Cdiv computes the ceiling division of x by div.
func Cdiv(b *Builder, x, div Value) (Value, error) { return stdlib.Cdiv(b, x, div) }

// Minimum computes the elementwise minimum of x and y.
func Minimum(b *Builder, x, y Value) (Value, error) { return stdlib.Minimum(b, x, y) }

// Maximum computes the elementwise maximum of x and y.
func Maximum(b *Builder, x, y Value) (Value, error) { return stdlib.Maximum(b, x, y) }

// Sigmoid computes the logistic function 1 / (1 + exp(-x)).
func Sigmoid(b *Builder, x Value) (Value, error) { return stdlib.Sigmoid(b, x) }

// Softmax computes exp(x - max(x)) / sum(exp(x - max(x))) along axis 0.
// The rounding mode is forwarded to the division primitive.
func Softmax(b *Builder, x Value, rounding Rounding) (Value, error) {
	return stdlib.Softmax(b, x, rounding)
}

// Ravel returns a contiguous flattened view of x.
func Ravel(b *Builder, x Value) (Value, error) { return stdlib.Ravel(b, x) }

// ZerosLike returns a zero-filled value with the shape and dtype of x.
func ZerosLike(b *Builder, x Value) (Value, error) { return stdlib.ZerosLike(b, x) }

// Swizzle2D remaps row-major 2-D tile indices into group-major order:
// coordinates are grouped into contiguous bands of up to sizeG rows, and
// the flattened traversal fills columns before advancing rows. The
// mapping is a bijection over [0,sizeI) x [0,sizeJ).
//
// Example:
//
//	ni, nj, _ := language.Swizzle2D(b, language.Int(1), language.Int(0), 4, 4, 2)
//	// ni = 0, nj = 2
func Swizzle2D(b *Builder, i, j Value, sizeI, sizeJ, sizeG int) (Value, Value, error) {
	return stdlib.Swizzle2D(b, i, j, sizeI, sizeJ, sizeG)
}
