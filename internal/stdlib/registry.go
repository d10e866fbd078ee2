package stdlib

import (
	"fmt"

	"github.com/khaotik/triton/internal/expr"
)

// Func is the uniform callable shape of an exported function: it receives
// the trace builder and its arguments and returns the values it produced.
type Func func(b *expr.Builder, args []expr.Value) ([]expr.Value, error)

// Export is one record of the public surface: a name, the callable, its
// argument count, and optional documentation.
type Export struct {
	Name  string
	Doc   string
	Arity int
	Fn    Func
}

// Registry is the ordered, append-only list of exported functions. It is
// populated once by a setup routine and read-only thereafter; no locking
// is needed as long as registration finishes before any reader observes
// it. Registering the same name twice is permitted and appends a
// duplicate entry.
type Registry struct {
	exports []Export
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an export record in declaration order.
func (r *Registry) Register(e Export) {
	r.exports = append(r.exports, e)
}

// Exports returns the export records in registration order.
// Callers must not modify the returned slice.
func (r *Registry) Exports() []Export {
	return r.exports
}

// Names returns the exported names in registration order, including
// duplicates.
func (r *Registry) Names() []string {
	names := make([]string, len(r.exports))
	for i, e := range r.exports {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the first export registered under the given name.
func (r *Registry) Lookup(name string) (Export, bool) {
	for _, e := range r.exports {
		if e.Name == name {
			return e, true
		}
	}
	return Export{}, false
}

// DefaultRegistry builds the registry of the standard library, in
// declaration order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Export{
		Name:  "abs",
		Doc:   "Computes the element-wise absolute value of x.",
		Arity: 1,
		Fn:    unary(Abs),
	})
	r.Register(Export{
		Name:  "cdiv",
		Doc:   "Computes the ceiling division of x by div.",
		Arity: 2,
		Fn:    binary(Cdiv),
	})
	r.Register(Export{
		Name:  "minimum",
		Doc:   "Computes the element-wise minimum of x and y.",
		Arity: 2,
		Fn:    binary(Minimum),
	})
	r.Register(Export{
		Name:  "maximum",
		Doc:   "Computes the element-wise maximum of x and y.",
		Arity: 2,
		Fn:    binary(Maximum),
	})
	r.Register(Export{
		Name:  "sigmoid",
		Doc:   "Computes the element-wise sigmoid of x.",
		Arity: 1,
		Fn:    unary(Sigmoid),
	})
	r.Register(Export{
		Name:  "softmax",
		Doc:   "Computes the element-wise softmax of x along axis 0.",
		Arity: 1,
		Fn: func(b *expr.Builder, args []expr.Value) ([]expr.Value, error) {
			v, err := Softmax(b, args[0], expr.RoundFast)
			if err != nil {
				return nil, err
			}
			return []expr.Value{v}, nil
		},
	})
	r.Register(Export{
		Name:  "ravel",
		Doc:   "Returns a contiguous flattened view of x.",
		Arity: 1,
		Fn:    unary(Ravel),
	})
	r.Register(Export{
		Name:  "swizzle2d",
		Doc:   "Remaps row-major 2-D tile indices into group-major order.",
		Arity: 5,
		Fn: func(b *expr.Builder, args []expr.Value) ([]expr.Value, error) {
			sizeI, err := constSize(args[2], "size_i")
			if err != nil {
				return nil, err
			}
			sizeJ, err := constSize(args[3], "size_j")
			if err != nil {
				return nil, err
			}
			sizeG, err := constSize(args[4], "size_g")
			if err != nil {
				return nil, err
			}
			newI, newJ, err := Swizzle2D(b, args[0], args[1], sizeI, sizeJ, sizeG)
			if err != nil {
				return nil, err
			}
			return []expr.Value{newI, newJ}, nil
		},
	})
	r.Register(Export{
		Name:  "zeros_like",
		Doc:   "Returns a zero-filled value with the shape and dtype of x.",
		Arity: 1,
		Fn:    unary(ZerosLike),
	})
	return r
}

// unary adapts a single-argument composition function to the Func shape.
func unary(f func(*expr.Builder, expr.Value) (expr.Value, error)) Func {
	return func(b *expr.Builder, args []expr.Value) ([]expr.Value, error) {
		v, err := f(b, args[0])
		if err != nil {
			return nil, err
		}
		return []expr.Value{v}, nil
	}
}

// binary adapts a two-argument composition function to the Func shape.
func binary(f func(*expr.Builder, expr.Value, expr.Value) (expr.Value, error)) Func {
	return func(b *expr.Builder, args []expr.Value) ([]expr.Value, error) {
		v, err := f(b, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return []expr.Value{v}, nil
	}
}

// constSize extracts a compile-time positive size parameter.
func constSize(v expr.Value, name string) (int, error) {
	n, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("%s must be an integer compile-time constant: %w", name, expr.ErrInvalidArgument)
	}
	return int(n), nil
}
