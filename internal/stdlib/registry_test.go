package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaotik/triton/internal/expr"
)

func TestDefaultRegistryOrder(t *testing.T) {
	want := []string{
		"abs", "cdiv", "minimum", "maximum",
		"sigmoid", "softmax", "ravel", "swizzle2d", "zeros_like",
	}
	assert.Equal(t, want, DefaultRegistry().Names())
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	e, ok := r.Lookup("swizzle2d")
	require.True(t, ok)
	assert.Equal(t, "swizzle2d", e.Name)
	assert.Equal(t, 5, e.Arity)
	assert.NotEmpty(t, e.Doc)

	_, ok = r.Lookup("no_such_function")
	assert.False(t, ok)
}

// Registering the same name twice appends a duplicate entry; the registry
// does not guard against it, and Lookup resolves to the first entry.
func TestRegistryDuplicateNames(t *testing.T) {
	r := NewRegistry()
	first := Export{Name: "f", Doc: "first", Arity: 1, Fn: unary(Abs)}
	second := Export{Name: "f", Doc: "second", Arity: 1, Fn: unary(Ravel)}
	r.Register(first)
	r.Register(second)

	assert.Equal(t, []string{"f", "f"}, r.Names())
	e, ok := r.Lookup("f")
	require.True(t, ok)
	assert.Equal(t, "first", e.Doc)
}

func TestRegistryExportsInvokable(t *testing.T) {
	r := DefaultRegistry()
	b := expr.NewBuilder()

	e, ok := r.Lookup("cdiv")
	require.True(t, ok)
	outs, err := e.Fn(b, []expr.Value{expr.Int(7), expr.Int(2)})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	n, ok := outs[0].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(4), n)
}

func TestRegistrySwizzleExportNeedsConstSizes(t *testing.T) {
	r := DefaultRegistry()
	b := expr.NewBuilder()
	e, ok := r.Lookup("swizzle2d")
	require.True(t, ok)

	i, err := b.Placeholder("i", expr.Shape{4}, expr.Int32)
	require.NoError(t, err)

	// Sizes must be compile-time constants.
	_, err = e.Fn(b, []expr.Value{expr.Int(0), expr.Int(0), i, expr.Int(4), expr.Int(2)})
	assert.ErrorIs(t, err, expr.ErrInvalidArgument)

	outs, err := e.Fn(b, []expr.Value{
		expr.Int(1), expr.Int(0),
		expr.Int(4), expr.Int(4), expr.Int(2),
	})
	require.NoError(t, err)
	require.Len(t, outs, 2)
	ni, _ := outs[0].AsInt()
	nj, _ := outs[1].AsInt()
	assert.Equal(t, int64(0), ni)
	assert.Equal(t, int64(2), nj)
}
