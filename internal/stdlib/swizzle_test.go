package stdlib

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaotik/triton/internal/expr"
)

// swizzle folds Swizzle2D on concrete coordinates.
func swizzle(t *testing.T, i, j, sizeI, sizeJ, sizeG int) (int, int) {
	t.Helper()
	b := expr.NewBuilder()
	ni, nj, err := Swizzle2D(b, expr.Int(i), expr.Int(j), sizeI, sizeJ, sizeG)
	require.NoError(t, err)
	niv, ok := ni.AsInt()
	require.True(t, ok, "new_i did not fold to a constant")
	njv, ok := nj.AsInt()
	require.True(t, ok, "new_j did not fold to a constant")
	return int(niv), int(njv)
}

func TestSwizzle2DOrigin(t *testing.T) {
	ni, nj := swizzle(t, 0, 0, 4, 4, 2)
	assert.Equal(t, 0, ni)
	assert.Equal(t, 0, nj)
}

func TestSwizzle2DDocumentedExample(t *testing.T) {
	// Value 4 sits at (1, 0) in the row-major grid and moves to (0, 2).
	ni, nj := swizzle(t, 1, 0, 4, 4, 2)
	assert.Equal(t, 0, ni)
	assert.Equal(t, 2, nj)
}

// The full 4x4 grid with groups of 2 rows, from the function's
// documentation.
func TestSwizzle2DFullGrid(t *testing.T) {
	want := [4][4]int{
		{0, 2, 4, 6},
		{1, 3, 5, 7},
		{8, 10, 12, 14},
		{9, 11, 13, 15},
	}

	var got [4][4]int
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			ni, nj := swizzle(t, i, j, 4, 4, 2)
			got[ni][nj] = i*4 + j
		}
	}
	assert.Equal(t, want, got)
}

// The remapping must be a bijection over [0,sizeI) x [0,sizeJ) for every
// valid parameter triple, including ragged last groups and groups larger
// than the grid.
func TestSwizzle2DBijectivity(t *testing.T) {
	cases := []struct{ sizeI, sizeJ, sizeG int }{
		{1, 1, 1},
		{4, 4, 2},
		{4, 4, 4},
		{3, 4, 2}, // ragged last group
		{5, 3, 2}, // ragged last group
		{7, 5, 3}, // ragged last group
		{6, 2, 4},
		{2, 8, 5}, // group taller than the grid
		{8, 1, 3},
		{1, 9, 2},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%dx%d_g%d", tc.sizeI, tc.sizeJ, tc.sizeG), func(t *testing.T) {
			seen := make(map[[2]int]bool, tc.sizeI*tc.sizeJ)
			for i := 0; i < tc.sizeI; i++ {
				for j := 0; j < tc.sizeJ; j++ {
					ni, nj := swizzle(t, i, j, tc.sizeI, tc.sizeJ, tc.sizeG)
					require.GreaterOrEqual(t, ni, 0)
					require.Less(t, ni, tc.sizeI, "(%d,%d) mapped out of row range", i, j)
					require.GreaterOrEqual(t, nj, 0)
					require.Less(t, nj, tc.sizeJ, "(%d,%d) mapped out of column range", i, j)

					key := [2]int{ni, nj}
					require.False(t, seen[key], "(%d,%d) collides at (%d,%d)", i, j, ni, nj)
					seen[key] = true
				}
			}
			// No collisions over the full domain means full coverage.
			assert.Len(t, seen, tc.sizeI*tc.sizeJ)
		})
	}
}

// The last group of a ragged grid must stay within its own row range.
func TestSwizzle2DRaggedLastGroup(t *testing.T) {
	// sizeI=5, sizeG=2: the last group is the single row 4.
	for j := 0; j < 3; j++ {
		ni, _ := swizzle(t, 4, j, 5, 3, 2)
		assert.Equal(t, 4, ni, "last-group row moved out of its band")
	}
}

func TestSwizzle2DInvalidSizes(t *testing.T) {
	b := expr.NewBuilder()

	cases := []struct{ sizeI, sizeJ, sizeG int }{
		{4, 4, 0},
		{4, 4, -1},
		{0, 4, 2},
		{4, 0, 2},
		{-2, 4, 2},
	}
	for _, tc := range cases {
		_, _, err := Swizzle2D(b, expr.Int(0), expr.Int(0), tc.sizeI, tc.sizeJ, tc.sizeG)
		assert.ErrorIs(t, err, expr.ErrInvalidArgument,
			"size_i=%d size_j=%d size_g=%d", tc.sizeI, tc.sizeJ, tc.sizeG)
	}
}

// Symbolic coordinates build the arithmetic sub-graph instead of folding.
func TestSwizzle2DSymbolic(t *testing.T) {
	b := expr.NewBuilder()
	i, err := b.Placeholder("i", expr.Shape{16}, expr.Int32)
	require.NoError(t, err)
	j, err := b.Placeholder("j", expr.Shape{16}, expr.Int32)
	require.NoError(t, err)

	ni, nj, err := Swizzle2D(b, i, j, 4, 4, 2)
	require.NoError(t, err)
	require.False(t, ni.IsConst())
	require.False(t, nj.IsConst())
	assert.Equal(t, expr.Int32, ni.DType())
	assert.Equal(t, expr.Int32, nj.DType())
	assert.True(t, ni.Shape().Equal(expr.Shape{16}))
	assert.True(t, nj.Shape().Equal(expr.Shape{16}))
	assert.Greater(t, b.Graph().NumNodes(), 2)
}
