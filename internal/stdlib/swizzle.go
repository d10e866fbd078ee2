package stdlib

import (
	"fmt"

	"github.com/khaotik/triton/internal/expr"
)

// Swizzle2D transforms indices of a row-major sizeI*sizeJ matrix into
// those of one where indices are row major for each group of sizeG rows.
// For example, for sizeI = sizeJ = 4 and sizeG = 2, it will transform
//
//	[[0 , 1 , 2 , 3 ],
//	 [4 , 5 , 6 , 7 ],
//	 [8 , 9 , 10, 11],
//	 [12, 13, 14, 15]]
//
// into
//
//	[[0, 2,  4 , 6 ],
//	 [1, 3,  5 , 7 ],
//	 [8, 10, 12, 14],
//	 [9, 11, 13, 15]]
//
// The mapping is a bijection over [0,sizeI) x [0,sizeJ): consecutive flat
// indices land in a contiguous band of up to sizeG rows, which keeps
// consecutively scheduled tiles spatially adjacent. When sizeI is not a
// multiple of sizeG the last group has fewer rows, and the row modulus
// shrinks accordingly to preserve bijectivity.
//
// i and j may be integer constants or integer-valued symbolic tensors;
// the sizes are compile-time parameters and must be positive.
func Swizzle2D(b *expr.Builder, i, j expr.Value, sizeI, sizeJ, sizeG int) (expr.Value, expr.Value, error) {
	if sizeI <= 0 || sizeJ <= 0 || sizeG <= 0 {
		return expr.Value{}, expr.Value{}, fmt.Errorf(
			"swizzle2d: sizes must be positive, got size_i=%d size_j=%d size_g=%d: %w",
			sizeI, sizeJ, sizeG, expr.ErrInvalidArgument)
	}

	// Unrolled index in the array.
	rowLen, err := b.Mul(i, expr.Int(sizeJ))
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}
	ij, err := b.Add(rowLen, j)
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}

	// Number of elements in sizeG groups of sizeJ columns.
	sizeGJ := sizeG * sizeJ

	// Index of the group in which (i, j) falls.
	groupID, err := b.FloorDiv(ij, expr.Int(sizeGJ))
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}

	// Row index of the first element of this group.
	offI, err := b.Mul(groupID, expr.Int(sizeG))
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}

	// The last group may have fewer rows.
	rem, err := b.Sub(expr.Int(sizeI), offI)
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}
	effG, err := Minimum(b, rem, expr.Int(sizeG))
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}

	// New row and column indices.
	rowOff, err := b.Mod(ij, effG)
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}
	newI, err := b.Add(offI, rowOff)
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}
	groupOff, err := b.Mod(ij, expr.Int(sizeGJ))
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}
	newJ, err := b.FloorDiv(groupOff, effG)
	if err != nil {
		return expr.Value{}, expr.Value{}, err
	}

	return newI, newJ, nil
}
