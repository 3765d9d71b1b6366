// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - One place for the nil/shape guards shared by the kernels and predicates.
//   - Guards return sentinels tagged with the guard name; kernels add their own
//     op tag on top through matrixErrorf.
//
// Determinism & Performance:
//   - All checks are pure and allocate nothing on success.

package matrix

// Guard names used as error tags.
const (
	tagNotNil    = "ValidateNotNil"
	tagSameShape = "ValidateSameShape"
	tagSquare    = "ValidateSquare"
	tagMul       = "ValidateMulCompatible"
)

// ValidateNotNil rejects a nil Matrix, including a typed nil *Dense.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return matrixErrorf(tagNotNil, ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return matrixErrorf(tagNotNil, ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape requires equal dimensions; a and b must be non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return matrixErrorf(tagSameShape, ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquareNonNil requires a non-nil square matrix, as Inverse does.
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return matrixErrorf(tagSquare, ErrNonSquare)
	}

	return nil
}

// ValidateMulCompatible checks that a (r×n) and b (n×c) can be multiplied,
// which is also the chain-rule condition for composing two Jacobians.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return matrixErrorf(tagMul, ErrDimensionMismatch)
	}

	return nil
}
