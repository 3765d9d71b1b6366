// SPDX-License-Identifier: MIT
// Package matrix: public API facades and exact predicates.
//
// Purpose:
//   - Provide constructors with intention-revealing names (NewIdentity, NewZeros).
//   - Provide the exact predicates the transform factories use to select fast
//     paths (IsIdentity, IsAffine, Equal). All comparisons are exact value
//     comparisons; tolerance-based equality belongs to callers.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// IsIdentity reports whether m is exactly square with ones on the diagonal
// and zeros elsewhere. Nil or non-square matrices are not identities.
// Complexity: O(n^2).
func IsIdentity(m Matrix) bool {
	if ValidateSquareNonNil(m) != nil {
		return false
	}
	d, err := asDense(m)
	if err != nil {
		return false
	}
	n := d.r
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := d.data[i*n+j]
			if i == j {
				if v != 1 {
					return false
				}
			} else if v != 0 {
				return false
			}
		}
	}

	return true
}

// IsAffine reports whether the last row of m is exactly [0 … 0 1], i.e. m
// is the homogeneous matrix of an affine (not projective) map.
// Complexity: O(c).
func IsAffine(m Matrix) bool {
	if ValidateNotNil(m) != nil {
		return false
	}
	d, err := asDense(m)
	if err != nil {
		return false
	}
	last := (d.r - 1) * d.c
	for j := 0; j < d.c; j++ {
		v := d.data[last+j]
		if j == d.c-1 {
			if v != 1 {
				return false
			}
		} else if v != 0 {
			return false
		}
	}

	return true
}

// Equal reports whether a and b have the same shape and bitwise-equal values.
// NaN entries compare equal to NaN entries at the same position so that a
// matrix always equals its own clone.
// Complexity: O(r*c).
func Equal(a, b Matrix) bool {
	if ValidateNotNil(a) != nil || ValidateNotNil(b) != nil {
		return false
	}
	if ValidateSameShape(a, b) != nil {
		return false
	}
	da, err := asDense(a)
	if err != nil {
		return false
	}
	db, err := asDense(b)
	if err != nil {
		return false
	}
	for i, v := range da.data {
		w := db.data[i]
		if v != w && !(v != v && w != w) {
			return false
		}
	}

	return true
}
