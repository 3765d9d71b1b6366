// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels the transform engine
// relies on: matrix product (composition of linear transforms and the chain
// rule for Jacobians) and inversion (inverse of linear transforms).
// All kernels perform fail-fast validation and return sentinel errors.
//
// Notes:
//   - Kernels never mutate their operands; results are freshly allocated.
//   - Errors are wrapped with matrixErrorf(op, err) so the op tag leads the message.

package matrix

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ZeroSum is the initial sum value for substitution and accumulation loops.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul     = "Mul"
	opInverse = "Inverse"
	opLU      = "LU"
)

// matrixErrorf wraps err with an operation tag; errors.Is still reaches the sentinel.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return errors.Wrap(err, tag)
}

// asDense returns m as *Dense, materialising a copy through At for foreign implementations.
// Kernels call it once so the hot loops below only ever see flat slices.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, errors.Wrapf(err, "At(%d,%d)", i, j)
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}

// Mul returns the matrix product a × b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate Dense(a.Rows, b.Cols).
//   - Stage 2: i-k-j loop over flat slices (row-major friendly), skipping zero a[i,k].
//
// Behavior highlights:
//   - Skipping exact zeros keeps identity blocks from contaminating results
//     with 0*NaN when the other operand carries NaN padding.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// AI-Hints:
//   - In transform composition the left operand is the *second* transform:
//     M(t2∘t1) = M2 × M1.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// luFactor is an in-place LU factorisation with partial pivoting (PA = LU).
// lu holds L (strictly below the diagonal, unit diagonal implied) and U.
type luFactor struct {
	n    int
	lu   []float64
	perm []int
}

// decompose factors m with row partial pivoting.
//
// Implementation:
//   - Stage 1: copy m into a flat work buffer; perm = identity.
//   - Stage 2: for each column k pick the row with the largest |a[i,k]| (ties
//     keep the lowest index, so results are deterministic), swap, eliminate.
//
// Behavior highlights:
//   - Unlike a no-pivot Doolittle, permutation-like matrices (e.g. axis swaps
//     [[0,1],[1,0]]) factor without a spurious zero pivot.
//
// Errors:
//   - ErrSingular when a column has no non-zero candidate pivot.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func decompose(m *Dense) (*luFactor, error) {
	n := m.r
	f := &luFactor{n: n, lu: m.Flat(), perm: make([]int, n)}
	var (
		i, j, k, p int
		maxAbs, v  float64
		pivot      float64
	)
	for i = 0; i < n; i++ {
		f.perm[i] = i
	}
	a := f.lu
	for k = 0; k < n; k++ {
		// Select pivot row.
		p = k
		maxAbs = math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a[i*n+k]); v > maxAbs {
				maxAbs, p = v, i
			}
		}
		if maxAbs == ZeroPivot || math.IsNaN(maxAbs) {
			return nil, ErrSingular
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
		}
		// Eliminate below the pivot.
		pivot = a[k*n+k]
		for i = k + 1; i < n; i++ {
			v = a[i*n+k] / pivot
			a[i*n+k] = v
			if v == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= v * a[k*n+j]
			}
		}
	}

	return f, nil
}

// solveUnit solves A·x = e_col into x using the factorisation, with y as scratch.
func (f *luFactor) solveUnit(col int, y, x []float64) {
	n, a := f.n, f.lu
	var (
		i, k int
		sum  float64
	)
	// Forward substitution: L·y = P·e_col.
	for i = 0; i < n; i++ {
		sum = ZeroSum
		for k = 0; k < i; k++ {
			sum += a[i*n+k] * y[k]
		}
		if f.perm[i] == col {
			y[i] = 1.0 - sum
		} else {
			y[i] = 0 - sum // +0, never -0, when nothing accumulated
		}
	}
	// Backward substitution: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		for k = i + 1; k < n; k++ {
			sum += a[i*n+k] * x[k]
		}
		x[i] = (y[i] - sum) / a[i*n+i]
	}
}

// Inverse returns A^{-1} for a square matrix.
//
// Implementation:
//   - Stage 1: ValidateNotNil, ValidateSquare.
//   - Stage 2: LU with partial pivoting (decompose).
//   - Stage 3: for each identity column e_col, solve L·y = P·e_col then U·x = y.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - Exact singularity only (a zero pivot column). Ill-conditioned matrices
//     invert to large coefficients; conditioning checks are a caller concern.
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	f, err := decompose(d)
	if err != nil {
		return nil, matrixErrorf(opInverse, matrixErrorf(opLU, err))
	}

	n := d.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	var (
		col, i int
		y      = make([]float64, n)
		x      = make([]float64, n)
	)
	for col = 0; col < n; col++ {
		f.solveUnit(col, y, x)
		for i = 0; i < n; i++ {
			if x[i] == 0 {
				x[i] = 0 // a zero over a negative pivot is -0
			}
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
