// SPDX-License-Identifier: MIT

// Package transform - linear transforms in homogeneous form.
//
// Purpose:
//   - NewLinear is the single entry point: it normalises identity matrices to
//     the interned Identity, 3×3 affine matrices to Affine2D, and everything
//     else to the general Affine (which also covers projective matrices whose
//     last row is not [0 … 0 1]).
//   - Composition of two linear transforms is a matrix product (see linearProduct).
//
// AI-Hints:
//   - Coefficients are kept in a private flat copy; Matrix() always returns a fresh copy.
//   - Zero coefficients are skipped in the dot products so that a NaN in an
//     ordinate the row does not use stays out of that row's result.
package transform

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
)

// Affine is an N-D linear transform target = M·[source; 1], with a
// perspective divide by the last row when M is projective.
type Affine struct {
	srcDim, tgtDim int
	elt            []float64 // (tgtDim+1)×(srcDim+1), row-major
	affine         bool      // last row is exactly [0 … 0 1]
	embed          *embedding
	inv            inverseSlot
}

var (
	_ LinearTransform = (*Affine)(nil)
	_ Describer       = (*Affine)(nil)
	_ inversePeeker   = (*Affine)(nil)
	_ inverseLinker   = (*Affine)(nil)
)

// NewLinear builds the linear transform whose homogeneous matrix is m
// ((target+1)×(source+1)).
//
// Behavior highlights:
//   - Identity matrices return Identity(n) (interned).
//   - 3×3 affine matrices return *Affine2D.
//   - Other shapes return *Affine.
//
// Errors:
//   - matrix.ErrNilMatrix for a nil matrix.
//   - ErrInvalidDimension when m has fewer than 2 rows or 2 columns.
func NewLinear(m matrix.Matrix) (LinearTransform, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, transformErrorf(opNewLinear, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows < 2 || cols < 2 {
		return nil, transformErrorf(opNewLinear,
			errors.Wrapf(ErrInvalidDimension, "matrix %dx%d has no room for the homogeneous row/column", rows, cols))
	}
	var elt []float64
	if d, ok := m.(*matrix.Dense); ok {
		elt = d.Flat()
	} else {
		elt = make([]float64, rows*cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, transformErrorf(opNewLinear, err)
				}
				elt[i*cols+j] = v
			}
		}
	}

	return newLinearFlat(rows-1, cols-1, elt), nil
}

// newLinearFlat is NewLinear over an owned flat buffer (not copied).
func newLinearFlat(tgtDim, srcDim int, elt []float64) LinearTransform {
	cols := srcDim + 1
	affine := true
	last := tgtDim * cols
	for j := 0; j < cols; j++ {
		want := 0.0
		if j == srcDim {
			want = 1
		}
		if elt[last+j] != want {
			affine = false
			break
		}
	}
	if affine && tgtDim == srcDim && isIdentityFlat(elt, cols) {
		return Identity(srcDim)
	}
	if affine && tgtDim == 2 && srcDim == 2 {
		return newAffine2D(elt[0], elt[1], elt[2], elt[3], elt[4], elt[5])
	}

	return &Affine{srcDim: srcDim, tgtDim: tgtDim, elt: elt, affine: affine}
}

// isIdentityFlat checks an n×n row-major buffer for exact identity.
func isIdentityFlat(elt []float64, n int) bool {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := elt[i*n+j]
			if (i == j && v != 1) || (i != j && v != 0) {
				return false
			}
		}
	}

	return true
}

func (t *Affine) SourceDimensions() int { return t.srcDim }
func (t *Affine) TargetDimensions() int { return t.tgtDim }

// IsIdentity is always false: identity matrices are normalised by NewLinear.
func (t *Affine) IsIdentity() bool { return false }

// IsAffine reports whether the last matrix row is [0 … 0 1] (no perspective divide).
func (t *Affine) IsAffine() bool { return t.affine }

// Matrix returns a copy of the homogeneous matrix.
func (t *Affine) Matrix() *matrix.Dense {
	m, _ := matrix.NewDenseFrom(t.tgtDim+1, t.srcDim+1, t.elt)
	return m
}

// row evaluates Σ_j M[i][j]·in[j] + M[i][src]; zero terms are skipped. The
// sum is seeded from the first term, so a row of an embedded pass-through
// fringe returns its ordinate bit for bit.
func (t *Affine) row(i int, in []float64) float64 {
	base := i * (t.srcDim + 1)
	var (
		sum     float64
		started bool
	)
	for j, x := range in {
		e := t.elt[base+j]
		if e == 0 {
			continue
		}
		if started {
			sum += e * x
		} else {
			sum, started = e*x, true
		}
	}
	if c := t.elt[base+t.srcDim]; c != 0 {
		sum += c
	}

	return sum
}

// project writes M·in into out (len tgtDim); in and out must not alias.
func (t *Affine) project(in, out []float64) {
	if t.affine {
		for i := range out {
			out[i] = t.row(i, in)
		}
		return
	}
	w := t.row(t.tgtDim, in)
	for i := range out {
		out[i] = t.row(i, in) / w
	}
}

// jacobian returns ∂out/∂in at in.
func (t *Affine) jacobian(in []float64) *matrix.Dense {
	cols := t.srcDim + 1
	jac := make([]float64, t.tgtDim*t.srcDim)
	if t.affine {
		for i := 0; i < t.tgtDim; i++ {
			copy(jac[i*t.srcDim:(i+1)*t.srcDim], t.elt[i*cols:i*cols+t.srcDim])
		}
	} else {
		// d(y_i/w)/dx_j = (M_ij·w - y_i·M_wj) / w²
		w := t.row(t.tgtDim, in)
		wBase := t.tgtDim * cols
		for i := 0; i < t.tgtDim; i++ {
			y := t.row(i, in)
			for j := 0; j < t.srcDim; j++ {
				jac[i*t.srcDim+j] = (t.elt[i*cols+j]*w - y*t.elt[wBase+j]) / (w * w)
			}
		}
	}
	d, _ := matrix.NewDenseFrom(t.tgtDim, t.srcDim, jac)

	return d
}

func (t *Affine) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkApply(t.srcDim, t.tgtDim, src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	in := src[srcOff : srcOff+t.srcDim]
	var d *matrix.Dense
	if derivate {
		d = t.jacobian(in)
	}
	if dst != nil {
		var buf tuple
		out := scratch(&buf, t.tgtDim)
		t.project(in, out)
		copy(dst[dstOff:], out)
	}

	return d, nil
}

func (t *Affine) TransformPoint(src, dst []float64) ([]float64, error) {
	return ApplyPoint(t, src, dst)
}

// TransformBuffer snapshots each source tuple into a per-call scratch and
// walks the points in the order Suggest recommends.
func (t *Affine) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if err := checkBuffers(src, srcOff, t.srcDim, dst, dstOff, t.tgtDim, numPts); err != nil {
		return transformErrorf(opTransformBuf, err)
	}
	in := make([]float64, t.srcDim)
	out := make([]float64, t.tgtDim)

	return iterate(src, srcOff, t.srcDim, dst, dstOff, t.tgtDim, numPts,
		func(s []float64, so int, d []float64, do int) error {
			copy(in, s[so:so+t.srcDim])
			t.project(in, out)
			copy(d[do:], out)
			return nil
		})
}

// Derivative is constant for affine matrices and point-dependent for projective ones.
func (t *Affine) Derivative(point []float64) (*matrix.Dense, error) {
	return ApplyDerivative(t, point)
}

// Inverse inverts the homogeneous matrix. Non-square (dimension-changing)
// and singular matrices are ErrNoninvertible.
func (t *Affine) Inverse() (Transform, error) {
	return t.inv.resolve(t, func() (Transform, error) {
		if t.srcDim != t.tgtDim {
			return nil, noninvertible(errors.Wrapf(ErrMismatchedDimension,
				"%d→%d linear transform", t.srcDim, t.tgtDim))
		}
		inv, err := matrix.Inverse(t.Matrix())
		if err != nil {
			return nil, noninvertible(err)
		}
		return newLinearFlat(t.tgtDim, t.srcDim, inv.Flat()), nil
	})
}

func (t *Affine) peekInverse() Transform        { return t.inv.peek() }
func (t *Affine) linkInverse(origin Transform) { t.inv.link(origin) }

// Describe lists the matrix size and every coefficient that differs from the identity.
func (t *Affine) Describe() ParameterGroup {
	name := "Affine"
	if !t.affine {
		name = "Projective"
	}

	return ParameterGroup{Name: name, Parameters: matrixParameters(t.tgtDim+1, t.srcDim+1, t.elt)}
}

func (t *Affine) String() string {
	return "Affine(" + strconv.Itoa(t.srcDim) + "→" + strconv.Itoa(t.tgtDim) + ")"
}

// matrixParameters reports num_row, num_col and the non-default elt_i_j values.
func matrixParameters(rows, cols int, elt []float64) []ParameterValue {
	params := []ParameterValue{
		{Name: "num_row", Value: float64(rows)},
		{Name: "num_col", Value: float64(cols)},
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			def := 0.0
			if i == j {
				def = 1
			}
			if v := elt[i*cols+j]; v != def {
				params = append(params, ParameterValue{Name: fmt.Sprintf("elt_%d_%d", i, j), Value: v})
			}
		}
	}

	return params
}

// linearProduct returns the linear transform "l1 then l2": M = M2 × M1.
func linearProduct(l1, l2 LinearTransform) (LinearTransform, error) {
	if a, ok := l1.(*Affine2D); ok {
		if b, ok := l2.(*Affine2D); ok {
			return b.times(a), nil
		}
	}
	m, err := matrix.Mul(l2.Matrix(), l1.Matrix())
	if err != nil {
		return nil, err
	}

	return newLinearFlat(l2.TargetDimensions(), l1.SourceDimensions(), m.Flat()), nil
}

// embedAffine places sub's affine matrix on the diagonal between identity
// fringes: the matrix form of PassThrough(first, sub, trailing).
func embedAffine(first int, sub LinearTransform, trailing int) LinearTransform {
	subSrc, subTgt := sub.SourceDimensions(), sub.TargetDimensions()
	src, tgt := first+subSrc+trailing, first+subTgt+trailing
	cols := src + 1
	sm := sub.Matrix().Flat()
	subCols := subSrc + 1
	elt := make([]float64, (tgt+1)*cols)
	var i, j int
	for i = 0; i < first; i++ {
		elt[i*cols+i] = 1
	}
	for i = 0; i < subTgt; i++ {
		r := first + i
		for j = 0; j < subSrc; j++ {
			elt[r*cols+first+j] = sm[i*subCols+j]
		}
		elt[r*cols+src] = sm[i*subCols+subSrc]
	}
	for i = 0; i < trailing; i++ {
		elt[(first+subTgt+i)*cols+first+subSrc+i] = 1
	}
	elt[tgt*cols+src] = 1

	return newLinearFlat(tgt, src, elt)
}
