// SPDX-License-Identifier: MIT
// Package transform_test contains test helpers
//
// Purpose:
//   • hide{} masks capability interfaces so factories take their generic paths.
//   • funcTransform is a small non-linear transform built from a closure.
//   • Must* helpers keep table tests short.

package transform_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/katalvlaran/geoxform/matrix"
	"github.com/katalvlaran/geoxform/transform"
	"github.com/stretchr/testify/require"
)

// hide wraps any Transform to hide LinearTransform/Transform2D and friends.
type hide struct{ transform.Transform }

// funcTransform maps srcDim → tgtDim through fn. It has no analytic
// derivative and no inverse.
type funcTransform struct {
	name     string
	src, tgt int
	fn       func(in, out []float64) error
}

func (f *funcTransform) SourceDimensions() int { return f.src }
func (f *funcTransform) TargetDimensions() int { return f.tgt }
func (f *funcTransform) IsIdentity() bool      { return false }
func (f *funcTransform) String() string        { return f.name }

func (f *funcTransform) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	in := append([]float64(nil), src[srcOff:srcOff+f.src]...)
	var d *matrix.Dense
	if derivate {
		var err error
		if d, err = transform.NumericDerivative(f, in); err != nil {
			return nil, err
		}
	}
	if dst != nil {
		out := make([]float64, f.tgt)
		if err := f.fn(in, out); err != nil {
			return nil, err
		}
		copy(dst[dstOff:], out)
	}

	return d, nil
}

func (f *funcTransform) TransformPoint(src, dst []float64) ([]float64, error) {
	if dst == nil {
		dst = make([]float64, f.tgt)
	}
	_, err := f.Apply(src, 0, dst, 0, false)

	return dst, err
}

// TransformBuffer buffers the whole source, so it is overlap-safe without
// any strategy of its own.
func (f *funcTransform) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	tmp := append([]float64(nil), src[srcOff:srcOff+numPts*f.src]...)
	for i := 0; i < numPts; i++ {
		if _, err := f.Apply(tmp, i*f.src, dst, dstOff+i*f.tgt, false); err != nil {
			return &transform.PointError{Index: i, Err: err}
		}
	}

	return nil
}

func (f *funcTransform) Derivative(point []float64) (*matrix.Dense, error) {
	return f.Apply(point, 0, nil, 0, true)
}

func (f *funcTransform) Inverse() (transform.Transform, error) {
	return nil, transform.ErrNoninvertible
}

// newSquares returns a dim→dim transform x_i → x_i² + i that fails with
// ErrOutOfDomain when the first ordinate equals poison.
func newSquares(dim int, poison float64) *funcTransform {
	return &funcTransform{name: "squares", src: dim, tgt: dim, fn: func(in, out []float64) error {
		if in[0] == poison {
			return errors.Wrapf(transform.ErrOutOfDomain, "poisoned %v", in[0])
		}
		for i, v := range in {
			out[i] = v*v + float64(i)
		}
		return nil
	}}
}

// newMixer returns a src→tgt transform whose output k is a non-linear mix of
// all inputs, so it never qualifies for a linear fast path.
func newMixer(src, tgt int) *funcTransform {
	return &funcTransform{name: "mixer", src: src, tgt: tgt, fn: func(in, out []float64) error {
		for k := range out {
			s := float64(k)
			for j, v := range in {
				s += float64(j+k+1) * v
			}
			out[k] = s + 0.001*s*s
		}
		return nil
	}}
}

// newPoisoned returns a src→tgt transform out_k = Σ in + k that fails with
// ErrOutOfDomain when the first ordinate equals poison.
func newPoisoned(src, tgt int, poison float64) *funcTransform {
	return &funcTransform{name: "poisoned", src: src, tgt: tgt, fn: func(in, out []float64) error {
		if in[0] == poison {
			return errors.Wrapf(transform.ErrOutOfDomain, "poisoned %v", in[0])
		}
		s := 0.0
		for _, v := range in {
			s += v
		}
		for k := range out {
			out[k] = s + float64(k)
		}
		return nil
	}}
}

// MustLinear builds a LinearTransform from row-major values or fails the test.
func MustLinear(t *testing.T, rows, cols int, vals ...float64) transform.LinearTransform {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows, cols, vals)
	require.NoError(t, err)
	lt, err := transform.NewLinear(m)
	require.NoError(t, err)

	return lt
}

// MustConcat concatenates or fails the test.
func MustConcat(t *testing.T, t1, t2 transform.Transform, opts ...transform.Option) transform.Transform {
	t.Helper()
	c, err := transform.Concatenate(t1, t2, opts...)
	require.NoError(t, err)

	return c
}

// MustPassThrough wraps or fails the test.
func MustPassThrough(t *testing.T, first int, sub transform.Transform, trailing int) transform.Transform {
	t.Helper()
	p, err := transform.PassThrough(first, sub, trailing)
	require.NoError(t, err)

	return p
}

// MustPoint transforms one point or fails the test.
func MustPoint(t *testing.T, tr transform.Transform, p ...float64) []float64 {
	t.Helper()
	out, err := tr.TransformPoint(p, nil)
	require.NoError(t, err)

	return out
}

// linearMatrix returns a deterministic (tgt+1)×(src+1) affine matrix with
// no zero coefficient in its linear part.
func linearMatrix(src, tgt int) []float64 {
	cols := src + 1
	vals := make([]float64, (tgt+1)*cols)
	for i := 0; i < tgt; i++ {
		for j := 0; j < cols; j++ {
			vals[i*cols+j] = 0.5*float64(i+1) - 0.25*float64(j) + 0.125*float64(i*j+1)
		}
	}
	vals[tgt*cols+src] = 1

	return vals
}

// requireSliceClose asserts element-wise |a-b| <= tol (NaN matches NaN).
func requireSliceClose(t *testing.T, want, got []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) && math.IsNaN(got[i]) {
			continue
		}
		require.InDelta(t, want[i], got[i], tol, "index %d\nwant: %s got: %s", i, spew.Sdump(want), spew.Sdump(got))
	}
}

// requireBitsEqual asserts bit-identical slices.
func requireBitsEqual(t *testing.T, want, got []float64, msgAndArgs ...interface{}) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.Float64bits(want[i]) != math.Float64bits(got[i]) {
			require.Failf(t, "buffers differ", "index %d: want %v got %v\nwant: %s got: %s%v",
				i, want[i], got[i], spew.Sdump(want), spew.Sdump(got), msgAndArgs)
		}
	}
}

// requireMatrixClose compares two matrices entry by entry.
func requireMatrixClose(t *testing.T, want, got *matrix.Dense, tol float64) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	requireSliceClose(t, want.Flat(), got.Flat(), tol)
}
