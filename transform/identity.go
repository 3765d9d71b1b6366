// SPDX-License-Identifier: MIT

package transform

import (
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
)

// identities interns one identity transform per dimension.
var identities sync.Map // int -> *identityTransform

// Identity returns the identity transform of the given dimension. Instances
// are interned: Identity(n) == Identity(n) for every call.
// Panics when dim <= 0 (programmer error).
func Identity(dim int) LinearTransform {
	if dim <= 0 {
		panic(errors.AssertionFailedf("transform: Identity: dimension must be > 0, got %d", dim))
	}
	if v, ok := identities.Load(dim); ok {
		return v.(*identityTransform)
	}
	v, _ := identities.LoadOrStore(dim, &identityTransform{dim: dim})

	return v.(*identityTransform)
}

// identityTransform copies coordinates unchanged.
type identityTransform struct {
	dim int
}

var (
	_ LinearTransform = (*identityTransform)(nil)
	_ Describer       = (*identityTransform)(nil)
)

func (t *identityTransform) SourceDimensions() int { return t.dim }
func (t *identityTransform) TargetDimensions() int { return t.dim }
func (t *identityTransform) IsIdentity() bool      { return true }

// Inverse of the identity is itself.
func (t *identityTransform) Inverse() (Transform, error) { return t, nil }

// Matrix returns I_{dim+1}.
func (t *identityTransform) Matrix() *matrix.Dense {
	m, _ := matrix.NewIdentity(t.dim + 1)
	return m
}

func (t *identityTransform) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkApply(t.dim, t.dim, src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	if dst != nil {
		copy(dst[dstOff:dstOff+t.dim], src[srcOff:srcOff+t.dim])
	}
	if !derivate {
		return nil, nil
	}
	d, _ := matrix.NewIdentity(t.dim)

	return d, nil
}

func (t *identityTransform) TransformPoint(src, dst []float64) ([]float64, error) {
	return ApplyPoint(t, src, dst)
}

// TransformBuffer is a single memmove; copy is overlap-safe by definition.
func (t *identityTransform) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if err := checkBuffers(src, srcOff, t.dim, dst, dstOff, t.dim, numPts); err != nil {
		return transformErrorf(opTransformBuf, err)
	}
	n := numPts * t.dim
	copy(dst[dstOff:dstOff+n], src[srcOff:srcOff+n])

	return nil
}

func (t *identityTransform) Derivative(point []float64) (*matrix.Dense, error) {
	return ApplyDerivative(t, point)
}

func (t *identityTransform) Describe() ParameterGroup {
	return ParameterGroup{
		Name:       "Identity",
		Parameters: []ParameterValue{{Name: "dim", Value: float64(t.dim)}},
	}
}

func (t *identityTransform) String() string { return "Identity(" + strconv.Itoa(t.dim) + ")" }
