// SPDX-License-Identifier: MIT

package transform

import (
	"math"
	"strconv"

	"github.com/katalvlaran/geoxform/matrix"
)

// Affine2D is the 2→2 affine map
//
//	x' = m00·x + m01·y + m02
//	y' = m10·x + m11·y + m12
//
// stored as six coefficients. It is substitutable for any LinearTransform.
type Affine2D struct {
	m00, m01, m02 float64
	m10, m11, m12 float64
	embed         *embedding
	inv           inverseSlot
}

var (
	_ LinearTransform = (*Affine2D)(nil)
	_ Transform2D     = (*Affine2D)(nil)
	_ Describer       = (*Affine2D)(nil)
	_ inversePeeker   = (*Affine2D)(nil)
	_ inverseLinker   = (*Affine2D)(nil)
)

// NewAffine2D returns the affine map with the given coefficients.
func NewAffine2D(m00, m01, m02, m10, m11, m12 float64) *Affine2D {
	return newAffine2D(m00, m01, m02, m10, m11, m12)
}

func newAffine2D(m00, m01, m02, m10, m11, m12 float64) *Affine2D {
	return &Affine2D{m00: m00, m01: m01, m02: m02, m10: m10, m11: m11, m12: m12}
}

// Translate2D returns (x+tx, y+ty).
func Translate2D(tx, ty float64) *Affine2D { return newAffine2D(1, 0, tx, 0, 1, ty) }

// Scale2D returns (sx·x, sy·y).
func Scale2D(sx, sy float64) *Affine2D { return newAffine2D(sx, 0, 0, 0, sy, 0) }

// Rotate2D returns the counter-clockwise rotation by theta radians about the origin.
// Quarter turns produce exact 0/±1 coefficients.
func Rotate2D(theta float64) *Affine2D {
	sin, cos := sinCos(theta)
	return newAffine2D(cos, -sin, 0, sin, cos, 0)
}

// sinCos snaps multiples of π/2 to exact values.
func sinCos(theta float64) (float64, float64) {
	q := theta / (math.Pi / 2)
	if r := math.Round(q); q == r {
		switch int(math.Mod(r, 4)+4) % 4 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		default:
			return -1, 0
		}
	}

	return math.Sincos(theta)
}

// Coefficients returns {m00, m01, m02, m10, m11, m12}.
func (t *Affine2D) Coefficients() [6]float64 {
	return [6]float64{t.m00, t.m01, t.m02, t.m10, t.m11, t.m12}
}

func (t *Affine2D) SourceDimensions() int { return 2 }
func (t *Affine2D) TargetDimensions() int { return 2 }

func (t *Affine2D) IsIdentity() bool {
	return t.m00 == 1 && t.m01 == 0 && t.m02 == 0 &&
		t.m10 == 0 && t.m11 == 1 && t.m12 == 0
}

// Matrix returns the 3×3 homogeneous matrix.
func (t *Affine2D) Matrix() *matrix.Dense {
	m, _ := matrix.NewDenseFrom(3, 3, []float64{
		t.m00, t.m01, t.m02,
		t.m10, t.m11, t.m12,
		0, 0, 1,
	})

	return m
}

// lin is a·x + b·y + c with zero terms skipped, so a NaN in an ordinate
// that does not contribute stays out of the result, and a row that only
// copies an ordinate keeps its sign (-0 stays -0).
func lin(a, x, b, y, c float64) float64 {
	var s float64
	switch {
	case a != 0 && b != 0:
		s = a*x + b*y
	case a != 0:
		s = a * x
	case b != 0:
		s = b * y
	}
	if c != 0 {
		s += c
	}

	return s
}

// Transform2 maps (x, y). It never fails.
func (t *Affine2D) Transform2(x, y float64) (float64, float64, error) {
	return lin(t.m00, x, t.m01, y, t.m02), lin(t.m10, x, t.m11, y, t.m12), nil
}

func (t *Affine2D) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkApply(2, 2, src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	x, y := src[srcOff], src[srcOff+1]
	if dst != nil {
		dst[dstOff] = lin(t.m00, x, t.m01, y, t.m02)
		dst[dstOff+1] = lin(t.m10, x, t.m11, y, t.m12)
	}
	if !derivate {
		return nil, nil
	}

	return t.jacobian(), nil
}

func (t *Affine2D) jacobian() *matrix.Dense {
	d, _ := matrix.NewDenseFrom(2, 2, []float64{t.m00, t.m01, t.m10, t.m11})
	return d
}

func (t *Affine2D) TransformPoint(src, dst []float64) ([]float64, error) {
	return ApplyPoint(t, src, dst)
}

// TransformBuffer is the bulk fast path. With equal source and target
// dimensions the strategy is always Ascending or Descending, and each point
// is read into registers before it is written.
func (t *Affine2D) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if err := checkBuffers(src, srcOff, 2, dst, dstOff, 2, numPts); err != nil {
		return transformErrorf(opTransformBuf, err)
	}
	var (
		i, s, d int
		x, y    float64
	)
	if strategyFor(src, srcOff, 2, dst, dstOff, 2, numPts) == Descending {
		for i = numPts - 1; i >= 0; i-- {
			s, d = srcOff+2*i, dstOff+2*i
			x, y = src[s], src[s+1]
			dst[d] = lin(t.m00, x, t.m01, y, t.m02)
			dst[d+1] = lin(t.m10, x, t.m11, y, t.m12)
		}
		return nil
	}
	for i = 0; i < numPts; i++ {
		s, d = srcOff+2*i, dstOff+2*i
		x, y = src[s], src[s+1]
		dst[d] = lin(t.m00, x, t.m01, y, t.m02)
		dst[d+1] = lin(t.m10, x, t.m11, y, t.m12)
	}

	return nil
}

// Derivative is the constant 2×2 linear part.
func (t *Affine2D) Derivative(point []float64) (*matrix.Dense, error) {
	return ApplyDerivative(t, point)
}

// Inverse uses the closed form; a zero determinant is ErrNoninvertible.
func (t *Affine2D) Inverse() (Transform, error) {
	return t.inv.resolve(t, func() (Transform, error) {
		det := t.m00*t.m11 - t.m01*t.m10
		if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
			return nil, noninvertible(matrix.ErrSingular)
		}
		a, b := t.m11/det, -t.m01/det
		c, d := -t.m10/det, t.m00/det

		return newAffine2D(a, b, -(a*t.m02 + b*t.m12), c, d, -(c*t.m02 + d*t.m12)), nil
	})
}

func (t *Affine2D) peekInverse() Transform        { return t.inv.peek() }
func (t *Affine2D) linkInverse(origin Transform) { t.inv.link(origin) }

// times returns "o then t" (matrix T×O), normalised through newLinearFlat
// so that a product equal to the identity becomes Identity(2).
func (t *Affine2D) times(o *Affine2D) LinearTransform {
	elt := []float64{
		t.m00*o.m00 + t.m01*o.m10, t.m00*o.m01 + t.m01*o.m11, t.m00*o.m02 + t.m01*o.m12 + t.m02,
		t.m10*o.m00 + t.m11*o.m10, t.m10*o.m01 + t.m11*o.m11, t.m10*o.m02 + t.m11*o.m12 + t.m12,
		0, 0, 1,
	}

	return newLinearFlat(2, 2, elt)
}

func (t *Affine2D) Describe() ParameterGroup {
	elt := t.Matrix().Flat()
	return ParameterGroup{Name: "Affine", Parameters: matrixParameters(3, 3, elt)}
}

func (t *Affine2D) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return "Affine2D[" + f(t.m00) + " " + f(t.m01) + " " + f(t.m02) + "; " +
		f(t.m10) + " " + f(t.m11) + " " + f(t.m12) + "]"
}
