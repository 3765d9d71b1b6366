// SPDX-License-Identifier: MIT

package transform

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
)

// Exponential1D is y = scale · base^x.
type Exponential1D struct {
	base, scale float64
	lnBase      float64
	inv         inverseSlot
}

// Logarithmic1D is y = log_base(x) + offset, defined for x > 0.
type Logarithmic1D struct {
	base, offset float64
	lnBase       float64
	inv          inverseSlot
}

var (
	_ Transform     = (*Exponential1D)(nil)
	_ Transform     = (*Logarithmic1D)(nil)
	_ concatenator  = (*Exponential1D)(nil)
	_ concatenator  = (*Logarithmic1D)(nil)
	_ equaler       = (*Exponential1D)(nil)
	_ equaler       = (*Logarithmic1D)(nil)
	_ inverseLinker = (*Exponential1D)(nil)
	_ inverseLinker = (*Logarithmic1D)(nil)
)

func validBase(base float64) error {
	if !(base > 0) || math.IsInf(base, 0) || base == 1 {
		return errors.Wrapf(ErrInvalidParameter, "base %v", base)
	}

	return nil
}

// NewExponential1D returns y = scale · base^x. A zero scale is the constant
// 0 and comes back as a (noninvertible) linear transform.
//
// Errors:
//   - ErrInvalidParameter for base <= 0, base == 1, a non-finite base or scale.
func NewExponential1D(base, scale float64) (Transform, error) {
	if err := validBase(base); err != nil {
		return nil, err
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "scale %v", scale)
	}
	if scale == 0 {
		return newLinearFlat(1, 1, []float64{0, 0, 0, 1}), nil
	}

	return &Exponential1D{base: base, scale: scale, lnBase: math.Log(base)}, nil
}

// NewLogarithmic1D returns y = log_base(x) + offset.
//
// Errors:
//   - ErrInvalidParameter for base <= 0, base == 1, a non-finite base or offset.
func NewLogarithmic1D(base, offset float64) (Transform, error) {
	if err := validBase(base); err != nil {
		return nil, err
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "offset %v", offset)
	}

	return &Logarithmic1D{base: base, offset: offset, lnBase: math.Log(base)}, nil
}

// linear1D returns (a, b) of y = a·x + b when l is a 1-D affine transform.
func linear1D(t Transform) (a, b float64, ok bool) {
	l, isLinear := t.(LinearTransform)
	if !isLinear || l.SourceDimensions() != 1 || l.TargetDimensions() != 1 {
		return 0, 0, false
	}
	m := l.Matrix().Flat()
	if m[2] != 0 || m[3] != 1 {
		return 0, 0, false
	}

	return m[0], m[1], true
}

// ---------- Exponential1D ----------

func (t *Exponential1D) SourceDimensions() int { return 1 }
func (t *Exponential1D) TargetDimensions() int { return 1 }
func (t *Exponential1D) IsIdentity() bool      { return false }

// Base returns the exponential base.
func (t *Exponential1D) Base() float64 { return t.base }

// Scale returns the multiplier applied to base^x.
func (t *Exponential1D) Scale() float64 { return t.scale }

func (t *Exponential1D) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkApply(1, 1, src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	y := t.scale * math.Pow(t.base, src[srcOff])
	if dst != nil {
		dst[dstOff] = y
	}
	if !derivate {
		return nil, nil
	}

	return matrix.NewDenseFrom(1, 1, []float64{y * t.lnBase})
}

func (t *Exponential1D) TransformPoint(src, dst []float64) ([]float64, error) {
	return ApplyPoint(t, src, dst)
}

func (t *Exponential1D) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return ApplyEach(t, src, srcOff, dst, dstOff, numPts)
}

func (t *Exponential1D) Derivative(point []float64) (*matrix.Dense, error) {
	return ApplyDerivative(t, point)
}

// Inverse is log_base(y) - log_base(scale); a negative scale first divides by scale.
func (t *Exponential1D) Inverse() (Transform, error) {
	return t.inv.resolve(t, func() (Transform, error) {
		if t.scale > 0 {
			return &Logarithmic1D{base: t.base, offset: -math.Log(t.scale) / t.lnBase, lnBase: t.lnBase}, nil
		}
		o := defaultOptions()
		return concatenate(newLinearFlat(1, 1, []float64{1 / t.scale, 0, 0, 1}),
			&Logarithmic1D{base: t.base, lnBase: t.lnBase}, &o)
	})
}

func (t *Exponential1D) linkInverse(origin Transform) { t.inv.link(origin) }
func (t *Exponential1D) peekInverse() Transform        { return t.inv.peek() }

// concatenateWith folds a following logarithm into a linear map and a
// following pure scale into the exponential's scale.
//
//	log_c(s·b^x) + k = x·ln(b)/ln(c) + ln(s)/ln(c) + k     (s > 0)
func (t *Exponential1D) concatenateWith(next Transform, _ *Options) (Transform, bool, error) {
	switch n := next.(type) {
	case *Logarithmic1D:
		if t.scale <= 0 {
			return nil, false, nil
		}
		a := t.lnBase / n.lnBase
		b := math.Log(t.scale)/n.lnBase + n.offset
		if t.base == n.base {
			a = 1
		}
		return newLinearFlat(1, 1, []float64{a, b, 0, 1}), true, nil
	}
	if a, b, ok := linear1D(next); ok && b == 0 && a != 0 {
		return &Exponential1D{base: t.base, scale: a * t.scale, lnBase: t.lnBase}, true, nil
	}

	return nil, false, nil
}

func (t *Exponential1D) equalTo(other Transform) bool {
	o, ok := other.(*Exponential1D)
	return ok && o.base == t.base && o.scale == t.scale
}

func (t *Exponential1D) Describe() ParameterGroup {
	return ParameterGroup{Name: "Exponential", Parameters: []ParameterValue{
		{Name: "base", Value: t.base},
		{Name: "scale", Value: t.scale},
	}}
}

func (t *Exponential1D) String() string {
	return strconv.FormatFloat(t.scale, 'g', -1, 64) + "·" + strconv.FormatFloat(t.base, 'g', -1, 64) + "^x"
}

// ---------- Logarithmic1D ----------

func (t *Logarithmic1D) SourceDimensions() int { return 1 }
func (t *Logarithmic1D) TargetDimensions() int { return 1 }
func (t *Logarithmic1D) IsIdentity() bool      { return false }

// Base returns the logarithm base.
func (t *Logarithmic1D) Base() float64 { return t.base }

// Offset returns the constant added to log_base(x).
func (t *Logarithmic1D) Offset() float64 { return t.offset }

// Apply fails with ErrOutOfDomain for x <= 0; NaN maps to NaN.
func (t *Logarithmic1D) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkApply(1, 1, src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	x := src[srcOff]
	if x <= 0 {
		return nil, errors.Wrapf(ErrOutOfDomain, "logarithm of %v", x)
	}
	if dst != nil {
		dst[dstOff] = math.Log(x)/t.lnBase + t.offset
	}
	if !derivate {
		return nil, nil
	}

	return matrix.NewDenseFrom(1, 1, []float64{1 / (x * t.lnBase)})
}

func (t *Logarithmic1D) TransformPoint(src, dst []float64) ([]float64, error) {
	return ApplyPoint(t, src, dst)
}

func (t *Logarithmic1D) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return ApplyEach(t, src, srcOff, dst, dstOff, numPts)
}

func (t *Logarithmic1D) Derivative(point []float64) (*matrix.Dense, error) {
	return ApplyDerivative(t, point)
}

// Inverse is base^(-offset) · base^y.
func (t *Logarithmic1D) Inverse() (Transform, error) {
	return t.inv.resolve(t, func() (Transform, error) {
		return &Exponential1D{base: t.base, scale: math.Pow(t.base, -t.offset), lnBase: t.lnBase}, nil
	})
}

func (t *Logarithmic1D) linkInverse(origin Transform) { t.inv.link(origin) }
func (t *Logarithmic1D) peekInverse() Transform        { return t.inv.peek() }

// concatenateWith folds a following translation into the offset.
func (t *Logarithmic1D) concatenateWith(next Transform, _ *Options) (Transform, bool, error) {
	if a, b, ok := linear1D(next); ok && a == 1 {
		return &Logarithmic1D{base: t.base, offset: t.offset + b, lnBase: t.lnBase}, true, nil
	}

	return nil, false, nil
}

func (t *Logarithmic1D) equalTo(other Transform) bool {
	o, ok := other.(*Logarithmic1D)
	return ok && o.base == t.base && o.offset == t.offset
}

func (t *Logarithmic1D) Describe() ParameterGroup {
	return ParameterGroup{Name: "Logarithmic", Parameters: []ParameterValue{
		{Name: "base", Value: t.base},
		{Name: "offset", Value: t.offset},
	}}
}

func (t *Logarithmic1D) String() string {
	return "log_" + strconv.FormatFloat(t.base, 'g', -1, 64) + "(x)+" + strconv.FormatFloat(t.offset, 'g', -1, 64)
}
