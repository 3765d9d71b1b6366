// SPDX-License-Identifier: MIT

// Package transform - pass-through wrapping of a lower-dimensional transform.
//
// Purpose:
//   - PassThrough(first, sub, trailing) applies sub to ordinates
//     [first, first+sub.SourceDimensions()) of every tuple and copies the
//     leading and trailing ordinates unchanged.
//
// Construction rules (first match wins):
//  1. Negative first/trailing → ErrNegativeOrdinate.
//  2. first == 0 && trailing == 0 → sub itself (same reference).
//  3. Affine sub → the block matrix with identity fringes (a LinearTransform),
//     so later linear products can absorb it.
//  4. Pass-through sub → one pass-through with the fringes added up.
//  5. Otherwise → *PassThroughTransform.
//
// AI-Hints:
//   - A projective sub is NOT embedded: its perspective divide would leak
//     into the fringe ordinates.
//   - Each point is snapshotted before anything is written, so the fringe
//     copies are overlap-safe under every iteration order.
package transform

import (
	"log/slog"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
)

// embedding remembers the pass-through that produced an embedded affine
// matrix, so that a dimension filter can hand back the original sub.
type embedding struct {
	first, trailing int
	sub             LinearTransform
}

// PassThrough wraps sub so that it acts on a contiguous ordinate range.
//
// Errors:
//   - ErrNilTransform if sub is nil.
//   - ErrNegativeOrdinate if firstAffected or numTrailing is negative.
func PassThrough(firstAffected int, sub Transform, numTrailing int, opts ...Option) (Transform, error) {
	o := gatherOptions(opts...)
	return passThrough(firstAffected, sub, numTrailing, &o)
}

func passThrough(first int, sub Transform, trailing int, o *Options) (Transform, error) {
	if sub == nil {
		return nil, transformErrorf(opPassThrough, ErrNilTransform)
	}
	if first < 0 || trailing < 0 {
		return nil, transformErrorf(opPassThrough, errors.Wrapf(ErrNegativeOrdinate,
			"firstAffectedOrdinate=%d numTrailingOrdinates=%d", first, trailing))
	}
	trace := func(branch string) {
		o.logger.Debug("pass-through",
			slog.String("branch", branch),
			slog.Int("first", first),
			slog.Int("trailing", trailing))
	}
	if first == 0 && trailing == 0 {
		trace("elided")
		return sub, nil
	}
	if l, ok := sub.(LinearTransform); ok && isAffineLinear(l) {
		trace("embedded")
		lt := embedAffine(first, l, trailing)
		rememberEmbedding(lt, &embedding{first: first, trailing: trailing, sub: l})
		return lt, nil
	}
	if p, ok := sub.(*PassThroughTransform); ok {
		trace("merged")
		return passThrough(first+p.first, p.sub, trailing+p.trailing, o)
	}
	trace("generic")

	return &PassThroughTransform{first: first, sub: sub, trailing: trailing}, nil
}

// isAffineLinear reports whether l has no perspective divide.
func isAffineLinear(l LinearTransform) bool {
	switch v := l.(type) {
	case *identityTransform, *Affine2D:
		return true
	case *Affine:
		return v.affine
	}

	return matrix.IsAffine(l.Matrix())
}

// rememberEmbedding records e on the embedded result when it can hold it.
// An identity result needs nothing: Identity(n) is interned.
func rememberEmbedding(lt LinearTransform, e *embedding) {
	switch v := lt.(type) {
	case *Affine:
		v.embed = e
	case *Affine2D:
		v.embed = e
	}
}

// PassThroughTransform applies a sub-transform to an ordinate range.
type PassThroughTransform struct {
	first, trailing int
	sub             Transform
	inv             inverseSlot
}

var (
	_ Transform     = (*PassThroughTransform)(nil)
	_ Describer     = (*PassThroughTransform)(nil)
	_ inversePeeker = (*PassThroughTransform)(nil)
	_ inverseLinker = (*PassThroughTransform)(nil)
)

// FirstAffectedOrdinate is the index of the first ordinate given to the sub-transform.
func (t *PassThroughTransform) FirstAffectedOrdinate() int { return t.first }

// NumTrailingOrdinates is the number of ordinates copied after the affected range.
func (t *PassThroughTransform) NumTrailingOrdinates() int { return t.trailing }

// SubTransform returns the wrapped transform.
func (t *PassThroughTransform) SubTransform() Transform { return t.sub }

// ModifiedCoordinates returns the source ordinates seen by the sub-transform.
func (t *PassThroughTransform) ModifiedCoordinates() []int {
	n := t.sub.SourceDimensions()
	dims := make([]int, n)
	for i := range dims {
		dims[i] = t.first + i
	}

	return dims
}

func (t *PassThroughTransform) SourceDimensions() int {
	return t.first + t.sub.SourceDimensions() + t.trailing
}

func (t *PassThroughTransform) TargetDimensions() int {
	return t.first + t.sub.TargetDimensions() + t.trailing
}

// IsIdentity defers to the sub-transform.
func (t *PassThroughTransform) IsIdentity() bool { return t.sub.IsIdentity() }

// transformInto maps the snapshot in into out (full tuples, no aliasing).
func (t *PassThroughTransform) transformInto(in, out []float64, derivate bool) (*matrix.Dense, error) {
	subSrc, subTgt := t.sub.SourceDimensions(), t.sub.TargetDimensions()
	copy(out[:t.first], in[:t.first])
	d, err := t.sub.Apply(in, t.first, out, t.first, derivate)
	if err != nil {
		return nil, err
	}
	copy(out[t.first+subTgt:], in[t.first+subSrc:])

	return d, nil
}

func (t *PassThroughTransform) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	srcDim, tgtDim := t.SourceDimensions(), t.TargetDimensions()
	if err := checkApply(srcDim, tgtDim, src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	var inBuf, outBuf tuple
	in := scratch(&inBuf, srcDim)
	copy(in, src[srcOff:srcOff+srcDim])

	var (
		sd  *matrix.Dense
		err error
	)
	if dst != nil {
		out := scratch(&outBuf, tgtDim)
		if sd, err = t.transformInto(in, out, derivate); err != nil {
			return nil, err
		}
		copy(dst[dstOff:], out)
	} else if sd, err = t.sub.Apply(in, t.first, nil, 0, derivate); err != nil {
		return nil, err
	}
	if !derivate {
		return nil, nil
	}

	return t.blockDerivative(sd)
}

// blockDerivative embeds the sub Jacobian between identity fringes; the
// off-diagonal blocks stay zero.
func (t *PassThroughTransform) blockDerivative(sd *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(sd); err != nil {
		return nil, transformErrorf(opDerivative, err)
	}
	srcDim, tgtDim := t.SourceDimensions(), t.TargetDimensions()
	subSrc, subTgt := t.sub.SourceDimensions(), t.sub.TargetDimensions()
	jac := make([]float64, tgtDim*srcDim)
	var i, j int
	for i = 0; i < t.first; i++ {
		jac[i*srcDim+i] = 1
	}
	sub := sd.Flat()
	for i = 0; i < subTgt; i++ {
		for j = 0; j < subSrc; j++ {
			jac[(t.first+i)*srcDim+t.first+j] = sub[i*subSrc+j]
		}
	}
	for i = 0; i < t.trailing; i++ {
		jac[(t.first+subTgt+i)*srcDim+t.first+subSrc+i] = 1
	}

	return matrix.NewDenseFrom(tgtDim, srcDim, jac)
}

func (t *PassThroughTransform) TransformPoint(src, dst []float64) ([]float64, error) {
	return ApplyPoint(t, src, dst)
}

// TransformBuffer snapshots each full tuple (fringes included) before
// writing, in the order Suggest picks for the whole tuples.
func (t *PassThroughTransform) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	srcDim, tgtDim := t.SourceDimensions(), t.TargetDimensions()
	if err := checkBuffers(src, srcOff, srcDim, dst, dstOff, tgtDim, numPts); err != nil {
		return transformErrorf(opTransformBuf, err)
	}
	in := make([]float64, srcDim)
	out := make([]float64, tgtDim)

	return iterate(src, srcOff, srcDim, dst, dstOff, tgtDim, numPts,
		func(s []float64, so int, d []float64, do int) error {
			copy(in, s[so:so+srcDim])
			if _, err := t.transformInto(in, out, false); err != nil {
				return err
			}
			copy(d[do:], out)
			return nil
		})
}

func (t *PassThroughTransform) Derivative(point []float64) (*matrix.Dense, error) {
	return ApplyDerivative(t, point)
}

// Inverse wraps the sub-transform's inverse with the same fringes.
func (t *PassThroughTransform) Inverse() (Transform, error) {
	return t.inv.resolve(t, func() (Transform, error) {
		si, err := t.sub.Inverse()
		if err != nil {
			return nil, err
		}
		o := defaultOptions()
		return passThrough(t.first, si, t.trailing, &o)
	})
}

func (t *PassThroughTransform) peekInverse() Transform        { return t.inv.peek() }
func (t *PassThroughTransform) linkInverse(origin Transform) { t.inv.link(origin) }

func (t *PassThroughTransform) Describe() ParameterGroup {
	return ParameterGroup{
		Name: "PassThrough",
		Parameters: []ParameterValue{
			{Name: "first_affected_ordinate", Value: float64(t.first)},
			{Name: "num_trailing_ordinates", Value: float64(t.trailing)},
		},
		Steps: []ParameterGroup{Describe(t.sub)},
	}
}

func (t *PassThroughTransform) String() string {
	return "PassThrough(" + strconv.Itoa(t.first) + ", " + describeName(t.sub) + ", " + strconv.Itoa(t.trailing) + ")"
}
