// SPDX-License-Identifier: MIT

// Package transform - DimensionFilter: extract the part of a transform that
// acts on a subset of source dimensions.
//
// Purpose:
//   - The algebraic inverse of PassThrough: separating a pass-through over
//     exactly its affected range hands back the wrapped sub-transform.
//
// Recognised shapes:
//   - Identity and full selections → returned as is.
//   - Linear: the rows that depend only on selected columns (constant rows
//     included); the perspective row must not depend on the others.
//     Embedded pass-through matrices return their original sub by reference.
//   - PassThrough: fringe-only selections → Identity; selections covering
//     the affected range → fewer fringes; partial overlap → recurse into sub.
//   - Concatenation: separate the first step, then the second step over the
//     first step's target dimensions.
//
// Anything else is ErrCannotSeparate, an expected and recoverable outcome.
package transform

import (
	"log/slog"
	"slices"

	"github.com/cockroachdb/errors"
)

// concatenation is satisfied by both concatenation variants.
type concatenation interface {
	Transform
	First() Transform
	Second() Transform
}

// DimensionFilter is a reusable builder: add source dimensions, Separate,
// read TargetDimensions, Clear, repeat. It is not safe for concurrent use.
type DimensionFilter struct {
	src  []int // sorted, unique
	tgt  []int // set by the last successful Separate
	opts Options
}

// NewDimensionFilter returns an empty filter. WithLogger traces the
// separation branches.
func NewDimensionFilter(opts ...Option) *DimensionFilter {
	return &DimensionFilter{opts: gatherOptions(opts...)}
}

// AddSourceDimensionRange selects source dimensions lo..hi-1. Ranges
// accumulate across calls.
func (f *DimensionFilter) AddSourceDimensionRange(lo, hi int) error {
	if lo < 0 || hi <= lo {
		return transformErrorf(opFilter, errors.Wrapf(ErrInvalidDimension, "range [%d, %d)", lo, hi))
	}
	for d := lo; d < hi; d++ {
		f.add(d)
	}

	return nil
}

// AddSourceDimensions selects individual source dimensions.
func (f *DimensionFilter) AddSourceDimensions(dims ...int) error {
	for _, d := range dims {
		if d < 0 {
			return transformErrorf(opFilter, errors.Wrapf(ErrInvalidDimension, "dimension %d", d))
		}
	}
	for _, d := range dims {
		f.add(d)
	}

	return nil
}

func (f *DimensionFilter) add(d int) {
	if i, found := slices.BinarySearch(f.src, d); !found {
		f.src = slices.Insert(f.src, i, d)
	}
}

// SourceDimensions returns a copy of the current selection.
func (f *DimensionFilter) SourceDimensions() []int { return slices.Clone(f.src) }

// TargetDimensions returns, after a successful Separate, the target
// dimensions of the original transform produced by the separated one.
func (f *DimensionFilter) TargetDimensions() []int { return slices.Clone(f.tgt) }

// Clear drops the selection and the last result.
func (f *DimensionFilter) Clear() {
	f.src = f.src[:0]
	f.tgt = nil
}

// Separate returns the transform restricted to the selected source dimensions.
// An identity-valued part, such as NewAffine2D(1, 0, 0, 0, 1, 0), comes back
// as the interned Identity(n) rather than the value it was built from.
//
// Errors:
//   - ErrNilTransform, ErrNothingSelected.
//   - ErrInvalidDimension when a selected dimension is >= t.SourceDimensions().
//   - ErrCannotSeparate when no exact decomposition exists.
func (f *DimensionFilter) Separate(t Transform) (Transform, error) {
	f.tgt = nil
	if t == nil {
		return nil, transformErrorf(opSeparate, ErrNilTransform)
	}
	if len(f.src) == 0 {
		return nil, transformErrorf(opSeparate, ErrNothingSelected)
	}
	if last := f.src[len(f.src)-1]; last >= t.SourceDimensions() {
		return nil, transformErrorf(opSeparate, errors.Wrapf(ErrInvalidDimension,
			"dimension %d of a %d-D transform", last, t.SourceDimensions()))
	}
	res, tgt, err := f.separate(t, f.src)
	if err != nil {
		return nil, transformErrorf(opSeparate, err)
	}
	f.tgt = tgt

	return res, nil
}

func (f *DimensionFilter) trace(branch string, t Transform, dims []int) {
	f.opts.logger.Debug("separate",
		slog.String("branch", branch),
		slog.String("transform", describeName(t)),
		slog.Any("dims", dims))
}

// separate is the recursive worker; dims is sorted and in range.
func (f *DimensionFilter) separate(t Transform, dims []int) (Transform, []int, error) {
	if len(dims) == t.SourceDimensions() {
		f.trace("whole", t, dims)
		return t, span(0, t.TargetDimensions()), nil
	}
	if t.IsIdentity() {
		f.trace("identity", t, dims)
		return Identity(len(dims)), slices.Clone(dims), nil
	}
	switch v := t.(type) {
	case *PassThroughTransform:
		return f.separatePassThrough(v, dims)
	case concatenation:
		f.trace("concatenation", t, dims)
		s1, mid, err := f.separate(v.First(), dims)
		if err != nil {
			return nil, nil, err
		}
		s2, tgt, err := f.separate(v.Second(), mid)
		if err != nil {
			return nil, nil, err
		}
		res, err := concatenate(s1, s2, &f.opts)
		if err != nil {
			return nil, nil, err
		}
		return res, tgt, nil
	case LinearTransform:
		if e := embeddingOf(v); e != nil && slices.Equal(dims, span(e.first, e.first+e.sub.SourceDimensions())) {
			f.trace("embedded", t, dims)
			return e.sub, span(e.first, e.first+e.sub.TargetDimensions()), nil
		}
		f.trace("linear", t, dims)
		return separateLinear(v, dims)
	}

	return nil, nil, errors.Wrapf(ErrCannotSeparate, "%s over %v", describeName(t), dims)
}

// separatePassThrough handles the three overlap cases against the affected range.
func (f *DimensionFilter) separatePassThrough(p *PassThroughTransform, dims []int) (Transform, []int, error) {
	subSrc, subTgt := p.sub.SourceDimensions(), p.sub.TargetDimensions()
	lo, hi := p.first, p.first+subSrc
	shift := subTgt - subSrc

	var before, inside, after []int
	for _, d := range dims {
		switch {
		case d < lo:
			before = append(before, d)
		case d < hi:
			inside = append(inside, d-lo)
		default:
			after = append(after, d)
		}
	}
	tgt := slices.Clone(before)

	if len(inside) == 0 {
		f.trace("pass-through-fringe", p, dims)
		for _, d := range after {
			tgt = append(tgt, d+shift)
		}
		return Identity(len(dims)), tgt, nil
	}

	sub, subTargets := p.sub, span(0, subTgt)
	if len(inside) != subSrc {
		f.trace("pass-through-partial", p, dims)
		var err error
		if sub, subTargets, err = f.separate(p.sub, inside); err != nil {
			return nil, nil, err
		}
	} else {
		f.trace("pass-through", p, dims)
	}
	for _, d := range subTargets {
		tgt = append(tgt, lo+d)
	}
	for _, d := range after {
		tgt = append(tgt, d+shift)
	}
	res, err := passThrough(len(before), sub, len(after), &f.opts)
	if err != nil {
		return nil, nil, err
	}

	return res, tgt, nil
}

// separateLinear keeps the matrix rows that depend only on selected columns.
func separateLinear(l LinearTransform, dims []int) (Transform, []int, error) {
	srcDim, tgtDim := l.SourceDimensions(), l.TargetDimensions()
	cols := srcDim + 1
	elt := l.Matrix().Flat()
	selected := make([]bool, srcDim)
	for _, d := range dims {
		selected[d] = true
	}
	independent := func(row int) bool {
		for j := 0; j < srcDim; j++ {
			if !selected[j] && elt[row*cols+j] != 0 {
				return false
			}
		}
		return true
	}
	if !independent(tgtDim) {
		return nil, nil, errors.Wrap(ErrCannotSeparate, "perspective row mixes unselected dimensions")
	}
	var rows []int
	for i := 0; i < tgtDim; i++ {
		if independent(i) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil, nil, errors.Wrapf(ErrCannotSeparate, "no output depends only on %v", dims)
	}

	k, n := len(rows), len(dims)
	out := make([]float64, 0, (k+1)*(n+1))
	for _, r := range append(rows, tgtDim) {
		for _, d := range dims {
			out = append(out, elt[r*cols+d])
		}
		out = append(out, elt[r*cols+srcDim])
	}

	return newLinearFlat(k, n, out), rows, nil
}

// embeddingOf returns the pass-through origin of an embedded affine matrix.
func embeddingOf(l LinearTransform) *embedding {
	switch v := l.(type) {
	case *Affine:
		return v.embed
	case *Affine2D:
		return v.embed
	}

	return nil
}

// span returns lo, lo+1, …, hi-1.
func span(lo, hi int) []int {
	s := make([]int, 0, max(0, hi-lo))
	for d := lo; d < hi; d++ {
		s = append(s, d)
	}

	return s
}
