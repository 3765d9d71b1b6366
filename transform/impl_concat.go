// SPDX-License-Identifier: MIT

// Package transform - concatenation (sequential composition) of two transforms.
//
// Purpose:
//   - Concatenate(t1, t2) builds "t1 then t2" and picks the cheapest exact
//     representation once, at construction time.
//
// Branches (applied in order, first match wins):
//  1. Identity elision: an identity operand returns the other one unchanged.
//  2. Inverse-pair elision: t2 is the cached inverse of t1 (or vice versa)
//     → Identity(t1.SourceDimensions()).
//  3. Linear product: both LinearTransform → matrix product (NewLinear rules).
//  4. Leaf folding: t1 knows a special form of "t1 then t2" (concatenator).
//  5. Pass-through fusion: two pass-throughs with equal fringes → one
//     pass-through over the concatenated sub-transforms.
//  6. Direct 2D: every dimension is 2 → Concatenated2D, per point through registers.
//  7. Direct: the intermediate dimension equals the overall source or target
//     dimension → per-point pipeline through a per-call scratch tuple.
//  8. Generic: bulk stages through an intermediate buffer of at most
//     WithChunkSize points.
//
// AI-Hints:
//   - Branch selection is logged at Debug level through WithLogger.
//   - Scratch buffers are per call; a constructed concatenation holds no mutable state.
package transform

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
)

// Concatenation branch names used in debug logs.
const (
	branchIdentity    = "identity-elision"
	branchInversePair = "inverse-pair"
	branchLinear      = "linear-product"
	branchFolded      = "leaf-fold"
	branchPassThrough = "pass-through-fusion"
	branchDirect2D    = "direct-2d"
	branchDirect      = "direct"
	branchGeneric     = "generic"
)

// Concatenate returns the transform that applies t1 then t2.
//
// Errors:
//   - ErrNilTransform if either operand is nil.
//   - ErrMismatchedDimension if t1.TargetDimensions() != t2.SourceDimensions().
//
// Complexity:
//   - O(1) for most branches; the linear product is O((n+1)^3) in the matrix size.
func Concatenate(t1, t2 Transform, opts ...Option) (Transform, error) {
	o := gatherOptions(opts...)
	return concatenate(t1, t2, &o)
}

// ConcatenateAll folds ts left to right: ((t0 then t1) then t2) ...
// A single transform is returned unchanged.
func ConcatenateAll(ts ...Transform) (Transform, error) {
	if len(ts) == 0 {
		return nil, transformErrorf(opConcatenate, errors.Wrap(ErrNilTransform, "no transforms"))
	}
	o := defaultOptions()
	acc := ts[0]
	if acc == nil {
		return nil, transformErrorf(opConcatenate, ErrNilTransform)
	}
	for i := 1; i < len(ts); i++ {
		next, err := concatenate(acc, ts[i], &o)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		acc = next
	}

	return acc, nil
}

func concatenate(t1, t2 Transform, o *Options) (Transform, error) {
	if t1 == nil || t2 == nil {
		return nil, transformErrorf(opConcatenate, ErrNilTransform)
	}
	if t1.TargetDimensions() != t2.SourceDimensions() {
		return nil, transformErrorf(opConcatenate, errors.Wrapf(ErrMismatchedDimension,
			"first target %d != second source %d", t1.TargetDimensions(), t2.SourceDimensions()))
	}
	trace := func(branch string) {
		o.logger.Debug("concatenate",
			slog.String("branch", branch),
			slog.Int("source", t1.SourceDimensions()),
			slog.Int("intermediate", t1.TargetDimensions()),
			slog.Int("target", t2.TargetDimensions()))
	}

	if t1.IsIdentity() {
		trace(branchIdentity)
		return t2, nil
	}
	if t2.IsIdentity() {
		trace(branchIdentity)
		return t1, nil
	}
	if areInverse(t1, t2) {
		trace(branchInversePair)
		return Identity(t1.SourceDimensions()), nil
	}

	if l1, ok := t1.(LinearTransform); ok {
		if l2, ok := t2.(LinearTransform); ok {
			trace(branchLinear)
			lt, err := linearProduct(l1, l2)
			if err != nil {
				return nil, transformErrorf(opConcatenate, err)
			}
			return lt, nil
		}
	}

	if c, ok := t1.(concatenator); ok {
		res, ok, err := c.concatenateWith(t2, o)
		if err != nil {
			return nil, transformErrorf(opConcatenate, err)
		}
		if ok {
			trace(branchFolded)
			return res, nil
		}
	}

	if p1, ok := t1.(*PassThroughTransform); ok {
		if p2, ok := t2.(*PassThroughTransform); ok && p1.first == p2.first && p1.trailing == p2.trailing {
			trace(branchPassThrough)
			sub, err := concatenate(p1.sub, p2.sub, o)
			if err != nil {
				return nil, err
			}
			return passThrough(p1.first, sub, p1.trailing, o)
		}
	}

	if t1.SourceDimensions() == 2 && t1.TargetDimensions() == 2 && t2.TargetDimensions() == 2 {
		trace(branchDirect2D)
		c := &Concatenated2D{}
		c.first, c.second, c.chunk, c.direct = t1, t2, o.chunkSize, true
		c.f2, _ = t1.(Transform2D)
		c.s2, _ = t2.(Transform2D)
		return c, nil
	}
	mid := t1.TargetDimensions()
	direct := mid == t1.SourceDimensions() || mid == t2.TargetDimensions()
	if direct {
		trace(branchDirect)
	} else {
		trace(branchGeneric)
	}

	return &ConcatenatedTransform{first: t1, second: t2, direct: direct, chunk: o.chunkSize}, nil
}

// areInverse reports whether one operand is the already-cached inverse of the other.
func areInverse(t1, t2 Transform) bool {
	if p, ok := t1.(inversePeeker); ok && same(p.peekInverse(), t2) {
		return true
	}
	if p, ok := t2.(inversePeeker); ok && same(p.peekInverse(), t1) {
		return true
	}

	return false
}

// ConcatenatedTransform applies First() then Second().
type ConcatenatedTransform struct {
	first, second Transform
	direct        bool // per-point pipeline instead of chunked bulk stages
	chunk         int
	inv           inverseSlot
}

var (
	_ Transform     = (*ConcatenatedTransform)(nil)
	_ Describer     = (*ConcatenatedTransform)(nil)
	_ inversePeeker = (*ConcatenatedTransform)(nil)
	_ inverseLinker = (*ConcatenatedTransform)(nil)
)

// First returns the transform applied first.
func (t *ConcatenatedTransform) First() Transform { return t.first }

// Second returns the transform applied to the output of First.
func (t *ConcatenatedTransform) Second() Transform { return t.second }

func (t *ConcatenatedTransform) SourceDimensions() int { return t.first.SourceDimensions() }
func (t *ConcatenatedTransform) TargetDimensions() int { return t.second.TargetDimensions() }

// IsIdentity is false: provable identities are elided by Concatenate.
func (t *ConcatenatedTransform) IsIdentity() bool { return false }

// Apply pipes one point through both transforms; with derivate the
// Jacobian follows the chain rule J = J2(first(p)) · J1(p).
func (t *ConcatenatedTransform) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkApply(t.SourceDimensions(), t.TargetDimensions(), src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	var buf tuple
	mid := scratch(&buf, t.first.TargetDimensions())
	d1, err := t.first.Apply(src, srcOff, mid, 0, derivate)
	if err != nil {
		return nil, err
	}
	d2, err := t.second.Apply(mid, 0, dst, dstOff, derivate)
	if err != nil {
		return nil, err
	}
	if !derivate {
		return nil, nil
	}
	d, err := matrix.Mul(d2, d1)
	if err != nil {
		return nil, transformErrorf(opDerivative, err)
	}

	return d, nil
}

func (t *ConcatenatedTransform) TransformPoint(src, dst []float64) ([]float64, error) {
	return ApplyPoint(t, src, dst)
}

func (t *ConcatenatedTransform) Derivative(point []float64) (*matrix.Dense, error) {
	return ApplyDerivative(t, point)
}

// TransformBuffer runs the direct per-point pipeline or the chunked bulk
// stages, depending on the branch chosen at construction.
func (t *ConcatenatedTransform) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	srcDim, dstDim := t.SourceDimensions(), t.TargetDimensions()
	if err := checkBuffers(src, srcOff, srcDim, dst, dstOff, dstDim, numPts); err != nil {
		return transformErrorf(opTransformBuf, err)
	}
	if !t.direct {
		return t.chunked(src, srcOff, dst, dstOff, numPts)
	}
	mid := make([]float64, t.first.TargetDimensions())

	return iterate(src, srcOff, srcDim, dst, dstOff, dstDim, numPts,
		func(s []float64, so int, d []float64, do int) error {
			if _, err := t.first.Apply(s, so, mid, 0, false); err != nil {
				return err
			}
			_, err := t.second.Apply(mid, 0, d, do, false)
			return err
		})
}

// chunked transforms the points in batches: first stage into an intermediate
// buffer, second stage into dst.
//
// Implementation:
//   - Stage 1: choose an overlap-safe order for whole batches (a batch reads
//     all of its sources before writing any of its targets, so the per-point
//     Ascending/Descending argument carries over to batches).
//   - Stage 2: BufferSource snapshots the source; BufferTarget runs the whole
//     call into a temporary target and copies the completed prefix out.
//   - Stage 3: on a first-stage failure at point k of a batch, the k points
//     already in the intermediate buffer are finished before reporting k.
func (t *ConcatenatedTransform) chunked(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if numPts == 0 {
		return nil
	}
	a, m, b := t.SourceDimensions(), t.first.TargetDimensions(), t.TargetDimensions()
	descending := false
	switch strategyFor(src, srcOff, a, dst, dstOff, b, numPts) {
	case Descending:
		descending = true
	case BufferSource:
		tmp := make([]float64, numPts*a)
		copy(tmp, src[srcOff:srcOff+numPts*a])
		src, srcOff = tmp, 0
	case BufferTarget:
		tmp := make([]float64, numPts*b)
		err := t.chunked(src, srcOff, tmp, 0, numPts)
		done := numPts
		if err != nil {
			var pe *PointError
			if !errors.As(err, &pe) {
				return err
			}
			done = pe.Index
		}
		copy(dst[dstOff:], tmp[:done*b])
		return err
	}

	size := min(t.chunk, numPts)
	mid := make([]float64, size*m)
	batch := func(lo, cnt int) error {
		if err := t.first.TransformBuffer(src, srcOff+lo*a, mid, 0, cnt); err != nil {
			k, cause, ok := splitPointError(err)
			if !ok {
				return err
			}
			if k > 0 {
				if err2 := t.second.TransformBuffer(mid, 0, dst, dstOff+lo*b, k); err2 != nil {
					return shiftPointError(err2, lo)
				}
			}
			return newPointError(lo+k, cause)
		}
		if err := t.second.TransformBuffer(mid, 0, dst, dstOff+lo*b, cnt); err != nil {
			return shiftPointError(err, lo)
		}
		return nil
	}

	if descending {
		for hi := numPts; hi > 0; hi -= size {
			lo := max(0, hi-size)
			if err := batch(lo, hi-lo); err != nil {
				return err
			}
		}
		return nil
	}
	for lo := 0; lo < numPts; lo += size {
		if err := batch(lo, min(size, numPts-lo)); err != nil {
			return err
		}
	}

	return nil
}

// splitPointError extracts the index and cause of a *PointError.
func splitPointError(err error) (int, error, bool) {
	var pe *PointError
	if errors.As(err, &pe) {
		return pe.Index, pe.Err, true
	}

	return 0, err, false
}

// shiftPointError rebases a batch-local point index.
func shiftPointError(err error, base int) error {
	if k, cause, ok := splitPointError(err); ok {
		return newPointError(base+k, cause)
	}

	return err
}

// Inverse is Concatenate(second⁻¹, first⁻¹). Fails with ErrNoninvertible
// when either part has no inverse.
func (t *ConcatenatedTransform) Inverse() (Transform, error) {
	return t.inv.resolve(t, t.computeInverse)
}

func (t *ConcatenatedTransform) computeInverse() (Transform, error) {
	i1, err := t.first.Inverse()
	if err != nil {
		return nil, err
	}
	i2, err := t.second.Inverse()
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	o.chunkSize = t.chunk

	return concatenate(i2, i1, &o)
}

func (t *ConcatenatedTransform) peekInverse() Transform        { return t.inv.peek() }
func (t *ConcatenatedTransform) linkInverse(origin Transform) { t.inv.link(origin) }

// Describe lists the steps of the chain, nested concatenations flattened.
func (t *ConcatenatedTransform) Describe() ParameterGroup {
	g := ParameterGroup{Name: "Concatenated"}
	for _, part := range [2]Transform{t.first, t.second} {
		d := Describe(part)
		if d.Name == g.Name {
			g.Steps = append(g.Steps, d.Steps...)
			continue
		}
		g.Steps = append(g.Steps, d)
	}

	return g
}

func (t *ConcatenatedTransform) String() string {
	return "Concatenated(" + describeName(t.first) + " → " + describeName(t.second) + ")"
}

// Concatenated2D is a 2→2→2 concatenation. It pipes each point through both
// steps in registers; steps that offer Transform2D are called through it.
type Concatenated2D struct {
	ConcatenatedTransform
	f2, s2 Transform2D // nil when the step lacks the capability
}

var (
	_ Transform2D   = (*Concatenated2D)(nil)
	_ inversePeeker = (*Concatenated2D)(nil)
	_ inverseLinker = (*Concatenated2D)(nil)
)

func step2(t Transform, t2 Transform2D, x, y float64) (float64, float64, error) {
	if t2 != nil {
		return t2.Transform2(x, y)
	}
	var p [2]float64
	p[0], p[1] = x, y
	if _, err := t.Apply(p[:], 0, p[:], 0, false); err != nil {
		return 0, 0, err
	}

	return p[0], p[1], nil
}

// Transform2 maps (x, y) through both steps.
func (t *Concatenated2D) Transform2(x, y float64) (float64, float64, error) {
	x, y, err := step2(t.first, t.f2, x, y)
	if err != nil {
		return 0, 0, err
	}

	return step2(t.second, t.s2, x, y)
}

// TransformBuffer walks the points in the only two orders equal
// dimensions ever need.
func (t *Concatenated2D) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	if err := checkBuffers(src, srcOff, 2, dst, dstOff, 2, numPts); err != nil {
		return transformErrorf(opTransformBuf, err)
	}

	return iterate(src, srcOff, 2, dst, dstOff, 2, numPts,
		func(s []float64, so int, d []float64, do int) error {
			x, y, err := t.Transform2(s[so], s[so+1])
			if err != nil {
				return err
			}
			d[do], d[do+1] = x, y
			return nil
		})
}

// Inverse is resolved against the 2D wrapper so that the back-link points at it.
func (t *Concatenated2D) Inverse() (Transform, error) {
	return t.inv.resolve(t, t.computeInverse)
}
