// SPDX-License-Identifier: MIT

// Package transform: bulk-buffer plumbing shared by every variant.
//
// Purpose:
//   - Validate buffer/offset arguments once per call.
//   - Detect when src and dst share storage (even as different slices of the
//     same array) and translate offsets into a common frame for Suggest.
//   - Drive a per-point kernel in the order Suggest recommends, buffering
//     when neither ascending nor descending order is safe.
package transform

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
)

// pointFunc transforms the single point at src[srcOff:] into dst[dstOff:].
// Implementations read the whole source tuple before writing.
type pointFunc func(src []float64, srcOff int, dst []float64, dstOff int) error

// float64Size is the byte width of one ordinate.
const float64Size = int(unsafe.Sizeof(float64(0)))

// checkBuffers validates a bulk call's layout.
func checkBuffers(src []float64, srcOff, srcDim int, dst []float64, dstOff, dstDim, numPts int) error {
	if srcOff < 0 || dstOff < 0 || numPts < 0 {
		return errors.Wrapf(ErrBufferTooSmall, "negative offset or count (srcOff=%d dstOff=%d numPts=%d)", srcOff, dstOff, numPts)
	}
	if srcOff+numPts*srcDim > len(src) {
		return errors.Wrapf(ErrBufferTooSmall, "source holds %d values, need %d", len(src), srcOff+numPts*srcDim)
	}
	if dstOff+numPts*dstDim > len(dst) {
		return errors.Wrapf(ErrBufferTooSmall, "target holds %d values, need %d", len(dst), dstOff+numPts*dstDim)
	}

	return nil
}

// sharedFrame reports whether src and dst overlap in memory and, if so, the
// element offset of dst[0] relative to src[0]. Only addresses are compared;
// no pointer is ever rebuilt from an integer.
func sharedFrame(src, dst []float64) (shift int, shared bool) {
	if len(src) == 0 || len(dst) == 0 {
		return 0, false
	}
	ps := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	pd := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	endS := ps + uintptr(len(src)*float64Size)
	endD := pd + uintptr(len(dst)*float64Size)
	if endS <= pd || endD <= ps {
		return 0, false
	}
	if pd >= ps {
		return int(pd-ps) / float64Size, true
	}

	return -(int(ps-pd) / float64Size), true
}

// strategyFor maps the slice-relative layout onto Suggest.
func strategyFor(src []float64, srcOff, srcDim int, dst []float64, dstOff, dstDim, numPts int) IterationStrategy {
	shift, shared := sharedFrame(src, dst)
	if !shared {
		return Ascending
	}

	return Suggest(srcOff, srcDim, dstOff+shift, dstDim, numPts)
}

// iterate runs fn over numPts points in an overlap-safe order.
//
// Implementation:
//   - Stage 1: pick the strategy from the shared-storage layout.
//   - Stage 2: Ascending/Descending walk the points in place; BufferSource
//     snapshots the source region; BufferTarget collects results and copies
//     them out (also on failure, for the points already complete).
//
// Errors:
//   - *PointError wrapping the first per-point failure (fail-fast).
//
// Complexity:
//   - Time O(numPts) calls of fn; Space O(numPts·dim) only when buffering.
func iterate(src []float64, srcOff, srcDim int, dst []float64, dstOff, dstDim, numPts int, fn pointFunc) error {
	if numPts == 0 {
		return nil
	}
	var i int
	switch strategyFor(src, srcOff, srcDim, dst, dstOff, dstDim, numPts) {
	case Ascending:
		for i = 0; i < numPts; i++ {
			if err := fn(src, srcOff+i*srcDim, dst, dstOff+i*dstDim); err != nil {
				return newPointError(i, err)
			}
		}
	case Descending:
		for i = numPts - 1; i >= 0; i-- {
			if err := fn(src, srcOff+i*srcDim, dst, dstOff+i*dstDim); err != nil {
				return newPointError(i, err)
			}
		}
	case BufferSource:
		tmp := make([]float64, numPts*srcDim)
		copy(tmp, src[srcOff:])
		for i = 0; i < numPts; i++ {
			if err := fn(tmp, i*srcDim, dst, dstOff+i*dstDim); err != nil {
				return newPointError(i, err)
			}
		}
	case BufferTarget:
		tmp := make([]float64, numPts*dstDim)
		for i = 0; i < numPts; i++ {
			if err := fn(src, srcOff+i*srcDim, tmp, i*dstDim); err != nil {
				copy(dst[dstOff:], tmp[:i*dstDim])
				return newPointError(i, err)
			}
		}
		copy(dst[dstOff:], tmp)
	}

	return nil
}

// newPointError builds a *PointError, flattening a nested one.
func newPointError(index int, err error) error {
	var pe *PointError
	if errors.As(err, &pe) {
		err = pe.Err
	}

	return &PointError{Index: index, Err: err}
}

// ApplyEach is the default TransformBuffer: Apply per point in an
// overlap-safe order. Leaf transforms defined outside this package delegate
// their TransformBuffer to it.
func ApplyEach(t Transform, src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	srcDim, dstDim := t.SourceDimensions(), t.TargetDimensions()
	if err := checkBuffers(src, srcOff, srcDim, dst, dstOff, dstDim, numPts); err != nil {
		return transformErrorf(opTransformBuf, err)
	}

	return iterate(src, srcOff, srcDim, dst, dstOff, dstDim, numPts,
		func(s []float64, so int, d []float64, do int) error {
			_, err := t.Apply(s, so, d, do, false)
			return err
		})
}

// ApplyPoint is the default TransformPoint: it checks the point lengths and
// calls Apply once.
func ApplyPoint(t Transform, src, dst []float64) ([]float64, error) {
	if len(src) != t.SourceDimensions() {
		return nil, transformErrorf(opTransformPoint,
			errors.Wrapf(ErrMismatchedDimension, "point has %d ordinates, want %d", len(src), t.SourceDimensions()))
	}
	if dst == nil {
		dst = make([]float64, t.TargetDimensions())
	} else if len(dst) != t.TargetDimensions() {
		return nil, transformErrorf(opTransformPoint,
			errors.Wrapf(ErrMismatchedDimension, "destination has %d ordinates, want %d", len(dst), t.TargetDimensions()))
	}
	if _, err := t.Apply(src, 0, dst, 0, false); err != nil {
		return nil, err
	}

	return dst, nil
}

// ApplyDerivative is the default Derivative: Apply with derivate set and no target.
func ApplyDerivative(t Transform, point []float64) (*matrix.Dense, error) {
	if len(point) != t.SourceDimensions() {
		return nil, transformErrorf(opDerivative,
			errors.Wrapf(ErrMismatchedDimension, "point has %d ordinates, want %d", len(point), t.SourceDimensions()))
	}

	return t.Apply(point, 0, nil, 0, true)
}

// checkApply validates the single-point layout of an Apply call.
func checkApply(srcDim, dstDim int, src []float64, srcOff int, dst []float64, dstOff int) error {
	if srcOff < 0 || srcOff+srcDim > len(src) {
		return transformErrorf(opApply, errors.Wrapf(ErrBufferTooSmall, "source offset %d", srcOff))
	}
	if dst != nil && (dstOff < 0 || dstOff+dstDim > len(dst)) {
		return transformErrorf(opApply, errors.Wrapf(ErrBufferTooSmall, "target offset %d", dstOff))
	}

	return nil
}

// stackDim is the largest tuple kept in a fixed-size array scratch.
const stackDim = 16

// tuple is a small fixed scratch; larger dimensions fall back to the heap.
type tuple [stackDim]float64

// scratch returns a slice of length n backed by buf when it fits.
func scratch(buf *tuple, n int) []float64 {
	if n <= stackDim {
		return buf[:n]
	}

	return make([]float64, n)
}
