// SPDX-License-Identifier: MIT

package transform

//go:generate go tool stringer -type=IterationStrategy -output=iterationstrategy_string.go

// IterationStrategy is the traversal order of a bulk transform call chosen so
// that writing a target point never overwrites source data not yet read.
type IterationStrategy int

const (
	// Ascending processes points 0, 1, …, n-1.
	Ascending IterationStrategy = iota
	// Descending processes points n-1, …, 1, 0.
	Descending
	// BufferSource copies the source region to a temporary buffer first.
	BufferSource
	// BufferTarget writes into a temporary buffer, then copies it to the target.
	BufferTarget
)

// Suggest returns the iteration strategy for transforming numPts points laid
// out with srcDim ordinates per point from srcOff, into dstDim ordinates per
// point from dstOff, where both offsets index the SAME storage. Only the
// difference between the offsets matters, so offsets may be expressed in any
// common frame (including negative values).
//
// Implementation:
//   - Stage 1: a single point, or disjoint regions → Ascending.
//   - Stage 2: Ascending is safe iff, for every point i, target i does not
//     intersect the still-unread sources [i+1, n). Both bounds are linear in
//     i, so the set of offending i is an interval computed in O(1).
//   - Stage 3: likewise for Descending against the unread sources [0, i).
//   - Stage 4: neither is safe → buffer the smaller region (ties: source).
//
// Behavior highlights:
//   - Ascending wins when both orders are safe.
//   - With srcDim == dstDim the result is Ascending when dstOff <= srcOff and
//     Descending otherwise (buffering is never needed).
//
// Complexity:
//   - Time O(1), Space O(1). Pure function.
func Suggest(srcOff, srcDim, dstOff, dstDim, numPts int) IterationStrategy {
	if numPts <= 1 {
		return Ascending
	}
	srcEnd := srcOff + numPts*srcDim
	dstEnd := dstOff + numPts*dstDim
	if dstEnd <= srcOff || srcEnd <= dstOff {
		return Ascending
	}
	delta := srcOff - dstOff
	if ascendingSafe(delta, srcDim, dstDim, numPts) {
		return Ascending
	}
	if descendingSafe(delta, srcDim, dstDim, numPts) {
		return Descending
	}
	if numPts*srcDim <= numPts*dstDim {
		return BufferSource
	}

	return BufferTarget
}

// ascendingSafe reports whether processing points in ascending order never
// writes target k-1 over a source k..n-1 not yet read.
// With delta = srcOff-dstOff, a = srcDim, b = dstDim, the hazard for
// k ∈ [1, n-1] is: k(b-a) > delta  AND  (k-1)b < delta + n·a.
func ascendingSafe(delta, a, b, n int) bool {
	lo, hi := 1, n-1
	// (k-1)b < X  ⇔  k <= ceil(X/b)
	x := delta + n*a
	if x <= 0 {
		return true
	}
	hi = min(hi, ceilDiv(x, b))
	switch {
	case b > a:
		lo = max(lo, floorDiv(delta, b-a)+1)
	case b == a:
		if delta >= 0 {
			return true
		}
	default:
		// k(a-b) < -delta  ⇔  k <= ceil(-delta/(a-b)) - 1
		hi = min(hi, ceilDiv(-delta, a-b)-1)
	}

	return lo > hi
}

// descendingSafe reports whether processing points in descending order never
// writes target i over a source 0..i-1 not yet read.
// The hazard for i ∈ [1, n-1] is: (i+1)b > delta  AND  i(b-a) < delta.
func descendingSafe(delta, a, b, n int) bool {
	lo, hi := 1, n-1
	// (i+1)b > delta  ⇔  i >= floor(delta/b)
	lo = max(lo, floorDiv(delta, b))
	switch {
	case b > a:
		// i < delta/(b-a)  ⇔  i <= ceil(delta/(b-a)) - 1
		hi = min(hi, ceilDiv(delta, b-a)-1)
	case b == a:
		if delta <= 0 {
			return true
		}
	default:
		// i(a-b) > -delta  ⇔  i >= floor(-delta/(a-b)) + 1
		lo = max(lo, floorDiv(-delta, a-b)+1)
	}

	return lo > hi
}

// floorDiv is ⌊p/q⌋ for q > 0 (Go's / truncates toward zero).
func floorDiv(p, q int) int {
	d := p / q
	if p%q != 0 && p < 0 {
		d--
	}

	return d
}

// ceilDiv is ⌈p/q⌉ for q > 0.
func ceilDiv(p, q int) int {
	d := p / q
	if p%q != 0 && p > 0 {
		d++
	}

	return d
}
