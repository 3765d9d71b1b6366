// Package transform composes and executes coordinate transforms between
// coordinate spaces of arbitrary dimension.
//
// What is here:
//
//   - Transform, the single contract every variant satisfies, plus the
//     narrower capabilities LinearTransform, Transform2D and Describer.
//   - Linear transforms in homogeneous form (NewLinear), with a six-coefficient
//     2D specialisation (Affine2D) and a mutable AffineBuilder that seals into
//     an immutable value.
//   - Concatenate / ConcatenateAll, which choose the cheapest exact form once:
//     identity elision, matrix product, leaf folding, pass-through fusion,
//     direct per-point pipelines, or chunked bulk stages.
//   - PassThrough, which applies a sub-transform to a range of ordinates, and
//     DimensionFilter, which takes such ranges apart again.
//   - Suggest, the iteration strategy that keeps bulk calls correct when the
//     source and target buffers overlap.
//   - NumericDerivative, the central finite-difference Jacobian used by leaf
//     transforms without an analytic derivative.
//   - TransformParallel, which fans a large bulk call over goroutines.
//
// Buffers:
//
// Bulk calls take flat []float64 buffers, one tuple after the other. Source and
// target may be the same slice, or different slices over the same array, at any
// offsets: overlap is detected from the slice addresses and the points are
// visited in an order that never overwrites a source tuple before it is read.
//
// Concurrency:
//
// Every constructed Transform is immutable and safe for concurrent use. Scratch
// space is allocated per call. Caches (identity per dimension, inverses,
// VariantCache) are populated lazily with compare-and-swap semantics.
//
// Errors:
//
// Failures are sentinel errors matched with errors.Is. ErrNoninvertible is
// attached as a mark next to the underlying cause (for example
// matrix.ErrSingular); test for it with errors.Is from
// github.com/cockroachdb/errors. Bulk calls report the first failing point
// as a *PointError.
//
// Example:
//
//	t, _ := transform.Concatenate(transform.Translate2D(2, 4), transform.Translate2D(0.25, 0.75))
//	p, _ := t.TransformPoint([]float64{10, 20}, nil) // [12.25 24.75]
package transform
