// Package geoxform composes and executes coordinate transforms: the
// machinery between "a point in one reference system" and "the same point
// in another".
//
// 🚀 What is in the box?
//
//	• Linear transforms: identity, 2-D affine fast path, N-D affine and
//	  projective maps, all normalised at construction
//	• Composition: Concatenate picks the cheapest exact form once
//	  (elision, matrix product, leaf folding, pass-through fusion)
//	• Pass-through: apply a sub-transform to a slice of the ordinates
//	  and carry the rest, e.g. a horizontal projection with a height
//	• Separation: DimensionFilter extracts the part of a transform that
//	  acts on selected ordinates
//	• Bulk execution: overlap-safe in-place buffers, chunked pipelines,
//	  TransformParallel over goroutines
//	• Projections: Web Mercator, Swiss LV95, world files, EPSG lookup
//
// ✨ Guarantees
//
//   - Transforms are immutable and safe for concurrent use
//   - t.Inverse().Inverse() returns t itself
//   - Same result whether the buffers are disjoint, shared or overlapping
//   - Errors are sentinels (cockroachdb/errors); per-point failures carry the index
//
// Packages:
//
//	matrix/       small dense matrices: product, pivoted LU inverse, predicates
//	transform/    the Transform contract, factories, concatenation, filters
//	projection/   map projections as transform leaves, EPSG registry
//	examples/     runnable demos
//
// Quick example:
//
//	t, _ := projection.Between(projection.LV95, projection.PseudoMercator, 3)
//	xyh, _ := t.TransformPoint([]float64{2_600_000, 1_200_000, 540}, nil)
//
//	go get github.com/katalvlaran/geoxform
package geoxform
