// SPDX-License-Identifier: MIT
// Package transform: sentinel error set.
// This file defines ONLY package-level sentinel errors and the per-point
// error type. Factories and kernels return these sentinels (wrapped with an
// op tag via transformErrorf) and tests check them via errors.Is.
//
// ERROR KINDS:
// configuration (construction time) -> non-invertibility -> transform-time
// (per point, fail-fast) -> separation (expected, recoverable).

package transform

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Configuration errors: signalled by factories, never deferred to first use.
var (
	// ErrNilTransform is returned when a nil Transform is passed to a factory.
	ErrNilTransform = errors.New("transform: nil transform")

	// ErrMismatchedDimension indicates that the target dimension of one
	// transform does not match the source dimension of the next, or that a
	// point/step slice has the wrong length.
	ErrMismatchedDimension = errors.New("transform: mismatched dimension")

	// ErrNegativeOrdinate is returned by PassThrough for a negative
	// firstAffectedOrdinate or numTrailingOrdinates.
	ErrNegativeOrdinate = errors.New("transform: negative ordinate count")

	// ErrInvalidDimension indicates a non-positive dimension or an ordinate
	// index outside [0, dim).
	ErrInvalidDimension = errors.New("transform: invalid dimension")

	// ErrInvalidParameter indicates a parameter outside the leaf transform's
	// admissible range (e.g. a non-positive logarithm base).
	ErrInvalidParameter = errors.New("transform: invalid parameter")

	// ErrBufferTooSmall indicates negative offsets/counts or a buffer that
	// cannot hold numPts points at the requested offset.
	ErrBufferTooSmall = errors.New("transform: buffer too small")
)

// ErrNoninvertible is returned by Inverse when no inverse exists
// (dimension-changing linear maps, singular matrices, projections).
// It is a distinct kind: callers are expected to test for it with errors.Is.
var ErrNoninvertible = errors.New("transform: noninvertible transform")

// ErrOutOfDomain is returned by a leaf transform for a coordinate outside its
// mathematical domain (e.g. the logarithm of a negative value).
var ErrOutOfDomain = errors.New("transform: coordinate outside domain")

// Separation errors: expected outcomes of DimensionFilter.Separate.
var (
	// ErrCannotSeparate means no exact decomposition over the selected
	// dimensions exists. Callers treat it as recoverable.
	ErrCannotSeparate = errors.New("transform: cannot separate dimensions")

	// ErrNothingSelected is returned by Separate before any dimension was added.
	ErrNothingSelected = errors.New("transform: no source dimension selected")
)

// Operation tags for uniform error wrapping.
const (
	opApply          = "Apply"
	opTransformPoint = "TransformPoint"
	opTransformBuf   = "TransformBuffer"
	opDerivative     = "Derivative"
	opInverse        = "Inverse"
	opConcatenate    = "Concatenate"
	opPassThrough    = "PassThrough"
	opNewLinear      = "NewLinear"
	opSeparate       = "Separate"
	opFilter         = "DimensionFilter"
	opNumeric        = "NumericDerivative"
	opParallel       = "TransformParallel"
)

// transformErrorf wraps err with an operation tag; errors.Is keeps matching
// the sentinel. Use only when err != nil.
func transformErrorf(op string, err error) error {
	return errors.Wrap(err, op)
}

// noninvertible marks cause as ErrNoninvertible while keeping cause reachable,
// so both errors.Is(err, ErrNoninvertible) and errors.Is(err, cause) hold.
func noninvertible(cause error) error {
	if cause == nil {
		return transformErrorf(opInverse, ErrNoninvertible)
	}

	return errors.Mark(transformErrorf(opInverse, cause), ErrNoninvertible)
}

// PointError reports the first point of a bulk call that failed.
// Index is the ordinal of the point within the call (0-based, counted from
// the start of the buffer region, not in traversal order).
type PointError struct {
	Index int
	Err   error
}

// Error implements error.
func (e *PointError) Error() string {
	return fmt.Sprintf("transform: point %d: %v", e.Index, e.Err)
}

// Unwrap exposes the leaf failure to errors.Is / errors.As.
func (e *PointError) Unwrap() error { return e.Err }
