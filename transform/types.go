// SPDX-License-Identifier: MIT

// Package transform: the Transform contract and its capability interfaces.
// Concrete variants advertise narrower capabilities (LinearTransform,
// Transform2D, Describer) and factories select fast paths by querying
// them once at construction.
package transform

import "github.com/katalvlaran/geoxform/matrix"

// Transform maps SourceDimensions()-tuples to TargetDimensions()-tuples.
//
// A Transform is immutable after construction and safe for concurrent use,
// provided concurrent calls do not share mutable buffers. Coordinates are
// float64; NaN ordinates that a transform does not combine with others
// propagate unchanged.
type Transform interface {
	// SourceDimensions returns the number of ordinates of an input point.
	SourceDimensions() int

	// TargetDimensions returns the number of ordinates of an output point.
	TargetDimensions() int

	// Apply is the single-point primitive. It transforms the point starting
	// at src[srcOff] into dst[dstOff:] and, when derivate is true, returns
	// the Jacobian at that point (TargetDimensions × SourceDimensions).
	// dst may be nil when only the derivative is wanted. The whole source
	// tuple is read before anything is written, so src and dst may alias.
	// On error nothing has been written to dst.
	Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error)

	// TransformPoint transforms a single point. When dst is nil a new slice
	// is allocated. src is never mutated (unless it is also dst).
	TransformPoint(src, dst []float64) ([]float64, error)

	// TransformBuffer transforms numPts consecutive points. src and dst may
	// be the same storage and may overlap; the result is identical to
	// transforming into a disjoint buffer. On a per-point failure a
	// *PointError is returned; points processed before it are complete.
	TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error

	// Derivative returns the Jacobian at point.
	Derivative(point []float64) (*matrix.Dense, error)

	// Inverse returns the inverse transform or ErrNoninvertible. The inverse
	// is cached: t.Inverse().Inverse() returns t itself.
	Inverse() (Transform, error)

	// IsIdentity reports whether the transform is exactly the identity.
	IsIdentity() bool
}

// LinearTransform is a Transform whose action is the homogeneous matrix
// product target = M·[source; 1] (with a perspective divide when the last
// row of M is not [0 … 0 1]).
type LinearTransform interface {
	Transform

	// Matrix returns a copy of the (target+1)×(source+1) matrix.
	Matrix() *matrix.Dense
}

// Transform2D is implemented by 2→2 transforms that offer an allocation-free
// scalar entry point.
type Transform2D interface {
	Transform

	// Transform2 maps (x, y) to (x', y').
	Transform2(x, y float64) (float64, float64, error)
}

// Describer is implemented by transforms that can report the parameters
// that produced them.
type Describer interface {
	Describe() ParameterGroup
}

// inversePeeker exposes an already-computed inverse without computing one.
// Concatenate uses it to recognise t∘t⁻¹ pairs.
type inversePeeker interface {
	peekInverse() Transform
}

// inverseLinker lets a freshly computed inverse point back at its origin so
// that t.Inverse().Inverse() == t.
type inverseLinker interface {
	linkInverse(origin Transform)
}

// concatenator is implemented by transforms that know a cheaper form of
// "self then next" (e.g. exponential followed by matching logarithm).
// ok is false when no special form applies.
type concatenator interface {
	concatenateWith(next Transform, o *Options) (res Transform, ok bool, err error)
}

// equaler provides structural equality for non-linear variants.
type equaler interface {
	equalTo(other Transform) bool
}
