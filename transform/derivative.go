// SPDX-License-Identifier: MIT

package transform

import (
	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
)

// NumericDerivative approximates the Jacobian of t at point by central
// finite differences:
//
//	J[i][j] ≈ (f_i(x + h_j·e_j) - f_i(x - h_j·e_j)) / (2·h_j)
//
// with h_j = step_j · max(1, |x_j|) (see WithDerivativeStep/WithDerivativeSteps).
// The effective step is re-derived as (x+h) - x so that the divisor matches
// the representable displacement exactly.
//
// It only calls t.Apply with derivate=false, so leaf transforms without an
// analytic derivative use it as their fallback, and tests use it to
// cross-check analytic derivatives.
//
// Errors:
//   - ErrMismatchedDimension (point or step count).
//   - Any error of t.Apply at a displaced point (e.g. ErrOutOfDomain near a domain edge).
//
// Complexity:
//   - 2·SourceDimensions() point evaluations.
func NumericDerivative(t Transform, point []float64, opts ...Option) (*matrix.Dense, error) {
	if t == nil {
		return nil, transformErrorf(opNumeric, ErrNilTransform)
	}
	o := gatherOptions(opts...)
	srcDim, tgtDim := t.SourceDimensions(), t.TargetDimensions()
	if len(point) < srcDim {
		return nil, transformErrorf(opNumeric,
			errors.Wrapf(ErrMismatchedDimension, "point has %d ordinates, want %d", len(point), srcDim))
	}
	if o.steps != nil && len(o.steps) != srcDim {
		return nil, transformErrorf(opNumeric,
			errors.Wrapf(ErrMismatchedDimension, "%d steps for %d dimensions", len(o.steps), srcDim))
	}

	var (
		bufX, bufP, bufM tuple
		x                = scratch(&bufX, srcDim)
		fp               = scratch(&bufP, tgtDim)
		fm               = scratch(&bufM, tgtDim)
		jac              = make([]float64, tgtDim*srcDim)
		i, j             int
		x0, h, hp, hm    float64
	)
	copy(x, point[:srcDim])
	for j = 0; j < srcDim; j++ {
		x0 = x[j]
		h = o.stepFor(j, x0)

		x[j] = x0 + h
		hp = x[j] - x0
		if _, err := t.Apply(x, 0, fp, 0, false); err != nil {
			return nil, transformErrorf(opNumeric, err)
		}
		x[j] = x0 - h
		hm = x0 - x[j]
		if _, err := t.Apply(x, 0, fm, 0, false); err != nil {
			return nil, transformErrorf(opNumeric, err)
		}
		x[j] = x0

		for i = 0; i < tgtDim; i++ {
			jac[i*srcDim+j] = (fp[i] - fm[i]) / (hp + hm)
		}
	}

	return matrix.NewDenseFrom(tgtDim, srcDim, jac)
}
