// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/geoxform/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels through the interface (At/Set) materialisation path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d) failed: %v", r, c, err)
	}

	return m
}

// MustDenseFrom builds an r×c *Dense from row-major values or fails the test.
func MustDenseFrom(t *testing.T, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	if err != nil {
		t.Fatalf("NewDenseFrom(%d,%d) failed: %v", r, c, err)
	}

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d) failed: %v", i, j, err)
	}

	return v
}

// requireClose asserts |a[i,j]-b[i,j]| <= tol for all entries and equal shapes.
func requireClose(t *testing.T, a, b matrix.Matrix, tol float64) {
	t.Helper()
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		t.Fatalf("shape mismatch: %dx%d vs %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, bv := MustAt(t, a, i, j), MustAt(t, b, i, j)
			d := av - bv
			if d < 0 {
				d = -d
			}
			if d > tol {
				t.Fatalf("mismatch at (%d,%d): %g vs %g (tol %g)", i, j, av, bv, tol)
			}
		}
	}
}
