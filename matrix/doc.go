// Package matrix provides the small dense matrices used by the transform engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Mul and Inverse kernels (LU with partial pivoting) used to compose
//     and invert linear transforms.
//   - Exact predicates (IsIdentity, IsAffine, Equal) used by the transform
//     factories to pick fast paths. Comparisons are bitwise on values, never
//     tolerance based; tolerance is a caller concern.
//
// Matrices here are tiny (a handful of rows and columns: one per coordinate
// dimension plus the homogeneous row/column), so kernels favour clarity and
// deterministic loop orders over blocking or SIMD.
package matrix
