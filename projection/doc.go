// Package projection hosts map projections as transform.Transform leaves,
// so they compose with the affine, pass-through and concatenation machinery
// of package transform.
//
// What is here:
//
//   - WebMercator: geographic longitude/latitude in degrees to spherical
//     Web Mercator metres (EPSG:3857), with analytic derivatives in both
//     directions.
//   - SwissLV95: geographic degrees to Swiss LV95 easting/northing
//     (EPSG:2056) through swisstopo's published approximation polynomials.
//     Its derivatives fall back to transform.NumericDerivative.
//   - ForCode / Between: look up a projection by EPSG code in 2-D or 3-D
//     form (the third ordinate, an ellipsoidal height, is passed through)
//     and chain two of them through geographic coordinates.
//
// Variants are interned: ForCode(code, dim) returns the same instance on
// every call, and the 3-D form wraps the 2-D instance.
//
// Example:
//
//	t, _ := projection.Between(projection.LV95, projection.PseudoMercator, 3)
//	p, _ := t.TransformPoint([]float64{2_600_000, 1_200_000, 540}, nil)
package projection
