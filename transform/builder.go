// SPDX-License-Identifier: MIT

// builder.go - mutable 2D affine builder that seals into an immutable LinearTransform.
//
// Design contract:
//   - Every step post-multiplies like a graphics transform stack:
//     Translate/Scale/Rotate/Shear/Concatenate(op) make the builder compute
//     current(op(p)), so the last call is applied to points first.
//   - PreConcatenate(op) computes op(current(p)).
//   - Build never aliases builder state: further builder calls do not
//     affect transforms that were already built.
//   - The builder is NOT safe for concurrent use; built transforms are.
package transform

// AffineBuilder accumulates a 2D affine map.
type AffineBuilder struct {
	m [6]float64 // m00 m01 m02 m10 m11 m12
}

// NewAffineBuilder starts from the identity.
func NewAffineBuilder() *AffineBuilder {
	return &AffineBuilder{m: [6]float64{1, 0, 0, 0, 1, 0}}
}

// post sets current = current × o.
func (b *AffineBuilder) post(o [6]float64) *AffineBuilder {
	c := b.m
	b.m = [6]float64{
		c[0]*o[0] + c[1]*o[3], c[0]*o[1] + c[1]*o[4], c[0]*o[2] + c[1]*o[5] + c[2],
		c[3]*o[0] + c[4]*o[3], c[3]*o[1] + c[4]*o[4], c[3]*o[2] + c[4]*o[5] + c[5],
	}

	return b
}

// Translate prepends a translation by (tx, ty).
func (b *AffineBuilder) Translate(tx, ty float64) *AffineBuilder {
	return b.post([6]float64{1, 0, tx, 0, 1, ty})
}

// Scale prepends a scaling by (sx, sy).
func (b *AffineBuilder) Scale(sx, sy float64) *AffineBuilder {
	return b.post([6]float64{sx, 0, 0, 0, sy, 0})
}

// Rotate prepends a counter-clockwise rotation by theta radians.
func (b *AffineBuilder) Rotate(theta float64) *AffineBuilder {
	sin, cos := sinCos(theta)
	return b.post([6]float64{cos, -sin, 0, sin, cos, 0})
}

// Shear prepends x' = x + shx·y, y' = shy·x + y.
func (b *AffineBuilder) Shear(shx, shy float64) *AffineBuilder {
	return b.post([6]float64{1, shx, 0, shy, 1, 0})
}

// Concatenate prepends a (a is applied to points before the current map).
func (b *AffineBuilder) Concatenate(a *Affine2D) *AffineBuilder {
	return b.post(a.Coefficients())
}

// PreConcatenate appends a (a is applied to the result of the current map).
func (b *AffineBuilder) PreConcatenate(a *Affine2D) *AffineBuilder {
	o, c := a.Coefficients(), b.m
	b.m = [6]float64{
		o[0]*c[0] + o[1]*c[3], o[0]*c[1] + o[1]*c[4], o[0]*c[2] + o[1]*c[5] + o[2],
		o[3]*c[0] + o[4]*c[3], o[3]*c[1] + o[4]*c[4], o[3]*c[2] + o[4]*c[5] + o[5],
	}

	return b
}

// Reset returns the builder to the identity.
func (b *AffineBuilder) Reset() *AffineBuilder {
	b.m = [6]float64{1, 0, 0, 0, 1, 0}
	return b
}

// Build seals the current state. An identity result is Identity(2);
// anything else is an *Affine2D.
func (b *AffineBuilder) Build() LinearTransform {
	m := b.m
	return newLinearFlat(2, 2, []float64{m[0], m[1], m[2], m[3], m[4], m[5], 0, 0, 1})
}
