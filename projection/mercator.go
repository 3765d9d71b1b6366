// SPDX-License-Identifier: MIT

// Package projection - spherical Web Mercator (EPSG:3857).
//
// Forward: (lon, lat) degrees → (x, y) metres
//
//	x = lon · OriginShift / 180
//	y = ln(tan(π/4 + φ/2)) · OriginShift / π,   φ = lat · π/180
//
// The inverse is lat = atan(sinh(y·π/OriginShift)) in degrees.
//
// The forward Jacobian is diagonal: ∂x/∂lon = OriginShift/180 and
// ∂y/∂lat = OriginShift/180 · sec φ. The inverse Jacobian is
// ∂lon/∂x = 180/OriginShift and ∂lat/∂y = 180 / (OriginShift · cosh(y·π/OriginShift)).
package projection

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
	"github.com/katalvlaran/geoxform/transform"
)

const (
	// EarthCircumference is the equatorial circumference of the Web Mercator sphere in metres.
	EarthCircumference = 40075016.685578488

	// OriginShift is half the circumference: the x (and y) of the map edge.
	OriginShift = EarthCircumference / 2.0
)

// WebMercator maps geographic degrees to Web Mercator metres.
// |lat| >= 90 is outside the domain.
type WebMercator struct {
	inv *webMercatorInverse
}

// webMercatorInverse maps Web Mercator metres back to geographic degrees.
type webMercatorInverse struct {
	fwd *WebMercator
}

var (
	_ transform.Transform2D = (*WebMercator)(nil)
	_ transform.Describer   = (*WebMercator)(nil)
	_ transform.Transform2D = (*webMercatorInverse)(nil)
	_ transform.Describer   = (*webMercatorInverse)(nil)
)

// NewWebMercator returns the forward projection; its inverse is created
// with it, so Inverse never fails and Inverse().Inverse() is the same value.
func NewWebMercator() *WebMercator {
	m := &WebMercator{}
	m.inv = &webMercatorInverse{fwd: m}

	return m
}

func (m *WebMercator) SourceDimensions() int { return 2 }
func (m *WebMercator) TargetDimensions() int { return 2 }
func (m *WebMercator) IsIdentity() bool      { return false }

// Transform2 projects (lon, lat). NaN ordinates propagate.
func (m *WebMercator) Transform2(lon, lat float64) (float64, float64, error) {
	if math.Abs(lat) >= 90 {
		return 0, 0, errors.Wrapf(transform.ErrOutOfDomain, "web mercator: latitude %v", lat)
	}
	x := lon * OriginShift / 180.0
	y := math.Log(math.Tan((90.0+lat)*math.Pi/360.0)) * OriginShift / math.Pi

	return x, y, nil
}

func (m *WebMercator) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkPoint(src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	lat := src[srcOff+1]
	x, y, err := m.Transform2(src[srcOff], lat)
	if err != nil {
		return nil, err
	}
	if dst != nil {
		dst[dstOff], dst[dstOff+1] = x, y
	}
	if !derivate {
		return nil, nil
	}
	k := OriginShift / 180.0

	return matrix.NewDenseFrom(2, 2, []float64{k, 0, 0, k / math.Cos(lat*math.Pi/180.0)})
}

func (m *WebMercator) TransformPoint(src, dst []float64) ([]float64, error) {
	return transform.ApplyPoint(m, src, dst)
}

func (m *WebMercator) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transform.ApplyEach(m, src, srcOff, dst, dstOff, numPts)
}

func (m *WebMercator) Derivative(point []float64) (*matrix.Dense, error) {
	return transform.ApplyDerivative(m, point)
}

func (m *WebMercator) Inverse() (transform.Transform, error) { return m.inv, nil }

func (m *WebMercator) Describe() transform.ParameterGroup {
	return transform.ParameterGroup{Name: "WebMercator", Parameters: []transform.ParameterValue{
		{Name: "epsg", Value: PseudoMercator},
		{Name: "origin_shift", Value: OriginShift},
	}}
}

func (m *WebMercator) String() string { return "WebMercator" }

// ---------- inverse ----------

func (m *webMercatorInverse) SourceDimensions() int { return 2 }
func (m *webMercatorInverse) TargetDimensions() int { return 2 }
func (m *webMercatorInverse) IsIdentity() bool      { return false }

// Transform2 unprojects (x, y). It never fails.
func (m *webMercatorInverse) Transform2(x, y float64) (float64, float64, error) {
	lon := x / OriginShift * 180.0
	// atan(sinh u) equals 2·atan(eᵘ) − π/2 without its cancellation near u = 0.
	lat := 180.0 / math.Pi * math.Atan(math.Sinh(y*math.Pi/OriginShift))

	return lon, lat, nil
}

func (m *webMercatorInverse) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	if err := checkPoint(src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	y := src[srcOff+1]
	if dst != nil {
		dst[dstOff], dst[dstOff+1], _ = m.Transform2(src[srcOff], y)
	}
	if !derivate {
		return nil, nil
	}
	k := 180.0 / OriginShift

	return matrix.NewDenseFrom(2, 2, []float64{k, 0, 0, k / math.Cosh(y*math.Pi/OriginShift)})
}

func (m *webMercatorInverse) TransformPoint(src, dst []float64) ([]float64, error) {
	return transform.ApplyPoint(m, src, dst)
}

func (m *webMercatorInverse) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transform.ApplyEach(m, src, srcOff, dst, dstOff, numPts)
}

func (m *webMercatorInverse) Derivative(point []float64) (*matrix.Dense, error) {
	return transform.ApplyDerivative(m, point)
}

func (m *webMercatorInverse) Inverse() (transform.Transform, error) { return m.fwd, nil }

func (m *webMercatorInverse) Describe() transform.ParameterGroup {
	g := m.fwd.Describe()
	g.Name = "WebMercatorInverse"

	return g
}

func (m *webMercatorInverse) String() string { return "WebMercator⁻¹" }
