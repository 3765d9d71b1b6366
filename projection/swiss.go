// SPDX-License-Identifier: MIT

package projection

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/matrix"
	"github.com/katalvlaran/geoxform/transform"
)

// LV95 false origin; the auxiliary coordinates of the swisstopo
// polynomials are offsets from it in units of 1000 km.
const (
	lv95East  = 2_600_000.0
	lv95North = 1_200_000.0
)

// SwissLV95 maps geographic degrees (lon, lat) to Swiss LV95 easting and
// northing in metres (EPSG:2056).
//
// The swisstopo approximate formulas are used in both directions; they are
// accurate to about a metre inside Switzerland, and the pair is not an exact
// mathematical inverse. Derivatives are numeric.
type SwissLV95 struct {
	inv  *swissLV95Inverse
	opts []transform.Option
}

// swissLV95Inverse maps LV95 metres back to geographic degrees.
type swissLV95Inverse struct {
	fwd *SwissLV95
}

var (
	_ transform.Transform2D = (*SwissLV95)(nil)
	_ transform.Describer   = (*SwissLV95)(nil)
	_ transform.Transform2D = (*swissLV95Inverse)(nil)
	_ transform.Describer   = (*swissLV95Inverse)(nil)
)

// NewSwissLV95 returns the forward projection. opts tune the numeric
// derivative (WithDerivativeStep, WithDerivativeSteps).
func NewSwissLV95(opts ...transform.Option) *SwissLV95 {
	s := &SwissLV95{opts: opts}
	s.inv = &swissLV95Inverse{fwd: s}

	return s
}

func (s *SwissLV95) SourceDimensions() int { return 2 }
func (s *SwissLV95) TargetDimensions() int { return 2 }
func (s *SwissLV95) IsIdentity() bool      { return false }

// Transform2 projects (lon, lat) degrees to (E, N) metres.
func (s *SwissLV95) Transform2(lon, lat float64) (float64, float64, error) {
	if math.Abs(lat) > 90 {
		return 0, 0, errors.Wrapf(transform.ErrOutOfDomain, "swiss lv95: latitude %v", lat)
	}
	// Arc seconds, shifted and scaled.
	phi := (lat*3600 - 169028.66) / 10000
	lambda := (lon*3600 - 26782.5) / 10000

	phi2 := phi * phi
	lambda2 := lambda * lambda

	e := 2_600_072.37 +
		211_455.93*lambda -
		10_938.51*lambda*phi -
		0.36*lambda*phi2 -
		44.54*lambda2*lambda
	n := 1_200_147.07 +
		308_807.95*phi +
		3_745.25*lambda2 +
		76.63*phi2 -
		194.56*lambda2*phi +
		119.79*phi2*phi

	return e, n, nil
}

func (s *SwissLV95) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	return apply2(s, src, srcOff, dst, dstOff, derivate, s.opts)
}

func (s *SwissLV95) TransformPoint(src, dst []float64) ([]float64, error) {
	return transform.ApplyPoint(s, src, dst)
}

func (s *SwissLV95) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transform.ApplyEach(s, src, srcOff, dst, dstOff, numPts)
}

func (s *SwissLV95) Derivative(point []float64) (*matrix.Dense, error) {
	return transform.ApplyDerivative(s, point)
}

func (s *SwissLV95) Inverse() (transform.Transform, error) { return s.inv, nil }

func (s *SwissLV95) Describe() transform.ParameterGroup {
	return transform.ParameterGroup{Name: "SwissLV95", Parameters: []transform.ParameterValue{
		{Name: "epsg", Value: LV95},
		{Name: "false_easting", Value: lv95East},
		{Name: "false_northing", Value: lv95North},
	}}
}

func (s *SwissLV95) String() string { return "SwissLV95" }

// ---------- inverse ----------

func (s *swissLV95Inverse) SourceDimensions() int { return 2 }
func (s *swissLV95Inverse) TargetDimensions() int { return 2 }
func (s *swissLV95Inverse) IsIdentity() bool      { return false }

// Transform2 unprojects (E, N) metres to (lon, lat) degrees.
func (s *swissLV95Inverse) Transform2(e, n float64) (float64, float64, error) {
	y := (e - lv95East) / 1e6
	x := (n - lv95North) / 1e6

	y2 := y * y
	x2 := x * x

	// Results in units of 10000 arc seconds.
	lon := 2.6779094 +
		4.728982*y +
		0.791484*y*x +
		0.1306*y*x2 -
		0.0436*y2*y
	lat := 16.9023892 +
		3.238272*x -
		0.270978*y2 -
		0.002528*x2 -
		0.0447*y2*x -
		0.0140*x2*x

	return lon * 100 / 36, lat * 100 / 36, nil
}

func (s *swissLV95Inverse) Apply(src []float64, srcOff int, dst []float64, dstOff int, derivate bool) (*matrix.Dense, error) {
	return apply2(s, src, srcOff, dst, dstOff, derivate, s.fwd.opts)
}

func (s *swissLV95Inverse) TransformPoint(src, dst []float64) ([]float64, error) {
	return transform.ApplyPoint(s, src, dst)
}

func (s *swissLV95Inverse) TransformBuffer(src []float64, srcOff int, dst []float64, dstOff int, numPts int) error {
	return transform.ApplyEach(s, src, srcOff, dst, dstOff, numPts)
}

func (s *swissLV95Inverse) Derivative(point []float64) (*matrix.Dense, error) {
	return transform.ApplyDerivative(s, point)
}

func (s *swissLV95Inverse) Inverse() (transform.Transform, error) { return s.fwd, nil }

func (s *swissLV95Inverse) Describe() transform.ParameterGroup {
	g := s.fwd.Describe()
	g.Name = "SwissLV95Inverse"

	return g
}

func (s *swissLV95Inverse) String() string { return "SwissLV95⁻¹" }

// apply2 runs t.Transform2 on one point and, when asked, differentiates it
// numerically. NumericDerivative only samples Apply with derivate unset, so
// this does not recurse.
func apply2(t transform.Transform2D, src []float64, srcOff int, dst []float64, dstOff int, derivate bool, opts []transform.Option) (*matrix.Dense, error) {
	if err := checkPoint(src, srcOff, dst, dstOff); err != nil {
		return nil, err
	}
	x, y := src[srcOff], src[srcOff+1]
	if dst != nil {
		u, v, err := t.Transform2(x, y)
		if err != nil {
			return nil, err
		}
		dst[dstOff], dst[dstOff+1] = u, v
	}
	if !derivate {
		return nil, nil
	}

	return transform.NumericDerivative(t, []float64{x, y}, opts...)
}
