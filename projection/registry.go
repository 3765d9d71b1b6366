// SPDX-License-Identifier: MIT

package projection

import (
	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/transform"
)

// EPSG codes with a hosted projection.
const (
	WGS84          = 4326 // geographic lon/lat degrees
	PseudoMercator = 3857 // spherical Web Mercator metres
	LV95           = 2056 // Swiss CH1903+/LV95 metres
)

// variantKey identifies one dimensional form of a projection.
type variantKey struct {
	code, dim int
}

var variants transform.VariantCache[variantKey]

// ForCode returns the transform from geographic coordinates (WGS84 lon/lat
// degrees, plus an ellipsoidal height when dim is 3) to the coordinate
// system identified by code. WGS84 itself maps to Identity(dim).
//
// Each (code, dim) variant is built once; the 3-D form passes the height
// through around the 2-D instance.
//
// Errors:
//   - ErrUnsupportedCode for an unknown code.
//   - transform.ErrInvalidDimension when dim is not 2 or 3.
func ForCode(code, dim int) (transform.Transform, error) {
	if dim != 2 && dim != 3 {
		return nil, errors.Wrapf(transform.ErrInvalidDimension, "projection: dimension %d", dim)
	}

	return variants.Get(variantKey{code, dim}, func() (transform.Transform, error) {
		if code == WGS84 {
			return transform.Identity(dim), nil
		}
		if dim == 3 {
			flat, err := ForCode(code, 2)
			if err != nil {
				return nil, err
			}
			return transform.PassThrough(0, flat, 1)
		}
		switch code {
		case PseudoMercator:
			return NewWebMercator(), nil
		case LV95:
			return NewSwissLV95(), nil
		default:
			return nil, errors.Wrapf(ErrUnsupportedCode, "EPSG:%d", code)
		}
	})
}

// Between returns the transform from coordinate system from to coordinate
// system to, going through geographic coordinates. Equal codes give
// Identity(dim).
func Between(from, to, dim int, opts ...transform.Option) (transform.Transform, error) {
	src, err := ForCode(from, dim)
	if err != nil {
		return nil, err
	}
	dst, err := ForCode(to, dim)
	if err != nil {
		return nil, err
	}
	if from == to {
		return transform.Identity(dim), nil
	}
	unproject, err := src.Inverse()
	if err != nil {
		return nil, errors.Wrapf(err, "projection: EPSG:%d", from)
	}

	return transform.Concatenate(unproject, dst, opts...)
}
