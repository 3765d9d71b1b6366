// SPDX-License-Identifier: MIT

package projection

import (
	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/transform"
)

// ErrUnsupportedCode is returned by ForCode and Between for an EPSG code
// without a hosted projection.
var ErrUnsupportedCode = errors.New("projection: unsupported code")

// checkPoint validates the single-point layout of a 2-D Apply call.
func checkPoint(src []float64, srcOff int, dst []float64, dstOff int) error {
	if srcOff < 0 || srcOff+2 > len(src) {
		return errors.Wrapf(transform.ErrBufferTooSmall, "projection: source offset %d", srcOff)
	}
	if dst != nil && (dstOff < 0 || dstOff+2 > len(dst)) {
		return errors.Wrapf(transform.ErrBufferTooSmall, "projection: target offset %d", dstOff)
	}

	return nil
}
