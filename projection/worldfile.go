// SPDX-License-Identifier: MIT

package projection

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/transform"
)

// ErrWorldFile reports a malformed world file (.tfw, .pgw, .jgw).
var ErrWorldFile = errors.New("projection: malformed world file")

// ParseWorldFile reads the six lines of an ESRI world file and returns the
// pixel-to-map transform: (column, row) of a pixel centre → map x, y.
//
//	line 1: A  x-size of a pixel
//	line 2: D  rotation term
//	line 3: B  rotation term
//	line 4: E  y-size of a pixel, negative for north-up
//	line 5: C  x of the upper-left pixel centre
//	line 6: F  y of the upper-left pixel centre
//
// x = A·col + B·row + C and y = D·col + E·row + F. Rotated files are fine.
// Blank lines between values are skipped; anything after the sixth value is
// ignored.
func ParseWorldFile(r io.Reader) (*transform.Affine2D, error) {
	var (
		vals [6]float64
		n    int
		line int
	)
	sc := bufio.NewScanner(r)
	for n < len(vals) && sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "world file line %d", line), ErrWorldFile)
		}
		vals[n] = v
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading world file")
	}
	if n < len(vals) {
		return nil, errors.Wrapf(ErrWorldFile, "%d values, want 6", n)
	}
	a, d, b, e, c, f := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]

	return transform.NewAffine2D(a, b, c, d, e, f), nil
}
