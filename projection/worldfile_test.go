// SPDX-License-Identifier: MIT
package projection_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/projection"
	"github.com/katalvlaran/geoxform/transform"
	"github.com/stretchr/testify/require"
)

// A 0.5 m north-up swissimage tile anchored in Bern.
const bernTFW = `0.5
0.0
0.0
-0.5
2600000.25
1200999.75
`

func TestParseWorldFile(t *testing.T) {
	a, err := projection.ParseWorldFile(strings.NewReader(bernTFW))
	require.NoError(t, err)
	require.Equal(t, [6]float64{0.5, 0, 2600000.25, 0, -0.5, 1200999.75}, a.Coefficients())

	// Centre of pixel (col 1, row 2).
	require.Equal(t, []float64{2600000.75, 1200998.75}, mustPoint(t, a, 1, 2))

	// Pixel → geographic, through the LV95 inverse.
	toGeo, err := projection.Between(projection.LV95, projection.WGS84, 2)
	require.NoError(t, err)
	pixelToGeo, err := transform.Concatenate(a, toGeo)
	require.NoError(t, err)
	ll := mustPoint(t, pixelToGeo, 0, 1999)
	require.InDelta(t, 7.438632, ll[0], 0.001)
	require.InDelta(t, 46.951083, ll[1], 0.001)
}

func TestParseWorldFileRotated(t *testing.T) {
	a, err := projection.ParseWorldFile(strings.NewReader("2\n0.5\n\n0.25\n-2\n10\n20\ntrailing"))
	require.NoError(t, err)
	require.Equal(t, [6]float64{2, 0.25, 10, 0.5, -2, 20}, a.Coefficients())
}

func TestParseWorldFileErrors(t *testing.T) {
	_, err := projection.ParseWorldFile(strings.NewReader("1\n0\n0\n-1\n"))
	require.ErrorIs(t, err, projection.ErrWorldFile)

	_, err = projection.ParseWorldFile(strings.NewReader("1\n0\nzero\n-1\n0\n0\n"))
	require.True(t, errors.Is(err, projection.ErrWorldFile), "%+v", err)
	require.Contains(t, err.Error(), "line 3")
}
