// SPDX-License-Identifier: MIT
package projection_test

import (
	"testing"

	"github.com/katalvlaran/geoxform/projection"
	"github.com/katalvlaran/geoxform/transform"
	"github.com/stretchr/testify/require"
)

func TestForCodeInterning(t *testing.T) {
	m2, err := projection.ForCode(projection.PseudoMercator, 2)
	require.NoError(t, err)
	again, err := projection.ForCode(projection.PseudoMercator, 2)
	require.NoError(t, err)
	require.Same(t, m2, again)

	m3, err := projection.ForCode(projection.PseudoMercator, 3)
	require.NoError(t, err)
	pt, ok := m3.(*transform.PassThroughTransform)
	require.True(t, ok, "%T", m3)
	require.Same(t, m2, pt.SubTransform())
	require.Equal(t, 0, pt.FirstAffectedOrdinate())
	require.Equal(t, 1, pt.NumTrailingOrdinates())

	geo, err := projection.ForCode(projection.WGS84, 3)
	require.NoError(t, err)
	require.Same(t, transform.Identity(3), geo)
}

func TestForCodeErrors(t *testing.T) {
	_, err := projection.ForCode(31370, 2)
	require.ErrorIs(t, err, projection.ErrUnsupportedCode)
	_, err = projection.ForCode(31370, 3)
	require.ErrorIs(t, err, projection.ErrUnsupportedCode)
	_, err = projection.ForCode(projection.LV95, 4)
	require.ErrorIs(t, err, transform.ErrInvalidDimension)

	_, err = projection.Between(projection.LV95, 31370, 2)
	require.ErrorIs(t, err, projection.ErrUnsupportedCode)
}

func TestBetweenWithHeight(t *testing.T) {
	same, err := projection.Between(projection.LV95, projection.LV95, 3)
	require.NoError(t, err)
	require.Same(t, transform.Identity(3), same)

	tr, err := projection.Between(projection.LV95, projection.PseudoMercator, 3)
	require.NoError(t, err)
	_, ok := tr.(*transform.PassThroughTransform)
	require.True(t, ok, "the height pass-through is fused: %T", tr)

	got := mustPoint(t, tr, 2_600_000, 1_200_000, 540)
	require.InDelta(t, 828065.3078, got[0], 1e-3)
	require.InDelta(t, 5934092.9168, got[1], 1e-3)
	require.Equal(t, 540.0, got[2])

	// Bulk, in place, with the bulk path matching the point path.
	buf := []float64{2_600_000, 1_200_000, 540, 2_683_474, 1_247_862, 408}
	want := mustPoint(t, tr, buf[3:]...)
	require.NoError(t, tr.TransformBuffer(buf, 0, buf, 0, 2))
	require.Equal(t, got, buf[:3])
	require.Equal(t, want, buf[3:])

	inv, err := tr.Inverse()
	require.NoError(t, err)
	back := mustPoint(t, inv, got...)
	require.InDelta(t, 2_600_000, back[0], 2)
	require.InDelta(t, 1_200_000, back[1], 2)
	require.Equal(t, 540.0, back[2])
}

func TestBetweenSeparation(t *testing.T) {
	tr, err := projection.Between(projection.PseudoMercator, projection.LV95, 3)
	require.NoError(t, err)
	src := []float64{828065.3078, 5934092.9168, 540}
	full := mustPoint(t, tr, src...)

	f := transform.NewDimensionFilter()
	require.NoError(t, f.AddSourceDimensionRange(0, 2))
	horiz, err := f.Separate(tr)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, f.TargetDimensions())
	require.Equal(t, full[:2], mustPoint(t, horiz, src[:2]...))

	f.Clear()
	require.NoError(t, f.AddSourceDimensions(2))
	height, err := f.Separate(tr)
	require.NoError(t, err)
	require.Same(t, transform.Identity(1), height)
	require.Equal(t, []int{2}, f.TargetDimensions())
}
