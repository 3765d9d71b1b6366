// SPDX-License-Identifier: MIT
package transform_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/katalvlaran/geoxform/transform"
	"github.com/stretchr/testify/require"
)

func TestDimensionFilterSelection(t *testing.T) {
	f := transform.NewDimensionFilter()
	require.NoError(t, f.AddSourceDimensions(4, 1, 1))
	require.NoError(t, f.AddSourceDimensionRange(0, 2))
	require.Equal(t, []int{0, 1, 4}, f.SourceDimensions())

	require.ErrorIs(t, f.AddSourceDimensionRange(3, 3), transform.ErrInvalidDimension)
	require.ErrorIs(t, f.AddSourceDimensionRange(-1, 2), transform.ErrInvalidDimension)
	require.ErrorIs(t, f.AddSourceDimensions(2, -1), transform.ErrInvalidDimension)
	require.Equal(t, []int{0, 1, 4}, f.SourceDimensions(), "a rejected call adds nothing")

	f.Clear()
	require.Empty(t, f.SourceDimensions())
}

func TestDimensionFilterErrors(t *testing.T) {
	f := transform.NewDimensionFilter()
	_, err := f.Separate(transform.Identity(3))
	require.ErrorIs(t, err, transform.ErrNothingSelected)

	require.NoError(t, f.AddSourceDimensions(0))
	_, err = f.Separate(nil)
	require.ErrorIs(t, err, transform.ErrNilTransform)

	require.NoError(t, f.AddSourceDimensions(5))
	_, err = f.Separate(transform.Identity(3))
	require.ErrorIs(t, err, transform.ErrInvalidDimension)
	require.Nil(t, f.TargetDimensions())

	f.Clear()
	require.NoError(t, f.AddSourceDimensions(0))
	_, err = f.Separate(newMixer(3, 3))
	require.ErrorIs(t, err, transform.ErrCannotSeparate)
}

func TestDimensionFilterWholeAndIdentity(t *testing.T) {
	f := transform.NewDimensionFilter()
	m := newMixer(2, 3)
	require.NoError(t, f.AddSourceDimensionRange(0, 2))
	got, err := f.Separate(m)
	require.NoError(t, err)
	require.Same(t, m, got)
	require.Equal(t, []int{0, 1, 2}, f.TargetDimensions())

	f.Clear()
	require.NoError(t, f.AddSourceDimensions(1, 3))
	got, err = f.Separate(transform.Identity(5))
	require.NoError(t, err)
	require.Same(t, transform.Identity(2), got)
	require.Equal(t, []int{1, 3}, f.TargetDimensions())
}

func TestDimensionFilterIdentityValuedSub(t *testing.T) {
	sub := transform.NewAffine2D(1, 0, 0, 0, 1, 0)
	require.True(t, sub.IsIdentity())
	pt, err := transform.PassThrough(1, sub, 1)
	require.NoError(t, err)
	require.Same(t, transform.Identity(4), pt)

	f := transform.NewDimensionFilter()
	require.NoError(t, f.AddSourceDimensionRange(1, 3))
	got, err := f.Separate(pt)
	require.NoError(t, err)
	require.Same(t, transform.Identity(2), got)
	require.NotSame(t, sub, got)
	require.Equal(t, []int{1, 2}, f.TargetDimensions())
}

func TestDimensionFilterLinear(t *testing.T) {
	l := MustLinear(t, 4, 4,
		2, 0, 0, 1,
		0, 3, 1, 0,
		0, 1, 3, 0,
		0, 0, 0, 1)
	f := transform.NewDimensionFilter()

	require.NoError(t, f.AddSourceDimensions(0))
	got, err := f.Separate(l)
	require.NoError(t, err)
	require.Equal(t, []float64{7}, MustPoint(t, got, 3))
	require.Equal(t, []int{0}, f.TargetDimensions())

	f.Clear()
	require.NoError(t, f.AddSourceDimensionRange(1, 3))
	got, err = f.Separate(l)
	require.NoError(t, err)
	a2, ok := got.(*transform.Affine2D)
	require.True(t, ok, "%T", got)
	require.Equal(t, [6]float64{3, 1, 0, 1, 3, 0}, a2.Coefficients())
	require.Equal(t, []int{1, 2}, f.TargetDimensions())

	// Dimension 1 is coupled to dimension 2 in both rows that use it.
	f.Clear()
	require.NoError(t, f.AddSourceDimensions(1))
	_, err = f.Separate(l)
	require.ErrorIs(t, err, transform.ErrCannotSeparate)

	// A perspective row that reads an unselected dimension blocks separation.
	persp := MustLinear(t, 4, 4,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0.5, 1)
	f.Clear()
	require.NoError(t, f.AddSourceDimensions(0))
	_, err = f.Separate(persp)
	require.ErrorIs(t, err, transform.ErrCannotSeparate)
}

func TestDimensionFilterPassThrough(t *testing.T) {
	m := newMixer(2, 3)
	p := MustPassThrough(t, 1, m, 1) // 4 → 5
	f := transform.NewDimensionFilter()

	// Fringe-only selections are an identity; trailing targets shift by one.
	require.NoError(t, f.AddSourceDimensions(0, 3))
	got, err := f.Separate(p)
	require.NoError(t, err)
	require.Same(t, transform.Identity(2), got)
	require.Equal(t, []int{0, 4}, f.TargetDimensions())

	// Affected range plus one fringe keeps that fringe.
	f.Clear()
	require.NoError(t, f.AddSourceDimensionRange(1, 4))
	got, err = f.Separate(p)
	require.NoError(t, err)
	require.True(t, transform.Equal(MustPassThrough(t, 0, m, 1), got), "%v", got)
	require.Equal(t, []int{1, 2, 3, 4}, f.TargetDimensions())
}

// TestDimensionFilterPartial recurses through a pass-through into a
// concatenation and keeps only the part acting on the selected ordinate.
func TestDimensionFilterPartial(t *testing.T) {
	m := newMixer(1, 1)
	c := MustConcat(t,
		MustPassThrough(t, 0, m, 1),
		MustPassThrough(t, 1, newSquares(1, -1), 0))
	p := MustPassThrough(t, 1, c, 1) // 4 → 4

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := transform.NewDimensionFilter(transform.WithLogger(log))
	require.NoError(t, f.AddSourceDimensions(0, 1))
	got, err := f.Separate(p)
	require.NoError(t, err)
	require.True(t, transform.Equal(MustPassThrough(t, 1, m, 0), got), "%v", got)
	require.Equal(t, []int{0, 1}, f.TargetDimensions())
	require.Contains(t, buf.String(), "branch=pass-through-partial")
	require.Contains(t, buf.String(), "branch=concatenation")

	want := MustPoint(t, p, 4, 0.5, 9, 9)
	require.Equal(t, want[:2], MustPoint(t, got, 4, 0.5))
}
