// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/geoxform/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(-1, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestRowsCols verifies that Rows(), Cols() and Shape() return correct values.
func TestRowsCols(t *testing.T) {
	m := MustDense(t, 3, 4)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
	r, c := m.Shape()
	require.Equal(t, [2]int{3, 4}, [2]int{r, c})
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m := MustDense(t, 2, 2)

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(0, -1, 4.56)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestSetAcceptsNaN checks that Jacobians may carry NaN/Inf.
func TestSetAcceptsNaN(t *testing.T) {
	m := MustDense(t, 1, 2)
	require.NoError(t, m.Set(0, 0, math.NaN()))
	require.NoError(t, m.Set(0, 1, math.Inf(1)))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))
}

// TestNewDenseFrom validates copy semantics and length checking.
func TestNewDenseFrom(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	m, err := matrix.NewDenseFrom(2, 3, data)
	require.NoError(t, err)

	data[0] = 99 // must not leak into m
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	v, err = m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)

	_, err = matrix.NewDenseFrom(2, 2, data)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestCloneIndependence ensures Clone() and Flat() never share storage.
func TestCloneIndependence(t *testing.T) {
	m := MustDenseFrom(t, 2, 2, 1, 0, 0, 2)

	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0))

	flat := m.Flat()
	flat[3] = 42

	require.Equal(t, 1.0, MustAt(t, m, 0, 0))
	require.Equal(t, 2.0, MustAt(t, m, 1, 1))
	require.Equal(t, 3.0, MustAt(t, clone, 0, 0))
}

// TestString renders one bracketed row per line.
func TestString(t *testing.T) {
	m := MustDenseFrom(t, 2, 2, 1, 0.5, -2, 3)
	require.Equal(t, "[1, 0.5]\n[-2, 3]\n", m.String())
}
