// SPDX-License-Identifier: MIT
package transform_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/katalvlaran/geoxform/transform"
	"github.com/stretchr/testify/require"
)

type layout struct {
	SrcOff, SrcDim, DstOff, DstDim, NumPts int
}

// simulate walks the points in order over a shared cell array and reports
// whether any source cell is read after another point has overwritten it.
func simulate(l layout, order []int) bool {
	written := make(map[int]bool)
	for _, i := range order {
		for c := l.SrcOff + i*l.SrcDim; c < l.SrcOff+(i+1)*l.SrcDim; c++ {
			if written[c] {
				return false
			}
		}
		for c := l.DstOff + i*l.DstDim; c < l.DstOff+(i+1)*l.DstDim; c++ {
			written[c] = true
		}
	}

	return true
}

func orders(n int) (asc, desc []int) {
	asc, desc = make([]int, n), make([]int, n)
	for i := 0; i < n; i++ {
		asc[i], desc[i] = i, n-1-i
	}

	return asc, desc
}

// TestSuggestAgainstSimulation checks Suggest against a brute-force hazard
// simulation: the pick is safe, Ascending is preferred, Descending next, and
// buffering picks the smaller region (source on ties).
func TestSuggestAgainstSimulation(t *testing.T) {
	counts := map[transform.IterationStrategy]int{}
	for srcDim := 1; srcDim <= 6; srcDim++ {
		for dstDim := 1; dstDim <= 6; dstDim++ {
			for srcOff := 0; srcOff <= 20; srcOff++ {
				for dstOff := 0; dstOff <= 20; dstOff++ {
					for n := 0; n <= 7; n++ {
						l := layout{srcOff, srcDim, dstOff, dstDim, n}
						asc, desc := orders(n)
						ascOK, descOK := simulate(l, asc), simulate(l, desc)

						got := transform.Suggest(srcOff, srcDim, dstOff, dstDim, n)
						counts[got]++
						switch {
						case ascOK:
							require.Equal(t, transform.Ascending, got, spew.Sdump(l))
						case descOK:
							require.Equal(t, transform.Descending, got, spew.Sdump(l))
						case srcDim <= dstDim:
							require.Equal(t, transform.BufferSource, got, spew.Sdump(l))
						default:
							require.Equal(t, transform.BufferTarget, got, spew.Sdump(l))
						}
					}
				}
			}
		}
	}
	for _, s := range []transform.IterationStrategy{transform.Ascending, transform.Descending, transform.BufferSource, transform.BufferTarget} {
		require.Positive(t, counts[s], "strategy %v never chosen", s)
	}
	t.Logf("strategy counts: %s", spew.Sdump(counts))
}

// TestSuggestEqualDimensions pins the equal-dimension rule: never buffer.
func TestSuggestEqualDimensions(t *testing.T) {
	for dim := 1; dim <= 6; dim++ {
		for srcOff := 0; srcOff <= 20; srcOff++ {
			for dstOff := 0; dstOff <= 20; dstOff++ {
				got := transform.Suggest(srcOff, dim, dstOff, dim, 5)
				if dstOff <= srcOff {
					require.Equal(t, transform.Ascending, got)
					continue
				}
				if dstOff >= srcOff+5*dim {
					require.Equal(t, transform.Ascending, got, "disjoint")
					continue
				}
				require.Equal(t, transform.Descending, got)
			}
		}
	}
}

func TestSuggestTable(t *testing.T) {
	cases := []struct {
		name string
		l    layout
		want transform.IterationStrategy
	}{
		{"single point", layout{0, 3, 1, 2, 1}, transform.Ascending},
		{"disjoint", layout{0, 2, 100, 3, 10}, transform.Ascending},
		{"same offsets same dims", layout{4, 2, 4, 2, 10}, transform.Ascending},
		{"target ahead", layout{0, 2, 1, 2, 10}, transform.Descending},
		{"expand in place", layout{0, 2, 0, 3, 10}, transform.Descending},
		{"reduce in place", layout{0, 3, 0, 2, 10}, transform.Ascending},
		{"expand, target slightly behind", layout{4, 2, 0, 3, 10}, transform.BufferSource},
		{"reduce, target slightly ahead", layout{0, 3, 4, 2, 10}, transform.BufferTarget},
		{"negative frame", layout{-5, 2, -5, 2, 3}, transform.Ascending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := transform.Suggest(tc.l.SrcOff, tc.l.SrcDim, tc.l.DstOff, tc.l.DstDim, tc.l.NumPts)
			require.Equal(t, tc.want, got, "got %v", got)
			asc, desc := orders(tc.l.NumPts)
			switch got {
			case transform.Ascending:
				require.True(t, simulate(tc.l, asc))
			case transform.Descending:
				require.True(t, simulate(tc.l, desc))
			}
		})
	}
}

func TestIterationStrategyString(t *testing.T) {
	require.Equal(t, "Ascending", transform.Ascending.String())
	require.Equal(t, "Descending", transform.Descending.String())
	require.Equal(t, "BufferSource", transform.BufferSource.String())
	require.Equal(t, "BufferTarget", transform.BufferTarget.String())
	require.Equal(t, "IterationStrategy(9)", transform.IterationStrategy(9).String())
}
