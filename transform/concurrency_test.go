// SPDX-License-Identifier: MIT
package transform_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/geoxform/transform"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const goroutines = 32

// TestConcurrentInverse: racing first calls to Inverse all observe one instance.
func TestConcurrentInverse(t *testing.T) {
	for name, tr := range map[string]transform.Transform{
		"affine":       MustLinear(t, 4, 4, 2, 1, 0, 1, 0, 3, 1, 2, 1, 0, 4, -1, 0, 0, 0, 1),
		"affine2d":     transform.NewAffine2D(2, 1, 3, 0.5, 4, -1),
		"concatenated": MustConcat(t, transform.Rotate2D(0.3), hide{transform.Scale2D(2, 5)}),
		"pass-through": MustPassThrough(t, 1, mustExp(t, 2, 3), 1),
	} {
		results := make([]transform.Transform, goroutines)
		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
		)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				inv, err := tr.Inverse()
				if err == nil {
					results[i] = inv
				}
			}()
		}
		close(start)
		wg.Wait()

		for i := range results {
			require.NotNil(t, results[i], name)
			require.Same(t, results[0], results[i], name)
		}
		back, err := results[0].Inverse()
		require.NoError(t, err)
		require.Same(t, tr, back, name)
	}
}

func TestConcurrentIdentity(t *testing.T) {
	var g errgroup.Group
	results := make([]transform.LinearTransform, goroutines)
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			results[i] = transform.Identity(7 + i%3)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for i, r := range results {
		require.Same(t, transform.Identity(7+i%3), r)
	}
}

func TestVariantCache(t *testing.T) {
	var (
		cache  transform.VariantCache[int]
		builds atomic.Int32
		g      errgroup.Group
	)
	results := make([]transform.Transform, goroutines)
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			v, err := cache.Get(3, func() (transform.Transform, error) {
				builds.Add(1)
				return transform.PassThrough(0, newMixer(2, 2), 1)
			})
			results[i] = v
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.GreaterOrEqual(t, builds.Load(), int32(1))
	for _, r := range results {
		require.Same(t, results[0], r)
	}

	// A failed build is not remembered.
	boom := errors.New("boom")
	_, err := cache.Get(4, func() (transform.Transform, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	v, err := cache.Get(4, func() (transform.Transform, error) { return transform.Identity(4), nil })
	require.NoError(t, err)
	require.Same(t, transform.Identity(4), v)
}

// TestConcurrentTransformBuffer shares one transform across goroutines, each
// with its own buffers.
func TestConcurrentTransformBuffer(t *testing.T) {
	tr := MustConcat(t, newMixer(3, 5), MustLinear(t, 3, 6, linearMatrix(5, 2)...), transform.WithChunkSize(3))
	const numPts = 40
	src := make([]float64, numPts*3)
	fillInputs(src, 0, len(src))
	want := make([]float64, numPts*2)
	require.NoError(t, tr.TransformBuffer(src, 0, want, 0, numPts))

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			buf := make([]float64, numPts*3)
			copy(buf, src)
			if err := tr.TransformBuffer(buf, 0, buf, 0, numPts); err != nil {
				return err
			}
			for k := range want {
				if buf[k] != want[k] {
					return errors.Newf("goroutine %d: ordinate %d = %v, want %v", i, k, buf[k], want[k])
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestTransformParallel(t *testing.T) {
	tr := MustConcat(t, newMixer(2, 4), newMixer(4, 3))
	const numPts = 101
	src := make([]float64, numPts*2)
	fillInputs(src, 0, len(src))
	want := make([]float64, numPts*3)
	require.NoError(t, tr.TransformBuffer(src, 0, want, 0, numPts))

	got := make([]float64, numPts*3)
	require.NoError(t, transform.TransformParallel(context.Background(), tr, src, got, numPts,
		transform.WithChunkSize(8), transform.WithWorkers(4)))
	requireBitsEqual(t, want, got)

	// Shared storage falls back to the sequential overlap-safe path.
	buf := make([]float64, numPts*3)
	copy(buf, src)
	require.NoError(t, transform.TransformParallel(context.Background(), tr, buf, buf, numPts,
		transform.WithChunkSize(8)))
	requireBitsEqual(t, want, buf)
}

func TestTransformParallelFailure(t *testing.T) {
	tr := newPoisoned(2, 3, 5)
	const numPts = 50
	src := make([]float64, numPts*2)
	for i := 0; i < numPts; i++ {
		src[2*i], src[2*i+1] = float64(i%5+10), 1
	}
	src[2*33], src[2*41] = 5, 5

	dst := make([]float64, numPts*3)
	err := transform.TransformParallel(context.Background(), tr, src, dst, numPts,
		transform.WithChunkSize(4), transform.WithWorkers(3))
	require.ErrorIs(t, err, transform.ErrOutOfDomain)
	var pe *transform.PointError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 33, pe.Index)
	for i := 0; i < pe.Index; i++ {
		require.Equal(t, MustPoint(t, tr, src[2*i:2*i+2]...), dst[3*i:3*i+3], "point %d", i)
	}
}

func TestTransformParallelErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	buf := make([]float64, 8)
	err := transform.TransformParallel(ctx, transform.Identity(2), buf, make([]float64, 8), 4)
	require.ErrorIs(t, err, context.Canceled)

	err = transform.TransformParallel(context.Background(), nil, buf, buf, 4)
	require.ErrorIs(t, err, transform.ErrNilTransform)

	err = transform.TransformParallel(context.Background(), transform.Identity(2), buf, buf, 5)
	require.ErrorIs(t, err, transform.ErrBufferTooSmall)
}
