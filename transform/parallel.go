// SPDX-License-Identifier: MIT

// Package transform - TransformParallel: bulk transform fanned out over
// goroutines.
//
// Purpose:
//   - Large disjoint buffers (tiles, point clouds) are cut into
//     WithChunkSize batches and transformed by at most WithWorkers
//     goroutines sharing the one immutable Transform.
//
// Contract:
//   - Same failure contract as TransformBuffer: the lowest failing index
//     is reported as a *PointError and every point before it is complete.
//     A failing batch does not stop the others.
//   - Buffers that share storage are not split; the call degrades to the
//     sequential, overlap-safe TransformBuffer.
//   - Cancelling ctx stops scheduling batches and returns ctx.Err().
package transform

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// TransformParallel transforms numPts points from src[0:] into dst[0:].
//
// Errors:
//   - ErrNilTransform, ErrBufferTooSmall.
//   - *PointError for the lowest failing point.
//   - ctx.Err() when ctx is done before all batches ran.
func TransformParallel(ctx context.Context, t Transform, src, dst []float64, numPts int, opts ...Option) error {
	if t == nil {
		return transformErrorf(opParallel, ErrNilTransform)
	}
	srcDim, dstDim := t.SourceDimensions(), t.TargetDimensions()
	if err := checkBuffers(src, 0, srcDim, dst, 0, dstDim, numPts); err != nil {
		return transformErrorf(opParallel, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	o := gatherOptions(opts...)
	size := o.chunkSize
	_, shared := sharedFrame(src[:numPts*srcDim], dst[:numPts*dstDim])
	if shared || o.workers == 1 || numPts <= size {
		o.logger.Debug("parallel", slog.Bool("sequential", true), slog.Bool("shared", shared), slog.Int("points", numPts))
		return t.TransformBuffer(src, 0, dst, 0, numPts)
	}

	batches := (numPts + size - 1) / size
	o.logger.Debug("parallel",
		slog.Int("points", numPts),
		slog.Int("batches", batches),
		slog.Int("workers", o.workers))

	failed := make([]error, batches)
	var g errgroup.Group
	g.SetLimit(o.workers)
	for b := 0; b < batches && ctx.Err() == nil; b++ {
		lo := b * size
		cnt := min(size, numPts-lo)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := t.TransformBuffer(src[lo*srcDim:(lo+cnt)*srcDim], 0, dst[lo*dstDim:(lo+cnt)*dstDim], 0, cnt)
			if err != nil {
				failed[b] = shiftPointError(err, lo)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range failed {
		if err != nil {
			return err
		}
	}

	return nil
}
