// SPDX-License-Identifier: MIT

// Package transform: functional configuration for factories and numeric helpers.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves defaults.
//
// Design goals:
//   - Options configure construction and numeric helpers only. A constructed
//     Transform is immutable; nothing here can change it afterwards.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package transform

import (
	"log/slog"
	"math"
	"runtime"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDerivativeStep is the relative finite-difference step: the
	// absolute step for ordinate x is DefaultDerivativeStep * max(1, |x|).
	DefaultDerivativeStep = 1e-6

	// DefaultChunkSize is the number of points buffered per batch by the
	// generic concatenation, bounding its intermediate allocation.
	DefaultChunkSize = 512
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicStepInvalid    = "transform: WithDerivativeStep: step must be finite and > 0"
	panicStepsInvalid   = "transform: WithDerivativeSteps: every step must be finite and > 0"
	panicChunkInvalid   = "transform: WithChunkSize: size must be > 0"
	panicLoggerInvalid  = "transform: WithLogger: logger must not be nil"
	panicWorkersInvalid = "transform: WithWorkers: count must be > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	step      float64      // relative finite-difference step
	steps     []float64    // per-dimension override; nil means use step
	chunkSize int          // generic concatenation batch size
	logger    *slog.Logger // decision tracing; discards by default
	workers   int          // TransformParallel goroutine bound
}

// WithDerivativeStep sets the relative finite-difference step used by
// NumericDerivative and by leaf transforms without an analytic derivative.
// Panics when h is not finite or not strictly positive.
func WithDerivativeStep(h float64) Option {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		panic(panicStepInvalid)
	}

	return func(o *Options) {
		o.step = h
		o.steps = nil
	}
}

// WithDerivativeSteps sets one relative step per source dimension. The
// number of steps is checked against the transform at call time
// (ErrMismatchedDimension). Panics on a non-finite or non-positive step.
func WithDerivativeSteps(hs ...float64) Option {
	for _, h := range hs {
		if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
			panic(panicStepsInvalid)
		}
	}
	cp := append([]float64(nil), hs...)

	return func(o *Options) { o.steps = cp }
}

// WithChunkSize bounds the number of points per intermediate batch used by
// the generic concatenation. Panics when n <= 0.
func WithChunkSize(n int) Option {
	if n <= 0 {
		panic(panicChunkInvalid)
	}

	return func(o *Options) { o.chunkSize = n }
}

// WithLogger routes debug tracing of optimisation decisions (which
// concatenation branch, pass-through embedding, separation branch) to l.
// Panics when l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerInvalid)
	}

	return func(o *Options) { o.logger = l }
}

// WithWorkers bounds the number of goroutines TransformParallel runs.
// Panics when n <= 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		step:      DefaultDerivativeStep,
		chunkSize: DefaultChunkSize,
		logger:    slog.New(slog.DiscardHandler),
		workers:   runtime.GOMAXPROCS(0),
	}
}

// gatherOptions applies user-provided Option setters on top of defaults
// (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}

// stepFor returns the absolute finite-difference step for ordinate j at value x.
func (o *Options) stepFor(j int, x float64) float64 {
	h := o.step
	if o.steps != nil {
		h = o.steps[j]
	}
	if ax := math.Abs(x); ax > 1 {
		h *= ax
	}

	return h
}
