// SPDX-License-Identifier: MIT

// Package solver: objective interfaces, functional options and documented
// defaults. Options are gathered once per Solver and never mutated by a solve
// call; all per-call state lives in State (state.go).
package solver

import (
	"log/slog"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxEvaluations is the evaluation ceiling when WithMaxEvaluations is not used.
	DefaultMaxEvaluations = 100

	// GrowthFactor is the ratio by which the guess/step search widens the
	// bracket on the side closer to a sign change.
	GrowthFactor = 1.6
)

// MachineEpsilon is the spacing between 1.0 and the next float64.
// Refinement never targets an accuracy finer than this.
var MachineEpsilon = math.Nextafter(1.0, 2.0) - 1.0

// ---------- Objective ----------

// Function is a real-valued objective of one real variable.
// Each call to Value is one evaluation and counts against the budget.
type Function interface {
	Value(x float64) float64
}

// Differentiable is a Function that also exposes its first derivative.
// Newton and NewtonSafe require it.
type Differentiable interface {
	Function
	Derivative(x float64) float64
}

// Func adapts a plain closure to Function.
type Func func(x float64) float64

// Value calls f(x).
func (f Func) Value(x float64) float64 { return f(x) }

// FuncWithDerivative pairs a closure with its derivative.
type FuncWithDerivative struct {
	F  func(x float64) float64
	DF func(x float64) float64
}

// Value calls F(x).
func (f FuncWithDerivative) Value(x float64) float64 { return f.F(x) }

// Derivative calls DF(x).
func (f FuncWithDerivative) Derivative(x float64) float64 { return f.DF(x) }

// ---------- Observation ----------

// Report summarises one solve call for an Observer.
type Report struct {
	Method      string  // Strategy.Name()
	Evaluations int     // evaluations spent, including bracketing
	Root        float64 // zero when Err != nil
	Err         error   // nil on success
}

// Observer receives one Report per solve call. Implementations must be safe
// for concurrent use when the Solver is shared between goroutines.
type Observer interface {
	ObserveSolve(r Report)
}

// ---------- Options ----------

const (
	panicMaxEvaluationsInvalid = "solver: WithMaxEvaluations: n must be >= 1"
	panicBoundInvalid          = "solver: bound must be finite"
)

// Options holds solver configuration. Fields are unexported; use the WithX
// constructors.
type Options struct {
	maxEvaluations int

	lowBoundEnforced bool
	lowBound         float64
	hiBoundEnforced  bool
	hiBound          float64

	logger   *slog.Logger
	observer Observer
}

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// WithMaxEvaluations sets the ceiling on objective evaluations per solve call.
// Panics if n < 1.
func WithMaxEvaluations(n int) Option {
	if n < 1 {
		panic(panicMaxEvaluationsInvalid)
	}
	return func(o *Options) {
		o.maxEvaluations = n
	}
}

// WithLowerBound enforces x >= low: the search never evaluates below it.
// Panics if low is NaN or infinite.
func WithLowerBound(low float64) Option {
	if math.IsNaN(low) || math.IsInf(low, 0) {
		panic(panicBoundInvalid)
	}
	return func(o *Options) {
		o.lowBoundEnforced = true
		o.lowBound = low
	}
}

// WithUpperBound enforces x <= hi: the search never evaluates above it.
// Panics if hi is NaN or infinite.
func WithUpperBound(hi float64) Option {
	if math.IsNaN(hi) || math.IsInf(hi, 0) {
		panic(panicBoundInvalid)
	}
	return func(o *Options) {
		o.hiBoundEnforced = true
		o.hiBound = hi
	}
}

// WithoutLowerBound disables a previously enforced lower bound.
func WithoutLowerBound() Option {
	return func(o *Options) {
		o.lowBoundEnforced = false
		o.lowBound = 0
	}
}

// WithoutUpperBound disables a previously enforced upper bound.
func WithoutUpperBound() Option {
	return func(o *Options) {
		o.hiBoundEnforced = false
		o.hiBound = 0
	}
}

// WithLogger routes a Debug-level trace of bracketing and outcomes to l.
// A nil logger keeps the solver silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

// WithObserver registers obs to receive a Report after every solve call.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.observer = obs
	}
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{maxEvaluations: DefaultMaxEvaluations}
}

// gatherOptions applies opts over the defaults in order (last writer wins).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// MaxEvaluations reports the configured evaluation ceiling.
func (o Options) MaxEvaluations() int { return o.maxEvaluations }

// LowerBound reports the lower bound and whether it is enforced.
func (o Options) LowerBound() (float64, bool) { return o.lowBound, o.lowBoundEnforced }

// UpperBound reports the upper bound and whether it is enforced.
func (o Options) UpperBound() (float64, bool) { return o.hiBound, o.hiBoundEnforced }
