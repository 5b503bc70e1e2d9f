// SPDX-License-Identifier: MIT

// Package cashflow: leg and rate types, IRR options.
package cashflow

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvroot/solver"
	"github.com/shopspring/decimal"
)

// Cashflow is a single payment. Time is in years from settlement; flows with
// Time < 0 have already been paid and are ignored by every analytic.
type Cashflow struct {
	Time   float64
	Amount decimal.Decimal
}

// Leg is a sequence of payments.
type Leg []Cashflow

// Validate rejects non-finite payment times.
func (l Leg) Validate() error {
	for i, cf := range l {
		if math.IsNaN(cf.Time) || math.IsInf(cf.Time, 0) {
			return fmt.Errorf("%w: cashflow %d time %g", ErrInvalidLeg, i, cf.Time)
		}
	}
	return nil
}

// Compounding selects how a Rate accrues.
type Compounding int

const (
	// Simple: 1 + r·t.
	Simple Compounding = iota
	// Compounded: (1 + r/f)^(f·t).
	Compounded
	// Continuous: e^(r·t).
	Continuous
)

var compoundingNames = [...]string{
	Simple:     "simple",
	Compounded: "compounded",
	Continuous: "continuous",
}

// String returns the lower-case name.
func (c Compounding) String() string {
	if c < 0 || int(c) >= len(compoundingNames) {
		return fmt.Sprintf("Compounding(%d)", int(c))
	}
	return compoundingNames[c]
}

// ParseCompounding maps "simple", "compounded" or "continuous" (any case).
func ParseCompounding(s string) (Compounding, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range compoundingNames {
		if n == key {
			return Compounding(i), nil
		}
	}
	return 0, fmt.Errorf("%w: compounding %q", ErrInvalidRate, s)
}

// Rate is a flat interest rate with its compounding convention.
// Frequency is the number of periods per year and matters only for Compounded.
type Rate struct {
	Value       float64
	Compounding Compounding
	Frequency   int
}

// Validate rejects unusable rates.
func (r Rate) Validate() error {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return fmt.Errorf("%w: value %g", ErrInvalidRate, r.Value)
	}
	switch r.Compounding {
	case Simple, Continuous:
		return nil
	case Compounded:
		if r.Frequency < 1 {
			return fmt.Errorf("%w: compounded rate needs frequency >= 1, got %d", ErrInvalidRate, r.Frequency)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidRate, r.Compounding)
}

// DiscountFactor returns the present value of 1 paid at t.
func (r Rate) DiscountFactor(t float64) float64 {
	switch r.Compounding {
	case Simple:
		return 1 / (1 + r.Value*t)
	case Compounded:
		n := float64(r.Frequency)
		return math.Pow(1+r.Value/n, -n*t)
	default:
		return math.Exp(-r.Value * t)
	}
}

// ---------- IRR options ----------

const (
	// DefaultIRRGuess is the starting yield of the IRR search.
	DefaultIRRGuess = 0.05
	// DefaultIRRAccuracy is the NPV tolerance of the IRR search.
	DefaultIRRAccuracy = 1e-10
	// DefaultIRRMaxEvaluations is the IRR evaluation budget.
	DefaultIRRMaxEvaluations = 10000
)

// Options configures IRR.
type Options struct {
	strategy       solver.Strategy
	guess          float64
	accuracy       float64
	maxEvaluations int
	solverOpts     []solver.Option
}

// Option mutates Options.
type Option func(*Options)

// WithStrategy selects the refinement strategy. Nil keeps Brent.
func WithStrategy(s solver.Strategy) Option {
	return func(o *Options) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithGuess sets the starting yield; the first step is guess/10.
// Panics if guess is zero or not finite.
func WithGuess(guess float64) Option {
	if guess == 0 || math.IsNaN(guess) || math.IsInf(guess, 0) {
		panic("cashflow: WithGuess: guess must be finite and non-zero")
	}
	return func(o *Options) { o.guess = guess }
}

// WithAccuracy sets the NPV tolerance. Panics unless acc > 0.
func WithAccuracy(acc float64) Option {
	if !(acc > 0) || math.IsInf(acc, 0) {
		panic("cashflow: WithAccuracy: accuracy must be positive and finite")
	}
	return func(o *Options) { o.accuracy = acc }
}

// WithMaxEvaluations sets the evaluation budget. Panics if n < 1.
func WithMaxEvaluations(n int) Option {
	if n < 1 {
		panic("cashflow: WithMaxEvaluations: n must be >= 1")
	}
	return func(o *Options) { o.maxEvaluations = n }
}

// WithSolverOptions forwards extra options (logger, observer) to the solver.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(o *Options) { o.solverOpts = append(o.solverOpts, opts...) }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		strategy:       solver.Brent{},
		guess:          DefaultIRRGuess,
		accuracy:       DefaultIRRAccuracy,
		maxEvaluations: DefaultIRRMaxEvaluations,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
