// SPDX-License-Identifier: MIT

// Package impliedvol: contract description and functional options.
package impliedvol

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvroot/solver"
)

// ---------- Defaults ----------

const (
	// DefaultGuess is the starting volatility of the search.
	DefaultGuess = 0.2
	// DefaultStep is the first bracket width around the guess.
	DefaultStep = 0.05
	// DefaultAccuracy is the tolerance on the price residual.
	DefaultAccuracy = 1e-8
)

// OptionType distinguishes calls from puts.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// ParseOptionType accepts "call"/"put" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(strings.ToUpper(strings.TrimSpace(s))) {
	case Call:
		return Call, nil
	case Put:
		return Put, nil
	}
	return "", fmt.Errorf("%w: option type %q", ErrInvalidContract, s)
}

// Contract is a European option under Black–Scholes–Merton dynamics.
type Contract struct {
	Type     OptionType
	Spot     float64 // underlying price
	Strike   float64
	Expiry   float64 // years to expiry
	Rate     float64 // continuously compounded risk-free rate
	Dividend float64 // continuous dividend yield
}

// Validate rejects contracts that cannot be priced.
func (c Contract) Validate() error {
	if c.Type != Call && c.Type != Put {
		return fmt.Errorf("%w: option type %q", ErrInvalidContract, c.Type)
	}
	if !(c.Spot > 0) || math.IsInf(c.Spot, 0) {
		return fmt.Errorf("%w: spot %g", ErrInvalidContract, c.Spot)
	}
	if !(c.Strike > 0) || math.IsInf(c.Strike, 0) {
		return fmt.Errorf("%w: strike %g", ErrInvalidContract, c.Strike)
	}
	if !(c.Expiry > 0) || math.IsInf(c.Expiry, 0) {
		return fmt.Errorf("%w: expiry %g", ErrInvalidContract, c.Expiry)
	}
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) || math.IsNaN(c.Dividend) || math.IsInf(c.Dividend, 0) {
		return fmt.Errorf("%w: rate %g, dividend %g", ErrInvalidContract, c.Rate, c.Dividend)
	}
	return nil
}

// ---------- Options ----------

// Options configures Solve.
type Options struct {
	strategy   solver.Strategy
	accuracy   float64
	guess      float64
	step       float64
	maxVol     float64 // 0 = unbounded
	solverOpts []solver.Option
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

// WithAccuracy sets the price tolerance. Panics unless acc > 0.
func WithAccuracy(acc float64) Option {
	if !(acc > 0) || math.IsInf(acc, 0) {
		panic("impliedvol: WithAccuracy: accuracy must be positive and finite")
	}
	return func(o *Options) { o.accuracy = acc }
}

// WithGuess sets the starting volatility. Panics unless v > 0.
func WithGuess(v float64) Option {
	if !(v > 0) || math.IsInf(v, 0) {
		panic("impliedvol: WithGuess: guess must be positive and finite")
	}
	return func(o *Options) { o.guess = v }
}

// WithStep sets the initial search step. Panics unless step > 0.
func WithStep(step float64) Option {
	if !(step > 0) || math.IsInf(step, 0) {
		panic("impliedvol: WithStep: step must be positive and finite")
	}
	return func(o *Options) { o.step = step }
}

// WithMaxVolatility caps the search; prices needing more fail to bracket.
// Panics unless v > 0.
func WithMaxVolatility(v float64) Option {
	if !(v > 0) || math.IsInf(v, 0) {
		panic("impliedvol: WithMaxVolatility: cap must be positive and finite")
	}
	return func(o *Options) { o.maxVol = v }
}

// WithSolverOptions forwards options (budget, logger, observer) to the solver.
// The volatility bounds are always applied after them.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(o *Options) { o.solverOpts = append(o.solverOpts, opts...) }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		strategy: solver.Brent{},
		accuracy: DefaultAccuracy,
		guess:    DefaultGuess,
		step:     DefaultStep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
