// SPDX-License-Identifier: MIT

package impliedvol

import (
	"fmt"

	"github.com/katalvlaran/lvroot/solver"
)

// Objective is Price(vol) - target for a fixed contract. It implements
// solver.Differentiable, so the Newton family can use vega directly.
type Objective struct {
	Contract Contract
	Target   float64
}

// Value returns the pricing residual at vol.
func (o Objective) Value(vol float64) float64 { return Price(o.Contract, vol) - o.Target }

// Derivative returns vega at vol.
func (o Objective) Derivative(vol float64) float64 { return Vega(o.Contract, vol) }

var _ solver.Differentiable = Objective{}

// Solve returns the volatility at which c prices to price.
//
// Steps:
//  1. Validate the contract.
//  2. Reject prices outside (lower, upper) from Bounds: no volatility
//     reproduces them, and a price equal to intrinsic has no unique answer.
//  3. Search from the guess with the volatility kept >= 0 (and <= the cap
//     from WithMaxVolatility), then refine to the requested accuracy.
//
// Solver failures are wrapped, so errors.Is(err, solver.ErrBracketingFailed)
// and friends keep working.
func Solve(c Contract, price float64, opts ...Option) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	lower, upper := Bounds(c)
	if !(price > lower && price < upper) {
		return 0, fmt.Errorf("%w: price %g not in (%g, %g)", ErrPriceOutOfBounds, price, lower, upper)
	}

	o := gatherOptions(opts...)
	sopts := append([]solver.Option{}, o.solverOpts...)
	sopts = append(sopts, solver.WithLowerBound(0))
	if o.maxVol > 0 {
		sopts = append(sopts, solver.WithUpperBound(o.maxVol))
	}

	vol, err := solver.Solve(o.strategy, Objective{Contract: c, Target: price}, o.accuracy, o.guess, o.step, sopts...)
	if err != nil {
		return 0, fmt.Errorf("impliedvol: %s price %g strike %g: %w", c.Type, price, c.Strike, err)
	}
	return vol, nil
}
