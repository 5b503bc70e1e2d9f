// SPDX-License-Identifier: MIT

package cashflow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/solver"
	"github.com/shopspring/decimal"
)

// irrObjective is price - NPV(y) for a fixed leg and convention.
type irrObjective struct {
	leg   Leg
	price float64
	comp  Compounding
	freq  int
}

func (o irrObjective) rate(y float64) Rate {
	return Rate{Value: y, Compounding: o.comp, Frequency: o.freq}
}

func (o irrObjective) Value(y float64) float64 {
	return o.price - npvFloat(o.leg, o.rate(y))
}

func (o irrObjective) Derivative(y float64) float64 {
	r := o.rate(y)
	var d float64
	for _, cf := range o.leg {
		if cf.Time < 0 {
			continue
		}
		d -= cf.Amount.InexactFloat64() * r.discountDerivative(cf.Time)
	}
	return d
}

// IRR returns the rate, under the given compounding, at which the NPV of the
// outstanding flows equals marketPrice.
//
// Existence is checked first: the sequence (-marketPrice, flows...) must
// contain both signs, otherwise ErrNoSignChange. The search then starts from
// the guess (default 0.05) with step guess/10, accuracy 1e-10 and a budget of
// 10000 evaluations. For Simple and Compounded rates the yield is kept above
// the pole of the discount factor.
func IRR(leg Leg, marketPrice decimal.Decimal, comp Compounding, freq int, opts ...Option) (Rate, error) {
	if err := leg.Validate(); err != nil {
		return Rate{}, err
	}
	if err := (Rate{Compounding: comp, Frequency: freq}).Validate(); err != nil {
		return Rate{}, err
	}
	if err := checkSignChange(leg, marketPrice); err != nil {
		return Rate{}, err
	}

	o := gatherOptions(opts...)
	sopts := append([]solver.Option{}, o.solverOpts...)
	sopts = append(sopts, solver.WithMaxEvaluations(o.maxEvaluations))
	if low, ok := yieldFloor(leg, comp, freq); ok {
		sopts = append(sopts, solver.WithLowerBound(low))
	}

	f := irrObjective{leg: leg, price: marketPrice.InexactFloat64(), comp: comp, freq: freq}
	y, err := solver.Solve(o.strategy, f, o.accuracy, o.guess, math.Abs(o.guess)/10, sopts...)
	if err != nil {
		return Rate{}, fmt.Errorf("cashflow: irr for price %s: %w", marketPrice, err)
	}
	return f.rate(y), nil
}

func checkSignChange(leg Leg, marketPrice decimal.Decimal) error {
	var pos, neg bool
	switch marketPrice.Sign() {
	case 1:
		neg = true
	case -1:
		pos = true
	}
	for _, cf := range leg {
		if cf.Time < 0 {
			continue
		}
		switch cf.Amount.Sign() {
		case 1:
			pos = true
		case -1:
			neg = true
		}
	}
	if !(pos && neg) {
		return ErrNoSignChange
	}
	return nil
}

// yieldFloor keeps 1 + y/f (compounded) or 1 + y·t (simple) positive.
func yieldFloor(leg Leg, comp Compounding, freq int) (float64, bool) {
	const margin = 1 - 1e-8
	switch comp {
	case Compounded:
		return -float64(freq) * margin, true
	case Simple:
		var tMax float64
		for _, cf := range leg {
			tMax = math.Max(tMax, cf.Time)
		}
		if tMax > 0 {
			return -margin / tMax, true
		}
	}
	return 0, false
}
