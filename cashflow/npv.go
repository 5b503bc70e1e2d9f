// SPDX-License-Identifier: MIT

package cashflow

import "github.com/shopspring/decimal"

// NPV is the sum of the outstanding flows discounted at r.
// Amounts are accumulated in decimal; discount factors are float64.
func NPV(leg Leg, r Rate) (decimal.Decimal, error) {
	if err := leg.Validate(); err != nil {
		return decimal.Zero, err
	}
	if err := r.Validate(); err != nil {
		return decimal.Zero, err
	}
	return npv(leg, r), nil
}

func npv(leg Leg, r Rate) decimal.Decimal {
	total := decimal.Zero
	for _, cf := range leg {
		if cf.Time < 0 {
			continue
		}
		total = total.Add(cf.Amount.Mul(decimal.NewFromFloat(r.DiscountFactor(cf.Time))))
	}
	return total
}

// npvFloat is the hot-path variant used inside the solver loop.
func npvFloat(leg Leg, r Rate) float64 {
	var total float64
	for _, cf := range leg {
		if cf.Time < 0 {
			continue
		}
		total += cf.Amount.InexactFloat64() * r.DiscountFactor(cf.Time)
	}
	return total
}
