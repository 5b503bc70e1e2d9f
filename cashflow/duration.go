// SPDX-License-Identifier: MIT

package cashflow

import "fmt"

// DurationType selects the duration flavour.
type DurationType int

const (
	// SimpleDuration is Σ t·c·B(t) / Σ c·B(t).
	SimpleDuration DurationType = iota
	// MacaulayDuration is (1 + y/N)·Modified for compounded rates.
	MacaulayDuration
	// ModifiedDuration is -(1/P)·∂P/∂y.
	ModifiedDuration
)

// Duration of the outstanding flows at rate r.
// Macaulay is defined for Compounded and Continuous rates only.
func Duration(leg Leg, r Rate, typ DurationType) (float64, error) {
	p, err := presentValue(leg, r)
	if err != nil {
		return 0, err
	}

	switch typ {
	case SimpleDuration:
		var s float64
		for _, cf := range leg {
			if cf.Time < 0 {
				continue
			}
			s += cf.Time * cf.Amount.InexactFloat64() * r.DiscountFactor(cf.Time)
		}
		return s / p, nil

	case ModifiedDuration:
		return modified(leg, r, p), nil

	case MacaulayDuration:
		switch r.Compounding {
		case Compounded:
			return (1 + r.Value/float64(r.Frequency)) * modified(leg, r, p), nil
		case Continuous:
			return modified(leg, r, p), nil
		}
		return 0, fmt.Errorf("%w: Macaulay duration needs a compounded or continuous rate, got %s", ErrInvalidRate, r.Compounding)
	}
	return 0, fmt.Errorf("cashflow: unknown duration type %d", int(typ))
}

// Convexity is (1/P)·∂²P/∂y².
func Convexity(leg Leg, r Rate) (float64, error) {
	p, err := presentValue(leg, r)
	if err != nil {
		return 0, err
	}
	var s float64
	for _, cf := range leg {
		if cf.Time < 0 {
			continue
		}
		s += cf.Amount.InexactFloat64() * r.discountSecondDerivative(cf.Time)
	}
	return s / p, nil
}

func presentValue(leg Leg, r Rate) (float64, error) {
	if err := leg.Validate(); err != nil {
		return 0, err
	}
	if err := r.Validate(); err != nil {
		return 0, err
	}
	p := npvFloat(leg, r)
	if p == 0 {
		return 0, ErrZeroNPV
	}
	return p, nil
}

func modified(leg Leg, r Rate, p float64) float64 {
	var s float64
	for _, cf := range leg {
		if cf.Time < 0 {
			continue
		}
		s += cf.Amount.InexactFloat64() * r.discountDerivative(cf.Time)
	}
	return -s / p
}

// discountDerivative is ∂B/∂y at t.
func (r Rate) discountDerivative(t float64) float64 {
	b := r.DiscountFactor(t)
	switch r.Compounding {
	case Simple:
		return -t * b * b
	case Compounded:
		return -t * b / (1 + r.Value/float64(r.Frequency))
	default:
		return -t * b
	}
}

// discountSecondDerivative is ∂²B/∂y² at t.
func (r Rate) discountSecondDerivative(t float64) float64 {
	b := r.DiscountFactor(t)
	switch r.Compounding {
	case Simple:
		return 2 * t * t * b * b * b
	case Compounded:
		n := float64(r.Frequency)
		g := 1 + r.Value/n
		return t * (t + 1/n) * b / (g * g)
	default:
		return t * t * b
	}
}
