// SPDX-License-Identifier: MIT

package impliedvol

import "math"

// Price returns the Black–Scholes–Merton premium of c at volatility vol.
// A non-positive vol prices the discounted intrinsic value.
func Price(c Contract, vol float64) float64 {
	fwdSpot := c.Spot * math.Exp(-c.Dividend*c.Expiry)
	pvStrike := c.Strike * math.Exp(-c.Rate*c.Expiry)

	if vol <= 0 {
		if c.Type == Call {
			return math.Max(fwdSpot-pvStrike, 0)
		}
		return math.Max(pvStrike-fwdSpot, 0)
	}

	d1, d2 := d1d2(c, vol)
	if c.Type == Call {
		return fwdSpot*normCdf(d1) - pvStrike*normCdf(d2)
	}
	return pvStrike*normCdf(-d2) - fwdSpot*normCdf(-d1)
}

// Vega is ∂Price/∂vol; zero for a non-positive vol.
func Vega(c Contract, vol float64) float64 {
	if vol <= 0 {
		return 0
	}
	d1, _ := d1d2(c, vol)
	return c.Spot * math.Exp(-c.Dividend*c.Expiry) * normPdf(d1) * math.Sqrt(c.Expiry)
}

// Bounds returns the no-arbitrage premium range (lower, upper) for c.
func Bounds(c Contract) (lower, upper float64) {
	fwdSpot := c.Spot * math.Exp(-c.Dividend*c.Expiry)
	pvStrike := c.Strike * math.Exp(-c.Rate*c.Expiry)
	if c.Type == Call {
		return math.Max(fwdSpot-pvStrike, 0), fwdSpot
	}
	return math.Max(pvStrike-fwdSpot, 0), pvStrike
}

func d1d2(c Contract, vol float64) (float64, float64) {
	sdev := vol * math.Sqrt(c.Expiry)
	d1 := (math.Log(c.Spot/c.Strike) + (c.Rate-c.Dividend+0.5*vol*vol)*c.Expiry) / sdev
	return d1, d1 - sdev
}

// normCdf is the standard normal cumulative distribution function.
func normCdf(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// normPdf is the standard normal probability density function.
func normPdf(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
