// SPDX-License-Identifier: MIT
package impliedvol_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/lvroot/impliedvol"
	"github.com/katalvlaran/lvroot/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var atm = impliedvol.Contract{Type: impliedvol.Call, Spot: 100, Strike: 100, Expiry: 1, Rate: 0.05}

// TestPrice_KnownValues checks the textbook at-the-money quotes.
func TestPrice_KnownValues(t *testing.T) {
	assert.InDelta(t, 10.450583572185565, impliedvol.Price(atm, 0.2), 1e-9)

	put := atm
	put.Type = impliedvol.Put
	assert.InDelta(t, 5.573526022256971, impliedvol.Price(put, 0.2), 1e-9)
}

// TestPrice_PutCallParity holds for any vol, with dividends.
func TestPrice_PutCallParity(t *testing.T) {
	call := impliedvol.Contract{Type: impliedvol.Call, Spot: 95, Strike: 105, Expiry: 0.75, Rate: 0.03, Dividend: 0.01}
	put := call
	put.Type = impliedvol.Put

	fwd := call.Spot*math.Exp(-call.Dividend*call.Expiry) - call.Strike*math.Exp(-call.Rate*call.Expiry)
	for _, vol := range []float64{0.05, 0.2, 0.8} {
		assert.InDelta(t, fwd, impliedvol.Price(call, vol)-impliedvol.Price(put, vol), 1e-10)
	}
}

// TestPrice_ZeroVolIsIntrinsic covers the vol <= 0 branch.
func TestPrice_ZeroVolIsIntrinsic(t *testing.T) {
	c := impliedvol.Contract{Type: impliedvol.Call, Spot: 120, Strike: 100, Expiry: 1}
	assert.Equal(t, 20.0, impliedvol.Price(c, 0))
	c.Type = impliedvol.Put
	assert.Equal(t, 0.0, impliedvol.Price(c, 0))
	assert.Zero(t, impliedvol.Vega(c, 0))
}

// TestVega_MatchesFiniteDifference checks the analytic derivative.
func TestVega_MatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	for _, vol := range []float64{0.1, 0.3, 0.9} {
		fd := (impliedvol.Price(atm, vol+h) - impliedvol.Price(atm, vol-h)) / (2 * h)
		assert.InDelta(t, fd, impliedvol.Vega(atm, vol), 1e-5)
	}
}

// TestSolve_RoundTrip recovers the volatility used to price, for each strategy.
func TestSolve_RoundTrip(t *testing.T) {
	strategies := []solver.Strategy{
		solver.Brent{}, solver.Bisection{}, solver.Secant{}, solver.FalsePosition{},
		solver.Ridder{}, solver.Newton{}, solver.NewtonSafe{},
	}
	contracts := []impliedvol.Contract{
		atm,
		{Type: impliedvol.Put, Spot: 100, Strike: 110, Expiry: 0.5, Rate: 0.02, Dividend: 0.01},
		{Type: impliedvol.Call, Spot: 100, Strike: 90, Expiry: 2, Rate: 0.01},
	}
	vols := []float64{0.17, 0.3, 0.55}

	for _, st := range strategies {
		for i, c := range contracts {
			for _, vol := range vols {
				t.Run(fmt.Sprintf("%s/%d/%g", st.Name(), i, vol), func(t *testing.T) {
					price := impliedvol.Price(c, vol)
					got, err := impliedvol.Solve(c, price,
						impliedvol.WithStrategy(st),
						impliedvol.WithSolverOptions(solver.WithMaxEvaluations(500)),
					)
					require.NoError(t, err)
					assert.InDelta(t, vol, got, 1e-6)
				})
			}
		}
	}
}

// TestSolve_PriceOutOfBounds rejects arbitrageable quotes without solving.
func TestSolve_PriceOutOfBounds(t *testing.T) {
	lower, upper := impliedvol.Bounds(atm)
	for _, p := range []float64{0, lower, upper, upper + 1, -1, math.NaN()} {
		_, err := impliedvol.Solve(atm, p)
		assert.ErrorIs(t, err, impliedvol.ErrPriceOutOfBounds, "price %g", p)
	}
}

// TestSolve_InvalidContract validates before anything else.
func TestSolve_InvalidContract(t *testing.T) {
	bad := atm
	bad.Spot = 0
	_, err := impliedvol.Solve(bad, 5)
	require.ErrorIs(t, err, impliedvol.ErrInvalidContract)

	bad = atm
	bad.Type = "STRADDLE"
	_, err = impliedvol.Solve(bad, 5)
	require.ErrorIs(t, err, impliedvol.ErrInvalidContract)

	bad = atm
	bad.Expiry = math.Inf(1)
	require.ErrorIs(t, bad.Validate(), impliedvol.ErrInvalidContract)
}

// TestSolve_MaxVolatilityCap makes high-vol prices fail to bracket.
func TestSolve_MaxVolatilityCap(t *testing.T) {
	price := impliedvol.Price(atm, 0.6)

	_, err := impliedvol.Solve(atm, price,
		impliedvol.WithMaxVolatility(0.3),
		impliedvol.WithSolverOptions(solver.WithMaxEvaluations(30)),
	)
	require.ErrorIs(t, err, solver.ErrBracketingFailed)
	assert.Contains(t, err.Error(), "impliedvol: CALL")
}

// TestSolve_NeverEvaluatesNegativeVol lets the downward search hit the zero bound.
func TestSolve_NeverEvaluatesNegativeVol(t *testing.T) {
	c := impliedvol.Contract{Type: impliedvol.Call, Spot: 100, Strike: 100, Expiry: 1}
	price := impliedvol.Price(c, 0.05)
	obs := &lastReport{}

	// 0.5 → 0.1 → 0.1+1.6*(0.1-0.5) < 0, clamped to 0
	vol, err := impliedvol.Solve(c, price,
		impliedvol.WithGuess(0.5), impliedvol.WithStep(0.4),
		impliedvol.WithSolverOptions(solver.WithObserver(obs)),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, vol, 1e-6)
	assert.GreaterOrEqual(t, obs.r.Root, 0.0)
	assert.NoError(t, obs.r.Err)
}

type lastReport struct{ r solver.Report }

func (l *lastReport) ObserveSolve(r solver.Report) { l.r = r }

// TestOptions_Panics covers invalid option values.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { impliedvol.WithAccuracy(0) })
	assert.Panics(t, func() { impliedvol.WithGuess(-0.1) })
	assert.Panics(t, func() { impliedvol.WithStep(math.NaN()) })
	assert.Panics(t, func() { impliedvol.WithMaxVolatility(math.Inf(1)) })
	assert.NotPanics(t, func() { impliedvol.WithStrategy(nil) })
}

// TestParseOptionType accepts both spellings in any case.
func TestParseOptionType(t *testing.T) {
	got, err := impliedvol.ParseOptionType(" call ")
	require.NoError(t, err)
	assert.Equal(t, impliedvol.Call, got)

	got, err = impliedvol.ParseOptionType("Put")
	require.NoError(t, err)
	assert.Equal(t, impliedvol.Put, got)

	_, err = impliedvol.ParseOptionType("swaption")
	assert.ErrorIs(t, err, impliedvol.ErrInvalidContract)
}
