// SPDX-License-Identifier: MIT

// Package impliedvol backs out Black–Scholes–Merton implied volatilities
// with the solver package.
//
// 🚀 What is inside?
//
//	Contract            : European call/put with continuous rate and dividend.
//	Price, Vega, Bounds : closed-form premium, its vol derivative, and the
//	                      no-arbitrage premium range.
//	Solve               : price → volatility. The search is bounded below by
//	                      zero, so the pricer never sees a negative vol.
//
// ⚙️ Usage:
//
//	c := impliedvol.Contract{Type: impliedvol.Call, Spot: 100, Strike: 100, Expiry: 1, Rate: 0.05}
//	vol, err := impliedvol.Solve(c, 10.45,
//	    impliedvol.WithStrategy(solver.Newton{}), // vega is supplied
//	    impliedvol.WithSolverOptions(solver.WithMaxEvaluations(50)),
//	)
//
// Defaults: Brent, guess 0.2, step 0.05, price accuracy 1e-8.
package impliedvol
