// SPDX-License-Identifier: MIT

package solver

import "math"

// Ridder fits an exponential through the endpoints and the midpoint, which
// gives quadratic convergence while keeping the bracket.
//
// Each iteration spends two evaluations, the midpoint and the fitted root,
// and either one may end the search with |f| <= accuracy.
type Ridder struct{}

// Name returns "ridder".
func (Ridder) Name() string { return MethodRidder.String() }

// Refine implements Strategy.
func (Ridder) Refine(f Function, accuracy float64, st *State) (float64, error) {
	var fxMid, froot, s, xMid float64

	for st.Evaluations <= st.MaxEvaluations {
		xMid = 0.5 * (st.XMin + st.XMax)
		// first of two function evaluations per iteration
		fxMid = st.Evaluate(f, xMid)
		if err := st.Err(); err != nil {
			return 0, err
		}
		if math.Abs(fxMid) <= accuracy {
			st.Root = xMid
			return xMid, nil
		}

		s = math.Sqrt(fxMid*fxMid - st.FxMin*st.FxMax)
		if s == 0 {
			// the product underflowed; fall back to a bisection step
			st.Root = xMid
			st.narrow(xMid, fxMid)
			continue
		}

		// updating formula
		dir := -1.0
		if st.FxMin >= st.FxMax {
			dir = 1.0
		}
		st.Root = xMid + (xMid-st.XMin)*(dir*fxMid/s)
		// second of two function evaluations per iteration
		froot = st.Evaluate(f, st.Root)
		if err := st.Err(); err != nil {
			return 0, err
		}
		if math.Abs(froot) <= accuracy {
			return st.Root, nil
		}

		// bookkeeping to keep the root bracketed on next iteration
		switch {
		case sign(fxMid, froot) != fxMid:
			st.XMin, st.FxMin = xMid, fxMid
			st.XMax, st.FxMax = st.Root, froot
		case sign(st.FxMin, froot) != st.FxMin:
			st.XMax, st.FxMax = st.Root, froot
		case sign(st.FxMax, froot) != st.FxMax:
			st.XMin, st.FxMin = st.Root, froot
		default:
			return 0, stalledError(st, st.Root, froot)
		}
	}

	st.Root = st.best()
	return 0, st.MaxEvaluationsError()
}
