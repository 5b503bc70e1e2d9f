// SPDX-License-Identifier: MIT

package solver

import "math"

// Secant extrapolates linearly through the two most recent points, starting
// from the bracket endpoint with the smaller |f|.
//
// The bracket is narrowed after every evaluation. A candidate that falls
// outside it, or a step that failed to halve it, is replaced by the bracket
// midpoint, so the root stays inside [xMin, xMax].
type Secant struct{}

// Name returns "secant".
func (Secant) Name() string { return MethodSecant.String() }

// Refine implements Strategy.
func (Secant) Refine(f Function, accuracy float64, st *State) (float64, error) {
	var fl, froot, xl, x float64

	// Pick the bound with the smaller function value as the most recent guess.
	if math.Abs(st.FxMin) < math.Abs(st.FxMax) {
		st.Root, froot = st.XMin, st.FxMin
		xl, fl = st.XMax, st.FxMax
	} else {
		st.Root, froot = st.XMax, st.FxMax
		xl, fl = st.XMin, st.FxMin
	}

	width := math.Abs(st.XMax - st.XMin)
	bisect := false
	for st.Evaluations <= st.MaxEvaluations {
		lo, hi := math.Min(st.XMin, st.XMax), math.Max(st.XMin, st.XMax)
		x = math.NaN()
		if !bisect && froot != fl {
			x = st.Root - (st.Root-xl)*froot/(froot-fl)
		}
		// NaN fails both comparisons
		if !(x > lo && x < hi) {
			x = lo + (hi-lo)/2
		}

		xl, fl = st.Root, froot
		st.Root = x
		froot = st.Evaluate(f, st.Root)
		if err := st.Err(); err != nil {
			return 0, err
		}
		if math.Abs(froot) <= accuracy {
			return st.Root, nil
		}
		st.narrow(st.Root, froot)

		next := math.Abs(st.XMax - st.XMin)
		bisect = next > width/2
		width = next
	}

	st.Root = st.best()
	return 0, st.MaxEvaluationsError()
}
