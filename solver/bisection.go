// SPDX-License-Identifier: MIT

package solver

import "math"

// Bisection halves the bracket on every evaluation.
//
// Orientation: the search walks from the endpoint where f < 0. It returns
// the first midpoint with |f| <= accuracy; a bracket that collapses before
// that runs out the evaluation budget.
//
// Complexity: about log2((xMax-xMin)·|f'(root)|/accuracy) evaluations.
type Bisection struct{}

// Name returns "bisection".
func (Bisection) Name() string { return MethodBisection.String() }

// Refine implements Strategy.
func (Bisection) Refine(f Function, accuracy float64, st *State) (float64, error) {
	var dx, xMid, fMid float64

	if st.FxMin < 0 {
		dx = st.XMax - st.XMin
		st.Root = st.XMin
	} else {
		dx = st.XMin - st.XMax
		st.Root = st.XMax
	}

	for st.Evaluations <= st.MaxEvaluations {
		dx /= 2
		xMid = st.Root + dx
		fMid = st.Evaluate(f, xMid)
		if err := st.Err(); err != nil {
			return 0, err
		}

		if math.Abs(fMid) <= accuracy {
			st.Root = xMid
			return xMid, nil
		}
		if fMid < 0 {
			st.Root = xMid
		}
		st.narrow(xMid, fMid)
	}

	st.Root = st.best()
	return 0, st.MaxEvaluationsError()
}
