// SPDX-License-Identifier: MIT

package solver

import "math"

// FalsePosition (regula falsi) interpolates linearly between the bracket
// endpoints and keeps whichever side preserves the sign change.
//
// When the same endpoint moves twice in a row, the value kept for the
// other endpoint is halved (the Illinois modification), so a strongly
// convex objective cannot pin the iteration to one side.
type FalsePosition struct{}

// Name returns "falseposition".
func (FalsePosition) Name() string { return MethodFalsePosition.String() }

// Refine implements Strategy.
func (FalsePosition) Refine(f Function, accuracy float64, st *State) (float64, error) {
	var fl, fh, xl, xh, froot float64

	// Identify the limits so that xl corresponds to the low value.
	if st.FxMin < 0 {
		xl, fl = st.XMin, st.FxMin
		xh, fh = st.XMax, st.FxMax
	} else {
		xl, fl = st.XMax, st.FxMax
		xh, fh = st.XMin, st.FxMin
	}

	side := 0 // -1: xl moved last, +1: xh moved last
	for st.Evaluations <= st.MaxEvaluations {
		st.Root = xl + (xh-xl)*fl/(fl-fh)
		froot = st.Evaluate(f, st.Root)
		if err := st.Err(); err != nil {
			return 0, err
		}
		if math.Abs(froot) <= accuracy {
			return st.Root, nil
		}

		if froot < 0 {
			xl, fl = st.Root, froot
			if side < 0 {
				fh /= 2
			}
			side = -1
		} else {
			xh, fh = st.Root, froot
			if side > 0 {
				fl /= 2
			}
			side = 1
		}
		st.narrow(st.Root, froot)
	}

	st.Root = st.best()
	return 0, st.MaxEvaluationsError()
}
