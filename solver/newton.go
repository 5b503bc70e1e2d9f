// SPDX-License-Identifier: MIT

package solver

import "math"

// Newton takes full Newton–Raphson steps x ← x − f(x)/f'(x) from the State
// root. When a step would leave the bracket, or the derivative vanishes, the
// remaining budget is handed to NewtonSafe on the same State.
//
// The objective must implement Differentiable; one Value+Derivative pair
// counts as a single evaluation. Only |f(root)| <= accuracy ends the search.
type Newton struct{}

// Name returns "newton".
func (Newton) Name() string { return MethodNewton.String() }

// Refine implements Strategy.
func (Newton) Refine(f Function, accuracy float64, st *State) (float64, error) {
	df, ok := f.(Differentiable)
	if !ok {
		return 0, derivativeRequiredError(MethodNewton.String())
	}

	var froot, dfroot, dx float64

	froot = st.Evaluate(f, st.Root)
	dfroot = df.Derivative(st.Root)
	if err := st.Err(); err != nil {
		return 0, err
	}

	for st.Evaluations <= st.MaxEvaluations {
		if math.Abs(froot) <= accuracy {
			return st.Root, nil
		}
		if dfroot == 0 || math.IsNaN(dfroot) {
			return NewtonSafe{}.Refine(f, accuracy, st)
		}

		dx = froot / dfroot
		st.Root -= dx
		// jumped out of brackets, switch to NewtonSafe
		if (st.XMin-st.Root)*(st.Root-st.XMax) < 0 {
			st.Root += dx
			return NewtonSafe{}.Refine(f, accuracy, st)
		}

		froot = st.Evaluate(f, st.Root)
		dfroot = df.Derivative(st.Root)
		if err := st.Err(); err != nil {
			return 0, err
		}
	}

	return 0, st.MaxEvaluationsError()
}

// NewtonSafe is Newton–Raphson with a bisection safeguard: whenever the
// Newton step would leave the current bracket, or would not halve |f| fast
// enough, it bisects instead. The bracket shrinks on every evaluation.
//
// The objective must implement Differentiable.
type NewtonSafe struct{}

// Name returns "newtonsafe".
func (NewtonSafe) Name() string { return MethodNewtonSafe.String() }

// Refine implements Strategy.
func (NewtonSafe) Refine(f Function, accuracy float64, st *State) (float64, error) {
	df, ok := f.(Differentiable)
	if !ok {
		return 0, derivativeRequiredError(MethodNewtonSafe.String())
	}

	var froot, dfroot, dx, dxold, xh, xl float64

	// Orient the search so that f(xl) < 0
	if st.FxMin < 0 {
		xl, xh = st.XMin, st.XMax
	} else {
		xh, xl = st.XMin, st.XMax
	}

	// the "stepsize before last"
	dxold = st.XMax - st.XMin
	// and the last step
	dx = dxold

	froot = st.Evaluate(f, st.Root)
	dfroot = df.Derivative(st.Root)
	if err := st.Err(); err != nil {
		return 0, err
	}

	for st.Evaluations <= st.MaxEvaluations {
		if math.Abs(froot) <= accuracy {
			return st.Root, nil
		}

		// Bisect if (out of range || not decreasing fast enough)
		if ((st.Root-xh)*dfroot-froot)*((st.Root-xl)*dfroot-froot) > 0 ||
			math.Abs(2*froot) > math.Abs(dxold*dfroot) {
			dxold = dx
			dx = (xh - xl) / 2
			st.Root = xl + dx
		} else {
			dxold = dx
			dx = froot / dfroot
			st.Root -= dx
		}

		froot = st.Evaluate(f, st.Root)
		dfroot = df.Derivative(st.Root)
		if err := st.Err(); err != nil {
			return 0, err
		}
		if froot < 0 {
			xl = st.Root
		} else {
			xh = st.Root
		}
		st.narrow(st.Root, froot)
	}

	return 0, st.MaxEvaluationsError()
}
