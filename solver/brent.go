// SPDX-License-Identifier: MIT

package solver

import "math"

// Brent combines inverse quadratic interpolation with bisection: an
// interpolated step is accepted only when it falls well inside the bracket
// and shrinks faster than bisection would; otherwise the step bisects.
//
// Only a residual |f(Root)| <= accuracy ends the search. Once the bracket is
// narrower than the step tolerance the step bisects, so the estimate never
// leaves [XMin, XMax].
//
// The search starts from the State root (the guess, or the bracket midpoint
// after a guess/step search), so a good guess saves evaluations.
//
// Working points (as in the classic zeroin):
//   - Root : best estimate so far, |f(Root)| <= |f(XMax)|;
//   - XMin : previous estimate;
//   - XMax : contrapoint, f(XMax) has the opposite sign of f(Root).
type Brent struct{}

// Name returns "brent".
func (Brent) Name() string { return MethodBrent.String() }

// Refine implements Strategy.
func (Brent) Refine(f Function, accuracy float64, st *State) (float64, error) {
	var min1, min2, froot, p, q, r, s, xAcc1, xMid, d, e float64

	froot = st.Evaluate(f, st.Root)
	if err := st.Err(); err != nil {
		return 0, err
	}
	if math.Abs(froot) <= accuracy {
		return st.Root, nil
	}

	// Keep the endpoint that still brackets the root against the guess.
	if froot*st.FxMin < 0 {
		st.XMax, st.FxMax = st.XMin, st.FxMin
	} else {
		st.XMin, st.FxMin = st.XMax, st.FxMax
	}
	d = st.XMin - st.XMax
	e = d

	for st.Evaluations <= st.MaxEvaluations {
		if (froot > 0 && st.FxMax > 0) || (froot < 0 && st.FxMax < 0) {
			// Rename XMin, Root, XMax and adjust bounds
			st.XMax, st.FxMax = st.XMin, st.FxMin
			d = st.Root - st.XMin
			e = d
		}
		if math.Abs(st.FxMax) < math.Abs(froot) {
			st.XMin, st.FxMin = st.Root, froot
			st.Root, froot = st.XMax, st.FxMax
			st.XMax, st.FxMax = st.XMin, st.FxMin
		}

		// Convergence check
		if math.Abs(froot) <= accuracy {
			return st.Root, nil
		}
		xAcc1 = 2*MachineEpsilon*math.Abs(st.Root) + 0.5*accuracy
		xMid = (st.XMax - st.Root) / 2
		narrow := math.Abs(xMid) <= xAcc1

		if !narrow && math.Abs(e) >= xAcc1 && math.Abs(st.FxMin) > math.Abs(froot) {
			// Attempt inverse quadratic interpolation
			s = froot / st.FxMin
			if st.XMin == st.XMax {
				p = 2 * xMid * s
				q = 1 - s
			} else {
				q = st.FxMin / st.FxMax
				r = froot / st.FxMax
				p = s * (2*xMid*q*(q-r) - (st.Root-st.XMin)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				// Check whether in bounds
				q = -q
			}
			p = math.Abs(p)
			min1 = 3*xMid*q - math.Abs(xAcc1*q)
			min2 = math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				// Accept interpolation
				e = d
				d = p / q
			} else {
				// Interpolation failed, use bisection
				d = xMid
				e = d
			}
		} else {
			// Bounds decreasing too slowly, use bisection
			d = xMid
			e = d
		}

		st.XMin, st.FxMin = st.Root, froot
		if narrow || math.Abs(d) > xAcc1 {
			st.Root += d
		} else {
			st.Root += sign(xAcc1, xMid)
		}
		froot = st.Evaluate(f, st.Root)
		if err := st.Err(); err != nil {
			return 0, err
		}
	}

	return 0, st.MaxEvaluationsError()
}
