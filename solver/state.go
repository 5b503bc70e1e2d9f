// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"
)

// State is the mutable bookkeeping of a single solve call.
//
// A fresh State is built at the start of every Solve/SolveInRange call,
// handed to the Strategy by pointer, and dropped when the call returns.
// Nothing in it survives between calls, so one Solver may serve many
// goroutines at once.
//
// Invariant while refining: FxMin and FxMax have opposite signs (or one is
// zero) for bracketing strategies.
type State struct {
	Root         float64 // current best estimate
	XMin, XMax   float64 // current bracket
	FxMin, FxMax float64 // f(XMin), f(XMax)

	Evaluations    int // objective calls so far
	MaxEvaluations int // ceiling; refinement fails once Evaluations exceeds it

	lowBoundEnforced bool
	lowBound         float64
	hiBoundEnforced  bool
	hiBound          float64

	nanSeen bool
	nanX    float64
}

// newState seeds a State from the solver options.
func newState(o Options) *State {
	return &State{
		MaxEvaluations:   o.maxEvaluations,
		lowBoundEnforced: o.lowBoundEnforced,
		lowBound:         o.lowBound,
		hiBoundEnforced:  o.hiBoundEnforced,
		hiBound:          o.hiBound,
	}
}

// Evaluate calls f at x and counts the evaluation.
// A NaN result is remembered and reported by Err.
func (s *State) Evaluate(f Function, x float64) float64 {
	fx := f.Value(x)
	s.Evaluations++
	if math.IsNaN(fx) && !s.nanSeen {
		s.nanSeen = true
		s.nanX = x
	}
	return fx
}

// Enforce clamps x into the enforced bounds.
func (s *State) Enforce(x float64) float64 {
	if s.lowBoundEnforced && x < s.lowBound {
		return s.lowBound
	}
	if s.hiBoundEnforced && x > s.hiBound {
		return s.hiBound
	}
	return x
}

// Exhausted reports whether the evaluation budget is spent.
func (s *State) Exhausted() bool {
	return s.Evaluations > s.MaxEvaluations
}

// Err returns a non-nil error once the objective has produced a NaN.
func (s *State) Err() error {
	if s.nanSeen {
		return nanValueError(s, s.nanX)
	}
	return nil
}

// MaxEvaluationsError is the refinement failure, carrying the current bracket.
func (s *State) MaxEvaluationsError() error {
	return &BracketError{
		Kind: ErrMaxEvaluationsExceeded,
		XMin: s.XMin, XMax: s.XMax, FxMin: s.FxMin, FxMax: s.FxMax,
		Evaluations: s.Evaluations, MaxEvaluations: s.MaxEvaluations,
		msg: fmt.Sprintf("solver: maximum number of function evaluations (%d) exceeded (last bracket: f[%g,%g] -> [%g,%g], root estimate %g)",
			s.MaxEvaluations, s.XMin, s.XMax, s.FxMin, s.FxMax, s.Root),
	}
}

// narrow replaces the bracket endpoint whose value has the sign of fx with
// the interior point x, keeping the sign change across [XMin, XMax].
func (s *State) narrow(x, fx float64) {
	if (fx < 0) == (s.FxMin < 0) {
		s.XMin, s.FxMin = x, fx
	} else {
		s.XMax, s.FxMax = x, fx
	}
}

// best returns the bracket endpoint with the smaller |f|.
func (s *State) best() float64 {
	if math.Abs(s.FxMin) <= math.Abs(s.FxMax) {
		return s.XMin
	}
	return s.XMax
}

// sign returns |a| carrying the sign of b.
func sign(a, b float64) float64 {
	if b >= 0 {
		return math.Abs(a)
	}
	return -math.Abs(a)
}
