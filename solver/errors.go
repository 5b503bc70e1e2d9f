// SPDX-License-Identifier: MIT

// Package solver: sentinel error set.
// Every failure returned by this package matches exactly one of the sentinels
// below via errors.Is. Failures that have numeric context (bracket, function
// values, counts) are returned as *BracketError, whose Unwrap yields the
// sentinel; use errors.As to read the numbers.
package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when an explicit bracket has xMin >= xMax.
	ErrInvalidRange = errors.New("solver: invalid range")

	// ErrBoundViolation is returned when an explicit bracket crosses an enforced bound.
	ErrBoundViolation = errors.New("solver: bracket violates enforced bound")

	// ErrGuessOutOfRange is returned when the guess is not strictly inside (xMin, xMax).
	ErrGuessOutOfRange = errors.New("solver: guess out of range")

	// ErrRootNotBracketed is returned when the explicit endpoints share a sign
	// and neither is within accuracy of a root.
	ErrRootNotBracketed = errors.New("solver: root not bracketed")

	// ErrBracketingFailed is returned when the guess/step search spends its
	// evaluation budget without finding a sign change.
	ErrBracketingFailed = errors.New("solver: unable to bracket root")

	// ErrMaxEvaluationsExceeded is returned when refinement spends its
	// evaluation budget without reaching the requested accuracy.
	ErrMaxEvaluationsExceeded = errors.New("solver: maximum number of function evaluations exceeded")

	// ErrDerivativeRequired is returned by derivative-based strategies when the
	// objective does not implement Differentiable.
	ErrDerivativeRequired = errors.New("solver: strategy requires the function's derivative")

	// ErrInvalidBounds is returned when the enforced lower bound exceeds the upper bound.
	ErrInvalidBounds = errors.New("solver: enforced low bound above hi bound")

	// ErrNonFinite is returned for NaN/Inf inputs and for a NaN objective value.
	ErrNonFinite = errors.New("solver: non-finite value")

	// ErrStalled is returned when a new point matches the sign of both bracket
	// endpoints, so the sign change can no longer be kept.
	ErrStalled = errors.New("solver: iteration stalled on flat function")

	// ErrUnknownMethod is returned by ParseMethod and NewStrategy for unknown names.
	ErrUnknownMethod = errors.New("solver: unknown method")
)

// BracketError carries the numeric context of a failed solve.
// Kind is one of the sentinels above; Unwrap returns it.
type BracketError struct {
	Kind error

	XMin, XMax   float64 // last bracket (or the supplied one)
	FxMin, FxMax float64 // function values at XMin/XMax, when evaluated
	Guess        float64
	Bound        float64 // offending enforced bound, for ErrBoundViolation

	Evaluations    int
	MaxEvaluations int

	msg string
}

// Error renders the message with its numeric context.
func (e *BracketError) Error() string { return e.msg }

// Unwrap exposes the sentinel for errors.Is.
func (e *BracketError) Unwrap() error { return e.Kind }

func invalidRangeError(xMin, xMax float64) error {
	return &BracketError{
		Kind: ErrInvalidRange, XMin: xMin, XMax: xMax,
		msg: fmt.Sprintf("solver: invalid range: xMin (%g) >= xMax (%g)", xMin, xMax),
	}
}

func lowBoundError(xMin, xMax, low float64) error {
	return &BracketError{
		Kind: ErrBoundViolation, XMin: xMin, XMax: xMax, Bound: low,
		msg: fmt.Sprintf("solver: xMin (%g) < enforced low bound (%g)", xMin, low),
	}
}

func hiBoundError(xMin, xMax, hi float64) error {
	return &BracketError{
		Kind: ErrBoundViolation, XMin: xMin, XMax: xMax, Bound: hi,
		msg: fmt.Sprintf("solver: xMax (%g) > enforced hi bound (%g)", xMax, hi),
	}
}

func guessBelowError(guess, xMin, xMax float64) error {
	return &BracketError{
		Kind: ErrGuessOutOfRange, XMin: xMin, XMax: xMax, Guess: guess,
		msg: fmt.Sprintf("solver: guess (%g) < xMin (%g)", guess, xMin),
	}
}

func guessAboveError(guess, xMin, xMax float64) error {
	return &BracketError{
		Kind: ErrGuessOutOfRange, XMin: xMin, XMax: xMax, Guess: guess,
		msg: fmt.Sprintf("solver: guess (%g) > xMax (%g)", guess, xMax),
	}
}

func notBracketedError(st *State) error {
	return &BracketError{
		Kind: ErrRootNotBracketed,
		XMin: st.XMin, XMax: st.XMax, FxMin: st.FxMin, FxMax: st.FxMax,
		Evaluations: st.Evaluations, MaxEvaluations: st.MaxEvaluations,
		msg: fmt.Sprintf("solver: root not bracketed: f[%g,%g] -> [%.20g,%.20g]",
			st.XMin, st.XMax, st.FxMin, st.FxMax),
	}
}

func bracketingFailedError(st *State) error {
	return &BracketError{
		Kind: ErrBracketingFailed,
		XMin: st.XMin, XMax: st.XMax, FxMin: st.FxMin, FxMax: st.FxMax,
		Evaluations: st.Evaluations, MaxEvaluations: st.MaxEvaluations,
		msg: fmt.Sprintf("solver: unable to bracket root in %d function evaluations (last bracket attempt: f[%g,%g] -> [%g,%g])",
			st.MaxEvaluations, st.XMin, st.XMax, st.FxMin, st.FxMax),
	}
}

func invalidBoundsError(low, hi float64) error {
	return &BracketError{
		Kind: ErrInvalidBounds, XMin: low, XMax: hi,
		msg: fmt.Sprintf("solver: enforced low bound (%g) > enforced hi bound (%g)", low, hi),
	}
}

func nonFiniteInputError(name string, v float64) error {
	return fmt.Errorf("%w: %s = %g", ErrNonFinite, name, v)
}

func nanValueError(st *State, x float64) error {
	return &BracketError{
		Kind: ErrNonFinite,
		XMin: st.XMin, XMax: st.XMax, FxMin: st.FxMin, FxMax: st.FxMax,
		Evaluations: st.Evaluations, MaxEvaluations: st.MaxEvaluations,
		msg: fmt.Sprintf("solver: objective returned NaN at x = %g after %d evaluations", x, st.Evaluations),
	}
}

func guessBoundError(guess, bound float64, low bool) error {
	side, rel := "hi", ">"
	if low {
		side, rel = "low", "<"
	}
	return &BracketError{
		Kind: ErrBoundViolation, Guess: guess, Bound: bound,
		msg: fmt.Sprintf("solver: guess (%g) %s enforced %s bound (%g)", guess, rel, side, bound),
	}
}

func stalledError(st *State, x, fx float64) error {
	return &BracketError{
		Kind: ErrStalled,
		XMin: st.XMin, XMax: st.XMax, FxMin: st.FxMin, FxMax: st.FxMax,
		Evaluations: st.Evaluations, MaxEvaluations: st.MaxEvaluations,
		msg: fmt.Sprintf("solver: iteration stalled at x = %g (f = %g) after %d evaluations", x, fx, st.Evaluations),
	}
}

func derivativeRequiredError(method string) error {
	return fmt.Errorf("%w: %s", ErrDerivativeRequired, method)
}
