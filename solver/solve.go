// SPDX-License-Identifier: MIT

// Package solver - the shared driver used by every refinement strategy.
//
// This file provides the two entry points:
//
//   - Solve: guess + step. Searches outward for a sign change by growing the
//     bracket geometrically on the side closer to zero, then refines.
//   - SolveInRange: explicit bracket [xMin, xMax] with a guess inside it.
//     Validates, checks the endpoints, then refines.
//
// Both build a fresh State, so a *Solver may be shared by goroutines.
package solver

import (
	"context"
	"log/slog"
	"math"
)

// Solver pairs a refinement Strategy with its Options.
// It holds no per-call state and is safe for concurrent use as long as the
// configured Observer is.
type Solver struct {
	strategy Strategy
	opts     Options
}

// New returns a Solver refining with strategy. A nil strategy selects Brent.
func New(strategy Strategy, opts ...Option) *Solver {
	if strategy == nil {
		strategy = Brent{}
	}
	return &Solver{strategy: strategy, opts: gatherOptions(opts...)}
}

// Strategy returns the refinement strategy.
func (s *Solver) Strategy() Strategy { return s.strategy }

// Options returns a copy of the configuration.
func (s *Solver) Options() Options { return s.opts }

// Solve is a shortcut for New(strategy, opts...).Solve(f, accuracy, guess, step).
func Solve(strategy Strategy, f Function, accuracy, guess, step float64, opts ...Option) (float64, error) {
	return New(strategy, opts...).Solve(f, accuracy, guess, step)
}

// SolveInRange is a shortcut for New(strategy, opts...).SolveInRange(f, accuracy, guess, xMin, xMax).
func SolveInRange(strategy Strategy, f Function, accuracy, guess, xMin, xMax float64, opts ...Option) (float64, error) {
	return New(strategy, opts...).SolveInRange(f, accuracy, guess, xMin, xMax)
}

// Solve finds a root of f starting from guess, without a known bracket.
//
// Algorithm:
//  1. fxMax = f(guess); |fxMax| <= accuracy ⇒ return guess.
//  2. fxMax > 0 ⇒ step backwards to xMin = guess-step; otherwise step
//     forwards to xMax = guess+step. Both candidates are clamped to the
//     enforced bounds.
//  3. While the budget lasts: a sign change (or exact zero) ends the search;
//     otherwise the endpoint with the smaller |f| moves outward by
//     GrowthFactor times the bracket width. Exactly equal |f| values
//     alternate sides, low side first.
//  4. The bracket midpoint seeds the strategy, refined to
//     max(|accuracy|, MachineEpsilon).
//
// Errors: ErrNonFinite, ErrInvalidBounds, ErrBoundViolation (guess outside
// the enforced bounds), ErrBracketingFailed, and whatever the strategy returns.
func (s *Solver) Solve(f Function, accuracy, guess, step float64) (root float64, err error) {
	st := newState(s.opts)
	defer func() { s.finish(st, root, err) }()

	if err = s.validateCommon(accuracy, guess); err != nil {
		return 0, err
	}
	if math.IsNaN(step) || math.IsInf(step, 0) {
		return 0, nonFiniteInputError("step", step)
	}
	if err = s.validateGuessBounds(guess); err != nil {
		return 0, err
	}

	flipflop := -1

	st.Root = guess
	st.FxMax = st.Evaluate(f, st.Root)
	if err = st.Err(); err != nil {
		return 0, err
	}

	// monotonically increasing bias, as in optionValue(volatility)
	if math.Abs(st.FxMax) <= accuracy {
		return st.Root, nil
	} else if st.FxMax > 0 {
		st.XMin = st.Enforce(st.Root - step)
		st.FxMin = st.Evaluate(f, st.XMin)
		st.XMax = st.Root
	} else {
		st.XMin = st.Root
		st.FxMin = st.FxMax
		st.XMax = st.Enforce(st.Root + step)
		st.FxMax = st.Evaluate(f, st.XMax)
	}

	for st.Evaluations <= st.MaxEvaluations {
		if err = st.Err(); err != nil {
			return 0, err
		}
		if st.FxMin*st.FxMax <= 0 {
			if st.FxMin == 0 {
				return st.XMin, nil
			}
			if st.FxMax == 0 {
				return st.XMax, nil
			}
			s.debug("root bracketed",
				slog.Float64("xMin", st.XMin), slog.Float64("xMax", st.XMax),
				slog.Int("evaluations", st.Evaluations))
			st.Root = (st.XMax + st.XMin) / 2
			return s.refine(f, st, accuracy)
		}

		switch {
		case math.Abs(st.FxMin) < math.Abs(st.FxMax):
			s.growLow(f, st)
		case math.Abs(st.FxMin) > math.Abs(st.FxMax):
			s.growHigh(f, st)
		case flipflop == -1:
			s.growLow(f, st)
			flipflop = 1
		default:
			s.growHigh(f, st)
			flipflop = -1
		}
	}

	if err = st.Err(); err != nil {
		return 0, err
	}
	return 0, bracketingFailedError(st)
}

// SolveInRange finds a root of f inside the explicit bracket [xMin, xMax].
//
// Checks, in order, each with its own error and none evaluating f:
// xMin < xMax (ErrInvalidRange); xMin >= low bound and xMax <= hi bound when
// enforced (ErrBoundViolation); xMin < guess < xMax (ErrGuessOutOfRange).
// Then f(xMin) and f(xMax) are evaluated: an endpoint with |f| < accuracy is
// returned as is; same-sign endpoints fail with ErrRootNotBracketed.
func (s *Solver) SolveInRange(f Function, accuracy, guess, xMin, xMax float64) (root float64, err error) {
	st := newState(s.opts)
	defer func() { s.finish(st, root, err) }()

	if err = s.validateCommon(accuracy, guess); err != nil {
		return 0, err
	}
	if math.IsNaN(xMin) || math.IsInf(xMin, 0) {
		return 0, nonFiniteInputError("xMin", xMin)
	}
	if math.IsNaN(xMax) || math.IsInf(xMax, 0) {
		return 0, nonFiniteInputError("xMax", xMax)
	}

	st.XMin, st.XMax = xMin, xMax
	if !(st.XMin < st.XMax) {
		return 0, invalidRangeError(st.XMin, st.XMax)
	}
	if st.lowBoundEnforced && st.XMin < st.lowBound {
		return 0, lowBoundError(st.XMin, st.XMax, st.lowBound)
	}
	if st.hiBoundEnforced && st.XMax > st.hiBound {
		return 0, hiBoundError(st.XMin, st.XMax, st.hiBound)
	}
	if !(guess > st.XMin) {
		return 0, guessBelowError(guess, st.XMin, st.XMax)
	}
	if !(guess < st.XMax) {
		return 0, guessAboveError(guess, st.XMin, st.XMax)
	}

	st.FxMin = st.Evaluate(f, st.XMin)
	if err = st.Err(); err != nil {
		return 0, err
	}
	if math.Abs(st.FxMin) < accuracy {
		return st.XMin, nil
	}

	st.FxMax = st.Evaluate(f, st.XMax)
	if err = st.Err(); err != nil {
		return 0, err
	}
	if math.Abs(st.FxMax) < accuracy {
		return st.XMax, nil
	}

	if !(st.FxMin*st.FxMax < 0) {
		return 0, notBracketedError(st)
	}

	st.Root = guess
	return s.refine(f, st, accuracy)
}

// validateCommon rejects non-finite accuracy/guess and inconsistent bounds.
func (s *Solver) validateCommon(accuracy, guess float64) error {
	if math.IsNaN(accuracy) || math.IsInf(accuracy, 0) {
		return nonFiniteInputError("accuracy", accuracy)
	}
	if math.IsNaN(guess) || math.IsInf(guess, 0) {
		return nonFiniteInputError("guess", guess)
	}
	o := s.opts
	if o.lowBoundEnforced && o.hiBoundEnforced && o.lowBound > o.hiBound {
		return invalidBoundsError(o.lowBound, o.hiBound)
	}
	return nil
}

// validateGuessBounds keeps the first evaluation of the guess/step search
// inside the enforced domain. SolveInRange needs no such check: its guess is
// strictly inside a bracket that is itself checked against the bounds.
func (s *Solver) validateGuessBounds(guess float64) error {
	o := s.opts
	if o.lowBoundEnforced && guess < o.lowBound {
		return guessBoundError(guess, o.lowBound, true)
	}
	if o.hiBoundEnforced && guess > o.hiBound {
		return guessBoundError(guess, o.hiBound, false)
	}
	return nil
}

// growLow moves XMin away from XMax and re-evaluates it.
func (s *Solver) growLow(f Function, st *State) {
	st.XMin = st.Enforce(st.XMin + GrowthFactor*(st.XMin-st.XMax))
	st.FxMin = st.Evaluate(f, st.XMin)
}

// growHigh moves XMax away from XMin and re-evaluates it.
func (s *Solver) growHigh(f Function, st *State) {
	st.XMax = st.Enforce(st.XMax + GrowthFactor*(st.XMax-st.XMin))
	st.FxMax = st.Evaluate(f, st.XMax)
}

// refine hands a bracketed State to the strategy.
func (s *Solver) refine(f Function, st *State, accuracy float64) (float64, error) {
	root, err := s.strategy.Refine(f, math.Max(math.Abs(accuracy), MachineEpsilon), st)
	if nanErr := st.Err(); nanErr != nil {
		return 0, nanErr
	}
	if err != nil {
		return 0, err
	}
	return root, nil
}

// finish logs the outcome and notifies the observer.
func (s *Solver) finish(st *State, root float64, err error) {
	if err != nil {
		s.debug("solve failed",
			slog.String("method", s.strategy.Name()),
			slog.Int("evaluations", st.Evaluations),
			slog.String("error", err.Error()))
	} else {
		s.debug("solve converged",
			slog.String("method", s.strategy.Name()),
			slog.Float64("root", root),
			slog.Int("evaluations", st.Evaluations))
	}
	if s.opts.observer != nil {
		s.opts.observer.ObserveSolve(Report{
			Method:      s.strategy.Name(),
			Evaluations: st.Evaluations,
			Root:        root,
			Err:         err,
		})
	}
}

func (s *Solver) debug(msg string, attrs ...slog.Attr) {
	if s.opts.logger == nil {
		return
	}
	s.opts.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
