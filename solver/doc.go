// SPDX-License-Identifier: MIT

// Package solver finds roots of real functions of one variable with a
// family of bracketing solvers: Bisection, Secant, FalsePosition, Ridder,
// Brent, Newton and NewtonSafe.
//
// 🚀 What is inside?
//
//	Every solver shares one driver and differs only in its refinement step:
//	  • Solve(f, accuracy, guess, step): no bracket needed. The driver walks
//	    outward from guess, growing the interval by GrowthFactor (1.6) on the
//	    side whose |f| is smaller, until f changes sign.
//	  • SolveInRange(f, accuracy, guess, xMin, xMax): explicit bracket,
//	    validated up front, endpoints checked, then refined.
//	  • Strategy: the refinement hook. Built-ins cover the classic methods;
//	    any type with Name() and Refine(f, accuracy, *State) plugs in.
//
// ✨ Guarantees:
//   - Evaluation budget: every call to f counts; WithMaxEvaluations caps it.
//   - Domain safety: WithLowerBound / WithUpperBound clamp every candidate,
//     f is never queried outside an enforced bound.
//   - No shared state: each call builds its own State, so a *Solver can be
//     used from many goroutines.
//   - Determinism: same inputs, same f ⇒ bit-identical root.
//   - Typed failures: sentinels for errors.Is, *BracketError for the numbers.
//
// ⚙️ Usage:
//
//	s := solver.New(solver.Brent{},
//	    solver.WithMaxEvaluations(200),
//	    solver.WithLowerBound(0), // e.g. volatility
//	)
//	root, err := s.Solve(solver.Func(func(x float64) float64 {
//	    return x*x - 2
//	}), 1e-12, 1, 0.5)
//	if errors.Is(err, solver.ErrBracketingFailed) {
//	    var be *solver.BracketError
//	    _ = errors.As(err, &be) // be.XMin, be.XMax, be.FxMin, be.FxMax
//	}
//
// Accuracy: refinement targets max(|accuracy|, MachineEpsilon) and stops only
// at a point with |f(root)| at most it. A bracket that collapses first keeps
// consuming the budget and ends in ErrMaxEvaluationsExceeded.
package solver
