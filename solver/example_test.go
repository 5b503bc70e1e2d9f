// SPDX-License-Identifier: MIT

// Package solver_test provides runnable examples with stable // Output: blocks.
//
// Contents:
//  1. Example_solve            (guess + step, Brent)
//  2. Example_solveInRange     (explicit bracket, Newton with derivative)
//  3. Example_lowerBound       (domain kept non-negative)
//  4. Example_errors           (sentinels and *BracketError)
package solver_test

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/solver"
)

// Example_solve finds √2 without knowing a bracket in advance.
func Example_solve() {
	f := solver.Func(func(x float64) float64 { return x*x - 2 })

	root, err := solver.Solve(solver.Brent{}, f, 1e-12, 1, 0.5)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("root = %.6f\n", root)
	// Output:
	// root = 1.414214
}

// Example_solveInRange uses Newton on ∛10 inside [2, 3].
func Example_solveInRange() {
	f := solver.FuncWithDerivative{
		F:  func(x float64) float64 { return x*x*x - 10 },
		DF: func(x float64) float64 { return 3 * x * x },
	}

	s := solver.New(solver.Newton{}, solver.WithMaxEvaluations(50))
	root, err := s.SolveInRange(f, 1e-12, 2.5, 2, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("root = %.6f, cbrt = %.6f\n", root, math.Cbrt(10))
	// Output:
	// root = 2.154435, cbrt = 2.154435
}

// Example_lowerBound keeps the search inside x >= 0, where log would be undefined.
func Example_lowerBound() {
	f := solver.Func(func(x float64) float64 { return math.Log1p(x) - 0.5 })

	root, err := solver.Solve(solver.Ridder{}, f, 1e-12, 0.1, 1, solver.WithLowerBound(0))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("root = %.6f\n", root)
	// Output:
	// root = 0.648721
}

// Example_errors inspects the typed failures.
func Example_errors() {
	f := solver.Func(func(x float64) float64 { return x*x + 1 })

	_, err := solver.SolveInRange(solver.Brent{}, f, 1e-10, 1.5, 2, 1)
	fmt.Println(err)

	_, err = solver.Solve(solver.Brent{}, f, 1e-10, 0, 1, solver.WithMaxEvaluations(10))
	var be *solver.BracketError
	fmt.Println(errors.Is(err, solver.ErrBracketingFailed), errors.As(err, &be), be.MaxEvaluations)
	// Output:
	// solver: invalid range: xMin (2) >= xMax (1)
	// true true 10
}
