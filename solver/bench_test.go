// SPDX-License-Identifier: MIT
package solver_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvroot/solver"
)

// BenchmarkStrategies_SolveInRange measures each strategy on a smooth transcendental root.
func BenchmarkStrategies_SolveInRange(b *testing.B) {
	f := solver.FuncWithDerivative{
		F:  func(x float64) float64 { return math.Exp(x) - 3*x*x },
		DF: func(x float64) float64 { return math.Exp(x) - 6*x },
	}

	for _, st := range allStrategies() {
		b.Run(st.Name(), func(b *testing.B) {
			s := solver.New(st)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = s.SolveInRange(f, 1e-12, 0.5, 0, 1.5)
			}
		})
	}
}

// BenchmarkSolve_Bracketing measures the guess/step search from a far guess.
func BenchmarkSolve_Bracketing(b *testing.B) {
	f := solver.Func(func(x float64) float64 { return x - 1e6 })
	s := solver.New(solver.Brent{}, solver.WithMaxEvaluations(200))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Solve(f, 1e-8, 0, 1)
	}
}
