// SPDX-License-Identifier: MIT

// Package lvroot is your toolkit for finding where a function crosses zero:
// one-dimensional root finding, plus the pricing problems that need it most.
//
// 🚀 What is lvroot?
//
//	A small, concurrency-safe library and CLI that brings together:
//		• Bracketing: expand a guess outward until f changes sign
//		• Refinement: Bisection, Secant, False Position, Ridder, Brent,
//		  Newton and safeguarded Newton behind one Strategy interface
//		• Domain bounds, evaluation budgets and typed errors
//		• Implied volatility of European options (Black–Scholes–Merton)
//		• Yield (IRR), NPV, duration and convexity of decimal cashflow legs
//
// ✨ Why choose lvroot?
//
//   - Beginner-friendly: Solve(f, accuracy, guess, step) and you are done
//   - Rock-solid guarantees: every failure is a sentinel usable with errors.Is
//   - Shareable: a *solver.Solver holds no per-call state
//   - Observable: slog debug tracing and a Prometheus-ready observer
//
// Under the hood, everything is organized under three packages:
//
//	solver/     — Solver, Strategy implementations, bracketing and errors
//	impliedvol/ — Black–Scholes pricing, vega and implied volatility
//	cashflow/   — Leg, Rate, NPV, IRR, duration and convexity
//
// and one command:
//
//	cmd/rootsolve — solves a TOML/YAML/JSON batch of problems concurrently
//
// Quick example:
//
//	s := solver.New(solver.Brent{})
//	root, err := s.Solve(solver.Func(func(x float64) float64 { return x*x - 2 }), 1e-12, 1, 0.5)
//	// root ≈ 1.414213562373
//
//	go get github.com/katalvlaran/lvroot
package lvroot
