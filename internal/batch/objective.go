// SPDX-License-Identifier: MIT

package batch

import "github.com/katalvlaran/lvroot/solver"

// Polynomial is c[0] + c[1]·x + … + c[n]·xⁿ, evaluated with Horner's rule.
type Polynomial []float64

// Value implements solver.Function.
func (p Polynomial) Value(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// Derivative implements solver.Differentiable.
func (p Polynomial) Derivative(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 1; i-- {
		y = y*x + float64(i)*p[i]
	}
	return y
}

var _ solver.Differentiable = Polynomial(nil)

// counted wraps an objective and counts Value calls of one solve.
type counted struct {
	f solver.Function
	n int
}

func (c *counted) Value(x float64) float64 {
	c.n++
	return c.f.Value(x)
}

// countedDiff keeps the derivative visible to the Newton family.
type countedDiff struct {
	*counted
	df solver.Differentiable
}

func (c countedDiff) Derivative(x float64) float64 { return c.df.Derivative(x) }

// count returns an objective that tallies evaluations into the returned counter.
func count(f solver.Function) (solver.Function, *counted) {
	c := &counted{f: f}
	if df, ok := f.(solver.Differentiable); ok {
		return countedDiff{counted: c, df: df}, c
	}
	return c, c
}

// capture keeps the last Report of a single solve and forwards it.
type capture struct {
	next solver.Observer
	last solver.Report
}

func (c *capture) ObserveSolve(r solver.Report) {
	c.last = r
	if c.next != nil {
		c.next.ObserveSolve(r)
	}
}
