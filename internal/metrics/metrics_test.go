// SPDX-License-Identifier: MIT
package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvroot/solver"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOutcome maps every sentinel, wrapped or not.
func TestOutcome(t *testing.T) {
	cases := map[error]string{
		nil:                              OutcomeConverged,
		solver.ErrInvalidRange:           OutcomeInvalidInput,
		solver.ErrBoundViolation:         OutcomeInvalidInput,
		solver.ErrGuessOutOfRange:        OutcomeInvalidInput,
		solver.ErrInvalidBounds:          OutcomeInvalidInput,
		solver.ErrRootNotBracketed:       OutcomeNotBracketed,
		solver.ErrBracketingFailed:       OutcomeBracketingFailed,
		solver.ErrMaxEvaluationsExceeded: OutcomeMaxEvaluations,
		solver.ErrNonFinite:              OutcomeNonFinite,
		solver.ErrStalled:                OutcomeStalled,
		solver.ErrDerivativeRequired:     OutcomeDerivativeRequired,
		errors.New("boom"):               OutcomeError,
	}
	for err, want := range cases {
		assert.Equal(t, want, Outcome(err), "%v", err)
		if err != nil {
			assert.Equal(t, want, Outcome(fmt.Errorf("wrapped: %w", err)))
		}
	}
}

// TestRecorder_ObservesRealSolves wires the recorder into a solver.
func TestRecorder_ObservesRealSolves(t *testing.T) {
	r := New("")
	s := solver.New(solver.Brent{}, solver.WithObserver(r))
	f := solver.Func(func(x float64) float64 { return x*x - 2 })

	_, err := s.Solve(f, 1e-10, 1, 0.5)
	require.NoError(t, err)
	_, err = s.Solve(f, 1e-10, 3, 1)
	require.NoError(t, err)
	_, err = s.SolveInRange(f, 1e-10, 1.5, 2, 1)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.solves.WithLabelValues("brent", OutcomeConverged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("brent", OutcomeInvalidInput)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.evaluations))
}

// TestRecorder_WriteTextfile dumps the registry.
func TestRecorder_WriteTextfile(t *testing.T) {
	r := New("rootsolve")
	r.ObserveSolve(solver.Report{Method: "ridder", Evaluations: 9})

	path := filepath.Join(t.TempDir(), "rootsolve.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `rootsolve_solves_total{method="ridder",outcome="converged"} 1`)
	assert.Contains(t, out, `rootsolve_solve_evaluations_count{method="ridder"} 1`)
	assert.True(t, strings.HasPrefix(out, "# HELP"))
}

// TestRecorder_GatherAndCompare pins the exposition format.
func TestRecorder_GatherAndCompare(t *testing.T) {
	r := New("lvroot")
	r.ObserveSolve(solver.Report{Method: "bisection", Err: solver.ErrBracketingFailed, Evaluations: 100})

	want := `
# HELP lvroot_solves_total Solve calls by method and outcome.
# TYPE lvroot_solves_total counter
lvroot_solves_total{method="bisection",outcome="bracketing_failed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(want), "lvroot_solves_total"))
}
