// SPDX-License-Identifier: MIT
package solver_test

import (
	"bytes"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/katalvlaran/lvroot/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector is a concurrency-safe Observer.
type collector struct {
	mu      sync.Mutex
	reports []solver.Report
}

func (c *collector) ObserveSolve(r solver.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, r)
}

// TestOptions_Defaults documents the zero-option configuration.
func TestOptions_Defaults(t *testing.T) {
	o := solver.New(nil).Options()

	assert.Equal(t, solver.DefaultMaxEvaluations, o.MaxEvaluations())
	_, low := o.LowerBound()
	_, hi := o.UpperBound()
	assert.False(t, low)
	assert.False(t, hi)
}

// TestOptions_LastWriterWins applies options in order.
func TestOptions_LastWriterWins(t *testing.T) {
	o := solver.New(nil,
		solver.WithMaxEvaluations(10),
		solver.WithLowerBound(1),
		solver.WithMaxEvaluations(42),
		solver.WithLowerBound(-3),
		solver.WithUpperBound(7),
		solver.WithoutUpperBound(),
		nil,
	).Options()

	assert.Equal(t, 42, o.MaxEvaluations())
	low, ok := o.LowerBound()
	assert.True(t, ok)
	assert.Equal(t, -3.0, low)
	_, ok = o.UpperBound()
	assert.False(t, ok)
}

// TestOptions_PanicOnNonsense covers the programmer-error panics.
func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { solver.WithMaxEvaluations(0) })
	assert.Panics(t, func() { solver.WithMaxEvaluations(-5) })
	assert.Panics(t, func() { solver.WithLowerBound(math.NaN()) })
	assert.Panics(t, func() { solver.WithUpperBound(math.Inf(1)) })
	assert.NotPanics(t, func() { solver.WithMaxEvaluations(1) })
}

// TestOptions_ObserverReceivesReports sees one report per call, success or not.
func TestOptions_ObserverReceivesReports(t *testing.T) {
	obs := &collector{}
	s := solver.New(solver.Ridder{}, solver.WithObserver(obs))
	f := solver.Func(func(x float64) float64 { return x*x - 2 })

	root, err := s.SolveInRange(f, 1e-12, 1, 0, 2)
	require.NoError(t, err)
	_, err = s.SolveInRange(f, 1e-12, 1.5, 2, 1)
	require.Error(t, err)

	require.Len(t, obs.reports, 2)
	assert.Equal(t, "ridder", obs.reports[0].Method)
	assert.Equal(t, root, obs.reports[0].Root)
	assert.NoError(t, obs.reports[0].Err)
	assert.Positive(t, obs.reports[0].Evaluations)

	assert.ErrorIs(t, obs.reports[1].Err, solver.ErrInvalidRange)
	assert.Zero(t, obs.reports[1].Evaluations)
}

// TestOptions_LoggerTracesAtDebug checks the debug trace.
func TestOptions_LoggerTracesAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := solver.Func(func(x float64) float64 { return x - 3 })

	_, err := solver.Solve(solver.Brent{}, f, 1e-10, 0, 1, solver.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "root bracketed")
	assert.Contains(t, out, "solve converged")
	assert.Contains(t, out, "method=brent")
}

// TestOptions_LoggerSilentAboveDebug keeps Info-level handlers quiet.
func TestOptions_LoggerSilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	f := solver.Func(func(x float64) float64 { return x - 3 })

	_, err := solver.Solve(solver.Brent{}, f, 1e-10, 0, 1, solver.WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

// TestMethod_ParseAndString round-trips every built-in name.
func TestMethod_ParseAndString(t *testing.T) {
	for _, st := range allStrategies() {
		m, err := solver.ParseMethod(st.Name())
		require.NoError(t, err)
		assert.Equal(t, st.Name(), m.String())

		got, err := solver.NewStrategy(m)
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	cases := map[string]solver.Method{
		"Newton-Safe":    solver.MethodNewtonSafe,
		"false_position": solver.MethodFalsePosition,
		" BRENT ":        solver.MethodBrent,
		"false position": solver.MethodFalsePosition,
	}
	for in, want := range cases {
		m, err := solver.ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, m, in)
	}
}

// TestMethod_Unknown covers unknown names and out-of-range values.
func TestMethod_Unknown(t *testing.T) {
	_, err := solver.ParseMethod("golden-section")
	require.ErrorIs(t, err, solver.ErrUnknownMethod)
	assert.Contains(t, err.Error(), `"golden-section"`)

	_, err = solver.NewStrategy(solver.Method(99))
	require.ErrorIs(t, err, solver.ErrUnknownMethod)
	assert.Equal(t, "Method(99)", solver.Method(99).String())
}
