// SPDX-License-Identifier: MIT

// Package metrics records solver outcomes as Prometheus series on a private
// registry and dumps them in the node_exporter textfile format.
package metrics

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvroot/solver"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeConverged          = "converged"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeNotBracketed       = "not_bracketed"
	OutcomeBracketingFailed   = "bracketing_failed"
	OutcomeMaxEvaluations     = "max_evaluations"
	OutcomeNonFinite          = "non_finite"
	OutcomeStalled            = "stalled"
	OutcomeDerivativeRequired = "derivative_required"
	OutcomeError              = "error"
)

// Config is the [metrics] section of the configuration file.
type Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	// textfile path written on exit; empty disables the dump
	Textfile string `mapstructure:"textfile"`
}

// Recorder implements solver.Observer. Safe for concurrent use.
type Recorder struct {
	registry    *prometheus.Registry
	solves      *prometheus.CounterVec
	evaluations *prometheus.HistogramVec
}

var _ solver.Observer = (*Recorder)(nil)

// New registers the solver series under namespace (default "lvroot").
func New(namespace string) *Recorder {
	if namespace == "" {
		namespace = "lvroot"
	}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solve calls by method and outcome.",
		}, []string{"method", "outcome"}),
		evaluations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_evaluations",
			Help:      "Objective evaluations per solve call.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"method"}),
	}
	r.registry.MustRegister(r.solves, r.evaluations)
	return r
}

// ObserveSolve implements solver.Observer.
func (r *Recorder) ObserveSolve(rep solver.Report) {
	r.solves.WithLabelValues(rep.Method, Outcome(rep.Err)).Inc()
	r.evaluations.WithLabelValues(rep.Method).Observe(float64(rep.Evaluations))
}

// Registry exposes the private registry, e.g. for a promhttp handler.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile dumps every series to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}

// Outcome maps a solve error onto a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeConverged
	case errors.Is(err, solver.ErrInvalidRange),
		errors.Is(err, solver.ErrBoundViolation),
		errors.Is(err, solver.ErrGuessOutOfRange),
		errors.Is(err, solver.ErrInvalidBounds):
		return OutcomeInvalidInput
	case errors.Is(err, solver.ErrRootNotBracketed):
		return OutcomeNotBracketed
	case errors.Is(err, solver.ErrBracketingFailed):
		return OutcomeBracketingFailed
	case errors.Is(err, solver.ErrMaxEvaluationsExceeded):
		return OutcomeMaxEvaluations
	case errors.Is(err, solver.ErrNonFinite):
		return OutcomeNonFinite
	case errors.Is(err, solver.ErrStalled):
		return OutcomeStalled
	case errors.Is(err, solver.ErrDerivativeRequired):
		return OutcomeDerivativeRequired
	default:
		return OutcomeError
	}
}
