// SPDX-License-Identifier: MIT

// Package batch solves the configured problems concurrently.
//
// Polynomial problems of the same method share one *solver.Solver across
// all workers; the option and yield problems go through their packages, which
// build their own solvers per call.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvroot/cashflow"
	"github.com/katalvlaran/lvroot/impliedvol"
	"github.com/katalvlaran/lvroot/internal/config"
	"github.com/katalvlaran/lvroot/solver"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultStep is the guess/step search step when a problem does not set one.
const DefaultStep = 1.0

// Result is the outcome of one problem. Err is the solve failure, if any.
type Result struct {
	Name        string
	Kind        string
	Method      string
	Root        float64
	Evaluations int
	Err         error
}

// Runner holds the shared solvers and run-wide settings.
type Runner struct {
	cfg      config.SolverConfig
	workers  int
	logger   *slog.Logger
	observer solver.Observer
	solvers  map[solver.Method]*solver.Solver
}

// New prepares one shared Solver per method named in cfg.
//
// The [solver] budget applies to every problem kind. The [solver] bounds
// describe the x domain of polynomial problems only; implied vol and IRR
// keep their own domains (vol >= 0, yield above the discount pole).
// logger and observer may be nil.
func New(cfg *config.Config, logger *slog.Logger, observer solver.Observer) (*Runner, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Runner{
		cfg:      cfg.Solver,
		workers:  cfg.Workers,
		logger:   logger,
		observer: observer,
		solvers:  make(map[solver.Method]*solver.Solver),
	}
	if r.workers < 1 {
		r.workers = 1
	}

	methods := []string{cfg.Solver.Method}
	for _, p := range cfg.Problems {
		if p.Method != "" {
			methods = append(methods, p.Method)
		}
	}
	for _, name := range methods {
		m, err := solver.ParseMethod(name)
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		if _, ok := r.solvers[m]; ok {
			continue
		}
		st, err := solver.NewStrategy(m)
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		r.solvers[m] = solver.New(st, r.solverOptions()...)
	}
	return r, nil
}

// solverOptions are the shared options of polynomial problems.
func (r *Runner) solverOptions() []solver.Option {
	opts := []solver.Option{
		solver.WithMaxEvaluations(r.cfg.MaxEvaluations),
		solver.WithLogger(r.logger),
	}
	if r.cfg.LowerBound != nil {
		opts = append(opts, solver.WithLowerBound(*r.cfg.LowerBound))
	}
	if r.cfg.UpperBound != nil {
		opts = append(opts, solver.WithUpperBound(*r.cfg.UpperBound))
	}
	if r.observer != nil {
		opts = append(opts, solver.WithObserver(r.observer))
	}
	return opts
}

// Run solves problems with at most Workers in flight. Results keep the input
// order. Individual solve failures land in Result.Err; the returned error is
// only set when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, problems []config.Problem) ([]Result, error) {
	results := make([]Result, len(problems))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range problems {
		p := problems[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.solve(p)
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func (r *Runner) solve(p config.Problem) Result {
	method := p.Method
	if method == "" {
		method = r.cfg.Method
	}
	m, err := solver.ParseMethod(method)
	res := Result{Name: p.Name, Kind: p.Kind, Method: m.String()}
	if err != nil {
		res.Err = err
		return res
	}
	acc := p.Accuracy
	if acc == 0 {
		acc = r.cfg.Accuracy
	}

	switch p.Kind {
	case config.KindPolynomial:
		res.Root, res.Evaluations, res.Err = r.solvePolynomial(p, m, acc)
	case config.KindImpliedVol:
		res.Root, res.Evaluations, res.Err = r.solveImpliedVol(p, m, acc)
	case config.KindIRR:
		res.Root, res.Evaluations, res.Err = r.solveIRR(p, m, acc)
	default:
		res.Err = fmt.Errorf("batch: unknown kind %q", p.Kind)
	}

	if res.Err != nil {
		r.logger.Warn("problem failed",
			slog.String("name", res.Name), slog.String("kind", res.Kind),
			slog.String("method", res.Method), slog.String("error", res.Err.Error()))
	} else {
		r.logger.Info("problem solved",
			slog.String("name", res.Name), slog.String("kind", res.Kind),
			slog.String("method", res.Method), slog.Float64("root", res.Root),
			slog.Int("evaluations", res.Evaluations))
	}
	return res
}

func (r *Runner) solvePolynomial(p config.Problem, m solver.Method, acc float64) (float64, int, error) {
	s := r.solvers[m]
	f, c := count(Polynomial(p.Coefficients))

	if p.Min != nil && p.Max != nil {
		guess := p.Guess
		if guess == 0 {
			guess = (*p.Min + *p.Max) / 2
		}
		root, err := s.SolveInRange(f, acc, guess, *p.Min, *p.Max)
		return root, c.n, err
	}

	step := p.Step
	if step == 0 {
		step = DefaultStep
	}
	root, err := s.Solve(f, acc, p.Guess, step)
	return root, c.n, err
}

func (r *Runner) solveImpliedVol(p config.Problem, m solver.Method, acc float64) (float64, int, error) {
	q := p.Option
	typ, err := impliedvol.ParseOptionType(q.Type)
	if err != nil {
		return 0, 0, err
	}
	st, err := solver.NewStrategy(m)
	if err != nil {
		return 0, 0, err
	}
	c := impliedvol.Contract{
		Type: typ, Spot: q.Spot, Strike: q.Strike, Expiry: q.Expiry,
		Rate: q.Rate, Dividend: q.Dividend,
	}

	obs := &capture{next: r.observer}
	opts := []impliedvol.Option{
		impliedvol.WithStrategy(st),
		impliedvol.WithAccuracy(acc),
		impliedvol.WithSolverOptions(
			solver.WithMaxEvaluations(r.cfg.MaxEvaluations),
			solver.WithLogger(r.logger),
			solver.WithObserver(obs),
		),
	}
	if p.Guess > 0 {
		opts = append(opts, impliedvol.WithGuess(p.Guess))
	}
	if p.Step > 0 {
		opts = append(opts, impliedvol.WithStep(p.Step))
	}

	vol, err := impliedvol.Solve(c, q.Price, opts...)
	return vol, obs.last.Evaluations, err
}

func (r *Runner) solveIRR(p config.Problem, m solver.Method, acc float64) (float64, int, error) {
	leg := make(cashflow.Leg, 0, len(p.Cashflows))
	for _, e := range p.Cashflows {
		amt, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return 0, 0, fmt.Errorf("batch: cashflow amount %q: %w", e.Amount, err)
		}
		leg = append(leg, cashflow.Cashflow{Time: e.Time, Amount: amt})
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return 0, 0, fmt.Errorf("batch: price %q: %w", p.Price, err)
	}
	comp, err := cashflow.ParseCompounding(p.Compounding)
	if err != nil {
		return 0, 0, err
	}
	st, err := solver.NewStrategy(m)
	if err != nil {
		return 0, 0, err
	}

	obs := &capture{next: r.observer}
	opts := []cashflow.Option{
		cashflow.WithStrategy(st),
		cashflow.WithAccuracy(acc),
		cashflow.WithMaxEvaluations(r.cfg.MaxEvaluations),
		cashflow.WithSolverOptions(solver.WithLogger(r.logger), solver.WithObserver(obs)),
	}
	if p.Guess != 0 {
		opts = append(opts, cashflow.WithGuess(p.Guess))
	}

	y, err := cashflow.IRR(leg, price, comp, p.Frequency, opts...)
	return y.Value, obs.last.Evaluations, err
}
