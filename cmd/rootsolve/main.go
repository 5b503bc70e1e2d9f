// SPDX-License-Identifier: MIT

// Command rootsolve solves the problems listed in a configuration file and
// prints one line per problem.
//
//	rootsolve -config configs/rootsolve.toml
//
// Exit status is 1 when any problem fails, 2 on configuration errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/katalvlaran/lvroot/internal/batch"
	"github.com/katalvlaran/lvroot/internal/config"
	"github.com/katalvlaran/lvroot/internal/logger"
	"github.com/katalvlaran/lvroot/internal/metrics"
	"github.com/katalvlaran/lvroot/solver"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/rootsolve.toml", "path to config file (toml, yaml or json)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, configPath, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run writes the result table to out; logs and config errors go to errOut
// unless the logger is configured for stdout.
func run(ctx context.Context, configPath string, out, errOut io.Writer) int {
	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	// 2. Logger
	log, closer, err := logger.New(cfg.Logger, logger.Console(cfg.Logger, out, errOut))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	defer closer.Close()
	slog.SetDefault(log)

	// 3. Metrics
	var (
		rec *metrics.Recorder
		obs solver.Observer
	)
	if cfg.Metrics.Enabled {
		rec = metrics.New(cfg.Metrics.Namespace)
		obs = rec
	}

	// 4. Solve
	runner, err := batch.New(cfg, log, obs)
	if err != nil {
		log.Error("build runner", slog.String("error", err.Error()))
		return 2
	}
	log.Info("solving", slog.Int("problems", len(cfg.Problems)), slog.Int("workers", cfg.Workers),
		slog.String("method", cfg.Solver.Method))

	results, err := runner.Run(ctx, cfg.Problems)
	if err != nil {
		log.Error("run interrupted", slog.String("error", err.Error()))
	}

	failed := printResults(out, results)

	if rec != nil && cfg.Metrics.Textfile != "" {
		if werr := rec.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			log.Error("write metrics", slog.String("error", werr.Error()))
		}
	}

	if err != nil || failed > 0 {
		return 1
	}
	return 0
}

// printResults writes an aligned table and returns the number of failures.
func printResults(out io.Writer, results []batch.Result) int {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tMETHOD\tROOT\tEVALS\tSTATUS")

	failed := 0
	for _, r := range results {
		if r.Name == "" {
			// never started: run was cancelled
			continue
		}
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\t%s\t%s\t-\t%d\t%s\n", r.Name, r.Kind, r.Method, r.Evaluations, metrics.Outcome(r.Err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.12g\t%d\tok\n", r.Name, r.Kind, r.Method, r.Root, r.Evaluations)
	}
	_ = w.Flush()
	return failed
}
