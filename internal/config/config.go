// SPDX-License-Identifier: MIT

// Package config loads the rootsolve configuration (TOML, YAML or JSON by
// file extension) with defaults and ROOTSOLVE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvroot/cashflow"
	"github.com/katalvlaran/lvroot/impliedvol"
	"github.com/katalvlaran/lvroot/internal/logger"
	"github.com/katalvlaran/lvroot/internal/metrics"
	"github.com/katalvlaran/lvroot/solver"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: ROOTSOLVE_SOLVER_METHOD, …
const EnvPrefix = "ROOTSOLVE"

// Problem kinds.
const (
	KindPolynomial = "polynomial"
	KindImpliedVol = "impliedvol"
	KindIRR        = "irr"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the whole file.
type Config struct {
	Solver   SolverConfig   `mapstructure:"solver"`
	Logger   logger.Config  `mapstructure:"logger"`
	Metrics  metrics.Config `mapstructure:"metrics"`
	Workers  int            `mapstructure:"workers"`
	Problems []Problem      `mapstructure:"problems"`
}

// SolverConfig holds the defaults every problem inherits.
type SolverConfig struct {
	Method         string   `mapstructure:"method"`
	Accuracy       float64  `mapstructure:"accuracy"`
	MaxEvaluations int      `mapstructure:"max_evaluations"`
	LowerBound     *float64 `mapstructure:"lower_bound"`
	UpperBound     *float64 `mapstructure:"upper_bound"`
}

// Problem is one root to find. Zero numeric fields fall back to defaults.
type Problem struct {
	Name     string  `mapstructure:"name"`
	Kind     string  `mapstructure:"kind"`
	Method   string  `mapstructure:"method"`
	Accuracy float64 `mapstructure:"accuracy"`
	Guess    float64 `mapstructure:"guess"`
	Step     float64 `mapstructure:"step"`

	// explicit bracket; both set ⇒ SolveInRange
	Min *float64 `mapstructure:"min"`
	Max *float64 `mapstructure:"max"`

	// polynomial: c0 + c1·x + c2·x² + …
	Coefficients []float64 `mapstructure:"coefficients"`

	// impliedvol
	Option *OptionQuote `mapstructure:"option"`

	// irr
	Cashflows   []CashflowEntry `mapstructure:"cashflows"`
	Price       string          `mapstructure:"price"`
	Compounding string          `mapstructure:"compounding"`
	Frequency   int             `mapstructure:"frequency"`
}

// OptionQuote is a quoted European option.
type OptionQuote struct {
	Type     string  `mapstructure:"type"`
	Spot     float64 `mapstructure:"spot"`
	Strike   float64 `mapstructure:"strike"`
	Expiry   float64 `mapstructure:"expiry"`
	Rate     float64 `mapstructure:"rate"`
	Dividend float64 `mapstructure:"dividend"`
	Price    float64 `mapstructure:"price"`
}

// CashflowEntry is one payment; Amount is parsed as a decimal.
type CashflowEntry struct {
	Time   float64 `mapstructure:"time"`
	Amount string  `mapstructure:"amount"`
}

// Load reads path (optional: "" uses defaults and environment only),
// applies ROOTSOLVE_* overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the solver defaults and every problem.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	if _, err := solver.ParseMethod(c.Solver.Method); err != nil {
		return fmt.Errorf("%w: solver.method: %w", ErrInvalid, err)
	}
	if !(c.Solver.Accuracy > 0) {
		return fmt.Errorf("%w: solver.accuracy must be positive, got %g", ErrInvalid, c.Solver.Accuracy)
	}
	if c.Solver.MaxEvaluations < 1 {
		return fmt.Errorf("%w: solver.max_evaluations must be >= 1, got %d", ErrInvalid, c.Solver.MaxEvaluations)
	}
	if lo, hi := c.Solver.LowerBound, c.Solver.UpperBound; lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: solver.lower_bound %g > upper_bound %g", ErrInvalid, *lo, *hi)
	}

	seen := make(map[string]struct{}, len(c.Problems))
	for i := range c.Problems {
		p := &c.Problems[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("problem-%d", i+1)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate problem name %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = struct{}{}
		if err := p.validate(); err != nil {
			return fmt.Errorf("%w: problem %q: %w", ErrInvalid, p.Name, err)
		}
	}
	return nil
}

func (p *Problem) validate() error {
	if p.Method != "" {
		if _, err := solver.ParseMethod(p.Method); err != nil {
			return err
		}
	}
	if (p.Min == nil) != (p.Max == nil) {
		return errors.New("min and max must be set together")
	}
	if p.Accuracy < 0 || p.Step < 0 {
		return errors.New("accuracy and step must not be negative")
	}

	switch strings.ToLower(p.Kind) {
	case KindPolynomial:
		if len(p.Coefficients) < 2 {
			return errors.New("polynomial needs at least two coefficients")
		}
	case KindImpliedVol:
		if p.Option == nil {
			return errors.New("impliedvol needs an [option] table")
		}
		if _, err := impliedvol.ParseOptionType(p.Option.Type); err != nil {
			return err
		}
	case KindIRR:
		if len(p.Cashflows) == 0 {
			return errors.New("irr needs cashflows")
		}
		if _, err := decimal.NewFromString(p.Price); err != nil {
			return fmt.Errorf("price %q: %w", p.Price, err)
		}
		for j, cf := range p.Cashflows {
			if _, err := decimal.NewFromString(cf.Amount); err != nil {
				return fmt.Errorf("cashflow %d amount %q: %w", j, cf.Amount, err)
			}
		}
		if p.Compounding == "" {
			p.Compounding = cashflow.Compounded.String()
		}
		comp, err := cashflow.ParseCompounding(p.Compounding)
		if err != nil {
			return err
		}
		if comp == cashflow.Compounded && p.Frequency == 0 {
			p.Frequency = 1
		}
	default:
		return fmt.Errorf("unknown kind %q", p.Kind)
	}
	p.Kind = strings.ToLower(p.Kind)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 4)

	v.SetDefault("solver.method", solver.MethodBrent.String())
	v.SetDefault("solver.accuracy", 1e-10)
	v.SetDefault("solver.max_evaluations", solver.DefaultMaxEvaluations)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.file_path", "logs/rootsolve.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.with_caller", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "lvroot")
	v.SetDefault("metrics.textfile", "")
}
