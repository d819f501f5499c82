// Package diagnostics runs post-fit model checks: collinearity (VIF),
// residual independence (Durbin-Watson) and residual normality
// (Shapiro-Wilk approximation). Checks share a small interface and the
// engine evaluates them concurrently.
package diagnostics

import (
	"context"

	"penguinlab/adapters/stats/regress"

	"golang.org/x/sync/errgroup"
)

// Input carries the fitted model plus the predictor columns it was
// estimated from (the auxiliary regressions behind VIF need them).
type Input struct {
	Model   *regress.Model
	Columns map[string][]float64
}

// Finding is the outcome of a single diagnostic check.
type Finding struct {
	Name        string             `json:"name"`
	Statistic   float64            `json:"statistic"`
	PValue      float64            `json:"p_value,omitempty"`
	Passed      bool               `json:"passed"`
	Detail      string             `json:"detail"`
	PerVariable map[string]float64 `json:"per_variable,omitempty"`
}

// Check is one diagnostic evaluated against a fitted model.
type Check interface {
	Name() string
	Description() string
	Evaluate(ctx context.Context, in Input) (Finding, error)
}

// Engine evaluates a fixed battery of checks.
type Engine struct {
	checks []Check
}

// NewEngine creates the default diagnostic battery
func NewEngine() *Engine {
	return &Engine{
		checks: []Check{
			NewVIFCheck(),
			NewDurbinWatsonCheck(),
			NewShapiroWilkCheck(),
		},
	}
}

// Names lists the registered checks in evaluation order
func (e *Engine) Names() []string {
	names := make([]string, len(e.checks))
	for i, c := range e.checks {
		names[i] = c.Name()
	}
	return names
}

// RunAll evaluates every check concurrently and returns findings in
// registration order.
func (e *Engine) RunAll(ctx context.Context, in Input) ([]Finding, error) {
	findings := make([]Finding, len(e.checks))
	g, ctx := errgroup.WithContext(ctx)
	for i, check := range e.checks {
		g.Go(func() error {
			finding, err := check.Evaluate(ctx, in)
			if err != nil {
				return err
			}
			findings[i] = finding
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return findings, nil
}
