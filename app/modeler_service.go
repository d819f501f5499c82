package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"penguinlab/adapters/stats/diagnostics"
	"penguinlab/adapters/stats/prep"
	"penguinlab/adapters/stats/regress"
	"penguinlab/domain/dataset"
	"penguinlab/internal"
	"penguinlab/internal/errors"
)

// ModelParams selects one modeler recomputation.
type ModelParams struct {
	Response   string
	Predictors []string
	Stepwise   bool
	Direction  regress.Direction
	Criterion  regress.Criterion
}

func (p ModelParams) fingerprint() string {
	preds := append([]string(nil), p.Predictors...)
	sort.Strings(preds)
	return fmt.Sprintf("%s~%s step=%t dir=%s crit=%s",
		p.Response, strings.Join(preds, "+"), p.Stepwise, p.Direction, p.Criterion)
}

// ModelResult is a fitted model snapshot with its diagnostics.
type ModelResult struct {
	Params    ModelParams
	Model     *regress.Model
	Selection *regress.Selection // nil unless stepwise was requested
	Findings  []diagnostics.Finding
	Actual    []float64      // response values in row order
	Table     *dataset.Table // cleaned table with fitted and residual columns
	Report    *prep.ImputationReport
}

// ModelerService builds and compares linear regression models.
type ModelerService struct {
	source *dataset.Table
	engine *diagnostics.Engine
	logger *internal.Logger

	mu    sync.RWMutex
	cache map[string]*ModelResult
}

// NewModelerService creates the modeler service over the raw table.
func NewModelerService(source *dataset.Table, logger *internal.Logger) *ModelerService {
	return &ModelerService{
		source: source,
		engine: diagnostics.NewEngine(),
		logger: logger,
		cache:  make(map[string]*ModelResult),
	}
}

// Variables returns the measurement columns available as response or predictors
func (s *ModelerService) Variables() []string {
	return append([]string(nil), dataset.Measurements...)
}

// Candidates returns the predictors available for the given response
func (s *ModelerService) Candidates(response string) []string {
	var out []string
	for _, name := range dataset.Measurements {
		if name != response {
			out = append(out, name)
		}
	}
	return out
}

func (s *ModelerService) validate(params ModelParams) error {
	if !dataset.IsMeasurement(params.Response) {
		return errors.InvalidInput("response must be one of the measurement columns")
	}
	if params.Stepwise {
		return nil
	}
	if len(params.Predictors) == 0 {
		return errors.InvalidInput("select at least one predictor or use stepwise selection")
	}
	for _, p := range params.Predictors {
		if p == params.Response {
			return errors.InvalidInput("response cannot be its own predictor")
		}
		if !dataset.IsMeasurement(p) {
			return errors.InvalidInput("predictor " + p + " is not a measurement column")
		}
	}
	return nil
}

// Compute fits (or selects) the requested model on a freshly cleaned copy
// of the dataset and evaluates the diagnostic battery against it.
func (s *ModelerService) Compute(ctx context.Context, params ModelParams) (*ModelResult, error) {
	if err := s.validate(params); err != nil {
		return nil, err
	}

	key := params.fingerprint()
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	cleaned, report, err := prep.Clean(s.source)
	if err != nil {
		return nil, err
	}

	responseCol, err := cleaned.Column(params.Response)
	if err != nil {
		return nil, err
	}
	y := responseCol.Numbers

	columns := make(map[string][]float64)
	for _, name := range s.Candidates(params.Response) {
		col, err := cleaned.Column(name)
		if err != nil {
			return nil, err
		}
		columns[name] = col.Numbers
	}

	var model *regress.Model
	var selection *regress.Selection
	if params.Stepwise {
		selection, err = regress.Stepwise(params.Response, y, s.Candidates(params.Response), columns, params.Direction, params.Criterion)
		if err != nil {
			return nil, err
		}
		model = selection.Model
	} else {
		cols := make([][]float64, len(params.Predictors))
		for i, name := range params.Predictors {
			cols[i] = columns[name]
		}
		model, err = regress.Fit(params.Response, y, params.Predictors, cols)
		if err != nil {
			return nil, err
		}
	}

	findings, err := s.engine.RunAll(ctx, diagnostics.Input{Model: model, Columns: columns})
	if err != nil {
		return nil, errors.ComputeError("diagnostic battery failed", err)
	}

	augmented := cleaned.Clone()
	if err := augmented.AddNumeric("fitted_"+params.Response, model.Fitted); err != nil {
		return nil, errors.DatasetError("failed to attach fitted column", err)
	}
	if err := augmented.AddNumeric("residual_"+params.Response, model.Residuals); err != nil {
		return nil, errors.DatasetError("failed to attach residual column", err)
	}

	result := &ModelResult{
		Params:    params,
		Model:     model,
		Selection: selection,
		Findings:  findings,
		Actual:    append([]float64(nil), y...),
		Table:     augmented,
		Report:    report,
	}

	s.mu.Lock()
	s.cache[key] = result
	s.mu.Unlock()

	s.logger.Info("model snapshot computed: %s, R²=%.3f, AIC=%.1f", model.Formula(), model.R2, model.AIC)
	return result, nil
}
