package diagnostics

import (
	"context"
	"fmt"
	"math"

	"penguinlab/adapters/stats/regress"
)

// vifThreshold is the conventional cutoff above which collinearity is
// flagged as problematic.
const vifThreshold = 10.0

// VIFCheck computes the variance inflation factor for every predictor.
type VIFCheck struct{}

// NewVIFCheck creates a new collinearity check
func NewVIFCheck() *VIFCheck {
	return &VIFCheck{}
}

// Name returns the check name
func (c *VIFCheck) Name() string {
	return "vif"
}

// Description returns a human-readable description
func (c *VIFCheck) Description() string {
	return "Variance inflation factors flag predictors explained by the other predictors"
}

// Evaluate regresses each predictor on the remaining predictors and
// reports VIF = 1/(1-R²) per predictor.
func (c *VIFCheck) Evaluate(ctx context.Context, in Input) (Finding, error) {
	predictors := in.Model.Predictors
	if len(predictors) < 2 {
		return Finding{
			Name:   c.Name(),
			Passed: true,
			Detail: "VIF requires at least two predictors; nothing to check",
		}, nil
	}

	perVar := make(map[string]float64, len(predictors))
	worst := 0.0
	worstName := ""

	for i, target := range predictors {
		others := make([]string, 0, len(predictors)-1)
		cols := make([][]float64, 0, len(predictors)-1)
		for j, name := range predictors {
			if j == i {
				continue
			}
			others = append(others, name)
			cols = append(cols, in.Columns[name])
		}

		aux, err := regress.Fit(target, in.Columns[target], others, cols)
		if err != nil {
			return Finding{}, err
		}

		vif := math.Inf(1)
		if aux.R2 < 1 {
			vif = 1 / (1 - aux.R2)
		}
		perVar[target] = vif
		if vif > worst {
			worst = vif
			worstName = target
		}
	}

	passed := worst < vifThreshold
	detail := fmt.Sprintf("largest VIF %.2f (%s); values above %.0f indicate problematic collinearity", worst, worstName, vifThreshold)
	if passed {
		detail = fmt.Sprintf("largest VIF %.2f (%s); no problematic collinearity", worst, worstName)
	}

	// No p-value: VIF is a rule-of-thumb measure, not a test.
	return Finding{
		Name:        c.Name(),
		Statistic:   worst,
		Passed:      passed,
		Detail:      detail,
		PerVariable: perVar,
	}, nil
}
