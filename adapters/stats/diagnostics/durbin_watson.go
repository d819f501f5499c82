package diagnostics

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DurbinWatsonCheck tests residual independence against first-order
// autocorrelation in observation order.
type DurbinWatsonCheck struct{}

// NewDurbinWatsonCheck creates a new residual independence check
func NewDurbinWatsonCheck() *DurbinWatsonCheck {
	return &DurbinWatsonCheck{}
}

// Name returns the check name
func (c *DurbinWatsonCheck) Name() string {
	return "durbin_watson"
}

// Description returns a human-readable description
func (c *DurbinWatsonCheck) Description() string {
	return "Durbin-Watson statistic for first-order autocorrelation of residuals"
}

// Evaluate computes d = Σ(e_t − e_{t−1})² / Σe_t². Values near 2 indicate
// independent residuals. The p-value uses the large-sample normal
// approximation of the implied lag-1 autocorrelation.
func (c *DurbinWatsonCheck) Evaluate(ctx context.Context, in Input) (Finding, error) {
	res := in.Model.Residuals
	n := len(res)
	if n < 3 {
		return Finding{
			Name:   c.Name(),
			Passed: true,
			Detail: "too few residuals for a Durbin-Watson test",
		}, nil
	}

	sumSq := 0.0
	sumDiffSq := 0.0
	for i, e := range res {
		sumSq += e * e
		if i > 0 {
			diff := e - res[i-1]
			sumDiffSq += diff * diff
		}
	}
	if sumSq == 0 {
		return Finding{
			Name:      c.Name(),
			Statistic: 2,
			Passed:    true,
			Detail:    "residuals are all zero",
		}, nil
	}

	d := sumDiffSq / sumSq

	// d ≈ 2(1 − ρ̂); under independence ρ̂·√n is approximately standard normal.
	rho := 1 - d/2
	z := rho * math.Sqrt(float64(n))
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	pValue := 2 * normal.Survival(math.Abs(z))

	passed := d > 1.5 && d < 2.5
	detail := fmt.Sprintf("d=%.3f (values near 2 mean independent residuals), approx p=%.3f", d, pValue)

	return Finding{
		Name:      c.Name(),
		Statistic: d,
		PValue:    pValue,
		Passed:    passed,
		Detail:    detail,
	}, nil
}
