package regress

import (
	"testing"

	"penguinlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitRecoversKnownCoefficients(t *testing.T) {
	y, cols := testkit.Linear(500, 1, 3.0, []float64{2.0, -1.5}, 0.1)

	model, err := Fit("y", y, []string{"x1", "x2"}, cols)
	require.NoError(t, err)

	require.Len(t, model.Coefficients, 3)
	assert.Equal(t, "(Intercept)", model.Coefficients[0].Name)
	assert.InDelta(t, 3.0, model.Coefficients[0].Estimate, 0.05)
	assert.InDelta(t, 2.0, model.Coefficients[1].Estimate, 0.02)
	assert.InDelta(t, -1.5, model.Coefficients[2].Estimate, 0.02)

	assert.Greater(t, model.R2, 0.99)
	assert.Less(t, model.AdjR2, model.R2)
	assert.Equal(t, 500, model.N)
	assert.Equal(t, 497, model.ResidualDF)

	// Strong predictors come with tiny p-values; the overall F test too.
	assert.Less(t, model.Coefficients[1].PValue, 1e-6)
	assert.Less(t, model.FPValue, 1e-6)
}

func TestFitInterceptOnly(t *testing.T) {
	y := []float64{2, 4, 6, 8}

	model, err := Fit("y", y, nil, nil)
	require.NoError(t, err)

	require.Len(t, model.Coefficients, 1)
	assert.InDelta(t, 5.0, model.Coefficients[0].Estimate, 1e-12)
	assert.Zero(t, model.R2)
	assert.Equal(t, "y ~ 1", model.Formula())
}

func TestFitResidualsSumToZero(t *testing.T) {
	y, cols := testkit.Linear(200, 2, 1.0, []float64{0.5}, 1.0)

	model, err := Fit("y", y, []string{"x"}, cols)
	require.NoError(t, err)

	sum := 0.0
	for _, r := range model.Residuals {
		sum += r
	}
	assert.InDelta(t, 0, sum, 1e-6)

	for i := range y {
		assert.InDelta(t, y[i], model.Fitted[i]+model.Residuals[i], 1e-9)
	}
}

func TestFitRejectsCollinearDesign(t *testing.T) {
	y, cols := testkit.Linear(50, 3, 0, []float64{1.0}, 0.5)
	twin := append([]float64(nil), cols[0]...)

	_, err := Fit("y", y, []string{"x", "x_copy"}, [][]float64{cols[0], twin})
	assert.Error(t, err)
}

func TestFitInputValidation(t *testing.T) {
	_, err := Fit("y", nil, nil, nil)
	assert.Error(t, err)

	_, err = Fit("y", []float64{1, 2, 3}, []string{"x"}, [][]float64{{1, 2}})
	assert.Error(t, err)

	// As many observations as terms leaves no residual degrees of freedom.
	_, err = Fit("y", []float64{1, 2}, []string{"x"}, [][]float64{{3, 4}})
	assert.Error(t, err)
}

func TestInformationCriteriaPreferTrueModel(t *testing.T) {
	y, cols := testkit.Linear(300, 4, 2.0, []float64{1.5}, 0.5)

	full, err := Fit("y", y, []string{"x"}, cols)
	require.NoError(t, err)
	null, err := Fit("y", y, nil, nil)
	require.NoError(t, err)

	// The true predictor explains most of the variance, so both criteria
	// must prefer it over the intercept-only model by a wide margin.
	assert.Less(t, full.AIC, null.AIC-100)
	assert.Less(t, full.BIC, null.BIC-100)

	// For n above e² the BIC penalty is steeper than the AIC penalty.
	assert.Greater(t, full.BIC-full.AIC, 0.0)
}

func TestFormula(t *testing.T) {
	m := &Model{Response: "body_mass_g", Predictors: []string{"flipper_length_mm", "bill_length_mm"}}
	assert.Equal(t, "body_mass_g ~ flipper_length_mm + bill_length_mm", m.Formula())
}
