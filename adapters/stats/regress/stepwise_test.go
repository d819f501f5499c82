package regress

import (
	"math/rand"
	"testing"

	"penguinlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepwiseFixture builds a response driven by x1 and x2 with an unrelated
// noise candidate alongside.
func stepwiseFixture(t *testing.T) (y []float64, candidates []string, columns map[string][]float64) {
	t.Helper()
	y, cols := testkit.Linear(400, 21, 1.0, []float64{3.0, -2.0}, 0.5)

	rng := rand.New(rand.NewSource(22))
	noise := make([]float64, len(y))
	for i := range noise {
		noise[i] = rng.Float64() * 10
	}

	candidates = []string{"x1", "x2", "noise"}
	columns = map[string][]float64{"x1": cols[0], "x2": cols[1], "noise": noise}
	return y, candidates, columns
}

func TestStepwiseForwardFindsTruePredictors(t *testing.T) {
	y, candidates, columns := stepwiseFixture(t)

	sel, err := Stepwise("y", y, candidates, columns, DirectionForward, CriterionBIC)
	require.NoError(t, err)

	assert.Contains(t, sel.Model.Predictors, "x1")
	assert.Contains(t, sel.Model.Predictors, "x2")

	require.NotEmpty(t, sel.Trail)
	assert.Equal(t, "start", sel.Trail[0].Action)
	for _, step := range sel.Trail[1:] {
		assert.Equal(t, "add", step.Action)
	}

	// Every recorded move improves the criterion.
	for i := 1; i < len(sel.Trail); i++ {
		assert.Less(t, sel.Trail[i].Score, sel.Trail[i-1].Score)
	}
	assert.Equal(t, sel.Trail[len(sel.Trail)-1].Score, CriterionBIC.score(sel.Model))
}

func TestStepwiseBackwardKeepsTruePredictors(t *testing.T) {
	y, candidates, columns := stepwiseFixture(t)

	sel, err := Stepwise("y", y, candidates, columns, DirectionBackward, CriterionBIC)
	require.NoError(t, err)

	assert.Contains(t, sel.Model.Predictors, "x1")
	assert.Contains(t, sel.Model.Predictors, "x2")
	assert.Equal(t, "start", sel.Trail[0].Action)
	for _, step := range sel.Trail[1:] {
		assert.Equal(t, "drop", step.Action)
	}
}

func TestStepwiseCriteriaDiffer(t *testing.T) {
	y, candidates, columns := stepwiseFixture(t)

	aic, err := Stepwise("y", y, candidates, columns, DirectionForward, CriterionAIC)
	require.NoError(t, err)
	bic, err := Stepwise("y", y, candidates, columns, DirectionForward, CriterionBIC)
	require.NoError(t, err)

	// Same search, different scores recorded.
	assert.Equal(t, CriterionAIC, aic.Criterion)
	assert.Equal(t, CriterionBIC, bic.Criterion)
	assert.NotEqual(t, aic.Trail[0].Score, bic.Trail[0].Score)
}

func TestStepwiseRejectsBadArguments(t *testing.T) {
	y, candidates, columns := stepwiseFixture(t)

	_, err := Stepwise("y", y, candidates, columns, Direction("sideways"), CriterionAIC)
	assert.Error(t, err)

	_, err = Stepwise("y", y, candidates, columns, DirectionForward, Criterion("r2"))
	assert.Error(t, err)

	_, err = Stepwise("y", y, []string{"missing"}, columns, DirectionForward, CriterionAIC)
	assert.Error(t, err)
}

func TestStepwiseSkipsSingularTrials(t *testing.T) {
	y, cols := testkit.Linear(100, 30, 0.5, []float64{2.0}, 0.3)
	twin := append([]float64(nil), cols[0]...)

	columns := map[string][]float64{"x": cols[0], "x_copy": twin}
	sel, err := Stepwise("y", y, []string{"x", "x_copy"}, columns, DirectionForward, CriterionAIC)
	require.NoError(t, err)

	// Only one of the two identical columns can enter the model.
	assert.Len(t, sel.Model.Predictors, 1)
}
