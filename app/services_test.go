package app

import (
	"context"
	"testing"

	"penguinlab/adapters/stats/regress"
	"penguinlab/domain/dataset"
	"penguinlab/internal"
	"penguinlab/internal/config"
	"penguinlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		ClusterSeed:     42,
		DefaultClusters: 3,
		MaxClusters:     8,
		MaxIterations:   100,
		ScaleByDefault:  true,
	}
}

func testLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func TestExplorerComputeSnapshot(t *testing.T) {
	table := testkit.TableWithMissing(120, 51, 0.05)
	svc := NewExplorerService(table, analysisConfig(), testLogger())

	result, err := svc.Compute(context.Background(), svc.Defaults())
	require.NoError(t, err)

	assert.Equal(t, 4, result.PCA.Components())
	assert.Len(t, result.PCA.Scores, 120)
	assert.Equal(t, 3, result.Clusters.K)

	// The augmented table carries the derived cluster column, cleaned.
	cluster, err := result.Table.Column(dataset.ColCluster)
	require.NoError(t, err)
	assert.Equal(t, dataset.KindCategorical, cluster.Kind)
	assert.Zero(t, cluster.MissingCount())

	for _, name := range dataset.Measurements {
		col, err := result.Table.Column(name)
		require.NoError(t, err)
		assert.Zero(t, col.MissingCount(), name)
	}
	assert.NotEmpty(t, result.Report.Imputed)
}

func TestExplorerComputeIsDeterministic(t *testing.T) {
	table := testkit.Table(90, 52)

	first, err := NewExplorerService(table, analysisConfig(), testLogger()).
		Compute(context.Background(), ExplorerParams{K: 3, Scale: true, ColorBy: "cluster"})
	require.NoError(t, err)
	second, err := NewExplorerService(table, analysisConfig(), testLogger()).
		Compute(context.Background(), ExplorerParams{K: 3, Scale: true, ColorBy: "cluster"})
	require.NoError(t, err)

	assert.Equal(t, first.Clusters.Assignments, second.Clusters.Assignments)
	assert.Equal(t, first.PCA.Variances, second.PCA.Variances)
}

func TestExplorerCachesByParams(t *testing.T) {
	table := testkit.Table(90, 53)
	svc := NewExplorerService(table, analysisConfig(), testLogger())
	params := ExplorerParams{K: 3, Scale: true, ColorBy: "cluster"}

	first, err := svc.Compute(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.Compute(context.Background(), params)
	require.NoError(t, err)

	// Same snapshot served from cache.
	assert.Same(t, first.PCA, second.PCA)

	// Color choice is presentation only and must not miss the cache.
	params.ColorBy = "species"
	third, err := svc.Compute(context.Background(), params)
	require.NoError(t, err)
	assert.Same(t, first.PCA, third.PCA)
	assert.Equal(t, "species", third.Params.ColorBy)
}

func TestExplorerRejectsBadK(t *testing.T) {
	svc := NewExplorerService(testkit.Table(60, 54), analysisConfig(), testLogger())

	_, err := svc.Compute(context.Background(), ExplorerParams{K: 1, Scale: true})
	assert.Error(t, err)
	_, err = svc.Compute(context.Background(), ExplorerParams{K: 99, Scale: true})
	assert.Error(t, err)
}

func TestGroupedScores(t *testing.T) {
	table := testkit.Table(90, 55)
	svc := NewExplorerService(table, analysisConfig(), testLogger())

	result, err := svc.Compute(context.Background(), ExplorerParams{K: 3, Scale: true, ColorBy: "cluster"})
	require.NoError(t, err)

	points, err := svc.GroupedScores(result, 2)
	require.NoError(t, err)
	assert.Len(t, points.Groups, 3)

	total := 0
	for _, g := range points.Groups {
		assert.Equal(t, len(g.X), len(g.Y))
		total += len(g.X)
	}
	assert.Equal(t, 90, total)
	assert.Contains(t, points.XLabel, "PC1")

	// Species coloring splits by the categorical column instead.
	result.Params.ColorBy = "species"
	bysp, err := svc.GroupedScores(result, 3)
	require.NoError(t, err)
	assert.Len(t, bysp.Groups, 3)
	for _, g := range bysp.Groups {
		assert.Len(t, g.Z, len(g.X))
	}
}

func TestModelerComputeDirectFit(t *testing.T) {
	table := testkit.TableWithMissing(150, 56, 0.05)
	svc := NewModelerService(table, testLogger())

	result, err := svc.Compute(context.Background(), ModelParams{
		Response:   dataset.ColBodyMass,
		Predictors: []string{dataset.ColFlipperLength, dataset.ColBillLength},
	})
	require.NoError(t, err)

	assert.Equal(t, dataset.ColBodyMass, result.Model.Response)
	assert.Len(t, result.Findings, 3)
	assert.Nil(t, result.Selection)
	assert.Len(t, result.Actual, 150)

	fitted, err := result.Table.Column("fitted_" + dataset.ColBodyMass)
	require.NoError(t, err)
	assert.Len(t, fitted.Numbers, 150)
	_, err = result.Table.Column("residual_" + dataset.ColBodyMass)
	require.NoError(t, err)
}

func TestModelerComputeStepwise(t *testing.T) {
	table := testkit.Table(150, 57)
	svc := NewModelerService(table, testLogger())

	result, err := svc.Compute(context.Background(), ModelParams{
		Response:  dataset.ColBodyMass,
		Stepwise:  true,
		Direction: regress.DirectionForward,
		Criterion: regress.CriterionAIC,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Selection)
	assert.Equal(t, "start", result.Selection.Trail[0].Action)
	assert.Same(t, result.Selection.Model, result.Model)
	// Candidates never include the response itself.
	assert.NotContains(t, result.Model.Predictors, dataset.ColBodyMass)
}

func TestModelerValidation(t *testing.T) {
	svc := NewModelerService(testkit.Table(80, 58), testLogger())
	ctx := context.Background()

	_, err := svc.Compute(ctx, ModelParams{Response: "species", Predictors: []string{dataset.ColBillLength}})
	assert.Error(t, err)

	_, err = svc.Compute(ctx, ModelParams{Response: dataset.ColBodyMass})
	assert.Error(t, err)

	_, err = svc.Compute(ctx, ModelParams{
		Response:   dataset.ColBodyMass,
		Predictors: []string{dataset.ColBodyMass},
	})
	assert.Error(t, err)
}

func TestModelerCandidates(t *testing.T) {
	svc := NewModelerService(testkit.Table(80, 59), testLogger())

	candidates := svc.Candidates(dataset.ColBodyMass)
	assert.Len(t, candidates, 3)
	assert.NotContains(t, candidates, dataset.ColBodyMass)
	assert.Len(t, svc.Variables(), 4)
}

func TestSummarizeRawTable(t *testing.T) {
	table := testkit.TableWithMissing(100, 60, 0.1)

	overview, err := Summarize(table)
	require.NoError(t, err)

	assert.Equal(t, 100, overview.Rows)
	assert.Equal(t, 8, overview.Columns)
	require.Len(t, overview.Fields, 8)

	byName := make(map[string]FieldSummary)
	for _, f := range overview.Fields {
		byName[f.Name] = f
	}

	mass := byName[dataset.ColBodyMass]
	assert.Equal(t, dataset.KindNumeric, mass.Kind)
	assert.Positive(t, mass.Mean)
	assert.Greater(t, mass.Max, mass.Min)

	species := byName[dataset.ColSpecies]
	assert.Equal(t, dataset.KindCategorical, species.Kind)
	assert.Equal(t, 3, species.UniqueCount)
	assert.NotEmpty(t, species.Mode)

	sex := byName[dataset.ColSex]
	assert.Positive(t, sex.Missing)
}
