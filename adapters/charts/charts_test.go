package charts

import (
	"bytes"
	"strings"
	"testing"

	"penguinlab/adapters/stats/pca"
	"penguinlab/adapters/stats/regress"
	"penguinlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fittedPCA(t *testing.T) *pca.Result {
	t.Helper()
	rows, _ := testkit.Blobs(3, 20, 13)
	result, err := pca.Fit(rows, []string{"x", "y"})
	require.NoError(t, err)
	return result
}

func fittedModel(t *testing.T) (*regress.Model, []float64) {
	t.Helper()
	y, cols := testkit.Linear(60, 14, 1.0, []float64{2.0}, 0.5)
	model, err := regress.Fit("y", y, []string{"x"}, cols)
	require.NoError(t, err)
	return model, y
}

func groupedPoints() GroupedPoints {
	return GroupedPoints{
		XLabel: "PC1 (80.0%)",
		YLabel: "PC2 (20.0%)",
		Groups: []PointGroup{
			{Name: "cluster 1", X: []float64{1, 2}, Y: []float64{3, 4}, Z: []float64{5, 6}},
			{Name: "cluster 2", X: []float64{-1, -2}, Y: []float64{-3, -4}, Z: []float64{-5, -6}},
		},
	}
}

func TestRenderPageIsStandaloneHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(Scree(fittedPCA(t)), &buf))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "echarts.min.js")
	assert.Contains(t, html, "Explained variance")
	assert.Contains(t, html, "Cumulative %")
}

func TestRenderFragmentStripsDocumentShell(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFragment(Scree(fittedPCA(t)), &buf))

	fragment := buf.String()
	assert.NotContains(t, fragment, "<!DOCTYPE")
	assert.NotContains(t, fragment, "<html")
	assert.Contains(t, fragment, `<div class="container">`)
	assert.Contains(t, fragment, "echarts.init")
}

func TestComponentScatterCarriesSeriesAndAxes(t *testing.T) {
	var buf bytes.Buffer
	chart := ComponentScatter("PC1 vs PC2", groupedPoints())
	require.NoError(t, RenderFragment(chart, &buf))

	html := buf.String()
	assert.Contains(t, html, "cluster 1")
	assert.Contains(t, html, "cluster 2")
	assert.Contains(t, html, "PC1 (80.0%)")
	assert.Contains(t, html, "PC2 (20.0%)")
}

func TestComponentScatter3DCarriesZAxis(t *testing.T) {
	var buf bytes.Buffer
	chart := ComponentScatter3D("components", groupedPoints(), "PC3 (5.0%)")
	require.NoError(t, RenderPage(chart, &buf))

	html := buf.String()
	assert.Contains(t, html, "scatter3D")
	assert.Contains(t, html, "PC3 (5.0%)")
	assert.Contains(t, html, "echarts-gl")
}

func TestResidualCharts(t *testing.T) {
	model, actual := fittedModel(t)

	var residuals bytes.Buffer
	require.NoError(t, RenderFragment(ResidualsVsFitted(model), &residuals))
	assert.Contains(t, residuals.String(), "Residuals")

	var predicted bytes.Buffer
	require.NoError(t, RenderFragment(ActualVsPredicted(model, actual), &predicted))
	assert.Contains(t, predicted.String(), "Identity")
	assert.Contains(t, predicted.String(), "Observations")
}

func TestAxisLabel(t *testing.T) {
	assert.Equal(t, "PC1 (68.3%)", AxisLabel(1, 0.683))
	assert.Equal(t, "PC3 (5.0%)", AxisLabel(3, 0.05))
}

func TestExtractChartContentPassthrough(t *testing.T) {
	fragment := `<div class="item"><script>let x = 1;</script></div>`
	assert.Equal(t, fragment, extractChartContent(fragment))

	page := "<!DOCTYPE html><html><body>" + strings.Repeat(" ", 4) +
		`<div class="container"><div class="item"></div></div></body></html>`
	got := extractChartContent(page)
	assert.True(t, strings.HasPrefix(got, `<div class="container">`))
	assert.NotContains(t, got, "</body>")
}
