package charts

import (
	"math"

	"penguinlab/adapters/stats/regress"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ResidualsVsFitted builds the residual scatter used to judge whether the
// errors are centered and unpatterned across the fitted range.
func ResidualsVsFitted(model *regress.Model) *charts.Scatter {
	data := make([]opts.ScatterData, len(model.Fitted))
	for i := range model.Fitted {
		data[i] = opts.ScatterData{
			Value:      []interface{}{model.Fitted[i], model.Residuals[i]},
			SymbolSize: scatterSymbolSize,
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts("Residuals vs fitted")),
		charts.WithTitleOpts(opts.Title{
			Title:    "Residuals vs fitted",
			Subtitle: model.Formula(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Fitted", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Residual", Type: "value", Scale: opts.Bool(true)}),
	)
	scatter.AddSeries("Residuals", data,
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "zero", YAxis: 0}),
	)

	return scatter
}

// ActualVsPredicted builds the observed-against-fitted scatter with an
// identity reference line; a good model hugs the diagonal.
func ActualVsPredicted(model *regress.Model, actual []float64) *charts.Scatter {
	data := make([]opts.ScatterData, len(actual))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range actual {
		data[i] = opts.ScatterData{
			Value:      []interface{}{model.Fitted[i], actual[i]},
			SymbolSize: scatterSymbolSize,
		}
		lo = math.Min(lo, math.Min(model.Fitted[i], actual[i]))
		hi = math.Max(hi, math.Max(model.Fitted[i], actual[i]))
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts("Actual vs predicted")),
		charts.WithTitleOpts(opts.Title{
			Title:    "Actual vs predicted",
			Subtitle: model.Formula(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Predicted", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Actual", Type: "value", Scale: opts.Bool(true)}),
	)
	scatter.AddSeries("Observations", data)

	// Identity reference rendered as a two-point line series.
	if len(actual) > 0 {
		line := charts.NewLine()
		line.AddSeries("Identity", []opts.LineData{
			{Value: []interface{}{lo, lo}},
			{Value: []interface{}{hi, hi}},
		}, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
		scatter.Overlap(line)
	}

	return scatter
}
