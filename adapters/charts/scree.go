package charts

import (
	"fmt"

	"penguinlab/adapters/stats/pca"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Scree builds the scree plot for a fitted PCA: explained variance per
// component as bars with the cumulative proportion overlaid as a line.
func Scree(result *pca.Result) *charts.Bar {
	k := result.Components()
	labels := make([]string, k)
	varData := make([]opts.BarData, k)
	cumData := make([]opts.LineData, k)
	for i := 0; i < k; i++ {
		labels[i] = fmt.Sprintf("PC%d", i+1)
		varData[i] = opts.BarData{Value: result.Variances[i]}
		cumData[i] = opts.LineData{Value: result.Cumulative[i] * 100}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts("Scree plot")),
		charts.WithTitleOpts(opts.Title{
			Title:    "Scree plot",
			Subtitle: "Explained variance per principal component",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Component"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Variance"}),
	)
	bar.ExtendYAxis(opts.YAxis{
		Name: "Cumulative %",
		Type: "value",
		Max:  100,
	})
	bar.SetXAxis(labels)
	bar.AddSeries("Explained variance", varData)

	line := charts.NewLine()
	line.SetXAxis(labels)
	line.AddSeries("Cumulative %", cumData,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), YAxisIndex: 1}),
	)
	bar.Overlap(line)

	return bar
}
