package charts

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const scatterSymbolSize = 9

// GroupedPoints holds 2D points split into named series (clusters or species).
type GroupedPoints struct {
	XLabel string
	YLabel string
	Groups []PointGroup
}

// PointGroup is one scatter series.
type PointGroup struct {
	Name string
	X    []float64
	Y    []float64
	Z    []float64 // used by the 3D chart only
}

// ComponentScatter builds the 2D scatter of two principal components, one
// series per group so clusters are distinguishable by color.
func ComponentScatter(title string, points GroupedPoints) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(title)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxisOpts(opts.XAxis{Name: points.XLabel, Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: points.YLabel, Type: "value", Scale: opts.Bool(true)}),
	)

	for _, group := range points.Groups {
		data := make([]opts.ScatterData, len(group.X))
		for i := range group.X {
			data[i] = opts.ScatterData{
				Value:      []interface{}{group.X[i], group.Y[i]},
				SymbolSize: scatterSymbolSize,
			}
		}
		scatter.AddSeries(group.Name, data)
	}

	return scatter
}

// ComponentScatter3D builds the 3D scatter of three principal components.
func ComponentScatter3D(title string, points GroupedPoints, zLabel string) *charts.Scatter3D {
	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(title)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: points.XLabel, Show: opts.Bool(true)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: points.YLabel, Show: opts.Bool(true)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: zLabel, Show: opts.Bool(true)}),
	)

	for _, group := range points.Groups {
		data := make([]opts.Chart3DData, len(group.X))
		for i := range group.X {
			data[i] = opts.Chart3DData{
				Name:  group.Name,
				Value: []interface{}{group.X[i], group.Y[i], group.Z[i]},
			}
		}
		scatter.AddSeries(group.Name, data)
	}

	return scatter
}

// AxisLabel formats a component axis label such as "PC1 (68.3%)".
func AxisLabel(component int, proportion float64) string {
	return fmt.Sprintf("PC%d (%.1f%%)", component, proportion*100)
}
