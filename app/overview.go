package app

import (
	"fmt"

	"penguinlab/domain/dataset"

	"github.com/montanaflynn/stats"
)

// FieldSummary describes one column of the raw dataset for the overview page.
type FieldSummary struct {
	Name        string
	Kind        dataset.ColumnKind
	Missing     int
	MissingPct  string
	UniqueCount int

	// Numeric columns only.
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64

	// Categorical columns only.
	Mode string
}

// DatasetOverview is the index-page view of the raw dataset.
type DatasetOverview struct {
	Name    string
	Rows    int
	Columns int
	Fields  []FieldSummary
}

// Summarize profiles the raw (uncleaned) table so the overview page can
// show missingness before imputation.
func Summarize(t *dataset.Table) (*DatasetOverview, error) {
	overview := &DatasetOverview{
		Name:    t.Name,
		Rows:    t.NumRows(),
		Columns: len(t.Columns),
	}

	for i := range t.Columns {
		col := &t.Columns[i]
		summary := FieldSummary{
			Name:    col.Name,
			Kind:    col.Kind,
			Missing: col.MissingCount(),
		}
		if n := col.Len(); n > 0 {
			summary.MissingPct = fmt.Sprintf("%.1f", float64(summary.Missing)/float64(n)*100)
		}

		if col.Kind == dataset.KindNumeric {
			present := col.Present()
			if len(present) > 0 {
				var err error
				if summary.Mean, err = stats.Mean(present); err != nil {
					return nil, err
				}
				if len(present) > 1 {
					if summary.StdDev, err = stats.StandardDeviationSample(present); err != nil {
						return nil, err
					}
				}
				if summary.Median, err = stats.Median(present); err != nil {
					return nil, err
				}
				if summary.Min, err = stats.Min(present); err != nil {
					return nil, err
				}
				if summary.Max, err = stats.Max(present); err != nil {
					return nil, err
				}
			}
			seen := make(map[float64]bool)
			for _, v := range present {
				seen[v] = true
			}
			summary.UniqueCount = len(seen)
		} else {
			counts := make(map[string]int)
			best, bestCount := "", 0
			for _, v := range col.Labels {
				if v == "" {
					continue
				}
				counts[v]++
				if counts[v] > bestCount {
					best, bestCount = v, counts[v]
				}
			}
			summary.UniqueCount = len(counts)
			summary.Mode = best
		}

		overview.Fields = append(overview.Fields, summary)
	}

	return overview, nil
}
