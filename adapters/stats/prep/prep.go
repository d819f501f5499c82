// Package prep implements the data-readiness half of every recomputation:
// median/mode imputation of missing cells and optional z-score scaling.
// All analyses operate on the cleaned copy, never on the raw table.
package prep

import (
	"math"

	"penguinlab/domain/dataset"
	"penguinlab/internal/errors"

	"github.com/montanaflynn/stats"
)

// ImputationReport records what Clean substituted, per column.
type ImputationReport struct {
	Imputed map[string]int     // column name -> cells replaced
	Medians map[string]float64 // numeric column -> substituted median
	Modes   map[string]string  // categorical column -> substituted mode
}

// Clean returns a deep copy of the table with every missing numeric value
// replaced by its column median and every missing categorical value by its
// column mode. The input table is not modified.
func Clean(t *dataset.Table) (*dataset.Table, *ImputationReport, error) {
	out := t.Clone()
	report := &ImputationReport{
		Imputed: make(map[string]int),
		Medians: make(map[string]float64),
		Modes:   make(map[string]string),
	}

	for i := range out.Columns {
		col := &out.Columns[i]
		missing := col.MissingCount()
		if missing == 0 {
			continue
		}
		if missing == col.Len() {
			return nil, nil, errors.DatasetError("column "+col.Name+" has no observed values to impute from", nil)
		}

		if col.Kind == dataset.KindNumeric {
			median, err := stats.Median(col.Present())
			if err != nil {
				return nil, nil, errors.ComputeError("median of column "+col.Name, err)
			}
			for j, v := range col.Numbers {
				if math.IsNaN(v) {
					col.Numbers[j] = median
				}
			}
			report.Imputed[col.Name] = missing
			report.Medians[col.Name] = median
			continue
		}

		mode := labelMode(col.Labels)
		for j, v := range col.Labels {
			if v == "" {
				col.Labels[j] = mode
			}
		}
		report.Imputed[col.Name] = missing
		report.Modes[col.Name] = mode
	}

	return out, report, nil
}

// labelMode returns the most frequent non-missing label. Ties break toward
// the label seen first, which keeps repeated cleanings deterministic.
func labelMode(labels []string) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range labels {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ""
	bestCount := 0
	for _, label := range order {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

// ZScore normalizes the named numeric columns of the table in place using
// the sample standard deviation. Constant columns are left untouched.
func ZScore(t *dataset.Table, names []string) error {
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return err
		}
		if col.Kind != dataset.KindNumeric {
			return errors.InvalidInput("cannot scale categorical column " + name)
		}

		mean, err := stats.Mean(col.Numbers)
		if err != nil {
			return errors.ComputeError("mean of column "+name, err)
		}
		sd, err := stats.StandardDeviationSample(col.Numbers)
		if err != nil {
			return errors.ComputeError("standard deviation of column "+name, err)
		}
		if sd == 0 {
			continue
		}
		for i, v := range col.Numbers {
			col.Numbers[i] = (v - mean) / sd
		}
	}
	return nil
}
