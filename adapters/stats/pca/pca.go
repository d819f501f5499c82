// Package pca projects the numeric measurement columns onto their
// principal components. The decomposition itself is gonum's stat.PC; this
// package only shapes the inputs and derives scores and variance shares.
package pca

import (
	"fmt"

	"penguinlab/internal/errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Result holds a fitted principal component analysis.
type Result struct {
	Variables  []string    // input column names, in loading order
	Loadings   [][]float64 // one row per variable, one column per component
	Scores     [][]float64 // one row per observation, one column per component
	Variances  []float64   // eigenvalues, non-increasing
	Proportion []float64   // share of total variance per component
	Cumulative []float64   // running sum of Proportion
}

// Components returns the number of retained components
func (r *Result) Components() int {
	return len(r.Variances)
}

// Fit computes the principal components of the row-major matrix rows whose
// columns are named by variables. All components are retained; callers
// slice Scores as needed for 2D/3D projections.
func Fit(rows [][]float64, variables []string) (*Result, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.InvalidInput("no observations for PCA")
	}
	d := len(variables)
	if d < 2 {
		return nil, errors.InvalidInput("PCA needs at least two variables")
	}
	if n <= d {
		return nil, errors.InvalidInput(fmt.Sprintf("PCA needs more observations (%d) than variables (%d)", n, d))
	}

	m := mat.NewDense(n, d, nil)
	for i, row := range rows {
		if len(row) != d {
			return nil, errors.InvalidInput("ragged input matrix for PCA")
		}
		m.SetRow(i, row)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, errors.ComputeError("principal component decomposition failed", nil)
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	variances := pc.VarsTo(nil)

	// Center the data and project it onto the component vectors.
	means := make([]float64, d)
	for j := 0; j < d; j++ {
		means[j] = stat.Mean(mat.Col(nil, j, m), nil)
	}
	centered := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			centered.Set(i, j, m.At(i, j)-means[j])
		}
	}
	var projected mat.Dense
	projected.Mul(centered, &vecs)

	result := &Result{
		Variables:  append([]string(nil), variables...),
		Variances:  variances,
		Loadings:   make([][]float64, d),
		Scores:     make([][]float64, n),
		Proportion: make([]float64, len(variances)),
		Cumulative: make([]float64, len(variances)),
	}

	for j := 0; j < d; j++ {
		result.Loadings[j] = mat.Row(nil, j, &vecs)
	}
	for i := 0; i < n; i++ {
		result.Scores[i] = mat.Row(nil, i, &projected)
	}

	total := 0.0
	for _, v := range variances {
		total += v
	}
	running := 0.0
	for k, v := range variances {
		share := 0.0
		if total > 0 {
			share = v / total
		}
		running += share
		result.Proportion[k] = share
		result.Cumulative[k] = running
	}

	return result, nil
}
