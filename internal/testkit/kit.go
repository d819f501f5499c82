// Package testkit generates deterministic synthetic data for tests:
// penguin-shaped tables, separated point clouds for clustering, and
// linear responses with known coefficients.
package testkit

import (
	"math"
	"math/rand"

	"penguinlab/domain/dataset"
)

// speciesProfile holds the measurement means one synthetic species is
// drawn around. Values are loosely penguin-shaped so schema-aware code
// behaves as it would on the real table.
type speciesProfile struct {
	name       string
	island     string
	billLen    float64
	billDepth  float64
	flipperLen float64
	bodyMass   float64
}

var profiles = []speciesProfile{
	{"Adelie", "Torgersen", 39.0, 18.3, 190.0, 3700.0},
	{"Chinstrap", "Dream", 48.8, 18.4, 196.0, 3730.0},
	{"Gentoo", "Biscoe", 47.5, 15.0, 217.0, 5070.0},
}

// Table builds a synthetic penguin table with n rows drawn round-robin
// from three species profiles. The same n and seed always produce the
// same table.
func Table(n int, seed int64) *dataset.Table {
	rng := rand.New(rand.NewSource(seed))

	species := make([]string, n)
	island := make([]string, n)
	sex := make([]string, n)
	year := make([]string, n)
	billLen := make([]float64, n)
	billDepth := make([]float64, n)
	flipperLen := make([]float64, n)
	bodyMass := make([]float64, n)

	years := []string{"2007", "2008", "2009"}
	for i := 0; i < n; i++ {
		p := profiles[i%len(profiles)]
		species[i] = p.name
		island[i] = p.island
		if i%2 == 0 {
			sex[i] = "male"
		} else {
			sex[i] = "female"
		}
		year[i] = years[i%len(years)]
		billLen[i] = p.billLen + rng.NormFloat64()*2.5
		billDepth[i] = p.billDepth + rng.NormFloat64()*1.0
		flipperLen[i] = p.flipperLen + rng.NormFloat64()*5.0
		bodyMass[i] = p.bodyMass + rng.NormFloat64()*250.0
	}

	t := &dataset.Table{Name: "synthetic"}
	t.Columns = []dataset.Column{
		{Name: dataset.ColSpecies, Kind: dataset.KindCategorical, Labels: species},
		{Name: dataset.ColIsland, Kind: dataset.KindCategorical, Labels: island},
		{Name: dataset.ColBillLength, Kind: dataset.KindNumeric, Numbers: billLen},
		{Name: dataset.ColBillDepth, Kind: dataset.KindNumeric, Numbers: billDepth},
		{Name: dataset.ColFlipperLength, Kind: dataset.KindNumeric, Numbers: flipperLen},
		{Name: dataset.ColBodyMass, Kind: dataset.KindNumeric, Numbers: bodyMass},
		{Name: dataset.ColSex, Kind: dataset.KindCategorical, Labels: sex},
		{Name: dataset.ColYear, Kind: dataset.KindCategorical, Labels: year},
	}
	return t
}

// TableWithMissing is Table with roughly rate of the measurement cells
// and sex labels knocked out.
func TableWithMissing(n int, seed int64, rate float64) *dataset.Table {
	t := Table(n, seed)
	rng := rand.New(rand.NewSource(seed + 1))
	for c := range t.Columns {
		col := &t.Columns[c]
		switch {
		case dataset.IsMeasurement(col.Name):
			for i := range col.Numbers {
				if rng.Float64() < rate {
					col.Numbers[i] = math.NaN()
				}
			}
		case col.Name == dataset.ColSex:
			for i := range col.Labels {
				if rng.Float64() < rate {
					col.Labels[i] = ""
				}
			}
		}
	}
	return t
}

// Blobs builds k well-separated 2D point clouds of per points each,
// returning the matrix and the true cluster index per row.
func Blobs(k, per int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, 0, k*per)
	truth := make([]int, 0, k*per)
	for c := 0; c < k; c++ {
		cx := float64(c) * 20.0
		cy := float64(c%2) * 20.0
		for i := 0; i < per; i++ {
			rows = append(rows, []float64{
				cx + rng.NormFloat64(),
				cy + rng.NormFloat64(),
			})
			truth = append(truth, c)
		}
	}
	return rows, truth
}

// Linear draws predictor columns uniformly on [0,10) and builds the
// response intercept + coefs·x + N(0, noise). Columns are returned in
// coefficient order.
func Linear(n int, seed int64, intercept float64, coefs []float64, noise float64) (y []float64, predictors [][]float64) {
	rng := rand.New(rand.NewSource(seed))
	predictors = make([][]float64, len(coefs))
	for j := range predictors {
		predictors[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			predictors[j][i] = rng.Float64() * 10
		}
	}
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		v := intercept
		for j, c := range coefs {
			v += c * predictors[j][i]
		}
		y[i] = v + rng.NormFloat64()*noise
	}
	return y, predictors
}
