// Package regress fits ordinary least squares models and compares them by
// information criteria. The linear algebra is gonum's mat package and the
// reference distributions come from gonum's distuv.
package regress

import (
	"fmt"
	"math"

	"penguinlab/internal/errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Coefficient holds one fitted term of a model.
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
	StdErr   float64 `json:"std_err"`
	TStat    float64 `json:"t_stat"`
	PValue   float64 `json:"p_value"`
}

// Model is a fitted ordinary least squares regression.
type Model struct {
	Response     string        `json:"response"`
	Predictors   []string      `json:"predictors"`
	Coefficients []Coefficient `json:"coefficients"` // intercept first

	N          int     `json:"n"`
	ResidualDF int     `json:"residual_df"`
	R2         float64 `json:"r2"`
	AdjR2      float64 `json:"adj_r2"`
	Sigma      float64 `json:"sigma"` // residual standard error
	FStat      float64 `json:"f_stat"`
	FPValue    float64 `json:"f_p_value"`
	LogLik     float64 `json:"log_lik"`
	AIC        float64 `json:"aic"`
	BIC        float64 `json:"bic"`

	Fitted    []float64 `json:"-"`
	Residuals []float64 `json:"-"`
}

// Formula renders the model as "response ~ x1 + x2" (intercept implied).
func (m *Model) Formula() string {
	if len(m.Predictors) == 0 {
		return m.Response + " ~ 1"
	}
	rhs := m.Predictors[0]
	for _, p := range m.Predictors[1:] {
		rhs += " + " + p
	}
	return m.Response + " ~ " + rhs
}

// Fit estimates y ~ 1 + predictors by ordinary least squares. predictors[i]
// is the column of values for predictorNames[i]; an empty predictor set
// fits the intercept-only model.
func Fit(response string, y []float64, predictorNames []string, predictors [][]float64) (*Model, error) {
	n := len(y)
	p := len(predictorNames)
	if n == 0 {
		return nil, errors.InvalidInput("no observations to fit")
	}
	if len(predictors) != p {
		return nil, errors.InvalidInput("predictor names and columns disagree")
	}
	for i, col := range predictors {
		if len(col) != n {
			return nil, errors.InvalidInput(fmt.Sprintf("predictor %s has %d values, response has %d", predictorNames[i], len(col), n))
		}
	}
	if n <= p+1 {
		return nil, errors.InvalidInput(fmt.Sprintf("need more than %d observations to fit %d terms", p+1, p+1))
	}

	// Design matrix with leading intercept column.
	design := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j, col := range predictors {
			design.Set(i, j+1, col[i])
		}
	}
	yVec := mat.NewVecDense(n, append([]float64(nil), y...))

	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, errors.ComputeError("design matrix is singular (perfectly collinear predictors)", err)
	}

	var xty mat.VecDense
	xty.MulVec(design.T(), yVec)
	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	var fittedVec mat.VecDense
	fittedVec.MulVec(design, &beta)

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	yMean := 0.0
	for i := 0; i < n; i++ {
		yMean += y[i]
	}
	yMean /= float64(n)

	sse, sst := 0.0, 0.0
	for i := 0; i < n; i++ {
		fitted[i] = fittedVec.AtVec(i)
		residuals[i] = y[i] - fitted[i]
		sse += residuals[i] * residuals[i]
		dev := y[i] - yMean
		sst += dev * dev
	}

	df := n - p - 1
	sigma2 := sse / float64(df)

	model := &Model{
		Response:   response,
		Predictors: append([]string(nil), predictorNames...),
		N:          n,
		ResidualDF: df,
		Sigma:      math.Sqrt(sigma2),
		Fitted:     fitted,
		Residuals:  residuals,
	}

	if sst > 0 {
		model.R2 = 1 - sse/sst
		model.AdjR2 = 1 - (1-model.R2)*float64(n-1)/float64(df)
	}

	// Coefficient table.
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	names := append([]string{"(Intercept)"}, predictorNames...)
	model.Coefficients = make([]Coefficient, p+1)
	for j := 0; j <= p; j++ {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		est := beta.AtVec(j)
		t := 0.0
		pv := 1.0
		if se > 0 {
			t = est / se
			pv = 2 * tDist.CDF(-math.Abs(t))
		}
		model.Coefficients[j] = Coefficient{Name: names[j], Estimate: est, StdErr: se, TStat: t, PValue: pv}
	}

	// Overall F test against the intercept-only model.
	if p > 0 && sse > 0 {
		model.FStat = ((sst - sse) / float64(p)) / sigma2
		fDist := distuv.F{D1: float64(p), D2: float64(df)}
		model.FPValue = fDist.Survival(model.FStat)
	}

	// Gaussian log-likelihood and information criteria. The parameter
	// count includes the residual variance, matching R's AIC/BIC for lm.
	nf := float64(n)
	model.LogLik = -nf / 2 * (math.Log(2*math.Pi) + math.Log(sse/nf) + 1)
	k := float64(p + 2)
	model.AIC = 2*k - 2*model.LogLik
	model.BIC = math.Log(nf)*k - 2*model.LogLik

	return model, nil
}
