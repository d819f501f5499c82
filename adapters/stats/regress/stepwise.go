package regress

import (
	"penguinlab/internal/errors"
)

// Criterion selects the information criterion used to compare models.
type Criterion string

const (
	CriterionAIC Criterion = "aic"
	CriterionBIC Criterion = "bic"
)

// Direction selects the search strategy.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// Step records one move of the selection search.
type Step struct {
	Action   string  `json:"action"` // "start", "add", "drop"
	Variable string  `json:"variable,omitempty"`
	Score    float64 `json:"score"` // criterion value after the move
}

// Selection is the outcome of a stepwise search.
type Selection struct {
	Direction Direction `json:"direction"`
	Criterion Criterion `json:"criterion"`
	Trail     []Step    `json:"trail"`
	Model     *Model    `json:"model"`
}

func (c Criterion) score(m *Model) float64 {
	if c == CriterionBIC {
		return m.BIC
	}
	return m.AIC
}

// Stepwise searches the candidate predictor set for the model minimizing
// the criterion, adding (forward) or dropping (backward) one variable per
// step and stopping when no move improves the score.
func Stepwise(response string, y []float64, candidates []string, columns map[string][]float64, dir Direction, crit Criterion) (*Selection, error) {
	if crit != CriterionAIC && crit != CriterionBIC {
		return nil, errors.InvalidInput("unknown criterion: " + string(crit))
	}
	for _, name := range candidates {
		if _, ok := columns[name]; !ok {
			return nil, errors.InvalidInput("no data column for candidate " + name)
		}
	}

	switch dir {
	case DirectionForward:
		return searchForward(response, y, candidates, columns, crit)
	case DirectionBackward:
		return searchBackward(response, y, candidates, columns, crit)
	default:
		return nil, errors.InvalidInput("unknown direction: " + string(dir))
	}
}

func fitSubset(response string, y []float64, subset []string, columns map[string][]float64) (*Model, error) {
	cols := make([][]float64, len(subset))
	for i, name := range subset {
		cols[i] = columns[name]
	}
	return Fit(response, y, subset, cols)
}

func searchForward(response string, y []float64, candidates []string, columns map[string][]float64, crit Criterion) (*Selection, error) {
	current, err := fitSubset(response, y, nil, columns)
	if err != nil {
		return nil, err
	}
	sel := &Selection{
		Direction: DirectionForward,
		Criterion: crit,
		Trail:     []Step{{Action: "start", Score: crit.score(current)}},
	}

	remaining := append([]string(nil), candidates...)
	for len(remaining) > 0 {
		bestIdx := -1
		var bestModel *Model
		bestScore := crit.score(current)

		for i, name := range remaining {
			trial, err := fitSubset(response, y, append(append([]string(nil), current.Predictors...), name), columns)
			if err != nil {
				// A singular trial design just excludes the candidate.
				continue
			}
			if s := crit.score(trial); s < bestScore {
				bestScore = s
				bestIdx = i
				bestModel = trial
			}
		}

		if bestIdx < 0 {
			break
		}
		sel.Trail = append(sel.Trail, Step{Action: "add", Variable: remaining[bestIdx], Score: bestScore})
		current = bestModel
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	sel.Model = current
	return sel, nil
}

func searchBackward(response string, y []float64, candidates []string, columns map[string][]float64, crit Criterion) (*Selection, error) {
	current, err := fitSubset(response, y, candidates, columns)
	if err != nil {
		return nil, err
	}
	sel := &Selection{
		Direction: DirectionBackward,
		Criterion: crit,
		Trail:     []Step{{Action: "start", Score: crit.score(current)}},
	}

	for len(current.Predictors) > 0 {
		bestIdx := -1
		var bestModel *Model
		bestScore := crit.score(current)

		for i := range current.Predictors {
			subset := make([]string, 0, len(current.Predictors)-1)
			subset = append(subset, current.Predictors[:i]...)
			subset = append(subset, current.Predictors[i+1:]...)
			trial, err := fitSubset(response, y, subset, columns)
			if err != nil {
				continue
			}
			if s := crit.score(trial); s < bestScore {
				bestScore = s
				bestIdx = i
				bestModel = trial
			}
		}

		if bestIdx < 0 {
			break
		}
		sel.Trail = append(sel.Trail, Step{Action: "drop", Variable: current.Predictors[bestIdx], Score: bestScore})
		current = bestModel
	}

	sel.Model = current
	return sel, nil
}
