package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"penguinlab/adapters/charts"
	"penguinlab/adapters/stats/regress"
	"penguinlab/adapters/tabular"
	"penguinlab/app"
)

// handleModeler serves the regression workbench page. The page opens
// empty; models are built through the HTMX endpoints below.
func (a *App) handleModeler(w http.ResponseWriter, r *http.Request) {
	_, state := a.session(w, r)

	data := map[string]interface{}{
		"Title":     "Modeler",
		"Variables": a.modeler.Variables(),
		"HasModel":  state.HasModel,
	}
	if state.HasModel {
		result, err := a.modeler.Compute(r.Context(), state.Model)
		if err == nil {
			data["Result"] = a.modelView(result)
		}
	}
	a.renderTemplate(w, "modeler.html", data)
}

func (a *App) modelParamsFromForm(r *http.Request) app.ModelParams {
	_ = r.ParseForm()
	return app.ModelParams{
		Response:   r.PostFormValue("response"),
		Predictors: r.PostForm["predictors"],
	}
}

// handleModelBuild fits the model the form describes and returns the
// result fragment.
func (a *App) handleModelBuild(w http.ResponseWriter, r *http.Request) {
	params := a.modelParamsFromForm(r)

	result, err := a.modeler.Compute(r.Context(), params)
	if err != nil {
		a.renderChartError(w, err)
		return
	}
	a.rememberModel(w, r, params)
	a.renderPartial(w, "model_result.html", a.modelView(result))
}

// handleModelStepwise runs stepwise selection and returns the result
// fragment including the selection trail.
func (a *App) handleModelStepwise(w http.ResponseWriter, r *http.Request) {
	params := a.modelParamsFromForm(r)
	params.Stepwise = true
	params.Predictors = nil
	params.Direction = regress.Direction(r.PostFormValue("direction"))
	params.Criterion = regress.Criterion(r.PostFormValue("criterion"))
	if params.Direction == "" {
		params.Direction = regress.DirectionForward
	}
	if params.Criterion == "" {
		params.Criterion = regress.CriterionAIC
	}

	result, err := a.modeler.Compute(r.Context(), params)
	if err != nil {
		a.renderChartError(w, err)
		return
	}
	a.rememberModel(w, r, params)
	a.renderPartial(w, "model_result.html", a.modelView(result))
}

func (a *App) rememberModel(w http.ResponseWriter, r *http.Request, params app.ModelParams) {
	id, _ := a.session(w, r)
	a.sessions.Update(id, func(s *SessionState) {
		s.Model = params
		s.HasModel = true
	})
}

// modelView shapes a model result for the result fragment, rendering the
// diagnostic charts inline.
func (a *App) modelView(result *app.ModelResult) map[string]interface{} {
	var residuals, actual bytes.Buffer
	if err := charts.RenderFragment(charts.ResidualsVsFitted(result.Model), &residuals); err != nil {
		a.logger.Error("residual chart: %v", err)
	}
	if err := charts.RenderFragment(charts.ActualVsPredicted(result.Model, result.Actual), &actual); err != nil {
		a.logger.Error("actual-vs-predicted chart: %v", err)
	}

	return map[string]interface{}{
		"Model":          result.Model,
		"Selection":      result.Selection,
		"Findings":       result.Findings,
		"Report":         result.Report,
		"ResidualChart":  template.HTML(residuals.String()),
		"PredictedChart": template.HTML(actual.String()),
	}
}

// handleModelJSON returns the session's current model as JSON.
func (a *App) handleModelJSON(w http.ResponseWriter, r *http.Request) {
	_, state := a.session(w, r)
	if !state.HasModel {
		http.Error(w, "no model built yet", http.StatusNotFound)
		return
	}
	result, err := a.modeler.Compute(r.Context(), state.Model)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"formula":      result.Model.Formula(),
		"coefficients": result.Model.Coefficients,
		"r2":           result.Model.R2,
		"adj_r2":       result.Model.AdjR2,
		"aic":          result.Model.AIC,
		"bic":          result.Model.BIC,
		"diagnostics":  result.Findings,
	}); err != nil {
		a.logger.Error("model json encode: %v", err)
	}
}

// handleModelerChartDownload serves a diagnostic chart for the session's
// current model as a standalone HTML document.
func (a *App) handleModelerChartDownload(w http.ResponseWriter, r *http.Request) {
	_, state := a.session(w, r)
	if !state.HasModel {
		http.Error(w, "no model built yet", http.StatusNotFound)
		return
	}
	result, err := a.modeler.Compute(r.Context(), state.Model)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	var chart charts.Renderable
	name := r.URL.Query().Get("chart")
	switch name {
	case "predicted":
		chart = charts.ActualVsPredicted(result.Model, result.Actual)
	default:
		name = "residuals"
		chart = charts.ResidualsVsFitted(result.Model)
	}

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="model_%s.html"`, name))
	if err := charts.RenderPage(chart, w); err != nil {
		a.logger.Error("model chart download: %v", err)
	}
}

// handleModelerDataDownload serves the cleaned dataset with fitted and
// residual columns as an xlsx workbook.
func (a *App) handleModelerDataDownload(w http.ResponseWriter, r *http.Request) {
	_, state := a.session(w, r)
	if !state.HasModel {
		http.Error(w, "no model built yet", http.StatusNotFound)
		return
	}
	result, err := a.modeler.Compute(r.Context(), state.Model)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="penguins_model.xlsx"`)
	if err := tabular.WriteXLSX(result.Table, w); err != nil {
		a.logger.Error("model data download: %v", err)
	}
}
