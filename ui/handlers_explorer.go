package ui

import (
	"fmt"
	"net/http"
	"strconv"

	"penguinlab/adapters/charts"
	"penguinlab/adapters/tabular"
	"penguinlab/app"
	"penguinlab/domain/dataset"
	"penguinlab/internal/errors"
)

// explorerParams reads the explorer controls from the query string,
// falling back to the session's last selection and then the defaults.
func (a *App) explorerParams(w http.ResponseWriter, r *http.Request) app.ExplorerParams {
	_, state := a.session(w, r)

	params := state.Explorer
	if params.K == 0 {
		params = a.explorer.Defaults()
	}

	q := r.URL.Query()
	if raw := q.Get("k"); raw != "" {
		if k, err := strconv.Atoi(raw); err == nil {
			params.K = k
		}
	}
	if raw := q.Get("scale"); raw != "" {
		params.Scale = raw == "true" || raw == "on" || raw == "1"
	}
	if raw := q.Get("color"); raw == "cluster" || raw == "species" {
		params.ColorBy = raw
	}

	return params
}

func (a *App) rememberExplorer(w http.ResponseWriter, r *http.Request, params app.ExplorerParams) {
	id, _ := a.session(w, r)
	a.sessions.Update(id, func(s *SessionState) { s.Explorer = params })
}

// handleExplorer serves the PCA + clustering page.
func (a *App) handleExplorer(w http.ResponseWriter, r *http.Request) {
	params := a.explorerParams(w, r)

	result, err := a.explorer.Compute(r.Context(), params)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.rememberExplorer(w, r, params)

	a.renderTemplate(w, "explorer.html", map[string]interface{}{
		"Title":       "Explorer",
		"Params":      result.Params,
		"MaxClusters": a.explorer.MaxClusters(),
		"KRange":      kRange(a.explorer.MaxClusters()),
		"PCA":         result.PCA,
		"Clusters":    result.Clusters,
		"Report":      result.Report,
	})
}

// handleExplorerScree serves the scree-plot chart fragment.
func (a *App) handleExplorerScree(w http.ResponseWriter, r *http.Request) {
	params := a.explorerParams(w, r)
	result, err := a.explorer.Compute(r.Context(), params)
	if err != nil {
		a.renderChartError(w, err)
		return
	}
	a.rememberExplorer(w, r, params)

	w.Header().Set("Content-Type", "text/html")
	if err := charts.RenderFragment(charts.Scree(result.PCA), w); err != nil {
		a.logger.Error("scree fragment: %v", err)
	}
}

// handleExplorerScatter serves the 2D component scatter fragment.
func (a *App) handleExplorerScatter(w http.ResponseWriter, r *http.Request) {
	params := a.explorerParams(w, r)
	result, err := a.explorer.Compute(r.Context(), params)
	if err != nil {
		a.renderChartError(w, err)
		return
	}
	a.rememberExplorer(w, r, params)

	points, err := a.explorer.GroupedScores(result, 2)
	if err != nil {
		a.renderChartError(w, err)
		return
	}

	title := fmt.Sprintf("PC1 vs PC2, colored by %s", result.Params.ColorBy)
	w.Header().Set("Content-Type", "text/html")
	if err := charts.RenderFragment(charts.ComponentScatter(title, points), w); err != nil {
		a.logger.Error("scatter fragment: %v", err)
	}
}

// handleExplorerScatter3D serves the 3D component scatter fragment.
func (a *App) handleExplorerScatter3D(w http.ResponseWriter, r *http.Request) {
	params := a.explorerParams(w, r)
	result, err := a.explorer.Compute(r.Context(), params)
	if err != nil {
		a.renderChartError(w, err)
		return
	}
	a.rememberExplorer(w, r, params)

	points, err := a.explorer.GroupedScores(result, 3)
	if err != nil {
		a.renderChartError(w, err)
		return
	}

	title := fmt.Sprintf("First three components, colored by %s", result.Params.ColorBy)
	zLabel := charts.AxisLabel(3, result.PCA.Proportion[2])
	w.Header().Set("Content-Type", "text/html")
	if err := charts.RenderFragment(charts.ComponentScatter3D(title, points, zLabel), w); err != nil {
		a.logger.Error("scatter3d fragment: %v", err)
	}
}

// handleExplorerClusters serves the cluster summary table fragment.
func (a *App) handleExplorerClusters(w http.ResponseWriter, r *http.Request) {
	params := a.explorerParams(w, r)
	result, err := a.explorer.Compute(r.Context(), params)
	if err != nil {
		a.renderChartError(w, err)
		return
	}
	a.rememberExplorer(w, r, params)

	a.renderPartial(w, "cluster_table.html", map[string]interface{}{
		"Clusters":     result.Clusters,
		"Measurements": dataset.Measurements,
		"Scaled":       result.Params.Scale,
	})
}

// handleExplorerChartDownload serves the requested explorer chart as a
// standalone HTML document.
func (a *App) handleExplorerChartDownload(w http.ResponseWriter, r *http.Request) {
	params := a.explorerParams(w, r)
	result, err := a.explorer.Compute(r.Context(), params)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	var chart charts.Renderable
	name := r.URL.Query().Get("chart")
	switch name {
	case "scree":
		chart = charts.Scree(result.PCA)
	case "scatter3d":
		points, err := a.explorer.GroupedScores(result, 3)
		if err != nil {
			a.renderError(w, r, err)
			return
		}
		chart = charts.ComponentScatter3D("First three components", points,
			charts.AxisLabel(3, result.PCA.Proportion[2]))
	default:
		name = "scatter"
		points, err := a.explorer.GroupedScores(result, 2)
		if err != nil {
			a.renderError(w, r, err)
			return
		}
		chart = charts.ComponentScatter("PC1 vs PC2", points)
	}

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="penguins_%s.html"`, name))
	if err := charts.RenderPage(chart, w); err != nil {
		a.logger.Error("chart download: %v", err)
	}
}

// handleExplorerDataDownload serves the cleaned dataset with the derived
// cluster column as an xlsx workbook.
func (a *App) handleExplorerDataDownload(w http.ResponseWriter, r *http.Request) {
	params := a.explorerParams(w, r)
	result, err := a.explorer.Compute(r.Context(), params)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="penguins_clustered.xlsx"`)
	if err := tabular.WriteXLSX(result.Table, w); err != nil {
		a.logger.Error("data download: %v", err)
	}
}

// renderChartError swaps an inline notice into the chart slot instead of
// breaking the page.
func (a *App) renderChartError(w http.ResponseWriter, err error) {
	msg := "computation failed"
	if appErr, ok := err.(*errors.AppError); ok {
		msg = appErr.Message
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<div class="chart-error">%s</div>`, msg)
}

func (a *App) renderError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request %s: %v", r.URL.Path, err)
	if errors.GetCode(err) == errors.CodeInvalidInput {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func kRange(max int) []int {
	var out []int
	for k := 2; k <= max; k++ {
		out = append(out, k)
	}
	return out
}
