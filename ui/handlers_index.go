package ui

import (
	"encoding/json"
	"net/http"

	"penguinlab/adapters/tabular"
)

// handleIndex serves the dataset overview page.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.session(w, r)
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Title":    "Penguin Lab",
		"Overview": a.overview,
	})
}

// handleRawDataDownload serves the untouched source table, gaps and all.
func (a *App) handleRawDataDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="penguins_raw.xlsx"`)
	if err := tabular.WriteXLSX(a.source, w); err != nil {
		a.logger.Error("raw data download: %v", err)
	}
}

// handleDatasetInfo returns the raw dataset profile as JSON.
func (a *App) handleDatasetInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.overview); err != nil {
		a.logger.Error("dataset info encode: %v", err)
	}
}
