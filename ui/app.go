package ui

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"penguinlab/app"
	"penguinlab/domain/dataset"
	"penguinlab/internal"
	"penguinlab/internal/config"
)

//go:embed templates/* static/* methods.md
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	source    *dataset.Table
	explorer  *app.ExplorerService
	modeler   *app.ModelerService
	overview  *app.DatasetOverview
	sessions  *SessionStore
	templates *template.Template
	logger    *internal.Logger
	port      string
}

// NewApp creates a new UI application over the raw dataset table
func NewApp(source *dataset.Table, cfg *config.Config, logger *internal.Logger) (*App, error) {
	overview, err := app.Summarize(source)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize dataset: %w", err)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"f1":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"f2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f3":  func(v float64) string { return fmt.Sprintf("%.3f", v) },
		"f4":  func(v float64) string { return fmt.Sprintf("%.4f", v) },
		"pval": func(v float64) string {
			if v == 0 || math.IsNaN(v) {
				return "—"
			}
			return fmt.Sprintf("%.4f", v)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		source:    source,
		explorer:  app.NewExplorerService(source, cfg.Analysis, logger),
		modeler:   app.NewModelerService(source, logger),
		overview:  overview,
		sessions:  NewSessionStore(),
		templates: templates,
		logger:    logger,
		port:      cfg.Server.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/explorer", a.handleExplorer)
	a.router.Get("/modeler", a.handleModeler)
	a.router.Get("/methods", a.handleMethods)

	// Explorer fragments (HTMX)
	a.router.Get("/api/explorer/scree", a.handleExplorerScree)
	a.router.Get("/api/explorer/scatter", a.handleExplorerScatter)
	a.router.Get("/api/explorer/scatter3d", a.handleExplorerScatter3D)
	a.router.Get("/api/explorer/clusters", a.handleExplorerClusters)

	// Modeler fragments (HTMX)
	a.router.Post("/api/model/build", a.handleModelBuild)
	a.router.Post("/api/model/stepwise", a.handleModelStepwise)

	// JSON endpoints
	a.router.Get("/api/dataset/info", a.handleDatasetInfo)
	a.router.Get("/api/model/json", a.handleModelJSON)

	// Downloads
	a.router.Get("/download/dataset.xlsx", a.handleRawDataDownload)
	a.router.Get("/download/explorer/chart", a.handleExplorerChartDownload)
	a.router.Get("/download/explorer/data.xlsx", a.handleExplorerDataDownload)
	a.router.Get("/download/modeler/chart", a.handleModelerChartDownload)
	a.router.Get("/download/modeler/data.xlsx", a.handleModelerDataDownload)
}

// Router exposes the configured handler for tests and embedding
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("starting Penguin Lab UI on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (a *App) renderPartial(w http.ResponseWriter, templateName string, data interface{}) {
	a.renderTemplate(w, templateName, data)
}
