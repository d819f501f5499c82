// Command report renders a static snapshot of the penguin analyses: one
// HTML report with the explorer and modeler charts, plus xlsx exports of
// the augmented datasets. Useful for sharing results without running the
// web UI.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"penguinlab/adapters/charts"
	"penguinlab/adapters/stats/regress"
	"penguinlab/adapters/tabular"
	"penguinlab/app"
	"penguinlab/domain/core"
	"penguinlab/domain/dataset"
	"penguinlab/internal"
	"penguinlab/internal/config"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/joho/godotenv"
)

func main() {
	outDir := flag.String("out", "report", "output directory")
	response := flag.String("response", dataset.ColBodyMass, "response variable for the regression model")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	table, err := loadTable(appConfig)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	ctx := context.Background()
	reportID := core.ReportID(core.NewID())
	logger.Info("report %s: analyzing %s (%d rows)", reportID, table.Name, table.NumRows())

	explorer := app.NewExplorerService(table, appConfig.Analysis, logger)
	exploration, err := explorer.Compute(ctx, explorer.Defaults())
	if err != nil {
		log.Fatalf("Explorer snapshot failed: %v", err)
	}

	modeler := app.NewModelerService(table, logger)
	modeled, err := modeler.Compute(ctx, app.ModelParams{
		Response:  *response,
		Stepwise:  true,
		Direction: regress.DirectionForward,
		Criterion: regress.CriterionAIC,
	})
	if err != nil {
		log.Fatalf("Model snapshot failed: %v", err)
	}

	points2d, err := explorer.GroupedScores(exploration, 2)
	if err != nil {
		log.Fatalf("Component scores failed: %v", err)
	}
	points3d, err := explorer.GroupedScores(exploration, 3)
	if err != nil {
		log.Fatalf("Component scores failed: %v", err)
	}

	page := components.NewPage()
	page.PageTitle = "Penguin Lab report"
	page.AddCharts(
		charts.Scree(exploration.PCA),
		charts.ComponentScatter("PC1 vs PC2", points2d),
		charts.ComponentScatter3D("First three components", points3d,
			charts.AxisLabel(3, exploration.PCA.Proportion[2])),
		charts.ResidualsVsFitted(modeled.Model),
		charts.ActualVsPredicted(modeled.Model, modeled.Actual),
	)

	reportPath := filepath.Join(*outDir, "report.html")
	f, err := os.Create(reportPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", reportPath, err)
	}
	if err := page.Render(f); err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	f.Close()

	if err := writeXLSX(filepath.Join(*outDir, "penguins_clustered.xlsx"), exploration.Table); err != nil {
		log.Fatalf("Failed to write cluster export: %v", err)
	}
	if err := writeXLSX(filepath.Join(*outDir, "penguins_model.xlsx"), modeled.Table); err != nil {
		log.Fatalf("Failed to write model export: %v", err)
	}

	logger.Info("report %s written to %s: model %s, R²=%.3f", reportID, *outDir, modeled.Model.Formula(), modeled.Model.R2)
}

func loadTable(cfg *config.Config) (*dataset.Table, error) {
	if cfg.Data.DataFile == "" {
		return tabular.LoadBundled()
	}
	return tabular.NewDataReader(cfg.Data.DataFile).ReadTable()
}

func writeXLSX(path string, t *dataset.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tabular.WriteXLSX(t, f)
}
