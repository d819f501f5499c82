package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"penguinlab/adapters/tabular"
	"penguinlab/domain/dataset"
	"penguinlab/internal"
	"penguinlab/internal/config"
	"penguinlab/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	table, err := loadTable(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	logger.Info("dataset loaded: %s, %d rows, %d columns", table.Name, table.NumRows(), len(table.Columns))

	app, err := ui.NewApp(table, appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create UI app: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			logger.Info("pprof server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				logger.Error("pprof server failed: %v", err)
			}
		}()
	}

	log.Fatal(app.Start())
}

// loadTable reads the dataset named by DATA_FILE, falling back to the
// bundled penguin measurements.
func loadTable(cfg *config.Config, logger *internal.Logger) (*dataset.Table, error) {
	if cfg.Data.DataFile == "" {
		return tabular.LoadBundled()
	}

	logger.Info("using external data file: %s", cfg.Data.DataFile)
	return tabular.NewDataReader(cfg.Data.DataFile).ReadTable()
}
