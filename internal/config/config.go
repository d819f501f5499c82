package config

import (
	"os"
	"strconv"

	"penguinlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Analysis  AnalysisConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds data source settings. When DataFile is empty the
// bundled penguin dataset is used.
type DataConfig struct {
	DataFile string
}

// AnalysisConfig holds defaults for the statistical routines
type AnalysisConfig struct {
	ClusterSeed     int64
	DefaultClusters int
	MaxClusters     int
	MaxIterations   int
	ScaleByDefault  bool
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			DataFile: getEnvOrDefault("DATA_FILE", ""),
		},
		Analysis: AnalysisConfig{
			ClusterSeed:     getEnvInt64OrDefault("CLUSTER_SEED", 42),
			DefaultClusters: getEnvIntOrDefault("DEFAULT_CLUSTERS", 3),
			MaxClusters:     getEnvIntOrDefault("MAX_CLUSTERS", 8),
			MaxIterations:   getEnvIntOrDefault("KMEANS_MAX_ITER", 100),
			ScaleByDefault:  getEnvBoolOrDefault("SCALE_BY_DEFAULT", true),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.DefaultClusters < 2 {
		return errors.ConfigInvalid("DEFAULT_CLUSTERS must be at least 2")
	}
	if config.Analysis.MaxClusters < config.Analysis.DefaultClusters {
		return errors.ConfigInvalid("MAX_CLUSTERS must not be below DEFAULT_CLUSTERS")
	}
	if config.Analysis.MaxIterations < 1 {
		return errors.ConfigInvalid("KMEANS_MAX_ITER must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
