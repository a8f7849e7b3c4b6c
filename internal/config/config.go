// Package config provides configuration for the interview service.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backend selectors.
const (
	StorageLocal  = "local"
	StorageGCS    = "gcs"
	StorageSQLite = "sqlite"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort  int `yaml:"http_port"`
	AdminPort int `yaml:"admin_port"`

	// Storage
	StorageMode string `yaml:"storage_mode"` // local, gcs or sqlite
	DataDir     string `yaml:"data_dir"`
	BucketName  string `yaml:"bucket_name"`
	GCSToken    string `yaml:"gcs_token"`
	SQLiteDSN   string `yaml:"sqlite_dsn"`

	// Externally reachable base URL used to build participant links.
	BaseURL string `yaml:"base_url"`

	// Agent runtime
	LLMBaseURL string `yaml:"llm_base_url"`
	LLMAPIKey  string `yaml:"llm_api_key"`
	LLMModel   string `yaml:"llm_model"`

	// Admin surface
	AdminToken string `yaml:"admin_token"`
}

// Load reads the optional YAML config file named by CONFIG_FILE, then
// applies environment variables on top. Env always wins.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:    8080,
		AdminPort:   8081,
		StorageMode: StorageLocal,
		DataDir:     "./data",
		BucketName:  "hr-feedback-data",
		SQLiteDSN:   "file:interviewd.db?cache=shared&mode=rwc",
		BaseURL:     "http://localhost:8080",
		LLMModel:    "gpt-4o-mini",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.AdminPort = getEnvInt("ADMIN_PORT", cfg.AdminPort)
	cfg.StorageMode = getEnv("STORAGE_MODE", cfg.StorageMode)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.BucketName = getEnv("BUCKET_NAME", cfg.BucketName)
	cfg.GCSToken = getEnv("GCS_TOKEN", cfg.GCSToken)
	cfg.SQLiteDSN = getEnv("SQLITE_DSN", cfg.SQLiteDSN)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.LLMBaseURL = getEnv("LLM_BASE_URL", cfg.LLMBaseURL)
	cfg.LLMAPIKey = getEnv("LLM_API_KEY", cfg.LLMAPIKey)
	cfg.LLMModel = getEnv("LLM_MODEL", cfg.LLMModel)
	cfg.AdminToken = getEnv("ADMIN_TOKEN", cfg.AdminToken)

	switch cfg.StorageMode {
	case StorageLocal, StorageGCS, StorageSQLite:
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.StorageMode)
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
