package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	Debug       bool
	ExportDir   string
}

type APIConfig struct {
	BaseURL        string
	FrontendOrigin string
}

type StorageConfig struct {
	Path string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	home := defaultHome()
	frontendOrigin := getEnv("APPLYDI_FRONTEND_ORIGIN", "")

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", filepath.Join(home, "applydi.log.json")),
			Debug:       getEnvAsBool("APPLYDI_DEBUG", false),
			ExportDir:   getEnv("APPLYDI_EXPORT_DIR", "."),
		},
		API: APIConfig{
			BaseURL:        resolveAPIURL(getEnv("APPLYDI_API_URL", ""), frontendOrigin),
			FrontendOrigin: frontendOrigin,
		},
		Storage: StorageConfig{
			Path: getEnv("APPLYDI_STORAGE_PATH", filepath.Join(home, "storage.json")),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// resolveAPIURL picks the backend base URL. An explicit value wins; a Cloud Run
// frontend origin maps to its sibling backend service; otherwise localhost.
func resolveAPIURL(explicit, frontendOrigin string) string {
	if explicit != "" {
		return strings.TrimRight(explicit, "/")
	}
	if strings.Contains(frontendOrigin, "run.app") {
		return strings.TrimRight(strings.Replace(frontendOrigin, "frontend", "backend", 1), "/")
	}
	return "http://localhost:8080"
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil || dir == "" {
		return ".applydi"
	}
	return filepath.Join(dir, ".applydi")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
