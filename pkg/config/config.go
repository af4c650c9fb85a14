package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	AssessorBaseURL string
	ZoningQueryURL  string
	OpenDataURL     string
	HTTPTimeout     time.Duration

	BatchConcurrency int

	ArtifactDir string

	ZimasURL        string
	ZimasTimeout    time.Duration
	ZimasHeadless   bool
	ZimasSlowMo     time.Duration
	ZimasLayoutFile string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AssessorBaseURL:  getEnv("ASSESSOR_BASE_URL", "https://portal.assessor.lacounty.gov"),
		ZoningQueryURL:   getEnv("ZONING_QUERY_URL", "https://arcgis.gis.lacounty.gov/arcgis/rest/services/DRP/ZNET_Public/MapServer/4/query"),
		OpenDataURL:      getEnv("OPEN_DATA_URL", "https://data.lacity.org/api/views/3r7r-b5nq/rows.json"),
		HTTPTimeout:      getEnvAsDuration("HTTP_TIMEOUT_SECONDS", 30) * time.Second,
		BatchConcurrency: getEnvAsInt("BATCH_CONCURRENCY", 4),
		ArtifactDir:      getEnv("ARTIFACT_DIR", "csv_output"),
		ZimasURL:         getEnv("ZIMAS_URL", "https://zimas.lacity.org/"),
		ZimasTimeout:     getEnvAsDuration("ZIMAS_TIMEOUT_SECONDS", 120) * time.Second,
		ZimasHeadless:    getEnvAsBool("ZIMAS_HEADLESS", true),
		ZimasSlowMo:      getEnvAsDuration("ZIMAS_SLOW_MO_MS", 0) * time.Millisecond,
		ZimasLayoutFile:  getEnv("ZIMAS_LAYOUT_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
