package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all client configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Bank API
	APIBaseURL string

	// HTTP client
	HTTPTimeout time.Duration

	// Session
	SessionFile string

	// Reports
	ReportDir string

	// Logging / observability
	LogLevel     string
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("BTRUST_API_URL", "http://127.0.0.1:8000"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		SessionFile: getEnv("BTRUST_SESSION_FILE", defaultSessionFile()),
		ReportDir:   getEnv("BTRUST_REPORT_DIR", "."),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// defaultSessionFile places the credential under the user config dir,
// falling back to the working directory when none is resolvable.
func defaultSessionFile() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".btrust-session"
	}
	return filepath.Join(base, "btrust-dashboard", "session")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
