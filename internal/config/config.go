package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"maridash/internal/errors"
)

// DefaultArtifactBaseURL is the static host the analysis pipeline publishes to
const DefaultArtifactBaseURL = "https://raw.githubusercontent.com/chrigw/maritime-analysen/main"

// DefaultTitle is shown as page title and main heading
const DefaultTitle = "Analyse und Visualisierung von Online-Suchergebnissen zum Thema maritime Branche"

// Config represents the complete application configuration.
// It is built once at start-up and passed by value afterwards.
type Config struct {
	Server    ServerConfig
	Artifacts ArtifactConfig
	Fetch     FetchConfig
	Log       LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port  string
	Debug bool
	Title string
}

// ArtifactConfig holds the locations of pre-generated images and CSVs
type ArtifactConfig struct {
	BaseURL      string
	ImageBaseURL string
	DataBaseURL  string
}

// FetchConfig bounds outbound requests to the artifact host
type FetchConfig struct {
	Timeout       time.Duration
	Concurrency   int
	MaxTableBytes int64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	config := Config{
		Server:    loadServerConfig(),
		Artifacts: loadArtifactConfig(),
		Fetch:     loadFetchConfig(),
		Log:       LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := config.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:  getEnvOrDefault("PORT", "8050"),
		Debug: getEnvBoolOrDefault("DEBUG", false),
		Title: getEnvOrDefault("DASHBOARD_TITLE", DefaultTitle),
	}
}

func loadArtifactConfig() ArtifactConfig {
	base := strings.TrimRight(getEnvOrDefault("ARTIFACT_BASE_URL", DefaultArtifactBaseURL), "/")
	return ArtifactConfig{
		BaseURL:      base,
		ImageBaseURL: strings.TrimRight(getEnvOrDefault("IMAGE_BASE_URL", base+"/images"), "/"),
		DataBaseURL:  strings.TrimRight(getEnvOrDefault("DATA_BASE_URL", base+"/data"), "/"),
	}
}

func loadFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:       getEnvDurationOrDefault("FETCH_TIMEOUT", 10*time.Second),
		Concurrency:   getEnvIntOrDefault("FETCH_CONCURRENCY", 4),
		MaxTableBytes: int64(getEnvIntOrDefault("MAX_TABLE_BYTES", 8<<20)),
	}
}

// Validate checks the configuration for values the server cannot run with
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric, got " + strconv.Quote(c.Server.Port))
	}
	for name, raw := range map[string]string{
		"IMAGE_BASE_URL": c.Artifacts.ImageBaseURL,
		"DATA_BASE_URL":  c.Artifacts.DataBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.ConfigInvalid(name + " must be an absolute http(s) URL")
		}
	}
	if c.Fetch.Timeout <= 0 {
		return errors.ConfigInvalid("FETCH_TIMEOUT must be positive")
	}
	if c.Fetch.Concurrency <= 0 {
		return errors.ConfigInvalid("FETCH_CONCURRENCY must be positive")
	}
	if c.Fetch.MaxTableBytes <= 0 {
		return errors.ConfigInvalid("MAX_TABLE_BYTES must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Server.Port
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
