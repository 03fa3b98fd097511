// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 8080
	DefaultLogLevel          = "INFO"
	DefaultWorkerCount       = 1
	DefaultListLimit         = 20
	DefaultEnrichmentTimeout = 15 * time.Second
	DefaultEnrichmentRetries = 2
	DefaultWikipediaBaseURL  = "https://en.wikipedia.org"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// VisionEndpoint configures the image-analysis AI service.
type VisionEndpoint struct {
	baseURL string
	model   string
	apiKey  string
}

// BaseURL returns the endpoint base URL.
func (e VisionEndpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e VisionEndpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e VisionEndpoint) APIKey() string { return e.apiKey }

// Configured reports whether the endpoint has an API key.
func (e VisionEndpoint) Configured() bool { return e.apiKey != "" }

// AppConfig is the resolved application configuration.
type AppConfig struct {
	host              string
	port              int
	dataDir           string
	dbURL             string
	logLevel          string
	logFormat         LogFormat
	apiKeys           []string
	workerCount       int
	listLimit         int
	enrichmentTimeout time.Duration
	enrichmentRetries int
	wikipediaBaseURL  string
	vision            VisionEndpoint
}

// NewAppConfig builds an AppConfig from the environment, applying defaults
// for anything unset.
func NewAppConfig() (AppConfig, error) {
	env, err := LoadEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return newAppConfigFromEnv(env)
}

func newAppConfigFromEnv(env EnvConfig) (AppConfig, error) {
	dataDir := env.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppConfig{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".affiche")
	}

	dbURL := env.DBURL
	if dbURL == "" {
		dbURL = "sqlite://" + filepath.Join(dataDir, "affiche.db")
	}

	format := LogFormatPretty
	if LogFormat(env.LogFormat) == LogFormatJSON {
		format = LogFormatJSON
	}

	return AppConfig{
		host:              env.Host,
		port:              env.Port,
		dataDir:           dataDir,
		dbURL:             dbURL,
		logLevel:          env.LogLevel,
		logFormat:         format,
		apiKeys:           env.APIKeys,
		workerCount:       env.WorkerCount,
		listLimit:         env.ListLimit,
		enrichmentTimeout: time.Duration(env.EnrichmentTimeoutSeconds) * time.Second,
		enrichmentRetries: env.EnrichmentRetries,
		wikipediaBaseURL:  env.WikipediaBaseURL,
		vision: VisionEndpoint{
			baseURL: env.Vision.BaseURL,
			model:   env.Vision.Model,
			apiKey:  env.Vision.APIKey,
		},
	}, nil
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the keys accepted by write-protected endpoints.
func (c AppConfig) APIKeys() []string { return c.apiKeys }

// WorkerCount returns the number of background workers.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// ListLimit returns the default list page size.
func (c AppConfig) ListLimit() int { return c.listLimit }

// EnrichmentTimeout returns the bound on a single enrichment fetch.
func (c AppConfig) EnrichmentTimeout() time.Duration { return c.enrichmentTimeout }

// EnrichmentRetries returns the retry attempts for enrichment fetches.
func (c AppConfig) EnrichmentRetries() int { return c.enrichmentRetries }

// WikipediaBaseURL returns the structured-data source base URL.
func (c AppConfig) WikipediaBaseURL() string { return c.wikipediaBaseURL }

// Vision returns the image-analysis endpoint configuration.
func (c AppConfig) Vision() VisionEndpoint { return c.vision }
