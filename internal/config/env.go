package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration. Variables carry the
// AFFICHE_ prefix; nested structs use underscore delimiters
// (e.g. AFFICHE_VISION_API_KEY).
type EnvConfig struct {
	// Host is the server host to bind to.
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path. Default: ~/.affiche
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Default: sqlite://{data_dir}/affiche.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level (DEBUG, INFO, WARN, ERROR).
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys are the accepted keys for write-protected endpoints,
	// comma separated. Empty leaves the API unprotected.
	APIKeys []string `envconfig:"API_KEYS"`

	// WorkerCount is the number of background enrichment workers.
	WorkerCount int `envconfig:"WORKER_COUNT" default:"1"`

	// ListLimit is the default page size for list endpoints.
	ListLimit int `envconfig:"LIST_LIMIT" default:"20"`

	// EnrichmentTimeoutSeconds bounds a single enrichment fetch.
	EnrichmentTimeoutSeconds int `envconfig:"ENRICHMENT_TIMEOUT_SECONDS" default:"15"`

	// EnrichmentRetries is the retry attempt count for enrichment fetches.
	EnrichmentRetries int `envconfig:"ENRICHMENT_RETRIES" default:"2"`

	// WikipediaBaseURL is the structured-data source base URL.
	WikipediaBaseURL string `envconfig:"WIKIPEDIA_BASE_URL" default:"https://en.wikipedia.org"`

	// Vision configures the image-analysis AI service.
	Vision VisionEnv `envconfig:"VISION"`
}

// VisionEnv configures the image-analysis endpoint from the environment.
type VisionEnv struct {
	// BaseURL is the endpoint base URL (e.g. https://api.openai.com/v1).
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the multimodal model identifier.
	Model string `envconfig:"MODEL" default:"gpt-4o"`

	// APIKey authenticates against the endpoint.
	APIKey string `envconfig:"API_KEY"`
}

// LoadEnv loads configuration from a .env file (when present) and the
// process environment. Real environment variables win over the file.
func LoadEnv() (EnvConfig, error) {
	LoadDotEnv()

	var env EnvConfig
	if err := envconfig.Process("AFFICHE", &env); err != nil {
		return EnvConfig{}, fmt.Errorf("process environment: %w", err)
	}
	return env, nil
}
