package affiche

import (
	"log/slog"
	"time"

	"github.com/affiche-studio/affiche/infrastructure/vision"
	"github.com/affiche-studio/affiche/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	dbURL             string
	dataDir           string
	wikipediaBaseURL  string
	enrichmentTimeout time.Duration
	vision            vision.Config
	logger            *slog.Logger
	apiKeys           []string
	workerPollPeriod  time.Duration
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir:           config.DefaultDataDir(),
		enrichmentTimeout: config.DefaultEnrichmentTimeout,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite://" + path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = "postgres://" + dsn
	}
}

// WithDatabaseURL sets the full database URL (sqlite:// or postgres://).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithDataDir sets the data directory for database storage.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithWikipediaBaseURL overrides the structured-data source base URL,
// mainly for tests pointing at a local stub.
func WithWikipediaBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.wikipediaBaseURL = url
	}
}

// WithEnrichmentTimeout bounds a single enrichment fetch.
func WithEnrichmentTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.enrichmentTimeout = d
		}
	}
}

// WithVision configures the image-analysis endpoint used to extract
// attribution candidates from poster images.
func WithVision(cfg vision.Config) Option {
	return func(c *clientConfig) {
		c.vision = cfg
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the API keys for HTTP API write protection.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}

// WithWorkerPollPeriod sets how often the background worker checks for
// new tasks. Defaults to 1 second. Tests use short periods to process
// queued tasks quickly.
func WithWorkerPollPeriod(d time.Duration) Option {
	return func(c *clientConfig) {
		c.workerPollPeriod = d
	}
}
