// Package affiche provides a library for cataloguing vintage posters:
// canonical entity resolution, attribution linking, and background
// enrichment from public structured-data sources.
//
// Basic usage:
//
//	client, err := affiche.New(
//	    affiche.WithSQLite(".affiche/catalog.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Resolve an attribution candidate
//	res, err := client.Resolver.ResolveOrCreate(ctx, entity.KindArtist, "Chéri Hérouard", nil)
//
//	// Link an analysis result to an item
//	item, outcomes, err := client.Attribution.Apply(ctx, item, result)
package affiche

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/affiche-studio/affiche/application/handler/enrichment"
	"github.com/affiche-studio/affiche/application/service"
	"github.com/affiche-studio/affiche/domain/task"
	"github.com/affiche-studio/affiche/infrastructure/persistence"
	"github.com/affiche-studio/affiche/infrastructure/vision"
	"github.com/affiche-studio/affiche/infrastructure/wikipedia"
	"github.com/affiche-studio/affiche/internal/config"
	"github.com/affiche-studio/affiche/internal/database"
)

// Client is the main entry point for the affiche library.
// The background enrichment worker starts automatically on creation.
//
// Access resources via struct fields:
//
//	client.Catalog.ListEntities(ctx, nil)
//	client.Resolver.Resolve(ctx, entity.KindPrinter, "Imp. Chaix")
//	client.Attribution.Apply(ctx, item, result)
type Client struct {
	// Public resource fields (direct service access)
	Catalog     *service.Catalog
	Resolver    *service.Resolver
	Attribution *service.Attribution
	Admin       *service.Admin
	Seeder      *service.Seeder
	Tasks       *service.Queue

	db       database.Database
	worker   *service.Worker
	registry *service.Registry
	analyzer *vision.Analyzer

	logger  *slog.Logger
	dataDir string
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options.
// The background worker is started automatically.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	dataDir, err := config.PrepareDataDir(cfg.dataDir)
	if err != nil {
		return nil, err
	}

	dbURL := cfg.dbURL
	if dbURL == "" {
		dbURL = "sqlite://" + filepath.Join(dataDir, "affiche.db")
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	entityStore := persistence.NewEntityStore(db)
	itemStore := persistence.NewItemStore(db)
	taskStore := persistence.NewTaskStore(db)

	registry := service.NewRegistry()
	queue := service.NewQueue(taskStore, logger)
	resolver := service.NewResolver(entityStore, logger)

	worker := service.NewWorker(taskStore, registry, logger)
	if cfg.workerPollPeriod > 0 {
		worker.WithPollPeriod(cfg.workerPollPeriod)
	}

	wikiOpts := []wikipedia.Option{wikipedia.WithLogger(logger)}
	if cfg.enrichmentTimeout > 0 {
		wikiOpts = append(wikiOpts, wikipedia.WithTimeout(cfg.enrichmentTimeout))
	}
	wikiBase := cfg.wikipediaBaseURL
	if wikiBase == "" {
		wikiBase = config.DefaultWikipediaBaseURL
	}
	wiki := wikipedia.NewClient(wikiBase, wikiOpts...)

	var analyzer *vision.Analyzer
	if cfg.vision.APIKey != "" {
		visionCfg := cfg.vision
		visionCfg.Logger = logger
		analyzer = vision.NewAnalyzer(visionCfg)
	}

	client := &Client{
		db:       db,
		worker:   worker,
		registry: registry,
		analyzer: analyzer,
		logger:   logger,
		dataDir:  dataDir,
		apiKeys:  cfg.apiKeys,
	}

	client.Catalog = service.NewCatalog(entityStore, itemStore, logger)
	client.Resolver = resolver
	client.Attribution = service.NewAttribution(itemStore, resolver, queue, logger)
	client.Admin = service.NewAdmin(entityStore, itemStore, queue, logger)
	client.Seeder = service.NewSeeder(resolver, logger)
	client.Tasks = queue

	registry.Register(task.OperationEnrichEntity,
		enrichment.NewEntity(entityStore, wiki, cfg.enrichmentTimeout, logger))

	worker.Start(ctx)
	return client, nil
}

// Close stops the background worker and releases all resources.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.worker.Stop()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("affiche client closed")
	return nil
}

// Analyzer returns the configured vision analyzer, nil when no vision
// endpoint was configured.
func (c *Client) Analyzer() *vision.Analyzer {
	return c.analyzer
}

// APIKeys returns the configured API keys for write protection.
func (c *Client) APIKeys() []string {
	return c.apiKeys
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// DataDir returns the resolved data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}
