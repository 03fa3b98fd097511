package service

import (
	"context"
	"log/slog"

	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/domain/storage"
)

// EntityListParams configures entity listing.
type EntityListParams struct {
	Kind     *entity.Kind
	Verified *bool
	Query    string
	Limit    int
	Offset   int
}

// Catalog provides read access to canonical entities and items.
type Catalog struct {
	entities entity.Store
	items    item.Store
	logger   *slog.Logger
}

// NewCatalog creates a Catalog service.
func NewCatalog(entities entity.Store, items item.Store, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{entities: entities, items: items, logger: logger}
}

// ListEntities returns entities matching the given params, ordered by
// name key.
func (s *Catalog) ListEntities(ctx context.Context, params *EntityListParams) ([]entity.Entity, error) {
	options := []storage.Option{storage.WithOrderAsc("name_key")}
	if params != nil {
		if params.Kind != nil {
			options = append(options, entity.WithKind(*params.Kind))
		}
		if params.Verified != nil {
			options = append(options, entity.WithVerified(*params.Verified))
		}
		if q := entity.Normalize(params.Query); q != "" {
			options = append(options, entity.WithNameContains(q))
		}
		if params.Limit > 0 {
			options = append(options, storage.WithPagination(params.Limit, params.Offset)...)
		}
	}
	return s.entities.Find(ctx, options...)
}

// CountEntities counts entities matching the given params.
func (s *Catalog) CountEntities(ctx context.Context, params *EntityListParams) (int64, error) {
	var options []storage.Option
	if params != nil {
		if params.Kind != nil {
			options = append(options, entity.WithKind(*params.Kind))
		}
		if params.Verified != nil {
			options = append(options, entity.WithVerified(*params.Verified))
		}
		if q := entity.Normalize(params.Query); q != "" {
			options = append(options, entity.WithNameContains(q))
		}
	}
	return s.entities.Count(ctx, options...)
}

// GetEntity returns one entity by ID.
func (s *Catalog) GetEntity(ctx context.Context, id int64) (entity.Entity, error) {
	return s.entities.FindOne(ctx, storage.WithID(id))
}

// GetItem returns one item by its public identifier.
func (s *Catalog) GetItem(ctx context.Context, publicID string) (item.Item, error) {
	return s.items.FindOne(ctx, item.WithPublicID(publicID))
}

// CreateItem stores a new inventory item.
func (s *Catalog) CreateItem(ctx context.Context, itm item.Item) (item.Item, error) {
	saved, err := s.items.Save(ctx, itm)
	if err != nil {
		return item.Item{}, err
	}
	s.logger.Debug("item created", "public_id", saved.PublicID(), "id", saved.ID())
	return saved, nil
}
