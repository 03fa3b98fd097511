package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/storage"
	"github.com/affiche-studio/affiche/internal/database"
	"gorm.io/gorm"
)

// EntityStore implements entity.Store using GORM.
type EntityStore struct {
	database.Repository[entity.Entity, EntityModel]
	db database.Database
}

// NewEntityStore creates a new EntityStore.
func NewEntityStore(db database.Database) EntityStore {
	return EntityStore{
		Repository: database.NewRepository[entity.Entity, EntityModel](db, EntityMapper{}, "entity"),
		db:         db,
	}
}

// Save creates or updates a canonical entity together with its alias rows.
// Creates surface uniqueness violations on (kind, name_key) unwrapped
// enough for database.IsConflict, so racing callers can re-resolve.
func (s EntityStore) Save(ctx context.Context, e entity.Entity) (entity.Entity, error) {
	model := s.Mapper().ToModel(e)
	now := time.Now()

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		aliases := model.Aliases
		model.Aliases = nil

		if model.ID == 0 {
			model.CreatedAt = now
			model.UpdatedAt = now
			if result := tx.Create(&model); result.Error != nil {
				return fmt.Errorf("create entity: %w", result.Error)
			}
		} else {
			model.UpdatedAt = now
			if result := tx.Save(&model); result.Error != nil {
				return fmt.Errorf("update entity: %w", result.Error)
			}
			if result := tx.Where("entity_id = ?", model.ID).Delete(&EntityAliasModel{}); result.Error != nil {
				return fmt.Errorf("clear entity aliases: %w", result.Error)
			}
		}

		for i := range aliases {
			aliases[i].ID = 0
			aliases[i].EntityID = model.ID
		}
		if len(aliases) > 0 {
			if result := tx.Create(&aliases); result.Error != nil {
				return fmt.Errorf("create entity aliases: %w", result.Error)
			}
		}
		model.Aliases = aliases
		return nil
	})
	if err != nil {
		return entity.Entity{}, err
	}

	return s.Mapper().ToDomain(model), nil
}

// Find retrieves entities matching the given options, aliases included.
func (s EntityStore) Find(ctx context.Context, options ...storage.Option) ([]entity.Entity, error) {
	var models []EntityModel
	db := database.ApplyOptions(s.DB(ctx).Model(&EntityModel{}).Preload("Aliases"), options...)
	if result := db.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("find entities: %w", result.Error)
	}

	entities := make([]entity.Entity, len(models))
	for i, m := range models {
		entities[i] = s.Mapper().ToDomain(m)
	}
	return entities, nil
}

// FindOne retrieves a single entity matching the given options.
func (s EntityStore) FindOne(ctx context.Context, options ...storage.Option) (entity.Entity, error) {
	var model EntityModel
	db := database.ApplyOptions(s.DB(ctx).Preload("Aliases"), options...)
	if result := db.First(&model); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.Entity{}, fmt.Errorf("%w: entity", database.ErrNotFound)
		}
		return entity.Entity{}, fmt.Errorf("find one entity: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// FindByNameKey returns the entity of the given kind whose canonical name
// normalizes to key.
func (s EntityStore) FindByNameKey(ctx context.Context, kind entity.Kind, key string) (entity.Entity, error) {
	return s.FindOne(ctx, entity.WithKind(kind), storage.WithCondition("name_key", key))
}

// FindByAliasKey returns the entity of the given kind holding an alias
// that normalizes to key. When the uniqueness invariant is violated and
// several entities share the alias, the oldest row wins.
func (s EntityStore) FindByAliasKey(ctx context.Context, kind entity.Kind, key string) (entity.Entity, error) {
	var model EntityModel
	result := s.DB(ctx).
		Preload("Aliases").
		Joins("JOIN entity_aliases ON entity_aliases.entity_id = entities.id").
		Where("entities.kind = ?", string(kind)).
		Where("entity_aliases.value_key = ?", key).
		Order("entities.id ASC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.Entity{}, fmt.Errorf("%w: entity alias", database.ErrNotFound)
		}
		return entity.Entity{}, fmt.Errorf("find by alias key: %w", result.Error)
	}
	return s.Mapper().ToDomain(model), nil
}

// Delete removes an entity and its alias rows. Attribution links pointing
// at the entity are the caller's responsibility (cascade-to-null is
// orchestrated by the admin service before deletion).
func (s EntityStore) Delete(ctx context.Context, e entity.Entity) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if result := tx.Where("entity_id = ?", e.ID()).Delete(&EntityAliasModel{}); result.Error != nil {
			return fmt.Errorf("delete entity aliases: %w", result.Error)
		}
		if result := tx.Delete(&EntityModel{}, e.ID()); result.Error != nil {
			return fmt.Errorf("delete entity: %w", result.Error)
		}
		return nil
	})
}
