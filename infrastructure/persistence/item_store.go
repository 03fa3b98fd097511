package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/internal/database"
)

// ItemStore implements item.Store using GORM.
type ItemStore struct {
	database.Repository[item.Item, ItemModel]
}

// NewItemStore creates a new ItemStore.
func NewItemStore(db database.Database) ItemStore {
	return ItemStore{
		Repository: database.NewRepository[item.Item, ItemModel](db, ItemMapper{}, "item"),
	}
}

// Save creates or updates an inventory item.
func (s ItemStore) Save(ctx context.Context, i item.Item) (item.Item, error) {
	model := s.Mapper().ToModel(i)
	now := time.Now()

	if model.ID == 0 {
		model.CreatedAt = now
		model.UpdatedAt = now
		if result := s.DB(ctx).Create(&model); result.Error != nil {
			return item.Item{}, fmt.Errorf("create item: %w", result.Error)
		}
	} else {
		model.UpdatedAt = now
		// Save with Select("*") so nulled link columns are written out;
		// GORM's default update skips zero-valued fields.
		if result := s.DB(ctx).Model(&ItemModel{ID: model.ID}).Select("*").Omit("created_at").Updates(&model); result.Error != nil {
			return item.Item{}, fmt.Errorf("update item: %w", result.Error)
		}
	}

	return s.Mapper().ToDomain(model), nil
}

// Delete removes an inventory item.
func (s ItemStore) Delete(ctx context.Context, i item.Item) error {
	if result := s.DB(ctx).Delete(&ItemModel{}, i.ID()); result.Error != nil {
		return fmt.Errorf("delete item: %w", result.Error)
	}
	return nil
}

// ClearEntity nulls out every attribution link pointing at the given
// canonical entity across all items, keeping score and basis columns for
// audit. This is the cascade-to-null half of an entity deletion.
func (s ItemStore) ClearEntity(ctx context.Context, entityID int64) error {
	for _, prefix := range []string{"artist", "printer", "publisher"} {
		col := prefix + "_entity_id"
		result := s.DB(ctx).Model(&ItemModel{}).
			Where(col+" = ?", entityID).
			Update(col, nil)
		if result.Error != nil {
			return fmt.Errorf("clear %s links: %w", prefix, result.Error)
		}
	}
	return nil
}
