package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/affiche-studio/affiche/domain/storage"
	"gorm.io/gorm"
)

// EntityMapper maps between domain and database model types.
type EntityMapper[D any, E any] interface {
	ToDomain(model E) D
	ToModel(domain D) E
}

// Repository provides generic persistence operations for database models
// using storage.Option-based queries.
type Repository[D any, E any] struct {
	db     Database
	mapper EntityMapper[D, E]
	label  string
}

// NewRepository creates a new Repository.
func NewRepository[D any, E any](db Database, mapper EntityMapper[D, E], label string) Repository[D, E] {
	return Repository[D, E]{
		db:     db,
		mapper: mapper,
		label:  label,
	}
}

// Find retrieves records matching the given options.
func (r Repository[D, E]) Find(ctx context.Context, options ...storage.Option) ([]D, error) {
	var models []E
	db := ApplyOptions(r.db.Session(ctx).Model(new(E)), options...)
	if result := db.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("find %s: %w", r.label, result.Error)
	}

	domains := make([]D, len(models))
	for i, m := range models {
		domains[i] = r.mapper.ToDomain(m)
	}
	return domains, nil
}

// FindOne retrieves a single record matching the given options.
func (r Repository[D, E]) FindOne(ctx context.Context, options ...storage.Option) (D, error) {
	var model E
	db := ApplyOptions(r.db.Session(ctx), options...)
	if result := db.First(&model); result.Error != nil {
		var zero D
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, r.label)
		}
		return zero, fmt.Errorf("find one %s: %w", r.label, result.Error)
	}
	return r.mapper.ToDomain(model), nil
}

// Count returns the number of records matching the given options.
func (r Repository[D, E]) Count(ctx context.Context, options ...storage.Option) (int64, error) {
	var count int64
	db := ApplyConditions(r.db.Session(ctx).Model(new(E)), options...)
	if result := db.Count(&count); result.Error != nil {
		return 0, fmt.Errorf("count %s: %w", r.label, result.Error)
	}
	return count, nil
}

// DeleteBy removes records matching the given options.
func (r Repository[D, E]) DeleteBy(ctx context.Context, options ...storage.Option) error {
	db := ApplyConditions(r.db.Session(ctx), options...)
	if result := db.Delete(new(E)); result.Error != nil {
		return fmt.Errorf("delete %s: %w", r.label, result.Error)
	}
	return nil
}

// DB returns a GORM session for store-specific queries.
func (r Repository[D, E]) DB(ctx context.Context) *gorm.DB {
	return r.db.Session(ctx)
}

// Mapper returns the entity mapper for store-specific conversions.
func (r Repository[D, E]) Mapper() EntityMapper[D, E] {
	return r.mapper
}
