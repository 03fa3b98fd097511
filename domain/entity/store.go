package entity

import (
	"context"

	"github.com/affiche-studio/affiche/domain/storage"
)

// Store defines persistence operations for canonical entities.
type Store interface {
	storage.Store[Entity]

	// FindByNameKey returns the entity of the given kind whose canonical
	// name normalizes to key.
	FindByNameKey(ctx context.Context, kind Kind, key string) (Entity, error)

	// FindByAliasKey returns the entity of the given kind holding an alias
	// that normalizes to key.
	FindByAliasKey(ctx context.Context, kind Kind, key string) (Entity, error)
}

// WithKind filters by the "kind" column.
func WithKind(kind Kind) storage.Option {
	return storage.WithCondition("kind", string(kind))
}

// WithVerified filters by the "verified" column.
func WithVerified(v bool) storage.Option {
	return storage.WithCondition("verified", v)
}

// WithNameContains filters entities whose display name contains the given
// substring, case-insensitively.
func WithNameContains(s string) storage.Option {
	return storage.WithConditionLike("name_key", "%"+Normalize(s)+"%")
}
