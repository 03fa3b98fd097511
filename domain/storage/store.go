package storage

import "context"

// Store defines the persistence operations every domain store provides.
type Store[T any] interface {
	// Save inserts the value when it has no identifier yet, otherwise updates it.
	Save(ctx context.Context, value T) (T, error)

	// Find retrieves all values matching the given options.
	Find(ctx context.Context, options ...Option) ([]T, error)

	// FindOne retrieves a single value matching the given options.
	FindOne(ctx context.Context, options ...Option) (T, error)

	// Delete removes the value.
	Delete(ctx context.Context, value T) error

	// Count returns the number of values matching the given options.
	Count(ctx context.Context, options ...Option) (int64, error)
}
