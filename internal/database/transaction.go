package database

import (
	"context"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside a database transaction. The
// transaction commits when fn returns nil and rolls back when fn
// returns an error or panics. fn's error is returned unchanged so
// callers can inspect it with errors.Is, including IsConflict on a
// racing insert.
func WithTransaction(ctx context.Context, db Database, fn func(tx *gorm.DB) error) error {
	return db.Session(ctx).Transaction(fn)
}
