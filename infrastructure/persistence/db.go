// Package persistence provides GORM-backed store implementations for
// canonical entities, inventory items, and queued tasks.
package persistence

import "github.com/affiche-studio/affiche/internal/database"

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(
		&EntityModel{},
		&EntityAliasModel{},
		&ItemModel{},
		&TaskModel{},
	)
}
