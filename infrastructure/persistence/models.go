package persistence

import "time"

// EntityModel is the GORM model for canonical entities. The composite
// unique index on (kind, name_key) is the race arbiter for concurrent
// resolve-or-create calls: one winner, one conflict.
type EntityModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Kind     string `gorm:"size:16;not null;uniqueIndex:idx_entities_kind_name_key,priority:1"`
	Name     string `gorm:"size:512;not null"`
	NameKey  string `gorm:"size:512;not null;uniqueIndex:idx_entities_kind_name_key,priority:2"`
	Verified bool   `gorm:"not null;default:false"`

	Nationality     *string `gorm:"size:128"`
	Location        *string `gorm:"size:256"`
	Country         *string `gorm:"size:128"`
	FoundedYear     *int
	ClosedYear      *int
	Biography       *string `gorm:"type:text"`
	ReferenceURL    *string `gorm:"size:1024"`
	ImageURL        *string `gorm:"size:1024"`
	PublicationType *string `gorm:"size:128"`

	Aliases []EntityAliasModel `gorm:"foreignKey:EntityID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the table name for EntityModel.
func (EntityModel) TableName() string { return "entities" }

// EntityAliasModel is one alias row of a canonical entity. Position
// preserves first-seen order; ValueKey is the normalized form used for
// alias lookups.
type EntityAliasModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	EntityID int64  `gorm:"not null;index"`
	Position int    `gorm:"not null"`
	Value    string `gorm:"size:512;not null"`
	ValueKey string `gorm:"size:512;not null;index:idx_entity_aliases_value_key"`
}

// TableName sets the table name for EntityAliasModel.
func (EntityAliasModel) TableName() string { return "entity_aliases" }

// LinkColumns are the embedded per-field attribution columns on an item.
// A NULL EntityID means the field is unresolved (or was nulled when its
// entity was deleted).
type LinkColumns struct {
	EntityID *int64 `gorm:"index"`
	Score    int    `gorm:"not null;default:0"`
	Basis    string `gorm:"size:32"`
	Source   string `gorm:"size:1024"`
}

// ItemModel is the GORM model for inventory items. The three attribution
// links are embedded column groups, one per resolvable field.
type ItemModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	PublicID string `gorm:"size:64;not null;uniqueIndex:idx_items_public_id"`
	Title    string `gorm:"size:512"`
	ImageURL string `gorm:"size:1024"`

	Artist    LinkColumns `gorm:"embedded;embeddedPrefix:artist_"`
	Printer   LinkColumns `gorm:"embedded;embeddedPrefix:printer_"`
	Publisher LinkColumns `gorm:"embedded;embeddedPrefix:publisher_"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the table name for ItemModel.
func (ItemModel) TableName() string { return "items" }

// TaskModel is the GORM model for queued background tasks.
type TaskModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	DedupKey  string `gorm:"size:256;not null;uniqueIndex:idx_tasks_dedup_key"`
	Operation string `gorm:"size:64;not null"`
	Payload   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the table name for TaskModel.
func (TaskModel) TableName() string { return "tasks" }
