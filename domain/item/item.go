// Package item provides the inventory item aggregate: the poster record
// that carries attribution links to canonical entities.
package item

import (
	"context"
	"time"

	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/storage"
)

// Item is an inventory item (a poster) with one attribution link per
// resolvable field. The links are embedded in the item record.
type Item struct {
	id        int64
	publicID  string
	title     string
	imageURL  string
	links     map[attribution.Field]attribution.Link
	createdAt time.Time
	updatedAt time.Time
}

// NewItem creates a new inventory item (not yet persisted).
func NewItem(publicID, title, imageURL string) Item {
	return Item{
		publicID: publicID,
		title:    title,
		imageURL: imageURL,
		links:    map[attribution.Field]attribution.Link{},
	}
}

// ReconstructItem recreates an item from persistence.
func ReconstructItem(
	id int64,
	publicID, title, imageURL string,
	links map[attribution.Field]attribution.Link,
	createdAt, updatedAt time.Time,
) Item {
	copied := make(map[attribution.Field]attribution.Link, len(links))
	for f, l := range links {
		copied[f] = l
	}
	return Item{
		id:        id,
		publicID:  publicID,
		title:     title,
		imageURL:  imageURL,
		links:     copied,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the database identifier, 0 when not yet persisted.
func (i Item) ID() int64 { return i.id }

// PublicID returns the opaque external identifier.
func (i Item) PublicID() string { return i.publicID }

// Title returns the item title.
func (i Item) Title() string { return i.title }

// ImageURL returns the uploaded image URL.
func (i Item) ImageURL() string { return i.imageURL }

// Link returns the attribution link for a field, zero when unset.
func (i Item) Link(f attribution.Field) attribution.Link {
	return i.links[f]
}

// Links returns a copy of all set attribution links.
func (i Item) Links() map[attribution.Field]attribution.Link {
	copied := make(map[attribution.Field]attribution.Link, len(i.links))
	for f, l := range i.links {
		copied[f] = l
	}
	return copied
}

// WithLink returns a copy with the field's link replaced entirely.
func (i Item) WithLink(f attribution.Field, l attribution.Link) Item {
	links := i.Links()
	links[f] = l
	i.links = links
	return i
}

// WithoutField returns a copy with the field's link removed.
func (i Item) WithoutField(f attribution.Field) Item {
	links := i.Links()
	delete(links, f)
	i.links = links
	return i
}

// WithoutEntity returns a copy with every link pointing at entityID nulled
// out (the link rows keep their score and basis, only the reference goes).
func (i Item) WithoutEntity(entityID int64) Item {
	links := i.Links()
	for f, l := range links {
		if l.EntityID() == entityID {
			links[f] = l.WithoutEntity()
		}
	}
	i.links = links
	return i
}

// WithID returns a copy with the given identifier.
func (i Item) WithID(id int64) Item {
	i.id = id
	return i
}

// WithTimestamps returns a copy with the given timestamps.
func (i Item) WithTimestamps(createdAt, updatedAt time.Time) Item {
	i.createdAt = createdAt
	i.updatedAt = updatedAt
	return i
}

// CreatedAt returns when the item was created.
func (i Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns when the item was last mutated.
func (i Item) UpdatedAt() time.Time { return i.updatedAt }

// Store defines persistence operations for inventory items.
type Store interface {
	storage.Store[Item]

	// ClearEntity nulls out every attribution link pointing at the given
	// canonical entity across all items.
	ClearEntity(ctx context.Context, entityID int64) error
}

// WithPublicID filters by the "public_id" column.
func WithPublicID(id string) storage.Option {
	return storage.WithCondition("public_id", id)
}
