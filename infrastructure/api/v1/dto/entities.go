// Package dto defines the JSON request and response shapes of the v1 API.
package dto

import (
	"time"

	"github.com/affiche-studio/affiche/domain/entity"
)

// EntityData is the JSON representation of a canonical entity.
type EntityData struct {
	ID        int64          `json:"id"`
	Kind      string         `json:"kind"`
	Name      string         `json:"name"`
	Aliases   []string       `json:"aliases"`
	Verified  bool           `json:"verified"`
	Details   *EntityDetails `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// EntityDetails carries the enriched detail fields, omitted when empty.
type EntityDetails struct {
	Nationality     string `json:"nationality,omitempty"`
	Location        string `json:"location,omitempty"`
	Country         string `json:"country,omitempty"`
	FoundedYear     *int   `json:"founded_year,omitempty"`
	ClosedYear      *int   `json:"closed_year,omitempty"`
	Biography       string `json:"biography,omitempty"`
	ReferenceURL    string `json:"reference_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	PublicationType string `json:"publication_type,omitempty"`
}

// EntityListResponse is the paginated entity list body.
type EntityListResponse struct {
	Data []EntityData `json:"data"`
	Meta ListMeta     `json:"meta"`
}

// EntityResponse is a single-entity body.
type EntityResponse struct {
	Data EntityData `json:"data"`
}

// ListMeta carries pagination counters.
type ListMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// EntityToDTO converts a domain entity to its JSON shape.
func EntityToDTO(e entity.Entity) EntityData {
	data := EntityData{
		ID:        e.ID(),
		Kind:      e.Kind().String(),
		Name:      e.Name(),
		Aliases:   e.Aliases(),
		Verified:  e.Verified(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}
	if data.Aliases == nil {
		data.Aliases = []string{}
	}

	d := e.Details()
	if d.IsEmpty() {
		return data
	}
	details := EntityDetails{
		Nationality:     d.Nationality(),
		Location:        d.Location(),
		Country:         d.Country(),
		Biography:       d.Biography(),
		ReferenceURL:    d.ReferenceURL(),
		ImageURL:        d.ImageURL(),
		PublicationType: d.PublicationType(),
	}
	if y := d.FoundedYear(); y != 0 {
		details.FoundedYear = &y
	}
	if y := d.ClosedYear(); y != 0 {
		details.ClosedYear = &y
	}
	data.Details = &details
	return data
}

// EntitiesToDTO converts a slice of domain entities.
func EntitiesToDTO(entities []entity.Entity) []EntityData {
	out := make([]EntityData, 0, len(entities))
	for _, e := range entities {
		out = append(out, EntityToDTO(e))
	}
	return out
}
