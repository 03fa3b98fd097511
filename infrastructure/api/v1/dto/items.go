package dto

import (
	"time"

	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/item"
)

// ItemData is the JSON representation of an inventory item.
type ItemData struct {
	PublicID  string               `json:"public_id"`
	Title     string               `json:"title"`
	ImageURL  string               `json:"image_url,omitempty"`
	Links     map[string]*LinkData `json:"links"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// LinkData is one attribution link on an item. EntityID is null when
// the linked entity was deleted but the attribution record remains.
type LinkData struct {
	EntityID *int64 `json:"entity_id"`
	Score    int    `json:"score"`
	Basis    string `json:"basis"`
	Source   string `json:"source,omitempty"`
}

// ItemResponse is a single-item body.
type ItemResponse struct {
	Data ItemData `json:"data"`
}

// ItemCreateRequest creates a new inventory item.
type ItemCreateRequest struct {
	PublicID string `json:"public_id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// AttributionRequest submits an analysis result for an item.
type AttributionRequest struct {
	Artist            string `json:"artist"`
	Printer           string `json:"printer"`
	Publisher         string `json:"publisher"`
	ArtistTier        string `json:"artist_tier"`
	Basis             string `json:"basis"`
	SourceDescription string `json:"source_description"`
	Origin            string `json:"origin"`
}

// AttributionResponse reports the item state and per-field outcomes
// after an attribution apply.
type AttributionResponse struct {
	Data     ItemData      `json:"data"`
	Outcomes []OutcomeData `json:"outcomes"`
}

// OutcomeData is the per-field result of an attribution apply.
type OutcomeData struct {
	Field    string `json:"field"`
	EntityID int64  `json:"entity_id,omitempty"`
	Created  bool   `json:"created,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ItemToDTO converts a domain item to its JSON shape.
func ItemToDTO(itm item.Item) ItemData {
	links := make(map[string]*LinkData)
	for field, link := range itm.Links() {
		data := &LinkData{
			Score:  link.Score(),
			Basis:  link.Basis().String(),
			Source: link.SourceDescription(),
		}
		if id := link.EntityID(); id != 0 {
			data.EntityID = &id
		}
		links[field.String()] = data
	}
	return ItemData{
		PublicID:  itm.PublicID(),
		Title:     itm.Title(),
		ImageURL:  itm.ImageURL(),
		Links:     links,
		CreatedAt: itm.CreatedAt(),
		UpdatedAt: itm.UpdatedAt(),
	}
}

// OutcomesToDTO converts attribution outcomes.
func OutcomesToDTO(outcomes attribution.Outcomes) []OutcomeData {
	out := make([]OutcomeData, 0, len(outcomes))
	for _, o := range outcomes {
		data := OutcomeData{
			Field:    o.Field.String(),
			EntityID: o.EntityID,
			Created:  o.Created,
		}
		if o.Err != nil {
			data.Error = o.Err.Error()
		}
		out = append(out, data)
	}
	return out
}
