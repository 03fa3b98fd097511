package persistence

import (
	"encoding/json"
	"sort"

	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/domain/task"
)

// EntityMapper maps between domain Entity and EntityModel.
type EntityMapper struct{}

// ToDomain converts an EntityModel to a domain Entity.
func (m EntityMapper) ToDomain(e EntityModel) entity.Entity {
	aliases := make([]EntityAliasModel, len(e.Aliases))
	copy(aliases, e.Aliases)
	sort.Slice(aliases, func(i, j int) bool { return aliases[i].Position < aliases[j].Position })

	values := make([]string, len(aliases))
	for i, a := range aliases {
		values[i] = a.Value
	}

	d := entity.NewDetails()
	if e.Nationality != nil {
		d = d.WithNationality(*e.Nationality)
	}
	if e.Location != nil {
		d = d.WithLocation(*e.Location)
	}
	if e.Country != nil {
		d = d.WithCountry(*e.Country)
	}
	if e.FoundedYear != nil {
		d = d.WithFoundedYear(*e.FoundedYear)
	}
	if e.ClosedYear != nil {
		d = d.WithClosedYear(*e.ClosedYear)
	}
	if e.Biography != nil {
		d = d.WithBiography(*e.Biography)
	}
	if e.ReferenceURL != nil {
		d = d.WithReferenceURL(*e.ReferenceURL)
	}
	if e.ImageURL != nil {
		d = d.WithImageURL(*e.ImageURL)
	}
	if e.PublicationType != nil {
		d = d.WithPublicationType(*e.PublicationType)
	}

	return entity.ReconstructEntity(
		e.ID,
		entity.Kind(e.Kind),
		e.Name,
		values,
		e.Verified,
		d,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Entity to an EntityModel.
func (m EntityMapper) ToModel(e entity.Entity) EntityModel {
	d := e.Details()

	aliases := make([]EntityAliasModel, 0, len(e.Aliases()))
	for i, a := range e.Aliases() {
		aliases = append(aliases, EntityAliasModel{
			EntityID: e.ID(),
			Position: i,
			Value:    a,
			ValueKey: entity.Normalize(a),
		})
	}

	return EntityModel{
		ID:              e.ID(),
		Kind:            string(e.Kind()),
		Name:            e.Name(),
		NameKey:         e.NameKey(),
		Verified:        e.Verified(),
		Nationality:     optString(d.Nationality()),
		Location:        optString(d.Location()),
		Country:         optString(d.Country()),
		FoundedYear:     optInt(d.FoundedYear()),
		ClosedYear:      optInt(d.ClosedYear()),
		Biography:       optString(d.Biography()),
		ReferenceURL:    optString(d.ReferenceURL()),
		ImageURL:        optString(d.ImageURL()),
		PublicationType: optString(d.PublicationType()),
		Aliases:         aliases,
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
}

// ItemMapper maps between domain Item and ItemModel.
type ItemMapper struct{}

// ToDomain converts an ItemModel to a domain Item.
func (m ItemMapper) ToDomain(e ItemModel) item.Item {
	links := map[attribution.Field]attribution.Link{}
	for f, cols := range map[attribution.Field]LinkColumns{
		attribution.FieldArtist:    e.Artist,
		attribution.FieldPrinter:   e.Printer,
		attribution.FieldPublisher: e.Publisher,
	} {
		if l, ok := linkFromColumns(cols); ok {
			links[f] = l
		}
	}

	return item.ReconstructItem(
		e.ID,
		e.PublicID,
		e.Title,
		e.ImageURL,
		links,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Item to an ItemModel.
func (m ItemMapper) ToModel(i item.Item) ItemModel {
	return ItemModel{
		ID:        i.ID(),
		PublicID:  i.PublicID(),
		Title:     i.Title(),
		ImageURL:  i.ImageURL(),
		Artist:    linkToColumns(i.Link(attribution.FieldArtist)),
		Printer:   linkToColumns(i.Link(attribution.FieldPrinter)),
		Publisher: linkToColumns(i.Link(attribution.FieldPublisher)),
		CreatedAt: i.CreatedAt(),
		UpdatedAt: i.UpdatedAt(),
	}
}

func linkFromColumns(c LinkColumns) (attribution.Link, bool) {
	if c.EntityID == nil && c.Basis == "" && c.Score == 0 && c.Source == "" {
		return attribution.Link{}, false
	}
	var id int64
	if c.EntityID != nil {
		id = *c.EntityID
	}
	return attribution.NewLink(id, c.Score, attribution.Basis(c.Basis), c.Source), true
}

func linkToColumns(l attribution.Link) LinkColumns {
	if l.IsZero() {
		return LinkColumns{}
	}
	return LinkColumns{
		EntityID: optInt64(l.EntityID()),
		Score:    l.Score(),
		Basis:    string(l.Basis()),
		Source:   l.SourceDescription(),
	}
}

// TaskMapper maps between domain Task and TaskModel.
type TaskMapper struct{}

// ToDomain converts a TaskModel to a domain Task.
func (m TaskMapper) ToDomain(e TaskModel) task.Task {
	payload := map[string]any{}
	if e.Payload != "" {
		// A payload that fails to decode is treated as empty; the handler
		// will reject the task with a payload validation error.
		_ = json.Unmarshal([]byte(e.Payload), &payload)
	}
	return task.ReconstructTask(
		e.ID,
		e.DedupKey,
		task.Operation(e.Operation),
		payload,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Task to a TaskModel.
func (m TaskMapper) ToModel(t task.Task) TaskModel {
	payload, err := t.PayloadJSON()
	if err != nil {
		payload = []byte("{}")
	}
	return TaskModel{
		ID:        t.ID(),
		DedupKey:  t.DedupKey(),
		Operation: string(t.Operation()),
		Payload:   string(payload),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func optInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}
