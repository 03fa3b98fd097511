package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/domain/storage"
	"github.com/affiche-studio/affiche/domain/task"
)

// Admin carries the operator-facing mutations: entity deletion with
// link cascade, enrichment resets, and manual re-enrichment.
type Admin struct {
	entities entity.Store
	items    item.Store
	queue    *Queue
	logger   *slog.Logger
}

// NewAdmin creates an Admin service. queue may be nil, in which case
// re-enrichment requests fail.
func NewAdmin(entities entity.Store, items item.Store, queue *Queue, logger *slog.Logger) *Admin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Admin{entities: entities, items: items, queue: queue, logger: logger}
}

// DeleteEntity removes a canonical entity. Attribution links pointing at
// it are nulled out first, keeping their score and basis, so item records
// never reference a missing entity.
func (s *Admin) DeleteEntity(ctx context.Context, id int64) error {
	e, err := s.entities.FindOne(ctx, storage.WithID(id))
	if err != nil {
		return err
	}

	if s.queue != nil {
		if _, err := s.queue.DrainForEntity(ctx, id); err != nil {
			return fmt.Errorf("draining tasks for entity %d: %w", id, err)
		}
	}
	if err := s.items.ClearEntity(ctx, id); err != nil {
		return fmt.Errorf("clearing links for entity %d: %w", id, err)
	}
	if err := s.entities.Delete(ctx, e); err != nil {
		return err
	}

	s.logger.Info("entity deleted",
		"id", id, "kind", e.Kind().String(), "name", e.Name())
	return nil
}

// SetVerified marks an entity as human-reviewed (or revokes the mark).
func (s *Admin) SetVerified(ctx context.Context, id int64, verified bool) (entity.Entity, error) {
	e, err := s.entities.FindOne(ctx, storage.WithID(id))
	if err != nil {
		return entity.Entity{}, err
	}
	return s.entities.Save(ctx, e.WithVerified(verified))
}

// ClearEnrichment drops all enriched detail fields from an entity,
// keeping its name, aliases, and verified flag. Pair with Reenrich to
// force a fresh fetch.
func (s *Admin) ClearEnrichment(ctx context.Context, id int64) (entity.Entity, error) {
	e, err := s.entities.FindOne(ctx, storage.WithID(id))
	if err != nil {
		return entity.Entity{}, err
	}
	return s.entities.Save(ctx, e.WithDetails(entity.Details{}))
}

// Reenrich queues an enrichment task for the entity. With force set the
// handler overwrites already-populated fields.
func (s *Admin) Reenrich(ctx context.Context, id int64, force bool) error {
	if s.queue == nil {
		return fmt.Errorf("no task queue configured")
	}
	if _, err := s.entities.FindOne(ctx, storage.WithID(id)); err != nil {
		return err
	}
	t := task.NewTask(task.OperationEnrichEntity, map[string]any{
		"entity_id": id,
		"force":     force,
	})
	return s.queue.Enqueue(ctx, t)
}
