// Package enrichment contains the handler that fills canonical entity
// details from external structured-data sources.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/affiche-studio/affiche/application/handler"
	"github.com/affiche-studio/affiche/domain/enrich"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/storage"
)

// Enricher fetches proposed detail fields for an entity from an
// external source.
type Enricher interface {
	Enrich(ctx context.Context, pageURL string, kind entity.Kind) (enrich.Fields, error)
	PageURL(title string) string
}

// Entity handles the enrich_entity operation: fetch external data for a
// canonical entity and fill in fields that are still empty. Enrichment
// is strictly additive unless the task carries force.
type Entity struct {
	entities entity.Store
	enricher Enricher
	timeout  time.Duration
	logger   *slog.Logger
}

// NewEntity creates the enrichment handler.
func NewEntity(entities entity.Store, enricher Enricher, timeout time.Duration, logger *slog.Logger) *Entity {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Entity{entities: entities, enricher: enricher, timeout: timeout, logger: logger}
}

// Execute processes one enrich_entity task. An unreachable or unusable
// source is not an error: the entity simply stays bare and a later run
// can fill it in.
func (h *Entity) Execute(ctx context.Context, payload map[string]any) error {
	id, err := handler.EntityID(payload)
	if err != nil {
		return err
	}
	force := handler.Force(payload)

	e, err := h.entities.FindOne(ctx, storage.WithID(id))
	if err != nil {
		return fmt.Errorf("load entity %d: %w", id, err)
	}

	pageURL := e.Details().ReferenceURL()
	if pageURL == "" {
		pageURL = h.enricher.PageURL(e.Name())
	}

	fetchCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	fields, err := h.enricher.Enrich(fetchCtx, pageURL, e.Kind())
	if err != nil {
		if errors.Is(err, enrich.ErrUnavailable) {
			h.logger.Warn("enrichment source unavailable",
				slog.Int64("entity_id", id),
				slog.String("name", e.Name()),
				slog.String("url", pageURL))
			return nil
		}
		return fmt.Errorf("enrich entity %d: %w", id, err)
	}

	enriched, changed := enrich.Apply(e, fields, force)
	if changed == 0 {
		h.logger.Debug("enrichment proposed nothing new",
			slog.Int64("entity_id", id))
		return nil
	}

	if _, err := h.entities.Save(ctx, enriched); err != nil {
		return fmt.Errorf("save enriched entity %d: %w", id, err)
	}

	h.logger.Info("entity enriched",
		slog.Int64("entity_id", id),
		slog.String("kind", e.Kind().String()),
		slog.Int("fields", changed))
	return nil
}
