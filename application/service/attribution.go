package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/affiche-studio/affiche/domain/attribution"
	"github.com/affiche-studio/affiche/domain/entity"
	"github.com/affiche-studio/affiche/domain/item"
	"github.com/affiche-studio/affiche/domain/task"
)

// fieldKind maps an attribution field to the entity kind it names.
var fieldKind = map[attribution.Field]entity.Kind{
	attribution.FieldArtist:    entity.KindArtist,
	attribution.FieldPrinter:   entity.KindPrinter,
	attribution.FieldPublisher: entity.KindPublisher,
}

// Attribution links analysis results to catalog items. Each field of a
// result resolves independently: one field failing to resolve or store
// never blocks the others.
type Attribution struct {
	items    item.Store
	resolver *Resolver
	queue    *Queue
	logger   *slog.Logger
}

// NewAttribution creates an Attribution service. queue may be nil, in
// which case newly created entities are not scheduled for enrichment.
func NewAttribution(items item.Store, resolver *Resolver, queue *Queue, logger *slog.Logger) *Attribution {
	if logger == nil {
		logger = slog.Default()
	}
	return &Attribution{items: items, resolver: resolver, queue: queue, logger: logger}
}

// Apply resolves the names in result and updates the item's
// attribution links. A field named in the result replaces any previous
// link for that field wholesale; a field the result leaves empty keeps
// whatever link the item already has, so a partial result (a dealer
// research note naming only the printer, say) never disturbs the other
// fields. Fields whose resolution fails keep their previous link and
// are reported in the returned outcomes.
//
// Newly created entities are queued for enrichment only after the item
// write has landed.
func (s *Attribution) Apply(ctx context.Context, itm item.Item, result attribution.AnalysisResult) (item.Item, attribution.Outcomes, error) {
	fields := attribution.Fields()
	outcomes := make(attribution.Outcomes, len(fields))

	var mu sync.Mutex
	updated := itm

	g, gctx := errgroup.WithContext(ctx)
	for i, field := range fields {
		g.Go(func() error {
			outcome := s.resolveField(gctx, field, result)
			mu.Lock()
			defer mu.Unlock()
			outcomes[i] = outcome
			if outcome.Err == nil && !outcome.Link.IsZero() {
				updated = updated.WithLink(field, outcome.Link)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return itm, outcomes, err
	}

	saved, err := s.items.Save(ctx, updated)
	if err != nil {
		return itm, outcomes, err
	}

	s.scheduleEnrichment(ctx, outcomes)
	return saved, outcomes, nil
}

// resolveField produces the outcome for one field of the result. An
// empty name yields a zero outcome and the field is left untouched.
func (s *Attribution) resolveField(ctx context.Context, field attribution.Field, result attribution.AnalysisResult) attribution.Outcome {
	outcome := attribution.Outcome{Field: field}

	name := result.Name(field)
	if entity.Normalize(name) == "" {
		return outcome
	}

	res, err := s.resolver.ResolveOrCreate(ctx, fieldKind[field], name, nil)
	if err != nil {
		s.logger.Error("field resolution failed",
			"field", field.String(), "name", name, "error", err)
		outcome.Err = err
		return outcome
	}

	outcome.EntityID = res.Entity.ID()
	outcome.Created = res.Created
	outcome.Link = attribution.NewLink(
		res.Entity.ID(),
		result.FieldTier(field).Score(),
		result.FieldBasis(field),
		result.SourceDescription,
	)
	return outcome
}

// scheduleEnrichment queues an enrichment task for every entity the
// apply call created. Runs after the item save so a crashed enrichment
// worker never observes a link that was rolled back.
func (s *Attribution) scheduleEnrichment(ctx context.Context, outcomes attribution.Outcomes) {
	if s.queue == nil {
		return
	}
	for _, outcome := range outcomes {
		if !outcome.Created {
			continue
		}
		t := task.NewTask(task.OperationEnrichEntity, map[string]any{
			"entity_id": outcome.EntityID,
		})
		if err := s.queue.Enqueue(ctx, t); err != nil {
			// Enrichment is best-effort; the link already exists.
			s.logger.Warn("failed to enqueue enrichment",
				"entity_id", outcome.EntityID, "error", err)
		}
	}
}
