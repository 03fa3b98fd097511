package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/affiche-studio/affiche/domain/storage"
	"github.com/affiche-studio/affiche/domain/task"
)

// TaskListParams configures task listing.
type TaskListParams struct {
	Operation *task.Operation
	Limit     int
	Offset    int
}

// Queue enqueues and inspects background tasks.
type Queue struct {
	store  task.Store
	logger *slog.Logger
}

// NewQueue creates a new queue service.
func NewQueue(store task.Store, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{store: store, logger: logger}
}

// Enqueue adds a task to the queue. A pending task with the same
// dedup key is refreshed instead of duplicated.
func (s *Queue) Enqueue(ctx context.Context, t task.Task) error {
	if _, err := s.store.Save(ctx, t); err != nil {
		return err
	}
	s.logger.Debug("task enqueued",
		slog.String("dedup_key", t.DedupKey()),
		slog.String("operation", t.Operation().String()),
	)
	return nil
}

// List returns pending tasks matching the given params, oldest first.
func (s *Queue) List(ctx context.Context, params *TaskListParams) ([]task.Task, error) {
	var options []storage.Option
	if params != nil && params.Limit > 0 {
		options = append(options, storage.WithPagination(params.Limit, params.Offset)...)
	}

	tasks, err := s.store.FindPending(ctx, options...)
	if err != nil {
		return nil, err
	}

	if params != nil && params.Operation != nil {
		filtered := make([]task.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Operation() == *params.Operation {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	return tasks, nil
}

// Count returns the total number of pending tasks.
func (s *Queue) Count(ctx context.Context) (int64, error) {
	return s.store.CountPending(ctx)
}

// DrainForEntity removes all pending tasks whose payload references the
// given entity. Called before an entity is deleted so a queued
// enrichment does not resurrect its data.
func (s *Queue) DrainForEntity(ctx context.Context, entityID int64) (int, error) {
	tasks, err := s.store.FindPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("find pending tasks: %w", err)
	}

	removed := 0
	for _, t := range tasks {
		id, _ := extractInt64(t.Payload(), "entity_id")
		if id != entityID {
			continue
		}
		if err := s.store.Delete(ctx, t); err != nil {
			return removed, fmt.Errorf("delete task %d: %w", t.ID(), err)
		}
		removed++
	}
	return removed, nil
}

func extractInt64(payload map[string]any, key string) (int64, bool) {
	val, ok := payload[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
