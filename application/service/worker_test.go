package service

import (
	"context"
	"errors"
	"testing"

	"github.com/affiche-studio/affiche/domain/task"
	"github.com/affiche-studio/affiche/infrastructure/persistence"
	"github.com/affiche-studio/affiche/internal/testdb"
)

type recordingHandler struct {
	payloads []map[string]any
	err      error
}

func (h *recordingHandler) Execute(_ context.Context, payload map[string]any) error {
	h.payloads = append(h.payloads, payload)
	return h.err
}

type panickingHandler struct{}

func (panickingHandler) Execute(context.Context, map[string]any) error {
	panic("handler exploded")
}

func TestWorker_ProcessOne(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTaskStore(testdb.New(t))

	handler := &recordingHandler{}
	registry := NewRegistry()
	registry.Register(task.OperationEnrichEntity, handler)
	worker := NewWorker(store, registry, nil)

	queue := NewQueue(store, nil)
	if err := queue.Enqueue(ctx, task.NewTask(task.OperationEnrichEntity, map[string]any{"entity_id": int64(7)})); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	processed, err := worker.ProcessOne(ctx)
	if err != nil {
		t.Fatalf("ProcessOne: %v", err)
	}
	if !processed {
		t.Fatal("expected a task to be processed")
	}
	if len(handler.payloads) != 1 {
		t.Fatalf("handler ran %d times, want 1", len(handler.payloads))
	}

	// Completed tasks leave the queue.
	count, _ := queue.Count(ctx)
	if count != 0 {
		t.Errorf("pending count = %d, want 0", count)
	}

	processed, err = worker.ProcessOne(ctx)
	if err != nil || processed {
		t.Errorf("empty queue: processed=%v err=%v", processed, err)
	}
}

func TestWorker_FailedTaskIsNotRetried(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTaskStore(testdb.New(t))

	handler := &recordingHandler{err: errors.New("fetch failed")}
	registry := NewRegistry()
	registry.Register(task.OperationEnrichEntity, handler)
	worker := NewWorker(store, registry, nil)

	queue := NewQueue(store, nil)
	_ = queue.Enqueue(ctx, task.NewTask(task.OperationEnrichEntity, map[string]any{"entity_id": int64(1)}))

	if _, err := worker.ProcessOne(ctx); err != nil {
		t.Fatalf("ProcessOne: %v", err)
	}

	count, _ := queue.Count(ctx)
	if count != 0 {
		t.Errorf("failed task still pending, count = %d", count)
	}
}

func TestWorker_RecoverFromPanic(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTaskStore(testdb.New(t))

	registry := NewRegistry()
	registry.Register(task.OperationEnrichEntity, panickingHandler{})
	worker := NewWorker(store, registry, nil)

	queue := NewQueue(store, nil)
	_ = queue.Enqueue(ctx, task.NewTask(task.OperationEnrichEntity, map[string]any{"entity_id": int64(1)}))

	if _, err := worker.ProcessOne(ctx); err != nil {
		t.Fatalf("panic must be recovered, got %v", err)
	}
}

func TestQueue_DedupRefresh(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTaskStore(testdb.New(t))
	queue := NewQueue(store, nil)

	payload := map[string]any{"entity_id": int64(42)}
	_ = queue.Enqueue(ctx, task.NewTask(task.OperationEnrichEntity, payload))
	_ = queue.Enqueue(ctx, task.NewTask(task.OperationEnrichEntity, payload))

	count, err := queue.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("pending count = %d, want deduplicated 1", count)
	}
}

func TestQueue_DrainForEntity(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewTaskStore(testdb.New(t))
	queue := NewQueue(store, nil)

	_ = queue.Enqueue(ctx, task.NewTask(task.OperationEnrichEntity, map[string]any{"entity_id": int64(1)}))
	_ = queue.Enqueue(ctx, task.NewTask(task.OperationEnrichEntity, map[string]any{"entity_id": int64(2)}))

	removed, err := queue.DrainForEntity(ctx, 1)
	if err != nil {
		t.Fatalf("DrainForEntity: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	count, _ := queue.Count(ctx)
	if count != 1 {
		t.Errorf("pending count = %d, want 1", count)
	}
}
