package task

import (
	"context"

	"github.com/affiche-studio/affiche/domain/storage"
)

// Store defines persistence operations for queued tasks.
type Store interface {
	// Save inserts the task, or refreshes the existing row when a task
	// with the same dedup key is already queued.
	Save(ctx context.Context, t Task) (Task, error)

	// Dequeue returns the oldest pending task, if any.
	Dequeue(ctx context.Context) (Task, bool, error)

	// Delete removes a task from the queue.
	Delete(ctx context.Context, t Task) error

	// FindPending returns pending tasks, oldest first.
	FindPending(ctx context.Context, options ...storage.Option) ([]Task, error)

	// CountPending returns the number of pending tasks.
	CountPending(ctx context.Context) (int64, error)
}
