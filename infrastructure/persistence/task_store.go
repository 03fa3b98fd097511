package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/affiche-studio/affiche/domain/storage"
	"github.com/affiche-studio/affiche/domain/task"
	"github.com/affiche-studio/affiche/internal/database"
	"gorm.io/gorm/clause"
)

// TaskStore implements task.Store using GORM.
type TaskStore struct {
	database.Repository[task.Task, TaskModel]
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db database.Database) TaskStore {
	return TaskStore{
		Repository: database.NewRepository[task.Task, TaskModel](db, TaskMapper{}, "task"),
	}
}

// Save inserts the task, or refreshes the existing row's timestamp when a
// task with the same dedup key is already queued.
func (s TaskStore) Save(ctx context.Context, t task.Task) (task.Task, error) {
	model := s.Mapper().ToModel(t)
	now := time.Now()
	if model.ID == 0 {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dedup_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return task.Task{}, fmt.Errorf("save task: %w", result.Error)
	}

	return s.Mapper().ToDomain(model), nil
}

// Dequeue returns the oldest pending task, if any.
func (s TaskStore) Dequeue(ctx context.Context) (task.Task, bool, error) {
	tasks, err := s.FindPending(ctx, storage.WithLimit(1))
	if err != nil {
		return task.Task{}, false, err
	}
	if len(tasks) == 0 {
		return task.Task{}, false, nil
	}
	return tasks[0], true, nil
}

// Delete removes a task from the queue.
func (s TaskStore) Delete(ctx context.Context, t task.Task) error {
	if result := s.DB(ctx).Delete(&TaskModel{}, t.ID()); result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	return nil
}

// FindPending returns pending tasks, oldest first.
func (s TaskStore) FindPending(ctx context.Context, options ...storage.Option) ([]task.Task, error) {
	options = append(options, storage.WithOrderAsc("created_at"), storage.WithOrderAsc("id"))
	return s.Find(ctx, options...)
}

// CountPending returns the number of pending tasks.
func (s TaskStore) CountPending(ctx context.Context) (int64, error) {
	return s.Count(ctx)
}
