package dto

import (
	"time"

	"github.com/affiche-studio/affiche/domain/task"
)

// TaskData is the JSON representation of a pending background task.
type TaskData struct {
	ID        int64          `json:"id"`
	Operation string         `json:"operation"`
	DedupKey  string         `json:"dedup_key"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// TaskListResponse is the pending-task list body.
type TaskListResponse struct {
	Data  []TaskData `json:"data"`
	Total int64      `json:"total"`
}

// TasksToDTO converts domain tasks.
func TasksToDTO(tasks []task.Task) []TaskData {
	out := make([]TaskData, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskData{
			ID:        t.ID(),
			Operation: t.Operation().String(),
			DedupKey:  t.DedupKey(),
			Payload:   t.Payload(),
			CreatedAt: t.CreatedAt(),
		})
	}
	return out
}

// SeedReportData summarizes one applied seed batch.
type SeedReportData struct {
	Version      string `json:"version"`
	Created      int    `json:"created"`
	Merged       int    `json:"merged"`
	Unchanged    int    `json:"unchanged"`
	AliasesAdded int    `json:"aliases_added"`
}

// SeedResponse is the seed endpoint body.
type SeedResponse struct {
	Reports []SeedReportData `json:"reports"`
}
