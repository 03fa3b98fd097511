package task

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// Task represents an item in the queue waiting to be processed.
// Existence implies pending; there is no status field. Tasks deduplicate
// on a key derived from the operation and payload, so enqueueing the same
// enrichment twice is a no-op.
type Task struct {
	id        int64
	dedupKey  string
	operation Operation
	payload   map[string]any
	createdAt time.Time
	updatedAt time.Time
}

// NewTask creates a new Task. The dedup key is generated from the
// operation and payload.
func NewTask(operation Operation, payload map[string]any) Task {
	p := copyPayload(payload)
	return Task{
		dedupKey:  dedupKey(operation, p),
		operation: operation,
		payload:   p,
	}
}

// ReconstructTask recreates a Task from persistence.
func ReconstructTask(
	id int64,
	key string,
	operation Operation,
	payload map[string]any,
	createdAt, updatedAt time.Time,
) Task {
	return Task{
		id:        id,
		dedupKey:  key,
		operation: operation,
		payload:   copyPayload(payload),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the task ID.
func (t Task) ID() int64 { return t.id }

// DedupKey returns the deduplication key.
func (t Task) DedupKey() string { return t.dedupKey }

// Operation returns the task operation.
func (t Task) Operation() Operation { return t.operation }

// Payload returns a copy of the task payload.
func (t Task) Payload() map[string]any { return copyPayload(t.payload) }

// PayloadJSON returns the payload as JSON bytes.
func (t Task) PayloadJSON() ([]byte, error) {
	return json.Marshal(t.payload)
}

// CreatedAt returns when the task was created.
func (t Task) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the task was last updated.
func (t Task) UpdatedAt() time.Time { return t.updatedAt }

// WithID returns a copy of the task with the given ID.
func (t Task) WithID(id int64) Task {
	t.id = id
	return t
}

// WithTimestamps returns a copy of the task with the given timestamps.
func (t Task) WithTimestamps(createdAt, updatedAt time.Time) Task {
	t.createdAt = createdAt
	t.updatedAt = updatedAt
	return t
}

// dedupKey builds the deduplication key "{operation}:{entity_id}".
func dedupKey(operation Operation, payload map[string]any) string {
	return fmt.Sprintf("%s:%v", operation, payload["entity_id"])
}

func copyPayload(payload map[string]any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	return maps.Clone(payload)
}
