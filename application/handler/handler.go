// Package handler provides task handlers for processing queued operations.
package handler

import (
	"errors"
	"fmt"
)

// ErrBadPayload indicates a task payload is missing a required key or
// carries the wrong type.
var ErrBadPayload = errors.New("bad task payload")

// EntityID extracts the entity_id key from a task payload. Payloads
// round-trip through JSON, so numbers may arrive as float64.
func EntityID(payload map[string]any) (int64, error) {
	val, ok := payload["entity_id"]
	if !ok {
		return 0, fmt.Errorf("%w: missing entity_id", ErrBadPayload)
	}
	switch v := val.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: entity_id has type %T", ErrBadPayload, val)
	}
}

// Force extracts the optional force flag from a task payload.
func Force(payload map[string]any) bool {
	v, ok := payload["force"].(bool)
	return ok && v
}
