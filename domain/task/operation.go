// Package task provides task queue domain types for best-effort background
// work queued after attribution commits.
package task

import "fmt"

// Operation identifies the kind of work a queued task performs.
type Operation string

// Operation values.
const (
	// OperationEnrichEntity fetches structured-data enrichment for a
	// canonical entity.
	OperationEnrichEntity Operation = "enrich_entity"
)

// ParseOperation validates an operation string.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	switch op {
	case OperationEnrichEntity:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operation: %q", s)
	}
}

// String returns the operation as a string.
func (o Operation) String() string { return string(o) }
