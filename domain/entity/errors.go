package entity

import "errors"

// Domain errors.
var (
	// ErrInvalidName indicates an empty or whitespace-only candidate name.
	// Callers must treat this as "no name provided", not attempt resolution.
	ErrInvalidName = errors.New("invalid entity name")

	// ErrUnknownKind indicates a kind string outside the five entity kinds.
	ErrUnknownKind = errors.New("unknown entity kind")
)
