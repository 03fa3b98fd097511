// Package entity provides domain types for canonical catalog entities:
// the artists, printers, publishers, sellers, and acquisition platforms
// that inventory items are attributed to.
package entity

import "fmt"

// Kind discriminates the five canonical entity kinds.
type Kind string

// Kind values.
const (
	KindArtist    Kind = "artist"
	KindPrinter   Kind = "printer"
	KindPublisher Kind = "publisher"
	KindSeller    Kind = "seller"
	KindPlatform  Kind = "platform"
)

// Kinds returns all entity kinds in display order.
func Kinds() []Kind {
	return []Kind{KindArtist, KindPrinter, KindPublisher, KindSeller, KindPlatform}
}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	switch k {
	case KindArtist, KindPrinter, KindPublisher, KindSeller, KindPlatform:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// String returns the kind as a string.
func (k Kind) String() string { return string(k) }
