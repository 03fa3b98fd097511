package entity

import (
	"fmt"
	"time"
)

// Entity is a canonical record for a real-world artist, printer, publisher,
// seller, or acquisition platform. The canonical name is unique per kind
// under Normalize; the alias set is an ordered, union-only collection of
// alternate spellings that all resolve to this entity.
type Entity struct {
	id        int64
	kind      Kind
	name      string
	aliases   []string
	verified  bool
	details   Details
	createdAt time.Time
	updatedAt time.Time
}

// NewEntity creates a new canonical entity (not yet persisted). The name
// must survive normalization; aliases that normalize to the empty key or
// duplicate the canonical name are dropped.
func NewEntity(kind Kind, name string, aliases []string) (Entity, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Entity{}, err
	}
	if Normalize(name) == "" {
		return Entity{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	e := Entity{kind: kind, name: name}
	e, _ = e.MergeAliases(aliases)
	return e, nil
}

// ReconstructEntity recreates an entity from persistence.
func ReconstructEntity(
	id int64,
	kind Kind,
	name string,
	aliases []string,
	verified bool,
	details Details,
	createdAt, updatedAt time.Time,
) Entity {
	return Entity{
		id:        id,
		kind:      kind,
		name:      name,
		aliases:   append([]string(nil), aliases...),
		verified:  verified,
		details:   details,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the database identifier, 0 when not yet persisted.
func (e Entity) ID() int64 { return e.id }

// IsNew reports whether the entity has not been persisted yet.
func (e Entity) IsNew() bool { return e.id == 0 }

// Kind returns the entity kind.
func (e Entity) Kind() Kind { return e.kind }

// Name returns the canonical display name.
func (e Entity) Name() string { return e.name }

// NameKey returns the normalized comparison key of the canonical name.
func (e Entity) NameKey() string { return Normalize(e.name) }

// Aliases returns the ordered alias set.
func (e Entity) Aliases() []string {
	return append([]string(nil), e.aliases...)
}

// Verified reports whether enrichment data has been confirmed. Once set it
// is never downgraded automatically.
func (e Entity) Verified() bool { return e.verified }

// Details returns the kind-specific enrichment fields.
func (e Entity) Details() Details { return e.details }

// CreatedAt returns when the entity was created.
func (e Entity) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns when the entity was last mutated.
func (e Entity) UpdatedAt() time.Time { return e.updatedAt }

// Matches reports whether the candidate name equals the canonical name or
// any alias under normalization.
func (e Entity) Matches(candidate string) bool {
	key := Normalize(candidate)
	if key == "" {
		return false
	}
	if key == e.NameKey() {
		return true
	}
	return e.HasAlias(candidate)
}

// HasAlias reports whether the candidate is in the alias set under
// normalization.
func (e Entity) HasAlias(candidate string) bool {
	key := Normalize(candidate)
	if key == "" {
		return false
	}
	for _, a := range e.aliases {
		if Normalize(a) == key {
			return true
		}
	}
	return false
}

// MergeAliases unions the given names into the alias set, preserving
// first-seen order and deduplicating under normalization. Names that
// normalize to the empty key or to the canonical name are skipped.
// Returns the updated entity and the number of aliases actually added.
func (e Entity) MergeAliases(names []string) (Entity, int) {
	seen := make(map[string]bool, len(e.aliases)+1)
	seen[e.NameKey()] = true
	for _, a := range e.aliases {
		seen[Normalize(a)] = true
	}

	merged := append([]string(nil), e.aliases...)
	added := 0
	for _, n := range names {
		key := Normalize(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, n)
		added++
	}
	e.aliases = merged
	return e, added
}

// WithVerified returns a copy with the verified flag set.
func (e Entity) WithVerified(v bool) Entity {
	e.verified = v
	return e
}

// WithDetails returns a copy with the details replaced.
func (e Entity) WithDetails(d Details) Entity {
	e.details = d
	return e
}

// WithID returns a copy with the given identifier.
func (e Entity) WithID(id int64) Entity {
	e.id = id
	return e
}

// WithTimestamps returns a copy with the given timestamps.
func (e Entity) WithTimestamps(createdAt, updatedAt time.Time) Entity {
	e.createdAt = createdAt
	e.updatedAt = updatedAt
	return e
}
