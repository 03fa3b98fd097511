package attribution

// Link records one resolved identification on an inventory item: the
// canonical entity it points to, a 0-100 confidence score, the evidentiary
// basis, and a free-text provenance note. Re-analysis replaces a link
// wholesale; old and new attribution metadata are never merged.
type Link struct {
	entityID          int64
	score             int
	basis             Basis
	sourceDescription string
}

// NewLink creates a Link. Scores are clamped to [0, 100].
func NewLink(entityID int64, score int, basis Basis, sourceDescription string) Link {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Link{
		entityID:          entityID,
		score:             score,
		basis:             basis,
		sourceDescription: sourceDescription,
	}
}

// EntityID returns the resolved canonical entity id, 0 when unresolved.
func (l Link) EntityID() int64 { return l.entityID }

// Score returns the confidence score (0-100).
func (l Link) Score() int { return l.score }

// Basis returns the evidentiary basis.
func (l Link) Basis() Basis { return l.basis }

// SourceDescription returns the free-text provenance note.
func (l Link) SourceDescription() string { return l.sourceDescription }

// IsZero reports whether the link is unset.
func (l Link) IsZero() bool { return l == Link{} }

// WithoutEntity returns a copy with the entity reference nulled out,
// keeping score and basis. Used when a canonical entity is deleted
// (cascade-to-null, not cascade-delete).
func (l Link) WithoutEntity() Link {
	l.entityID = 0
	return l
}
