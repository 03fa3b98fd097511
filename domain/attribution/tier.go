// Package attribution provides domain types for confidence-scored,
// source-attributed links between inventory items and canonical entities.
package attribution

// Tier is the confidence tier reported by an analysis for an identification.
type Tier string

// Tier values.
const (
	TierConfirmed Tier = "confirmed"
	TierLikely    Tier = "likely"
	TierUncertain Tier = "uncertain"
	TierUnknown   Tier = "unknown"
)

// ParseTier maps a tier string to a Tier, defaulting to unknown.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierConfirmed, TierLikely, TierUncertain:
		return Tier(s)
	default:
		return TierUnknown
	}
}

// Score maps the tier to a 0-100 confidence score.
func (t Tier) Score() int {
	switch t {
	case TierConfirmed:
		return 95
	case TierLikely:
		return 70
	case TierUncertain:
		return 40
	default:
		return 0
	}
}

// String returns the tier as a string.
func (t Tier) String() string { return string(t) }
