package attribution

// Basis is the evidentiary reason a name was assigned to an item.
type Basis string

// Basis values.
const (
	BasisVisibleSignature  Basis = "visible_signature"
	BasisPrintedCredit     Basis = "printed_credit"
	BasisExternalKnowledge Basis = "external_knowledge"
	BasisStylisticAnalysis Basis = "stylistic_analysis"
	BasisExternalResearch  Basis = "external_research"
	BasisUnknown           Basis = "unknown"
)

// ParseBasis maps a basis string to a Basis, defaulting to unknown.
func ParseBasis(s string) Basis {
	switch Basis(s) {
	case BasisVisibleSignature, BasisPrintedCredit, BasisExternalKnowledge,
		BasisStylisticAnalysis, BasisExternalResearch:
		return Basis(s)
	default:
		return BasisUnknown
	}
}

// String returns the basis as a string.
func (b Basis) String() string { return string(b) }
