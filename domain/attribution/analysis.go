package attribution

// Field identifies a resolvable identification field on an inventory item.
type Field string

// Field values.
const (
	FieldArtist    Field = "artist"
	FieldPrinter   Field = "printer"
	FieldPublisher Field = "publisher"
)

// Fields returns the resolvable fields in display order.
func Fields() []Field {
	return []Field{FieldArtist, FieldPrinter, FieldPublisher}
}

// String returns the field name.
func (f Field) String() string { return string(f) }

// Origin describes where an analysis result came from.
type Origin string

// Origin values.
const (
	// OriginAnalysis marks results produced by the image-analysis service.
	OriginAnalysis Origin = "analysis"
	// OriginResearch marks results entered through manual dealer research.
	OriginResearch Origin = "research"
)

// AnalysisResult is the upstream input to attribution: the identifications
// proposed by an AI image analysis or a manual research action. Empty name
// fields mean the analysis did not propose an identification for that field.
type AnalysisResult struct {
	Artist    string
	Printer   string
	Publisher string

	// ArtistTier is the confidence tier for the artist identification.
	ArtistTier Tier

	// Basis is the analysis-reported evidentiary basis, if any.
	Basis Basis

	// SourceDescription is a free-text provenance note.
	SourceDescription string

	// Origin distinguishes AI analysis from manual research.
	Origin Origin
}

// Name returns the proposed name for the given field.
func (r AnalysisResult) Name(f Field) string {
	switch f {
	case FieldArtist:
		return r.Artist
	case FieldPrinter:
		return r.Printer
	case FieldPublisher:
		return r.Publisher
	default:
		return ""
	}
}

// FieldBasis returns the basis to record for the given field: the reported
// basis when present, external_research for manual research, and
// stylistic_analysis as the analysis default for artist identifications.
func (r AnalysisResult) FieldBasis(f Field) Basis {
	if r.Basis != "" && r.Basis != BasisUnknown {
		return r.Basis
	}
	if r.Origin == OriginResearch {
		return BasisExternalResearch
	}
	if f == FieldArtist {
		return BasisStylisticAnalysis
	}
	return BasisUnknown
}

// FieldTier returns the confidence tier for the given field. Only artist
// identifications carry a tier; other fields default to likely when a name
// is present.
func (r AnalysisResult) FieldTier(f Field) Tier {
	if f == FieldArtist {
		return ParseTier(string(r.ArtistTier))
	}
	if r.Name(f) != "" {
		return TierLikely
	}
	return TierUnknown
}
