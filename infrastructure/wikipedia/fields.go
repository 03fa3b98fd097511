package wikipedia

import (
	"github.com/affiche-studio/affiche/domain/enrich"
	"github.com/affiche-studio/affiche/domain/entity"
)

// Structured-field candidate names per target field, in priority order.
// The first non-empty infobox hit wins; free-text heuristics only run when
// no candidate matched.
var (
	nationalityKeys = []string{"nationality", "citizenship", "country"}
	locationKeys    = []string{"headquarters", "location", "location_city", "hq_location_city", "city"}
	countryKeys     = []string{"country", "location_country", "hq_location_country"}
	foundedKeys     = []string{"founded", "foundation", "established", "founded_date"}
	closedKeys      = []string{"defunct", "closed", "dissolved", "fate", "successor"}
	pubTypeKeys     = []string{"type", "publication_type", "genre", "products"}
	imageKeys       = []string{"image", "logo"}
)

// Free-text keyword anchors for year extraction.
var (
	foundedKeywords = []string{"founded", "established", "founding"}
	closedKeywords  = []string{"defunct", "dissolved", "closed", "ceased"}
)

// ExtractFields maps infobox fields and summary text onto the enrichment
// fields of the given entity kind. Structured hits take precedence; the
// summary is a fallback only. Fields outside the kind's target set stay
// empty.
func ExtractFields(kind entity.Kind, box map[string]string, summary string) enrich.Fields {
	var f enrich.Fields

	switch kind {
	case entity.KindArtist:
		f.Nationality = pickFirst(box, nationalityKeys)
		if f.Nationality == "" {
			f.Nationality = nationalityFromText(summary)
		}

	case entity.KindPrinter, entity.KindSeller:
		f.Location = pickFirst(box, locationKeys)
		f.Country = pickFirst(box, countryKeys)
		f.FoundedYear = pickYear(box, foundedKeys)
		f.ClosedYear = pickYear(box, closedKeys)
		if f.Location == "" {
			f.Location = locationFromText(summary)
		}
		if f.FoundedYear == 0 {
			f.FoundedYear = yearNearKeyword(summary, foundedKeywords...)
		}
		if f.ClosedYear == 0 {
			f.ClosedYear = yearNearKeyword(summary, closedKeywords...)
		}

	case entity.KindPublisher:
		f.Location = pickFirst(box, locationKeys)
		f.Country = pickFirst(box, countryKeys)
		f.FoundedYear = pickYear(box, foundedKeys)
		f.ClosedYear = pickYear(box, closedKeys)
		f.PublicationType = pickFirst(box, pubTypeKeys)
		if f.Location == "" {
			f.Location = locationFromText(summary)
		}
		if f.FoundedYear == 0 {
			f.FoundedYear = yearNearKeyword(summary, foundedKeywords...)
		}
		if f.ClosedYear == 0 {
			f.ClosedYear = yearNearKeyword(summary, closedKeywords...)
		}

	case entity.KindPlatform:
		f.Country = pickFirst(box, countryKeys)
		f.FoundedYear = pickYear(box, foundedKeys)
	}

	// Image file names in infoboxes are bare "File:" values that need URL
	// construction; the summary thumbnail is preferred, so only record a
	// structured image when it is already a URL.
	if img := pickFirst(box, imageKeys); isHTTPURL(img) {
		f.ImageURL = img
	}

	return f
}

// pickFirst returns the first non-empty structured hit among candidates.
func pickFirst(box map[string]string, candidates []string) string {
	for _, key := range candidates {
		if v := box[key]; v != "" {
			return v
		}
	}
	return ""
}

// pickYear parses a year from the first candidate field producing one. No
// cross-validation between candidate fields: first success in priority
// order wins.
func pickYear(box map[string]string, candidates []string) int {
	for _, key := range candidates {
		v := box[key]
		if v == "" {
			continue
		}
		if y := firstYear(v); y != 0 {
			return y
		}
	}
	return 0
}

func isHTTPURL(s string) bool {
	return len(s) > 8 && (s[:7] == "http://" || s[:8] == "https://")
}
