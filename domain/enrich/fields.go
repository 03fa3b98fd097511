// Package enrich provides the enrichment field proposal and its
// non-destructive application to canonical entities.
package enrich

import "github.com/affiche-studio/affiche/domain/entity"

// Fields is a set of values proposed by an enrichment fetch. Zero values
// mean the fetch found nothing for that field. Proposals never overwrite
// populated entity fields unless a force refresh is requested.
type Fields struct {
	Nationality     string
	Location        string
	Country         string
	FoundedYear     int
	ClosedYear      int
	Biography       string
	ReferenceURL    string
	ImageURL        string
	PublicationType string
}

// IsEmpty reports whether the fetch found no fields at all.
func (f Fields) IsEmpty() bool {
	return f == Fields{}
}

// Apply merges the proposed fields into the entity's details. Only fields
// that are currently unset on the entity are populated; with force set,
// non-empty proposals replace existing values too. Returns the updated
// entity and the number of fields changed.
func Apply(e entity.Entity, f Fields, force bool) (entity.Entity, int) {
	d := e.Details()
	changed := 0

	setString := func(current string, proposed string, set func(string) entity.Details) {
		if proposed == "" {
			return
		}
		if current != "" && !force {
			return
		}
		if current == proposed {
			return
		}
		d = set(proposed)
		changed++
	}
	setYear := func(current int, proposed int, set func(int) entity.Details) {
		if proposed == 0 {
			return
		}
		if current != 0 && !force {
			return
		}
		if current == proposed {
			return
		}
		d = set(proposed)
		changed++
	}

	setString(d.Nationality(), f.Nationality, d.WithNationality)
	setString(d.Location(), f.Location, d.WithLocation)
	setString(d.Country(), f.Country, d.WithCountry)
	setYear(d.FoundedYear(), f.FoundedYear, d.WithFoundedYear)
	setYear(d.ClosedYear(), f.ClosedYear, d.WithClosedYear)
	setString(d.Biography(), f.Biography, d.WithBiography)
	setString(d.ReferenceURL(), f.ReferenceURL, d.WithReferenceURL)
	setString(d.ImageURL(), f.ImageURL, d.WithImageURL)
	setString(d.PublicationType(), f.PublicationType, d.WithPublicationType)

	return e.WithDetails(d), changed
}
