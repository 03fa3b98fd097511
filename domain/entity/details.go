package entity

// Details holds the kind-specific enrichment fields of a canonical entity.
// Zero values mean "not yet populated". Which fields are meaningful depends
// on the kind: artists carry nationality and biography, printers and
// publishers carry location, country, and founding/closure years,
// publishers additionally carry a publication type.
type Details struct {
	nationality     string
	location        string
	country         string
	foundedYear     int
	closedYear      int
	biography       string
	referenceURL    string
	imageURL        string
	publicationType string
}

// NewDetails creates an empty Details value.
func NewDetails() Details { return Details{} }

// Nationality returns the nationality (artists).
func (d Details) Nationality() string { return d.nationality }

// Location returns the city or locality (printers, publishers, sellers).
func (d Details) Location() string { return d.location }

// Country returns the country (printers, publishers, sellers, platforms).
func (d Details) Country() string { return d.country }

// FoundedYear returns the founding year, or 0 when unknown.
func (d Details) FoundedYear() int { return d.foundedYear }

// ClosedYear returns the dissolution year, or 0 when unknown.
func (d Details) ClosedYear() int { return d.closedYear }

// Biography returns the free-text biography or company history.
func (d Details) Biography() string { return d.biography }

// ReferenceURL returns the external structured-data source URL.
func (d Details) ReferenceURL() string { return d.referenceURL }

// ImageURL returns the portrait or logo image URL.
func (d Details) ImageURL() string { return d.imageURL }

// PublicationType returns the publication type (publishers).
func (d Details) PublicationType() string { return d.publicationType }

// IsEmpty reports whether no field has been populated.
func (d Details) IsEmpty() bool {
	return d == Details{}
}

// WithNationality returns a copy with nationality set.
func (d Details) WithNationality(v string) Details {
	d.nationality = v
	return d
}

// WithLocation returns a copy with location set.
func (d Details) WithLocation(v string) Details {
	d.location = v
	return d
}

// WithCountry returns a copy with country set.
func (d Details) WithCountry(v string) Details {
	d.country = v
	return d
}

// WithFoundedYear returns a copy with the founding year set.
func (d Details) WithFoundedYear(v int) Details {
	d.foundedYear = v
	return d
}

// WithClosedYear returns a copy with the dissolution year set.
func (d Details) WithClosedYear(v int) Details {
	d.closedYear = v
	return d
}

// WithBiography returns a copy with the biography set.
func (d Details) WithBiography(v string) Details {
	d.biography = v
	return d
}

// WithReferenceURL returns a copy with the reference URL set.
func (d Details) WithReferenceURL(v string) Details {
	d.referenceURL = v
	return d
}

// WithImageURL returns a copy with the image URL set.
func (d Details) WithImageURL(v string) Details {
	d.imageURL = v
	return d
}

// WithPublicationType returns a copy with the publication type set.
func (d Details) WithPublicationType(v string) Details {
	d.publicationType = v
	return d
}
