package enrich

import "errors"

// ErrUnavailable indicates the enrichment source could not be used: the
// fetch failed, the page had no parseable content, or no matching fields
// were found. Always non-fatal; the entity proceeds unenriched.
var ErrUnavailable = errors.New("enrichment unavailable")
