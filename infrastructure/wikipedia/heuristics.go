package wikipedia

import (
	"regexp"
	"strings"
)

// Year bounds for plausible founding/closure years of catalog entities.
const (
	minYear = 1500
	maxYear = 2029
)

var (
	yearPattern    = regexp.MustCompile(`\b(1[5-9]\d{2}|20[0-2]\d)\b`)
	basedInPattern = regexp.MustCompile(`(?i)\bbased (?:in|at) ([\p{Lu}][\p{L}'-]*(?:[ -][\p{Lu}][\p{L}'-]*)*)`)
)

// demonyms are the nationality adjectives recognized in free text.
// Covers the nationalities that dominate the vintage poster trade.
var demonyms = []string{
	"French", "Italian", "German", "British", "English", "Scottish",
	"American", "Dutch", "Belgian", "Spanish", "Swiss", "Austrian",
	"Polish", "Russian", "Czech", "Hungarian", "Danish", "Swedish",
	"Norwegian", "Ukrainian", "Romanian", "Portuguese", "Greek",
	"Japanese", "Chinese", "Canadian", "Australian", "Argentine",
	"Brazilian", "Mexican",
}

// demonymPattern matches demonyms on word boundaries only, so "Germanic"
// or "Polishing" never count as a nationality.
var demonymPattern = regexp.MustCompile(`\b(` + strings.Join(demonyms, "|") + `)\b`)

// firstYear returns the first 4-digit year within [minYear, maxYear]
// found in s, or 0.
func firstYear(s string) int {
	for _, m := range yearPattern.FindAllString(s, -1) {
		y := 0
		for _, r := range m {
			y = y*10 + int(r-'0')
		}
		if y >= minYear && y <= maxYear {
			return y
		}
	}
	return 0
}

// yearNearKeyword returns the first plausible year appearing shortly after
// any of the keywords in text, or 0. The window is generous enough for
// phrasings like "was founded by X in 1875". Lowering can change the byte
// length of the input, so both the keyword search and the window slicing
// work on the lowered string; digits are unaffected by case folding.
func yearNearKeyword(text string, keywords ...string) int {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		idx := strings.Index(lower, kw)
		for idx >= 0 {
			window := lower[idx:min(idx+80, len(lower))]
			if y := firstYear(window); y != 0 {
				return y
			}
			next := strings.Index(lower[idx+len(kw):], kw)
			if next < 0 {
				break
			}
			idx += len(kw) + next
		}
	}
	return 0
}

// locationFromText extracts a "based in X" location from free text, or "".
func locationFromText(text string) string {
	m := basedInPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// nationalityFromText returns the first demonym appearing as a whole word
// in the text, or "".
func nationalityFromText(text string) string {
	return demonymPattern.FindString(text)
}
