package wikipedia

import (
	"regexp"
	"strings"
)

var (
	refTagPattern     = regexp.MustCompile(`(?s)<ref[^>]*?/>|<ref[^>]*?>.*?</ref>`)
	htmlCommentRe     = regexp.MustCompile(`(?s)<!--.*?-->`)
	inlineTagPattern  = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	infoboxHeadRegexp = regexp.MustCompile(`(?i)\{\{\s*Infobox`)
)

// ParseInfobox locates the first infobox template in a page's wikitext and
// flattens it into a key → value map. Keys are lower-cased with internal
// whitespace replaced by underscores; values have wiki markup stripped:
// bracketed links reduced to their display text, nested templates removed,
// inline tags removed, whitespace collapsed. Returns nil when the page has
// no infobox.
func ParseInfobox(wikitext string) map[string]string {
	loc := infoboxHeadRegexp.FindStringIndex(wikitext)
	if loc == nil {
		return nil
	}

	body, ok := balancedTemplate(wikitext[loc[0]:])
	if !ok {
		return nil
	}

	fields := map[string]string{}
	for _, part := range splitTopLevel(body, '|') {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		k := normalizeKey(key)
		v := CleanWikitext(value)
		if k == "" || v == "" {
			continue
		}
		if _, exists := fields[k]; !exists {
			fields[k] = v
		}
	}
	return fields
}

// balancedTemplate returns the inner body of the template starting at the
// beginning of s (which must start with "{{"), without the outer braces
// and the template name line delimiter handling left to the caller's
// splitter. Returns false when the braces never balance.
func balancedTemplate(s string) (string, bool) {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch {
		case s[i] == '{' && s[i+1] == '{':
			depth++
			i++
		case s[i] == '}' && s[i+1] == '}':
			depth--
			i++
			if depth == 0 {
				return s[2 : i-1], true
			}
		}
	}
	return "", false
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// [[...]] links or {{...}} templates. The first segment (the template
// name) is dropped.
func splitTopLevel(s string, sep byte) []string {
	var (
		parts      []string
		start      int
		braceDepth int
		linkDepth  int
	)
	for i := 0; i < len(s); i++ {
		switch {
		case i < len(s)-1 && s[i] == '{' && s[i+1] == '{':
			braceDepth++
			i++
		case i < len(s)-1 && s[i] == '}' && s[i+1] == '}':
			braceDepth--
			i++
		case i < len(s)-1 && s[i] == '[' && s[i+1] == '[':
			linkDepth++
			i++
		case i < len(s)-1 && s[i] == ']' && s[i+1] == ']':
			linkDepth--
			i++
		case s[i] == sep && braceDepth == 0 && linkDepth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	if len(parts) > 0 {
		parts = parts[1:] // template name
	}
	return parts
}

// CleanWikitext strips wiki markup from a field value: [[target|display]]
// links reduce to their display text, [[target]] links to the target,
// {{...}} templates and <ref> citations are removed, inline tags dropped,
// whitespace collapsed.
func CleanWikitext(s string) string {
	s = htmlCommentRe.ReplaceAllString(s, "")
	s = refTagPattern.ReplaceAllString(s, "")
	s = removeTemplates(s)
	s = flattenLinks(s)
	s = strings.NewReplacer("<br>", ", ", "<br/>", ", ", "<br />", ", ").Replace(s)
	s = inlineTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'''", "")
	s = strings.ReplaceAll(s, "''", "")
	return strings.Join(strings.Fields(s), " ")
}

// removeTemplates deletes {{...}} spans, handling nesting.
func removeTemplates(s string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch {
		case i < len(s)-1 && s[i] == '{' && s[i+1] == '{':
			depth++
			i++
		case i < len(s)-1 && s[i] == '}' && s[i+1] == '}':
			if depth > 0 {
				depth--
			}
			i++
		case depth == 0:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// flattenLinks reduces [[target|display]] to display and [[target]] to
// target. File/image embeds are dropped entirely.
func flattenLinks(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "[[")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "]]")
		if end < 0 {
			b.WriteString(s)
			break
		}
		end += start

		b.WriteString(s[:start])
		inner := s[start+2 : end]
		lower := strings.ToLower(inner)
		if !strings.HasPrefix(lower, "file:") && !strings.HasPrefix(lower, "image:") {
			if idx := strings.LastIndex(inner, "|"); idx >= 0 {
				inner = inner[idx+1:]
			}
			b.WriteString(inner)
		}
		s = s[end+2:]
	}
	return b.String()
}

func normalizeKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	return strings.Join(strings.FieldsFunc(k, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '_'
	}), "_")
}
