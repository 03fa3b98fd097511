package entity

import "strings"

// Normalize reduces a free-text name to its comparison key: leading and
// trailing whitespace trimmed, case folded, internal whitespace runs
// collapsed to a single space. Two names refer to the same identity iff
// their keys are equal. Empty or whitespace-only input yields an empty
// key, which is never a resolvable identity.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
