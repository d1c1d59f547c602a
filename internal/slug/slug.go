// Package slug derives URL-safe identifiers from display names.
//
// The same function is used wherever slugs are generated and wherever an
// incoming URL segment is matched back to a category name; the two sides
// only agree because they share this implementation.
package slug

import (
	"regexp"
	"strings"
)

var (
	// strip everything that is not a word character, whitespace or hyphen
	invalidChars = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// collapse runs of whitespace, underscores and hyphens into one hyphen
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Make returns the URL-safe slug for a display name: lowercase, trimmed,
// punctuation stripped, separator runs collapsed to single hyphens.
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(name string) string {
	if name == "" {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
