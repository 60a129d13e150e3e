package catalog

import (
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Sanitize maps arbitrary text to a URL/document-safe identifier:
// lowercase, every run of characters outside [a-z0-9] collapsed to a
// single dash, leading/trailing dashes stripped. Total and idempotent;
// empty input yields the empty string. Uniqueness is not guaranteed;
// id collisions resolve as last writer wins.
func Sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
