package normalize

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// Code strips every character outside ASCII 0-9a-zA-Z and lowercases the rest.
// It is used for diagnosis, procedure and DRG codes, never for markers.
// Code is idempotent: Code(Code(s)) == Code(s).
func Code(s string) string {
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(s, ""))
}
