package utils

import (
	"strings"
	"unicode"
)

// SafeFilename strips characters that are unsafe in a download
// filename, keeping letters, digits, spaces, dashes and underscores.
// An empty result falls back to the given default.
func SafeFilename(name, fallback string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	if safe == "" {
		return fallback
	}
	return safe
}
