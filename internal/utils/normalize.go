package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeToken canonicalizes a raw token for dictionary lookups.
// NFC composition runs first so precomposed and combining diacritic forms
// compare equal (matters for pt-PT), then the token is case folded.
func NormalizeToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToLower(norm.NFC.String(s))
}

// ParseCustomWords splits a comma separated word list into a membership set.
// Entries are trimmed and case folded; empty entries are dropped.
// Returns nil for an empty input so callers can skip the lookup entirely.
func ParseCustomWords(raw string) map[string]struct{} {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	set := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		word := NormalizeToken(entry)
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
